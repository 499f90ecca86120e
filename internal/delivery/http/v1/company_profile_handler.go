package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-jobportal-backend/internal/delivery/http/response"
	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"
)

type CompanyProfileHandler struct {
	companyUC domain.CompanyProfileUsecase
}

func NewCompanyProfileHandler(r *gin.RouterGroup, companyUC domain.CompanyProfileUsecase) {
	handler := &CompanyProfileHandler{companyUC: companyUC}

	recruiters := r.Group("/recruiters")
	{
		recruiters.GET("/company", handler.GetCompany)
		recruiters.PUT("/company", handler.UpdateCompany)
	}
}

type CompanyProfileRequest struct {
	CompanyName string  `json:"company_name" binding:"required"`
	Website     *string `json:"website"`
	Industry    *string `json:"industry"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
}

// GetCompany godoc
// @Summary      Get my company profile
// @Tags         company
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.CompanyProfile}
// @Failure      404  {object}  response.Response
// @Router       /recruiters/company [get]
// @Security     BearerAuth
func (h *CompanyProfileHandler) GetCompany(c *gin.Context) {
	userID := c.GetString(domain.KeyUserID)

	profile, err := h.companyUC.GetRecruiterCompany(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Company profile retrieved", profile)
}

// UpdateCompany godoc
// @Summary      Create or update my company profile
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        body  body      CompanyProfileRequest  true  "Company data"
// @Success      200   {object}  response.Response{data=domain.CompanyProfile}
// @Failure      400   {object}  response.Response
// @Router       /recruiters/company [put]
// @Security     BearerAuth
func (h *CompanyProfileHandler) UpdateCompany(c *gin.Context) {
	userID := c.GetString(domain.KeyUserID)

	var req CompanyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile := &domain.CompanyProfile{
		UserID:      userID,
		CompanyName: req.CompanyName,
		Website:     req.Website,
		Industry:    req.Industry,
		Location:    req.Location,
		Description: req.Description,
	}

	if err := h.companyUC.UpdateRecruiterCompany(c.Request.Context(), userID, profile); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Company profile saved", profile)
}
