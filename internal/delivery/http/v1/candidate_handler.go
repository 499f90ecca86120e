package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-jobportal-backend/internal/delivery/http/response"
	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	candidates := r.Group("/candidates")
	{
		candidates.GET("/profile", handler.GetProfile)
		candidates.PUT("/profile", handler.UpdateProfile)
	}
}

type UpdateProfileRequest struct {
	FullName        string   `json:"full_name" binding:"required"`
	Email           string   `json:"email"`
	AboutMe         string   `json:"about_me"`
	Skills          []string `json:"skills" binding:"required,min=1"`
	PrimarySkill    string   `json:"primary_skill"`
	ExperienceLevel string   `json:"experience_level"`
	PreferredRole   string   `json:"preferred_role"`
	Location        string   `json:"location"`
	Education       []string `json:"education"`
	ResumeKey       string   `json:"resume_key"`
}

// GetProfile godoc
// @Summary      Get my candidate profile
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.CandidateProfile}
// @Failure      404  {object}  response.Response
// @Router       /candidates/profile [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetProfile(c *gin.Context) {
	userID := c.GetString(domain.KeyUserID)

	// Pass the gin context so the usecase can verify the caller's identity
	profile, err := h.candidateUC.GetProfile(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// UpdateProfile godoc
// @Summary      Create or update my candidate profile
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        body  body      UpdateProfileRequest  true  "Profile data"
// @Success      200   {object}  response.Response{data=domain.CandidateProfile}
// @Failure      400   {object}  response.Response
// @Router       /candidates/profile [put]
// @Security     BearerAuth
func (h *CandidateHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetString(domain.KeyUserID)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile := &domain.CandidateProfile{
		UserID:          userID,
		FullName:        req.FullName,
		Email:           req.Email,
		AboutMe:         req.AboutMe,
		Skills:          req.Skills,
		PrimarySkill:    req.PrimarySkill,
		ExperienceLevel: req.ExperienceLevel,
		PreferredRole:   req.PreferredRole,
		Location:        req.Location,
		Education:       req.Education,
		ResumeKey:       req.ResumeKey,
	}

	if err := h.candidateUC.UpdateProfile(c, profile); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile saved", profile)
}
