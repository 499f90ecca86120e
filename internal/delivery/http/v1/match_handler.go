package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-jobportal-backend/internal/delivery/http/middleware"
	"go-jobportal-backend/internal/delivery/http/response"
	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"
)

type MatchHandler struct {
	matchUC       domain.MatchUsecase
	applicationUC domain.ApplicationUsecase
}

// NewMatchHandler registers resume scan and recommendation routes.
// Scan endpoints carry their own per-user rate limit because PDF extraction
// and scoring are the most expensive calls in the API.
func NewMatchHandler(r *gin.RouterGroup, matchUC domain.MatchUsecase, applicationUC domain.ApplicationUsecase) {
	handler := &MatchHandler{matchUC: matchUC, applicationUC: applicationUC}

	scanLimit := middleware.RateLimitMiddleware(middleware.ScanRateLimitConfig())

	recruiters := r.Group("/recruiters")
	{
		recruiters.POST("/applications/:id/scan", scanLimit, handler.ScanApplication)
		recruiters.POST("/jobs/:jobId/bulk-scan", scanLimit, handler.BulkScan)
		recruiters.GET("/jobs/:jobId/recommendations", handler.RecommendCandidates)
		recruiters.GET("/jobs/:jobId/match-report", handler.ExportMatchReport)
	}
}

// ScanApplicationRequest toggles auto-classification after scoring
type ScanApplicationRequest struct {
	AutoClassify bool `json:"auto_classify"`
}

// ScanApplication godoc
// @Summary      Scan one application
// @Description  Score the candidate's resume against the job requirements (Recruiter only)
// @Tags         matching
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true   "Application ID"
// @Param        body  body      ScanApplicationRequest  false  "Scan options"
// @Success      200   {object}  response.Response{data=domain.ScanResult}
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /recruiters/applications/{id}/scan [post]
// @Security     BearerAuth
func (h *MatchHandler) ScanApplication(c *gin.Context) {
	userID := c.GetString(domain.KeyUserID)

	appID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid application ID"))
		return
	}

	var req ScanApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.matchUC.ScanApplication(c.Request.Context(), userID, appID, req.AutoClassify)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application scanned", result)
}

// BulkScanRequest toggles auto-scheduling of freshly shortlisted applications
type BulkScanRequest struct {
	AutoSchedule bool `json:"auto_schedule"`
}

// BulkScan godoc
// @Summary      Scan all pending applications for a job
// @Description  Score and auto-classify every still-applied application. With auto_schedule, shortlisted applications get the next free interview slot.
// @Tags         matching
// @Accept       json
// @Produce      json
// @Param        jobId  path      int              true   "Job ID"
// @Param        body   body      BulkScanRequest  false  "Bulk scan options"
// @Success      200    {object}  response.Response{data=[]domain.ScanResult}
// @Failure      403    {object}  response.Response
// @Router       /recruiters/jobs/{jobId}/bulk-scan [post]
// @Security     BearerAuth
func (h *MatchHandler) BulkScan(c *gin.Context) {
	userID := c.GetString(domain.KeyUserID)

	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	var req BulkScanRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	results, err := h.applicationUC.BulkScan(c.Request.Context(), userID, jobID, req.AutoSchedule)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications scanned", results)
}

// RecommendCandidates godoc
// @Summary      Recommend candidates for a job
// @Description  Rank registered candidate profiles against the job, best first (Recruiter only)
// @Tags         matching
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response{data=[]domain.CandidateMatch}
// @Failure      403    {object}  response.Response
// @Router       /recruiters/jobs/{jobId}/recommendations [get]
// @Security     BearerAuth
func (h *MatchHandler) RecommendCandidates(c *gin.Context) {
	userID := c.GetString(domain.KeyUserID)

	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	matches, err := h.matchUC.RecommendCandidates(c.Request.Context(), userID, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidates ranked", matches)
}

// ExportMatchReport godoc
// @Summary      Export a match report
// @Description  Download the application scan results for a job as an Excel workbook (Recruiter only)
// @Tags         matching
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        jobId  path  int  true  "Job ID"
// @Success      200    {file}  binary
// @Failure      403    {object}  response.Response
// @Router       /recruiters/jobs/{jobId}/match-report [get]
// @Security     BearerAuth
func (h *MatchHandler) ExportMatchReport(c *gin.Context) {
	userID := c.GetString(domain.KeyUserID)

	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	data, filename, err := h.matchUC.ExportMatchReport(c.Request.Context(), userID, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
