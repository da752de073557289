package controllers

import (
	"net/http"
	"strconv"
	"time"

	"cityreport-be/errs"
	"cityreport-be/models"
	"cityreport-be/notify"
	"cityreport-be/repository"

	"github.com/gin-gonic/gin"
)

// ReportController serves the report read/write contract. The
// repository is injected at construction so tests can run against an
// in-memory substrate.
type ReportController struct {
	repo   *repository.ReportRepository
	events *notify.Publisher
}

func NewReportController(repo *repository.ReportRepository, events *notify.Publisher) *ReportController {
	return &ReportController{repo: repo, events: events}
}

// ListReports returns all reports newest first. No auth.
func (rc *ReportController) ListReports(c *gin.Context) {
	reports, err := rc.repo.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reports": reports})
}

// GetReport returns a single report by id.
func (rc *ReportController) GetReport(c *gin.Context) {
	report, err := rc.repo.GetOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "report": report})
}

// CreateReport validates the submission, assigns id, timestamp and
// the pending status, and persists it. Identity is derived from the
// wall clock in milliseconds.
func (rc *ReportController) CreateReport(c *gin.Context) {
	var input struct {
		Title       string  `json:"title" binding:"required"`
		Description string  `json:"description" binding:"required"`
		Type        string  `json:"type" binding:"required"`
		Location    string  `json:"location" binding:"required"`
		ImageURL    *string `json:"imageUrl,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, errs.Validationf("title, description, type and location are required"))
		return
	}

	reportType := models.ReportType(input.Type)
	if !reportType.IsValid() {
		respondError(c, errs.Validationf("invalid report type %q", input.Type))
		return
	}

	now := time.Now().UnixMilli()
	report := &models.Report{
		ID:          strconv.FormatInt(now, 10),
		Title:       input.Title,
		Description: input.Description,
		Type:        reportType,
		Location:    input.Location,
		ImageURL:    input.ImageURL,
		Status:      models.Pending,
		Timestamp:   now,
	}

	if err := rc.repo.Create(c.Request.Context(), report); err != nil {
		respondError(c, err)
		return
	}

	rc.events.ReportCreated(report)
	c.JSON(http.StatusOK, gin.H{"success": true, "report": report})
}

// UpdateStatus replaces the status field of an existing report. Any
// enumerated value is accepted from any current state; transitions are
// not forced forward-only.
func (rc *ReportController) UpdateStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, errs.Validationf("status is required"))
		return
	}

	status := models.ReportStatus(input.Status)
	if !status.IsValid() {
		respondError(c, errs.Validationf("invalid status %q", input.Status))
		return
	}

	report, err := rc.repo.UpdateStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		respondError(c, err)
		return
	}

	rc.events.StatusChanged(report)
	c.JSON(http.StatusOK, gin.H{"success": true, "report": report})
}

// DeleteReport removes a report permanently. Existence is pre-checked
// here so an absent id yields a clean 404 even though the repository
// delete itself is unconditional.
func (rc *ReportController) DeleteReport(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if _, err := rc.repo.GetOne(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	if err := rc.repo.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Report deleted successfully"})
}
