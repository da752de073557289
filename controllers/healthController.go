package controllers

import (
	"net/http"

	"cityreport-be/identity"
	"cityreport-be/repository"
	"cityreport-be/storage"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	repo     *repository.ReportRepository
	blob     storage.BlobStore
	provider identity.Provider
}

func NewHealthController(repo *repository.ReportRepository, blob storage.BlobStore, provider identity.Provider) *HealthController {
	return &HealthController{repo: repo, blob: blob, provider: provider}
}

// Health reports the aggregate state of the store, the bucket and the
// identity provider plus the current report count. Partial failures
// degrade the status but never fail the endpoint.
func (hc *HealthController) Health(c *gin.Context) {
	ctx := c.Request.Context()
	degraded := false

	store := gin.H{"ok": true}
	reportCount := 0
	if reports, err := hc.repo.ListAll(ctx); err != nil {
		store = gin.H{"ok": false, "error": err.Error()}
		degraded = true
	} else {
		reportCount = len(reports)
	}

	bucket := gin.H{"ok": true}
	if hc.blob == nil {
		bucket = gin.H{"ok": false, "error": "blob store not configured"}
		degraded = true
	} else if exists, err := hc.blob.BucketExists(ctx); err != nil {
		bucket = gin.H{"ok": false, "error": err.Error()}
		degraded = true
	} else if !exists {
		bucket = gin.H{"ok": false, "error": "bucket missing"}
		degraded = true
	}

	auth := gin.H{"ok": true}
	if err := hc.provider.Ready(ctx); err != nil {
		auth = gin.H{"ok": false, "error": err.Error()}
		degraded = true
	}

	status := "ok"
	if degraded {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"status":      status,
		"store":       store,
		"bucket":      bucket,
		"auth":        auth,
		"reportCount": reportCount,
	})
}
