package controllers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"cityreport-be/errs"
	"cityreport-be/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MaxUploadSize is the inclusive byte cap for report photos.
const MaxUploadSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type UploadController struct {
	blob   storage.BlobStore
	urlTTL time.Duration
}

func NewUploadController(blob storage.BlobStore, urlTTL time.Duration) *UploadController {
	return &UploadController{blob: blob, urlTTL: urlTTL}
}

// validateUpload enforces the type/size contract before anything is
// delegated to the blob store.
func validateUpload(size int64, contentType string) error {
	if _, ok := allowedImageTypes[contentType]; !ok {
		return errs.Validationf("unsupported image type %q; allowed: jpeg, png, webp", contentType)
	}
	if size > MaxUploadSize {
		return errs.Validationf("image exceeds the %d byte limit", MaxUploadSize)
	}
	return nil
}

// UploadImage accepts a multipart "image" file, validates it and
// returns a time-limited fetchable URL from the blob store.
func (uc *UploadController) UploadImage(c *gin.Context) {
	if uc.blob == nil {
		respondError(c, errs.Storagef(nil, "blob store not configured"))
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		respondError(c, errs.Validationf("image file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if err := validateUpload(header.Size, contentType); err != nil {
		respondError(c, err)
		return
	}

	// Trust the size from the multipart header only up to a point:
	// read one byte past the cap to catch a lying Content-Length.
	data, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		respondError(c, errs.Storagef(err, "failed to read upload"))
		return
	}
	if int64(len(data)) > MaxUploadSize {
		respondError(c, errs.Validationf("image exceeds the %d byte limit", MaxUploadSize))
		return
	}

	// A timestamp alone collides for same-millisecond uploads, so the
	// object name carries a random component too.
	name := fmt.Sprintf("reports/%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), allowedImageTypes[contentType])
	ctx := c.Request.Context()

	if err := uc.blob.Upload(ctx, name, data, contentType); err != nil {
		respondError(c, errs.Storagef(err, "failed to store image"))
		return
	}
	url, err := uc.blob.SignedURL(ctx, name, uc.urlTTL)
	if err != nil {
		respondError(c, errs.Storagef(err, "failed to sign image URL"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "imageUrl": url})
}
