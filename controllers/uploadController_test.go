package controllers_test

import (
	"net/http"
	"strings"
	"testing"
)

func TestUploadAtExactSizeLimit(t *testing.T) {
	env := newTestEnv(t)

	rec := env.upload(t, "image/webp", 5242880)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200: %s", rec.Code, rec.Body.String())
	}
	url := decodeBody(t, rec)["imageUrl"].(string)
	if !strings.HasPrefix(url, "https://blob.test/reports/") {
		t.Fatalf("unexpected url %q", url)
	}
	if len(env.blob.objects) != 1 {
		t.Fatalf("object not stored: %d", len(env.blob.objects))
	}
}

func TestUploadNamesAreUnique(t *testing.T) {
	env := newTestEnv(t)

	// Two immediate uploads can land in the same millisecond; each must
	// still get its own object.
	for i := 0; i < 2; i++ {
		rec := env.upload(t, "image/png", 1024)
		if rec.Code != http.StatusOK {
			t.Fatalf("upload %d: got %d, want 200: %s", i, rec.Code, rec.Body.String())
		}
	}
	if len(env.blob.objects) != 2 {
		t.Fatalf("got %d objects, want 2 distinct names", len(env.blob.objects))
	}
}

func TestUploadOneByteOverLimit(t *testing.T) {
	env := newTestEnv(t)

	rec := env.upload(t, "image/jpeg", 5242881)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rec.Code)
	}
	if len(env.blob.objects) != 0 {
		t.Fatalf("oversized object reached the blob store")
	}
}

func TestUploadDisallowedType(t *testing.T) {
	env := newTestEnv(t)

	rec := env.upload(t, "image/gif", 1024)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rec.Code)
	}
}

func TestUploadMissingFile(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/uploads", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rec.Code)
	}
}

func TestUploadStoreFailure(t *testing.T) {
	env := newTestEnv(t)
	env.blob.failUpload = true

	rec := env.upload(t, "image/png", 1024)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("got %d, want 500", rec.Code)
	}
}
