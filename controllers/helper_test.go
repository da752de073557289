package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"cityreport-be/controllers"
	"cityreport-be/errs"
	"cityreport-be/identity"
	"cityreport-be/kv"
	"cityreport-be/middlewares"
	"cityreport-be/models"
	"cityreport-be/repository"
	"cityreport-be/routes"

	"github.com/gin-gonic/gin"
)

const (
	adminToken   = "admin-token"
	citizenToken = "citizen-token"
	anonKey      = "public-anon-key"
)

type fakeProvider struct{}

func (f *fakeProvider) SignIn(_ context.Context, email, password string) (*identity.Session, error) {
	switch {
	case email == "admin@city.test" && password == "secret":
		return &identity.Session{
			User:         &models.User{ID: email, Email: email, Name: "Admin", Role: models.RoleAdmin},
			AccessToken:  adminToken,
			RefreshToken: "refresh",
		}, nil
	case email == "citizen@city.test" && password == "secret":
		return &identity.Session{
			User:         &models.User{ID: email, Email: email, Name: "Citizen", Role: models.RoleCitizen},
			AccessToken:  citizenToken,
			RefreshToken: "refresh",
		}, nil
	default:
		return nil, errs.Authf("invalid credentials")
	}
}

func (f *fakeProvider) ResolveToken(_ context.Context, token string) (*models.User, error) {
	switch token {
	case adminToken:
		return &models.User{ID: "admin@city.test", Email: "admin@city.test", Name: "Admin", Role: models.RoleAdmin}, nil
	case citizenToken:
		return &models.User{ID: "citizen@city.test", Email: "citizen@city.test", Name: "Citizen", Role: models.RoleCitizen}, nil
	default:
		return nil, errs.Authf("invalid authorization token")
	}
}

func (f *fakeProvider) SignOut(context.Context, string) error { return nil }

func (f *fakeProvider) Ready(context.Context) error { return nil }

type fakeBlob struct {
	objects    map[string][]byte
	failUpload bool
}

func newFakeBlob() *fakeBlob {
	return &fakeBlob{objects: make(map[string][]byte)}
}

func (f *fakeBlob) EnsureBucket(context.Context) error { return nil }

func (f *fakeBlob) BucketExists(context.Context) (bool, error) { return true, nil }

func (f *fakeBlob) Upload(_ context.Context, name string, data []byte, _ string) error {
	if f.failUpload {
		return errs.Storagef(nil, "upload failed")
	}
	f.objects[name] = data
	return nil
}

func (f *fakeBlob) SignedURL(_ context.Context, name string, _ time.Duration) (string, error) {
	return "https://blob.test/" + name + "?signature=abc", nil
}

type testEnv struct {
	router *gin.Engine
	repo   *repository.ReportRepository
	store  *kv.Memory
	blob   *fakeBlob
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := kv.NewMemory()
	repo := repository.New(store)
	provider := &fakeProvider{}
	blob := newFakeBlob()

	router := gin.New()
	guard := middlewares.AuthRequired(provider, anonKey)
	admin := middlewares.AdminRequired()
	routes.ReportRoutes(router,
		controllers.NewReportController(repo, nil),
		controllers.NewUploadController(blob, time.Hour),
		controllers.NewHealthController(repo, blob, provider),
		guard, admin, nil)
	routes.AuthRoutes(router, controllers.NewAuthController(provider))

	return &testEnv{router: router, repo: repo, store: store, blob: blob}
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return body
}

// multipartImage builds a multipart body with one "image" part of the
// given content type and size.
func multipartImage(t *testing.T, contentType string, size int) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="photo"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(bytes.Repeat([]byte{0x42}, size)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return buf, writer.FormDataContentType()
}

func (env *testEnv) upload(t *testing.T, contentType string, size int) *httptest.ResponseRecorder {
	t.Helper()
	body, formType := multipartImage(t, contentType, size)
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
	req.Header.Set("Content-Type", formType)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}
