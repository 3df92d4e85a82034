package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/playlistx/photoboothbackend/database"
	"github.com/playlistx/photoboothbackend/media"
	"github.com/playlistx/photoboothbackend/repository"
	"github.com/playlistx/photoboothbackend/services/bucket"
	"github.com/playlistx/photoboothbackend/services/mailer"
)

// fakeBackends stands in for the bucket and mailer APIs.
type fakeBackends struct {
	mu         sync.Mutex
	uploads    []string
	deletes    []string
	emails     []string
	mailStatus int
}

func (f *fakeBackends) bucketHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.Method {
		case http.MethodPost:
			f.uploads = append(f.uploads, r.URL.Path)
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			var body struct {
				Prefixes []string `json:"prefixes"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			f.deletes = append(f.deletes, body.Prefixes...)
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func (f *fakeBackends) mailerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var req struct {
			To []string `json:"to"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.emails = append(f.emails, req.To...)
		w.WriteHeader(f.mailStatus)
	}
}

func newPhotoHandler(t *testing.T, backends *fakeBackends) *PhotoHandler {
	t.Helper()

	bucketSrv := httptest.NewServer(backends.bucketHandler())
	t.Cleanup(bucketSrv.Close)
	mailerSrv := httptest.NewServer(backends.mailerHandler())
	t.Cleanup(mailerSrv.Close)

	bucketClient, err := bucket.New(bucketSrv.URL, "test-key", "test-bucket")
	if err != nil {
		t.Fatalf("bucket.New failed: %v", err)
	}
	mailerClient, err := mailer.New(mailerSrv.URL, "test-key", "Booth <booth@example.com>")
	if err != nil {
		t.Fatalf("mailer.New failed: %v", err)
	}

	db, err := database.InitGormDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("InitGormDB failed: %v", err)
	}
	if err := database.MigrateSchema(db); err != nil {
		t.Fatalf("MigrateSchema failed: %v", err)
	}

	return &PhotoHandler{
		Bucket:      bucketClient,
		Mailer:      mailerClient,
		Submissions: repository.NewSubmissionRepository(db),
	}
}

func submitBody(t *testing.T, overrides map[string]string) *bytes.Reader {
	t.Helper()
	body := map[string]string{
		"name":  "Jane Doe",
		"email": "jane@example.com",
		"phone": "081234567890",
		"theme": "f1",
		"photo": media.EncodeDataURI("image/png", []byte("fake png")),
	}
	for k, v := range overrides {
		body[k] = v
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	return bytes.NewReader(encoded)
}

func TestSubmitPhotoHappyPath(t *testing.T) {
	backends := &fakeBackends{mailStatus: http.StatusOK}
	handler := newPhotoHandler(t, backends)

	rec := httptest.NewRecorder()
	handler.SubmitPhoto(rec, httptest.NewRequest(http.MethodPost, "/api/photo/submit", submitBody(t, nil)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(backends.uploads) != 1 {
		t.Errorf("expected 1 upload, got %d", len(backends.uploads))
	}
	if len(backends.emails) != 1 || backends.emails[0] != "jane@example.com" {
		t.Errorf("expected email to jane@example.com, got %v", backends.emails)
	}
	if len(backends.deletes) != 0 {
		t.Errorf("no cleanup expected on success, got %v", backends.deletes)
	}

	var resp struct {
		ID       string `json:"id"`
		PhotoURL string `json:"photoUrl"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.ID == "" || !strings.Contains(resp.PhotoURL, "submissions/") {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestSubmitPhotoValidation(t *testing.T) {
	backends := &fakeBackends{mailStatus: http.StatusOK}
	handler := newPhotoHandler(t, backends)

	cases := []struct {
		name      string
		overrides map[string]string
	}{
		{"empty name", map[string]string{"name": "  <>  "}},
		{"bad email", map[string]string{"email": "not-an-email"}},
		{"bad phone", map[string]string{"phone": "+14155550100"}},
		{"unknown theme", map[string]string{"theme": "spaceship"}},
		{"bad photo", map[string]string{"photo": "not a data uri"}},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		handler.SubmitPhoto(rec, httptest.NewRequest(http.MethodPost, "/api/photo/submit", submitBody(t, tc.overrides)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
	}
	if len(backends.uploads) != 0 {
		t.Errorf("invalid submissions must not reach the bucket, got %d uploads", len(backends.uploads))
	}
}

func TestSubmitPhotoCompensatesFailedEmail(t *testing.T) {
	backends := &fakeBackends{mailStatus: http.StatusInternalServerError}
	handler := newPhotoHandler(t, backends)

	rec := httptest.NewRecorder()
	handler.SubmitPhoto(rec, httptest.NewRequest(http.MethodPost, "/api/photo/submit", submitBody(t, nil)))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if len(backends.uploads) != 1 {
		t.Fatalf("expected the upload to have happened, got %d", len(backends.uploads))
	}
	if len(backends.deletes) != 1 {
		t.Fatalf("expected the uploaded object to be removed after the email failure, got %v", backends.deletes)
	}
	if !strings.HasPrefix(backends.deletes[0], "submissions/") {
		t.Errorf("removed wrong object: %s", backends.deletes[0])
	}
}
