package handlers

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/playlistx/photoboothbackend/database"
	"github.com/playlistx/photoboothbackend/models"
	"github.com/playlistx/photoboothbackend/repository"
)

func newResultsHandler(t *testing.T) (*ResultsHandler, *repository.GormPhotoResultRepository) {
	t.Helper()
	db, err := database.InitGormDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("InitGormDB failed: %v", err)
	}
	if err := database.MigrateSchema(db); err != nil {
		t.Fatalf("MigrateSchema failed: %v", err)
	}
	repo := repository.NewPhotoResultRepository(db)
	return &ResultsHandler{Results: repo}, repo
}

func TestExportCSVColumnsAndQuoting(t *testing.T) {
	handler, repo := newResultsHandler(t)

	doc := models.PhotoResultDocument{
		ID:            "s1",
		PhotoPath:     "/photos/s1.png",
		SelectedTheme: models.ThemeSelection{Theme: "f1"},
		UserInfo: models.UserInfo{
			Name:  `O'Neill, "Speedy"`,
			Email: "speedy@example.com",
			Phone: "+628123456789",
		},
		CreatedAt: models.Timestamp(time.Now()),
		UpdatedAt: models.Timestamp(time.Now()),
	}
	if err := repo.Save(doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ExportCSV(rec, httptest.NewRequest(http.MethodGet, "/api/admin/results/export", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "photobooth-data-") {
		t.Errorf("Content-Disposition = %q, want photobooth-data prefix", cd)
	}

	records, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("output is not parseable CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}

	wantHeader := []string{"ID", "Name", "Email", "Phone", "Theme", "Photo Path", "Created At", "Updated At"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Errorf("header column %d = %q, want %q", i, records[0][i], col)
		}
	}

	row := records[1]
	if row[1] != doc.UserInfo.Name {
		t.Errorf("name column = %q, want the raw name with comma and quotes intact", row[1])
	}
	if row[4] != "f1" {
		t.Errorf("theme column = %q, want f1", row[4])
	}
}

func TestExportCSVOrdersNewestFirst(t *testing.T) {
	handler, repo := newResultsHandler(t)

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"first", "second"} {
		doc := models.PhotoResultDocument{
			ID:        id,
			PhotoPath: "/photos/" + id + ".png",
			CreatedAt: models.Timestamp(base.Add(time.Duration(i) * time.Minute)),
			UpdatedAt: models.Timestamp(base.Add(time.Duration(i) * time.Minute)),
		}
		if err := repo.Save(doc); err != nil {
			t.Fatalf("Save(%s) failed: %v", id, err)
		}
	}

	rec := httptest.NewRecorder()
	handler.ExportCSV(rec, httptest.NewRequest(http.MethodGet, "/api/admin/results/export", nil))

	records, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("output is not parseable CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[1][0] != "second" || records[2][0] != "first" {
		t.Errorf("rows out of order: %s then %s", records[1][0], records[2][0])
	}
}

func TestListReturnsDocuments(t *testing.T) {
	handler, repo := newResultsHandler(t)
	if err := repo.Save(models.PhotoResultDocument{ID: "s1", PhotoPath: "/p.png"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest(http.MethodGet, "/api/admin/results", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"s1"`) {
		t.Errorf("response missing saved record: %s", rec.Body.String())
	}
}
