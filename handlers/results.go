package handlers

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/playlistx/photoboothbackend/realtime"
	"github.com/playlistx/photoboothbackend/repository"
)

// ResultsHandler serves the operator data view: session listings, CSV
// export, and remote kiosk navigation.
type ResultsHandler struct {
	Results repository.PhotoResultRepository
	Hub     *realtime.Hub
}

// List returns every session record, newest first.
func (h *ResultsHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.Results.GetAll()
	if err != nil {
		log.Printf("handlers.results: Failed to list results: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "db_error", "Failed to list results")
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

var exportHeader = []string{"ID", "Name", "Email", "Phone", "Theme", "Photo Path", "Created At", "Updated At"}

// ExportCSV streams all session records as a CSV download. Field quoting is
// left to encoding/csv so names containing commas or quotes survive intact.
func (h *ResultsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	docs, err := h.Results.GetAll()
	if err != nil {
		log.Printf("handlers.results: Failed to export results: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "db_error", "Failed to export results")
		return
	}

	fileName := fmt.Sprintf("photobooth-data-%s.csv", time.Now().Format("20060102-150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		log.Printf("handlers.results: CSV write failed: %v", err)
		return
	}
	for _, doc := range docs {
		row := []string{
			doc.ID,
			doc.UserInfo.Name,
			doc.UserInfo.Email,
			doc.UserInfo.Phone,
			doc.SelectedTheme.Tag(),
			doc.PhotoPath,
			doc.CreatedAt,
			doc.UpdatedAt,
		}
		if err := writer.Write(row); err != nil {
			log.Printf("handlers.results: CSV write failed: %v", err)
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Printf("handlers.results: CSV flush failed: %v", err)
	}
}

// NavigateData sends connected kiosk screens to the data view.
func (h *ResultsHandler) NavigateData(w http.ResponseWriter, r *http.Request) {
	h.Hub.NavigateData()
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// NavigateHome sends connected kiosk screens back to the attract screen.
func (h *ResultsHandler) NavigateHome(w http.ResponseWriter, r *http.Request) {
	h.Hub.NavigateHome()
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
