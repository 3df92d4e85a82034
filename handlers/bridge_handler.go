package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playlistx/photoboothbackend/bridge"
)

// BridgeHandler exposes the privileged bridge operations to the kiosk UI.
// These routes are bound to the loopback interface only; the kiosk screen is
// the sole client.
type BridgeHandler struct {
	Bridge *bridge.Bridge
}

type saveFileRequest struct {
	Photo    string `json:"photo"` // data URI
	FileName string `json:"fileName"`
}

// SaveFile persists a data-URI photo and returns its absolute path. A
// success response is the signal that the file is fully on disk.
func (h *BridgeHandler) SaveFile(w http.ResponseWriter, r *http.Request) {
	var req saveFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}
	if req.FileName == "" {
		WriteAPIError(w, http.StatusBadRequest, "invalid_filename", "File name is required")
		return
	}

	result := h.Bridge.SavePhotoFile(req.Photo, req.FileName)
	if !result.Success {
		writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// ListResults returns all session records, newest first.
func (h *BridgeHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	result := h.Bridge.GetAllPhotoResults()
	if !result.Success {
		writeJSON(w, http.StatusInternalServerError, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetResult returns one session record by ID.
func (h *BridgeHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	result := h.Bridge.GetPhotoResultByID(id)
	if !result.Success {
		writeJSON(w, http.StatusNotFound, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type printRequest struct {
	FilePath string `json:"filePath"`
}

// Print submits a saved photo to the printer and waits for the spooler
// handoff.
func (h *BridgeHandler) Print(w http.ResponseWriter, r *http.Request) {
	var req printRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}
	if req.FilePath == "" {
		WriteAPIError(w, http.StatusBadRequest, "invalid_filepath", "File path is required")
		return
	}

	result := h.Bridge.Print(req.FilePath)
	if !result.Success {
		writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
