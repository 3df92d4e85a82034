package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/playlistx/photoboothbackend/booth"
	"github.com/playlistx/photoboothbackend/bridge"
	"github.com/playlistx/photoboothbackend/media"
	"github.com/playlistx/photoboothbackend/models"
	"github.com/playlistx/photoboothbackend/printer"
	"github.com/playlistx/photoboothbackend/quiz"
	"github.com/playlistx/photoboothbackend/realtime"
)

// How often preview frames go out over the websocket hub.
const previewInterval = 100 * time.Millisecond

// BoothHandler drives the kiosk capture flow over HTTP: session lifecycle,
// camera control, countdown captures, retakes, and final compositing.
type BoothHandler struct {
	Sessions   *booth.SessionManager
	Camera     booth.CameraSource
	Clock      booth.Clock
	Compositor *media.Compositor
	Preview    *media.PreviewRenderer
	PhotoStore *media.PhotoStore
	Bridge     *bridge.Bridge
	Hub        *realtime.Hub

	mu            sync.Mutex
	pipeline      *booth.CapturePipeline
	previewCancel context.CancelFunc
}

func (h *BoothHandler) currentPipeline() *booth.CapturePipeline {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pipeline
}

// publishPreviewFrame pushes one rendered preview frame to connected kiosk
// screens as a PNG data URI.
func (h *BoothHandler) publishPreviewFrame(frame *image.NRGBA) {
	data, err := media.EncodePNG(frame)
	if err != nil {
		log.Printf("handlers.booth: Failed to encode preview frame: %v", err)
		return
	}
	h.Hub.PreviewFrame(media.EncodeDataURI("image/png", data))
}

type startSessionRequest struct {
	Variant string `json:"variant"`
}

// StartSession begins a new visitor session and arms a fresh capture
// pipeline sized for the variant: two photos for the quiz flow, one for the
// racing flow.
func (h *BoothHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}

	session, err := h.Sessions.Begin(booth.Variant(req.Variant))
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_variant", err.Error())
		return
	}

	h.mu.Lock()
	if h.previewCancel != nil {
		h.previewCancel()
	}
	if h.pipeline != nil {
		h.pipeline.Reset()
	}
	h.pipeline = booth.NewCapturePipeline(h.Camera, booth.PhotosPerVariant(session.Variant), h.Clock)
	pipeline := h.pipeline

	var ctx context.Context
	ctx, h.previewCancel = context.WithCancel(context.Background())
	h.mu.Unlock()

	if h.Preview != nil && h.Hub != nil {
		go pipeline.StreamPreview(ctx, h.Preview, previewInterval, h.publishPreviewFrame)
	}

	log.Printf("handlers.booth: Started %s session %s", session.Variant, session.ID)
	writeJSON(w, http.StatusCreated, map[string]string{
		"id":      session.ID,
		"variant": string(session.Variant),
	})
}

type userInfoRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// SetUserInfo validates and records the visitor's contact details.
func (h *BoothHandler) SetUserInfo(w http.ResponseWriter, r *http.Request) {
	var req userInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}

	name := sanitizeName(req.Name)
	if name == "" {
		WriteAPIError(w, http.StatusBadRequest, "invalid_name", "Name is required")
		return
	}
	if !emailPattern.MatchString(req.Email) {
		WriteAPIError(w, http.StatusBadRequest, "invalid_email", "A valid email address is required")
		return
	}
	if !phonePattern.MatchString(req.Phone) {
		WriteAPIError(w, http.StatusBadRequest, "invalid_phone", "A valid Indonesian phone number is required")
		return
	}

	if err := h.Sessions.SetUserInfo(models.UserInfo{
		Name:  name,
		Email: req.Email,
		Phone: standardizePhone(req.Phone),
	}); err != nil {
		WriteAPIError(w, http.StatusConflict, "no_session", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type selectionRequest struct {
	Archetype string `json:"archetype,omitempty"`
	Theme     string `json:"theme,omitempty"`
}

// SetSelection records the quiz outcome or the chosen racing theme.
func (h *BoothHandler) SetSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}

	var err error
	switch {
	case req.Archetype != "":
		err = h.Sessions.SetArchetype(quiz.Archetype(req.Archetype))
	case req.Theme != "":
		err = h.Sessions.SetTheme(quiz.RacingTheme(req.Theme))
	default:
		WriteAPIError(w, http.StatusBadRequest, "invalid_selection", "Either archetype or theme must be set")
		return
	}
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_selection", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// StartCamera opens the live camera stream. Safe to call repeatedly.
func (h *BoothHandler) StartCamera(w http.ResponseWriter, r *http.Request) {
	pipeline := h.currentPipeline()
	if pipeline == nil {
		WriteAPIError(w, http.StatusConflict, "no_session", "No active session")
		return
	}
	if err := pipeline.StartCamera(); err != nil {
		log.Printf("handlers.booth: Camera start failed: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "camera_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, pipeline.Status())
}

// Capture runs the countdown and takes one photo. The response returns when
// the photo is taken; the kiosk UI follows the countdown via Status or the
// preview stream.
func (h *BoothHandler) Capture(w http.ResponseWriter, r *http.Request) {
	pipeline := h.currentPipeline()
	if pipeline == nil {
		WriteAPIError(w, http.StatusConflict, "no_session", "No active session")
		return
	}

	if _, err := pipeline.Capture(); err != nil {
		switch {
		case errors.Is(err, booth.ErrCameraInactive),
			errors.Is(err, booth.ErrCaptureBusy),
			errors.Is(err, booth.ErrQuotaReached):
			WriteAPIError(w, http.StatusConflict, "capture_rejected", err.Error())
		default:
			log.Printf("handlers.booth: Capture failed: %v", err)
			WriteAPIError(w, http.StatusInternalServerError, "camera_error", err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, pipeline.Status())
}

// Retake discards the last photo and re-arms the camera.
func (h *BoothHandler) Retake(w http.ResponseWriter, r *http.Request) {
	pipeline := h.currentPipeline()
	if pipeline == nil {
		WriteAPIError(w, http.StatusConflict, "no_session", "No active session")
		return
	}
	if err := pipeline.Retake(); err != nil {
		WriteAPIError(w, http.StatusConflict, "retake_rejected", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, pipeline.Status())
}

// Advance closes the capture phase and stops the camera.
func (h *BoothHandler) Advance(w http.ResponseWriter, r *http.Request) {
	pipeline := h.currentPipeline()
	if pipeline == nil {
		WriteAPIError(w, http.StatusConflict, "no_session", "No active session")
		return
	}
	if _, err := pipeline.Advance(); err != nil {
		WriteAPIError(w, http.StatusConflict, "advance_rejected", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, pipeline.Status())
}

// Status reports the pipeline state for UI polling.
func (h *BoothHandler) Status(w http.ResponseWriter, r *http.Request) {
	pipeline := h.currentPipeline()
	if pipeline == nil {
		WriteAPIError(w, http.StatusConflict, "no_session", "No active session")
		return
	}
	writeJSON(w, http.StatusOK, pipeline.Status())
}

type compositeRequest struct {
	// BasePhoto optionally replaces the captured photo in the racing
	// variant with an AI-generated portrait (data URI).
	BasePhoto string `json:"basePhoto,omitempty"`
	Print     bool   `json:"print"`
}

type compositeResponse struct {
	ID        string          `json:"id"`
	PhotoPath string          `json:"photoPath"`
	Print     *printer.Result `json:"print,omitempty"`
}

// Composite renders the session's final photo, saves it, records the
// session, and optionally prints. Printing happens strictly after the save
// reports completion; there is no grace timer.
func (h *BoothHandler) Composite(w http.ResponseWriter, r *http.Request) {
	var req compositeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}

	session := h.Sessions.Current()
	pipeline := h.currentPipeline()
	if session == nil || pipeline == nil {
		WriteAPIError(w, http.StatusConflict, "no_session", "No active session")
		return
	}

	photos := pipeline.Photos()
	if len(photos) == 0 {
		WriteAPIError(w, http.StatusConflict, "no_photos", "No photos captured")
		return
	}

	var composite []byte
	var selection models.ThemeSelection
	var err error
	switch session.Variant {
	case booth.VariantQuiz:
		if session.Archetype == "" {
			WriteAPIError(w, http.StatusConflict, "no_selection", "Quiz result has not been recorded")
			return
		}
		selection = models.ThemeSelection{Archetype: string(session.Archetype)}
		composite, err = h.Compositor.ComposeArchetype(photos, session.Archetype)
	case booth.VariantRacing:
		if session.Theme == "" {
			WriteAPIError(w, http.StatusConflict, "no_selection", "Racing theme has not been chosen")
			return
		}
		selection = models.ThemeSelection{Theme: string(session.Theme)}
		base := photos[len(photos)-1]
		if req.BasePhoto != "" {
			_, data, decErr := media.DecodeDataURI(req.BasePhoto)
			if decErr != nil {
				WriteAPIError(w, http.StatusBadRequest, "invalid_photo", decErr.Error())
				return
			}
			base, decErr = media.DecodeUserPhoto(data)
			if decErr != nil {
				WriteAPIError(w, http.StatusBadRequest, "invalid_photo", decErr.Error())
				return
			}
		}
		composite, err = h.Compositor.ComposeTheme(base, session.Theme)
	}
	if err != nil {
		log.Printf("handlers.booth: Composite failed for session %s: %v", session.ID, err)
		WriteAPIError(w, http.StatusInternalServerError, "composite_failed", err.Error())
		return
	}

	fileName := media.PhotoFileName(session.ID, session.UserInfo.Name)
	savedPath, err := h.PhotoStore.SaveBytes(composite, fileName)
	if err != nil {
		log.Printf("handlers.booth: Failed to save composite for session %s: %v", session.ID, err)
		WriteAPIError(w, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}

	now := models.Timestamp(time.Now())
	record := h.Bridge.SavePhotoResult(models.PhotoResultDocument{
		ID:            session.ID,
		PhotoPath:     savedPath,
		SelectedTheme: selection,
		UserInfo:      session.UserInfo,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if !record.Success {
		WriteAPIError(w, http.StatusInternalServerError, "db_error", record.Error)
		return
	}

	resp := compositeResponse{ID: session.ID, PhotoPath: savedPath}
	if req.Print {
		result := h.Bridge.Print(savedPath)
		resp.Print = &result
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Reset clears the session and sends connected screens back to the attract
// screen.
func (h *BoothHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.previewCancel != nil {
		h.previewCancel()
		h.previewCancel = nil
	}
	if h.pipeline != nil {
		h.pipeline.Reset()
		h.pipeline = nil
	}
	h.mu.Unlock()

	h.Sessions.Reset()
	if h.Hub != nil {
		h.Hub.NavigateHome()
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
