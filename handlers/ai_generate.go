package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/playlistx/photoboothbackend/media"
	"github.com/playlistx/photoboothbackend/quiz"
	"github.com/playlistx/photoboothbackend/services/aigen"
	"github.com/playlistx/photoboothbackend/services/bucket"
)

// AIGenerateHandler proxies themed portrait generation. The kiosk never
// holds the generation API token; it posts the raw photo here and gets the
// finished portrait back as a data URI.
type AIGenerateHandler struct {
	Generator *aigen.Client
	Bucket    *bucket.Client
	// Templates and Prompts map a racing theme tag to its reference image
	// URL and generation prompt.
	Templates map[string]string
	Prompts   map[string]string
}

type generateRequest struct {
	Theme string `json:"theme"`
	Photo string `json:"photo"` // data URI
}

type generateResponse struct {
	Image string `json:"image"` // data URI
}

func (h *AIGenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}
	if !quiz.IsValidTheme(req.Theme) {
		WriteAPIError(w, http.StatusBadRequest, "invalid_theme", "Unknown theme")
		return
	}
	templateURL, ok := h.Templates[req.Theme]
	if !ok || templateURL == "" {
		WriteAPIError(w, http.StatusServiceUnavailable, "theme_unconfigured", "No template configured for theme")
		return
	}
	prompt, ok := h.Prompts[req.Theme]
	if !ok || prompt == "" {
		WriteAPIError(w, http.StatusServiceUnavailable, "theme_unconfigured", "No prompt configured for theme")
		return
	}

	mime, data, err := media.DecodeDataURI(req.Photo)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_photo", err.Error())
		return
	}

	// the generation API fetches inputs by URL, so the photo takes a round
	// trip through the public bucket
	objectPath := fmt.Sprintf("generate/%s.png", uuid.NewString())
	userImageURL, err := h.Bucket.Upload(r.Context(), objectPath, mime, data)
	if err != nil {
		log.Printf("handlers.aigen: Source upload failed: %v", err)
		WriteAPIError(w, http.StatusBadGateway, "upload_failed", "Failed to stage photo for generation")
		return
	}
	defer func() {
		if err := h.Bucket.Remove(context.Background(), objectPath); err != nil {
			log.Printf("handlers.aigen: Failed to remove staged photo %s: %v", objectPath, err)
		}
	}()

	outputURL, err := h.Generator.Generate(r.Context(), prompt, userImageURL, templateURL)
	if err != nil {
		log.Printf("handlers.aigen: Generation failed for theme '%s': %v", req.Theme, err)
		WriteAPIError(w, http.StatusBadGateway, "generation_failed", "Image generation failed")
		return
	}

	imageDataURI, err := h.Generator.DownloadAsDataURI(r.Context(), outputURL)
	if err != nil {
		log.Printf("handlers.aigen: Download of generated image failed: %v", err)
		WriteAPIError(w, http.StatusBadGateway, "generation_failed", "Failed to fetch generated image")
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{Image: imageDataURI})
}
