package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/playlistx/photoboothbackend/media"
	"github.com/playlistx/photoboothbackend/models"
	"github.com/playlistx/photoboothbackend/quiz"
	"github.com/playlistx/photoboothbackend/repository"
	"github.com/playlistx/photoboothbackend/services/bucket"
	"github.com/playlistx/photoboothbackend/services/mailer"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Indonesian mobile numbers: +62, 62, or leading-0 forms.
	phonePattern = regexp.MustCompile(`^(\+62|62|0)[0-9-]{9,15}$`)
)

// sanitizeName strips angle brackets so names are inert in emailed HTML.
func sanitizeName(name string) string {
	return strings.TrimSpace(strings.NewReplacer("<", "", ">", "").Replace(name))
}

// standardizePhone normalizes a validated Indonesian number to +62 form.
func standardizePhone(phone string) string {
	phone = strings.ReplaceAll(phone, "-", "")
	switch {
	case strings.HasPrefix(phone, "+62"):
		return phone
	case strings.HasPrefix(phone, "62"):
		return "+" + phone
	case strings.HasPrefix(phone, "0"):
		return "+62" + phone[1:]
	}
	return phone
}

// PhotoHandler serves the public web submission flow: a visitor uploads
// their photo with contact details and receives it by email.
type PhotoHandler struct {
	Bucket      *bucket.Client
	Mailer      *mailer.Client
	Submissions repository.SubmissionRepository
}

type submitPhotoRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Theme string `json:"theme"`
	Photo string `json:"photo"` // data URI
}

type submitPhotoResponse struct {
	ID       string `json:"id"`
	PhotoURL string `json:"photoUrl"`
}

// SubmitPhoto validates the submission, uploads the photo to the public
// bucket, records it, and emails the visitor their photo link. A failed
// email removes the uploaded object again so the bucket never accumulates
// photos nobody can reach.
func (h *PhotoHandler) SubmitPhoto(w http.ResponseWriter, r *http.Request) {
	var req submitPhotoRequest
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
	if req.Theme != "" && !quiz.IsValidTheme(req.Theme) && !quiz.IsValidArchetype(req.Theme) {
		WriteAPIError(w, http.StatusBadRequest, "invalid_theme", "Unknown theme")
		return
	}

	mime, data, err := media.DecodeDataURI(req.Photo)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_photo", err.Error())
		return
	}

	id := uuid.NewString()
	objectPath := fmt.Sprintf("submissions/%s.png", id)

	photoURL, err := h.Bucket.Upload(r.Context(), objectPath, mime, data)
	if err != nil {
		log.Printf("handlers.photo: Upload failed for submission %s: %v", id, err)
		WriteAPIError(w, http.StatusBadGateway, "upload_failed", "Failed to store photo")
		return
	}

	submission := &models.Submission{
		ID:        id,
		Name:      name,
		Email:     req.Email,
		Phone:     standardizePhone(req.Phone),
		PhotoPath: objectPath,
		Theme:     req.Theme,
	}
	if err := h.Submissions.Create(submission); err != nil {
		log.Printf("handlers.photo: Failed to record submission %s: %v", id, err)
		h.cleanupUpload(objectPath)
		WriteAPIError(w, http.StatusInternalServerError, "db_error", "Failed to record submission")
		return
	}

	subject := "Your PlaylistX Photobooth photo is ready"
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>Thanks for visiting the booth! Your photo is ready:</p><p><a href="%s">Download your photo</a></p>`,
		name, photoURL,
	)
	if err := h.Mailer.Send(r.Context(), req.Email, subject, html); err != nil {
		log.Printf("handlers.photo: Email failed for submission %s: %v", id, err)
		h.cleanupUpload(objectPath)
		WriteAPIError(w, http.StatusBadGateway, "email_failed", "Failed to send photo email")
		return
	}

	writeJSON(w, http.StatusCreated, submitPhotoResponse{ID: id, PhotoURL: photoURL})
}

// cleanupUpload is the compensation step for a failed submission. Best
// effort; a leaked object only logs.
func (h *PhotoHandler) cleanupUpload(objectPath string) {
	if err := h.Bucket.Remove(context.Background(), objectPath); err != nil {
		log.Printf("handlers.photo: Failed to clean up bucket object %s: %v", objectPath, err)
	}
}
