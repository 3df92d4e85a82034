package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// PhotoResult is one completed photobooth session as stored in the
// 'photo_results' table. Structured sub-objects (theme/quiz result, user
// info) are kept as JSON text columns, matching the on-disk format the kiosk
// has always used.
type PhotoResult struct {
	ID            string `gorm:"primaryKey" json:"id"`
	PhotoPath     string `gorm:"index;not null" json:"photo_path"`
	SelectedTheme string `gorm:"not null;default:''" json:"selected_theme"`
	UserInfo      string `gorm:"not null;default:'{}'" json:"user_info"`
	CreatedAt     string `gorm:"index;not null" json:"created_at"` // ISO-8601
	UpdatedAt     string `gorm:"not null" json:"updated_at"`       // ISO-8601
}

// TableName explicitly sets the table name for GORM.
func (PhotoResult) TableName() string {
	return "photo_results"
}

// UserInfo is the contact info captured on the form screen.
type UserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ThemeSelection records either a directly chosen racing theme or a
// quiz-computed archetype. Exactly one of the two fields is set.
type ThemeSelection struct {
	Theme     string `json:"theme,omitempty"`
	Archetype string `json:"archetype,omitempty"`
}

// Tag returns whichever tag is set, preferring the direct theme.
func (t ThemeSelection) Tag() string {
	if t.Theme != "" {
		return t.Theme
	}
	return t.Archetype
}

// PhotoResultDocument is the structured view of a PhotoResult row used by
// everything above the repository.
type PhotoResultDocument struct {
	ID            string         `json:"id"`
	PhotoPath     string         `json:"photoPath"`
	SelectedTheme ThemeSelection `json:"selectedTheme"`
	UserInfo      UserInfo       `json:"userInfo"`
	CreatedAt     string         `json:"createdAt"`
	UpdatedAt     string         `json:"updatedAt"`
}

// Timestamp is the canonical ISO-8601 form used in created_at/updated_at.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ToRow serializes the structured document into a storable row.
func (d PhotoResultDocument) ToRow() (PhotoResult, error) {
	themeJSON, err := json.Marshal(d.SelectedTheme)
	if err != nil {
		return PhotoResult{}, fmt.Errorf("failed to marshal selected theme: %w", err)
	}
	userJSON, err := json.Marshal(d.UserInfo)
	if err != nil {
		return PhotoResult{}, fmt.Errorf("failed to marshal user info: %w", err)
	}
	return PhotoResult{
		ID:            d.ID,
		PhotoPath:     d.PhotoPath,
		SelectedTheme: string(themeJSON),
		UserInfo:      string(userJSON),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}

// FromRow parses a stored row back into the structured document. Rows written
// by older schema versions may hold empty theme/user columns; those decode to
// zero values rather than failing.
func FromRow(row PhotoResult) (PhotoResultDocument, error) {
	doc := PhotoResultDocument{
		ID:        row.ID,
		PhotoPath: row.PhotoPath,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.SelectedTheme != "" {
		if err := json.Unmarshal([]byte(row.SelectedTheme), &doc.SelectedTheme); err != nil {
			return PhotoResultDocument{}, fmt.Errorf("failed to unmarshal selected theme for %s: %w", row.ID, err)
		}
	}
	if row.UserInfo != "" {
		if err := json.Unmarshal([]byte(row.UserInfo), &doc.UserInfo); err != nil {
			return PhotoResultDocument{}, fmt.Errorf("failed to unmarshal user info for %s: %w", row.ID, err)
		}
	}
	return doc, nil
}
