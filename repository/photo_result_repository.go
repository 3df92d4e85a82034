package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/playlistx/photoboothbackend/models"
)

// GormPhotoResultRepository handles database operations for PhotoResult rows
type GormPhotoResultRepository struct {
	DB *gorm.DB
}

// NewPhotoResultRepository creates a new instance of GormPhotoResultRepository
func NewPhotoResultRepository(db *gorm.DB) *GormPhotoResultRepository {
	return &GormPhotoResultRepository{DB: db}
}

// Save inserts or replaces the row keyed by the document's ID. Timestamps are
// filled in when the caller left them empty; a replaced row keeps its
// created_at and gets a fresh updated_at.
func (r *GormPhotoResultRepository) Save(doc models.PhotoResultDocument) error {
	if doc.ID == "" {
		return errors.New("photo result id must not be empty")
	}
	now := models.Timestamp(time.Now())
	if doc.CreatedAt == "" {
		doc.CreatedAt = now
	}
	if doc.UpdatedAt == "" {
		doc.UpdatedAt = now
	}

	row, err := doc.ToRow()
	if err != nil {
		return err
	}

	err = r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"photo_path", "selected_theme", "user_info", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save photo result %s: %w", doc.ID, err)
	}
	return nil
}

// GetAll returns every photo result, most recent first.
func (r *GormPhotoResultRepository) GetAll() ([]models.PhotoResultDocument, error) {
	var rows []models.PhotoResult
	err := r.DB.Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list photo results: %w", err)
	}

	docs := make([]models.PhotoResultDocument, 0, len(rows))
	for _, row := range rows {
		doc, err := models.FromRow(row)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// GetByID retrieves one photo result. A missing id returns
// gorm.ErrRecordNotFound, never a panic.
func (r *GormPhotoResultRepository) GetByID(id string) (*models.PhotoResultDocument, error) {
	var row models.PhotoResult
	err := r.DB.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get photo result %s: %w", id, err)
	}
	doc, err := models.FromRow(row)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
