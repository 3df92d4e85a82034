package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/playlistx/photoboothbackend/models"
)

// GormSubmissionRepository handles database operations for Submission rows
type GormSubmissionRepository struct {
	DB *gorm.DB
}

// NewSubmissionRepository creates a new instance of GormSubmissionRepository
func NewSubmissionRepository(db *gorm.DB) *GormSubmissionRepository {
	return &GormSubmissionRepository{DB: db}
}

// Create persists a new submission, assigning an ID and timestamp if unset.
func (r *GormSubmissionRepository) Create(sub *models.Submission) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.CreatedAt == "" {
		sub.CreatedAt = models.Timestamp(time.Now())
	}
	if err := r.DB.Create(sub).Error; err != nil {
		return fmt.Errorf("failed to create submission for %s: %w", sub.Email, err)
	}
	return nil
}

// GetByID retrieves one submission by id.
func (r *GormSubmissionRepository) GetByID(id string) (*models.Submission, error) {
	var sub models.Submission
	err := r.DB.Where("id = ?", id).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get submission %s: %w", id, err)
	}
	return &sub, nil
}
