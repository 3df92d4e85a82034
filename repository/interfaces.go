package repository

import (
	"github.com/playlistx/photoboothbackend/models"
)

// PhotoResultRepository defines persistence for completed sessions.
type PhotoResultRepository interface {
	Save(doc models.PhotoResultDocument) error
	GetAll() ([]models.PhotoResultDocument, error)
	GetByID(id string) (*models.PhotoResultDocument, error)
}

// SubmissionRepository defines persistence for web photo submissions.
type SubmissionRepository interface {
	Create(sub *models.Submission) error
	GetByID(id string) (*models.Submission, error)
}
