package models

// Submission is one web-route photo submission (upload + email) as stored in
// the 'submissions' table.
type Submission struct {
	ID        string `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	Email     string `gorm:"index;not null" json:"email"`
	Phone     string `gorm:"not null" json:"phone"`
	PhotoPath string `gorm:"not null" json:"photo_path"` // bucket object path
	Theme     string `gorm:"" json:"theme"`
	CreatedAt string `gorm:"index;not null" json:"created_at"` // ISO-8601
}

// TableName explicitly sets the table name for GORM.
func (Submission) TableName() string {
	return "submissions"
}
