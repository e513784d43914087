package models

import "time"

// Application - отклик кандидата на публикацию. Пара (PostingID,
// ApplicantEmail) уникальна: дубликаты отсекает составной индекс на
// уровне БД, а не проверка перед вставкой.
type Application struct {
	ID             string `gorm:"primaryKey"`
	PostingID      string `gorm:"uniqueIndex:idx_applications_posting_email,priority:1;index:idx_applications_posting_status,priority:1"`
	ApplicantEmail string `gorm:"uniqueIndex:idx_applications_posting_email,priority:2;index:idx_applications_email_status,priority:1"`
	ApplicantName  string
	ResumeURL      *string
	CoverLetter    *string
	Phone          *string
	Experience     *string
	Status         ApplicationStatus `gorm:"index:idx_applications_posting_status,priority:2;index:idx_applications_email_status,priority:2"`

	// Snapshot полей публикации на момент отклика. Последующие правки
	// компании в Posting никогда не переписывают эти значения.
	CompanyName string
	CompanyLogo *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
