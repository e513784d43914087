package models

import (
	"time"

	"gorm.io/datatypes"
)

// Posting объединяет два варианта публикации (job / internship) в одну
// таблицу с дискриминатором Kind. Enum-набор статуса и форма оплаты
// (salary range / stipend) зависят от варианта.
type Posting struct {
	ID              string      `gorm:"primaryKey"`
	Kind            PostingKind `gorm:"index:idx_postings_kind_type_loc_status,priority:1"`
	Title           string
	Company         string
	Location        *string  `gorm:"index:idx_postings_kind_type_loc_status,priority:3"`
	Description     string
	SalaryMin       *float64 // job
	SalaryMax       *float64 // job
	Stipend         *string  // internship
	JobType         *string  `gorm:"index:idx_postings_kind_type_loc_status,priority:2"`
	ExperienceLevel *string
	Duration        *string
	Requirements    datatypes.JSON `gorm:"type:jsonb"`
	Benefits        datatypes.JSON `gorm:"type:jsonb"`
	Skills          datatypes.JSON `gorm:"type:jsonb"`
	RemoteOption    bool
	PostedBy        string        `gorm:"index:idx_postings_posted_by"`
	Status          PostingStatus `gorm:"index:idx_postings_kind_type_loc_status,priority:4;index:idx_postings_status_posted_at,priority:1"`
	CompanyLogo     *string
	PostedAt        time.Time `gorm:"index:idx_postings_status_posted_at,priority:2,sort:desc"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Applications []Application `gorm:"foreignKey:PostingID;constraint:OnDelete:CASCADE"`
}
