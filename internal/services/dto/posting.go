package dto

import (
	"time"

	"careerhub_backend/internal/models"
)

// --- Posting Requests ---

type CreatePostingRequest struct {
	Kind            models.PostingKind    `json:"kind" validate:"required,is-posting-kind"`
	Title           string                `json:"title" validate:"required,min=3,max=200"`
	Company         string                `json:"company" validate:"required,max=200"`
	Location        *string               `json:"location" validate:"omitempty,is-location"`
	Description     string                `json:"description" validate:"required,max=10000"`
	SalaryMin       *float64              `json:"salary_min" validate:"omitempty,min=0"`
	SalaryMax       *float64              `json:"salary_max" validate:"omitempty,min=0"`
	Stipend         *string               `json:"stipend" validate:"omitempty,max=100"`
	JobType         *string               `json:"job_type" validate:"omitempty,is-job-type"`
	ExperienceLevel *string               `json:"experience_level" validate:"omitempty,is-experience-level"`
	Duration        *string               `json:"duration" validate:"omitempty,max=100"`
	Requirements    []string              `json:"requirements"`
	Benefits        []string              `json:"benefits"`
	Skills          []string              `json:"skills"`
	RemoteOption    bool                  `json:"remote_option"`
	CompanyLogo     *string               `json:"company_logo" validate:"omitempty,url"`
	Status          *models.PostingStatus `json:"status"` // проверяется сервисом против enum-набора варианта
}

type UpdatePostingRequest struct {
	Title           *string  `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Company         *string  `json:"company,omitempty" validate:"omitempty,max=200"`
	Location        *string  `json:"location,omitempty" validate:"omitempty,is-location"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,max=10000"`
	SalaryMin       *float64 `json:"salary_min,omitempty" validate:"omitempty,min=0"`
	SalaryMax       *float64 `json:"salary_max,omitempty" validate:"omitempty,min=0"`
	Stipend         *string  `json:"stipend,omitempty" validate:"omitempty,max=100"`
	JobType         *string  `json:"job_type,omitempty" validate:"omitempty,is-job-type"`
	ExperienceLevel *string  `json:"experience_level,omitempty" validate:"omitempty,is-experience-level"`
	Duration        *string  `json:"duration,omitempty" validate:"omitempty,max=100"`
	Requirements    []string `json:"requirements,omitempty"`
	Benefits        []string `json:"benefits,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	RemoteOption    *bool    `json:"remote_option,omitempty"`
	CompanyLogo     *string  `json:"company_logo,omitempty" validate:"omitempty,url"`
}

type UpdatePostingStatusRequest struct {
	Status models.PostingStatus `json:"status" validate:"required"` // enum-набор зависит от варианта
}

type ListPostingsRequest struct {
	Kind     string `form:"kind" validate:"omitempty,is-posting-kind"`
	JobType  string `form:"job_type" validate:"omitempty,is-job-type"`
	Location string `form:"location" validate:"omitempty,is-location"`
	Status   string `form:"status"`
	// PostedBy заполняется хэндлером из principal, а не из query.
	PostedBy string `form:"-"`
}

// --- Posting Responses ---

type PostingResponse struct {
	ID              string               `json:"id"`
	Kind            models.PostingKind   `json:"kind"`
	Title           string               `json:"title"`
	Company         string               `json:"company"`
	Location        *string              `json:"location,omitempty"`
	Description     string               `json:"description"`
	SalaryMin       *float64             `json:"salary_min,omitempty"`
	SalaryMax       *float64             `json:"salary_max,omitempty"`
	Stipend         *string              `json:"stipend,omitempty"`
	JobType         *string              `json:"job_type,omitempty"`
	ExperienceLevel *string              `json:"experience_level,omitempty"`
	Duration        *string              `json:"duration,omitempty"`
	Requirements    []string             `json:"requirements"`
	Benefits        []string             `json:"benefits"`
	Skills          []string             `json:"skills"`
	RemoteOption    bool                 `json:"remote_option"`
	PostedBy        string               `json:"posted_by"`
	Status          models.PostingStatus `json:"status"`
	CompanyLogo     *string              `json:"company_logo,omitempty"`
	PostedAt        time.Time            `json:"posted_at"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}
