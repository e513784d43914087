package dto

import (
	"time"

	"careerhub_backend/internal/models"
)

// --- Application Requests ---

type CreateApplicationRequest struct {
	PostingID     string  `json:"posting_id" validate:"required"`
	ApplicantName string  `json:"applicant_name" validate:"required,min=2,max=200"`
	ResumeURL     *string `json:"resume_url" validate:"omitempty,url"`
	CoverLetter   *string `json:"cover_letter" validate:"omitempty,max=10000"`
	Phone         *string `json:"phone" validate:"omitempty,max=20"`
	Experience    *string `json:"experience" validate:"omitempty,max=5000"`
}

type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" validate:"required,is-application-status"`
}

type ListApplicationsRequest struct {
	PostingID      string `form:"posting_id"`
	ApplicantEmail string `form:"applicant_email" validate:"omitempty,email"`
	Status         string `form:"status" validate:"omitempty,is-application-status"`
}

// --- Application Responses ---

type ApplicationResponse struct {
	ID             string                   `json:"id"`
	PostingID      string                   `json:"posting_id"`
	ApplicantEmail string                   `json:"applicant_email"`
	ApplicantName  string                   `json:"applicant_name"`
	ResumeURL      *string                  `json:"resume_url,omitempty"`
	CoverLetter    *string                  `json:"cover_letter,omitempty"`
	Phone          *string                  `json:"phone,omitempty"`
	Experience     *string                  `json:"experience,omitempty"`
	Status         models.ApplicationStatus `json:"status"`
	CompanyName    string                   `json:"company_name"`
	CompanyLogo    *string                  `json:"company_logo,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}
