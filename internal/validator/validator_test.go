package validator

import (
	"testing"

	"careerhub_backend/internal/models"
	"careerhub_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestValidate_CreatePostingRequest(t *testing.T) {
	t.Parallel()
	v := New()

	req := &dto.CreatePostingRequest{
		Kind:        models.PostingKindJob,
		Title:       "Backend Developer",
		Company:     "Acme",
		Location:    strPtr("Delhi"),
		Description: "Go services",
		JobType:     strPtr("Full-time"),
	}
	assert.NoError(t, v.Validate(req))
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	t.Parallel()
	v := New()

	// Пустой запрос: required-поля должны прийти под json-именами
	err := v.Validate(&dto.CreatePostingRequest{})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T", err)
	assert.Contains(t, vErr.Errors, "kind")
	assert.Contains(t, vErr.Errors, "title")
	assert.Contains(t, vErr.Errors, "company")
	assert.Contains(t, vErr.Errors, "description")
	assert.Equal(t, "This field is required", vErr.Errors["title"])
}

func TestValidate_CustomEnumTags(t *testing.T) {
	t.Parallel()
	v := New()

	req := &dto.CreatePostingRequest{
		Kind:        models.PostingKind("freelance"),
		Title:       "Backend Developer",
		Company:     "Acme",
		Location:    strPtr("Atlantis"),
		Description: "Go services",
		JobType:     strPtr("full-time"),
	}
	err := v.Validate(req)
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "Must be one of: job, internship", vErr.Errors["kind"])
	assert.Equal(t, "Must be one of the supported cities", vErr.Errors["location"])
	assert.Equal(t, "Must be a valid job type", vErr.Errors["job_type"])
}

func TestValidate_OmitemptySkipsNilPointers(t *testing.T) {
	t.Parallel()
	v := New()

	// Вариантные поля необязательны на уровне DTO; их согласованность
	// проверяет сервис.
	req := &dto.CreatePostingRequest{
		Kind:        models.PostingKindInternship,
		Title:       "QA Intern",
		Company:     "Acme",
		Description: "Manual testing",
	}
	assert.NoError(t, v.Validate(req))
}

func TestValidate_ApplicationRequests(t *testing.T) {
	t.Parallel()
	v := New()

	err := v.Validate(&dto.CreateApplicationRequest{
		PostingID:     "p-1",
		ApplicantName: "Dev",
		ResumeURL:     strPtr("not a url"),
	})
	require.Error(t, err)
	vErr := err.(*ValidationError)
	assert.Equal(t, "Must be a valid URL", vErr.Errors["resume_url"])

	err = v.Validate(&dto.UpdateApplicationStatusRequest{Status: "archived"})
	require.Error(t, err)
	vErr = err.(*ValidationError)
	assert.Equal(t, "Must be a valid application status", vErr.Errors["status"])

	assert.NoError(t, v.Validate(&dto.UpdateApplicationStatusRequest{Status: models.ApplicationStatusHired}))
}
