package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"careerhub_backend/internal/auth"
	"careerhub_backend/internal/models"
	"careerhub_backend/internal/repositories"
	"careerhub_backend/internal/services/dto"

	"careerhub_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type PostingService struct {
	postingRepo       repositories.PostingRepository
	strictTransitions bool
}

func NewPostingService(postingRepo repositories.PostingRepository, strictTransitions bool) *PostingService {
	return &PostingService{
		postingRepo:       postingRepo,
		strictTransitions: strictTransitions,
	}
}

// Posting Operations

func (s *PostingService) Create(ctx context.Context, principal auth.Principal, req *dto.CreatePostingRequest) (*dto.PostingResponse, error) {
	if principal.Role != models.UserRoleRecruiter && !principal.IsAdmin() {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if err := validateVariantFields(req.Kind, req.Location, req.JobType, req.SalaryMin, req.SalaryMax, req.Stipend); err != nil {
		return nil, err
	}

	status := req.Kind.DefaultStatus()
	if req.Status != nil && req.Kind == models.PostingKindJob {
		// Вакансия может быть создана сразу как draft/active/closed.
		if !req.Kind.ValidStatus(*req.Status) {
			return nil, apperrors.ErrInvalidStatus("posting",
				fmt.Sprintf("status %q is not valid for a %s posting", *req.Status, req.Kind))
		}
		status = *req.Status
	}
	// Стажировка всегда стартует в pending и проходит админ-ревью;
	// статус из запроса игнорируется.

	requirementsJSON, err := json.Marshal(emptyIfNil(req.Requirements))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal requirements: %w", err)
	}
	benefitsJSON, err := json.Marshal(emptyIfNil(req.Benefits))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal benefits: %w", err)
	}
	skillsJSON, err := json.Marshal(emptyIfNil(req.Skills))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}

	posting := &models.Posting{
		Kind:            req.Kind,
		Title:           req.Title,
		Company:         req.Company,
		Location:        req.Location,
		Description:     req.Description,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		Stipend:         req.Stipend,
		JobType:         req.JobType,
		ExperienceLevel: req.ExperienceLevel,
		Duration:        req.Duration,
		Requirements:    datatypes.JSON(requirementsJSON),
		Benefits:        datatypes.JSON(benefitsJSON),
		Skills:          datatypes.JSON(skillsJSON),
		RemoteOption:    req.RemoteOption,
		PostedBy:        principal.Email,
		Status:          status,
		CompanyLogo:     req.CompanyLogo,
	}

	if err := s.postingRepo.Create(ctx, posting); err != nil {
		return nil, err
	}
	return buildPostingResponse(posting), nil
}

func (s *PostingService) Get(ctx context.Context, postingID string) (*dto.PostingResponse, error) {
	posting, err := s.findPosting(ctx, postingID)
	if err != nil {
		return nil, err
	}
	return buildPostingResponse(posting), nil
}

func (s *PostingService) Update(ctx context.Context, principal auth.Principal, postingID string, req *dto.UpdatePostingRequest) (*dto.PostingResponse, error) {
	posting, err := s.findPosting(ctx, postingID)
	if err != nil {
		return nil, err
	}

	if posting.PostedBy != principal.Email && !principal.IsAdmin() {
		return nil, apperrors.ErrNotPostingOwner
	}

	if req.Title != nil {
		posting.Title = *req.Title
	}
	if req.Company != nil {
		posting.Company = *req.Company
	}
	if req.Location != nil {
		posting.Location = req.Location
	}
	if req.Description != nil {
		posting.Description = *req.Description
	}
	if req.SalaryMin != nil {
		posting.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		posting.SalaryMax = req.SalaryMax
	}
	if req.Stipend != nil {
		posting.Stipend = req.Stipend
	}
	if req.JobType != nil {
		posting.JobType = req.JobType
	}
	if req.ExperienceLevel != nil {
		posting.ExperienceLevel = req.ExperienceLevel
	}
	if req.Duration != nil {
		posting.Duration = req.Duration
	}
	if req.RemoteOption != nil {
		posting.RemoteOption = *req.RemoteOption
	}
	if req.CompanyLogo != nil {
		posting.CompanyLogo = req.CompanyLogo
	}
	if req.Requirements != nil {
		b, err := json.Marshal(req.Requirements)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal requirements: %w", err)
		}
		posting.Requirements = datatypes.JSON(b)
	}
	if req.Benefits != nil {
		b, err := json.Marshal(req.Benefits)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal benefits: %w", err)
		}
		posting.Benefits = datatypes.JSON(b)
	}
	if req.Skills != nil {
		b, err := json.Marshal(req.Skills)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal skills: %w", err)
		}
		posting.Skills = datatypes.JSON(b)
	}

	// Патч применяется целиком или не применяется вовсе: сначала полная
	// ревалидация варианта, потом одна запись.
	if err := validateVariantFields(posting.Kind, posting.Location, posting.JobType, posting.SalaryMin, posting.SalaryMax, posting.Stipend); err != nil {
		return nil, err
	}

	if err := s.postingRepo.Update(ctx, posting); err != nil {
		return nil, s.mapRepoError(err)
	}
	return buildPostingResponse(posting), nil
}

// UpdateStatus применяет переход статуса. Для вакансий статус меняет
// владелец (или админ); статус стажировки меняет только администратор -
// это и есть ревью pending -> approved/rejected.
func (s *PostingService) UpdateStatus(ctx context.Context, principal auth.Principal, postingID string, target models.PostingStatus) (*dto.PostingResponse, error) {
	posting, err := s.findPosting(ctx, postingID)
	if err != nil {
		return nil, err
	}

	switch posting.Kind {
	case models.PostingKindInternship:
		if !principal.IsAdmin() {
			return nil, apperrors.ErrInternshipReviewOnly
		}
	default:
		if posting.PostedBy != principal.Email && !principal.IsAdmin() {
			return nil, apperrors.ErrNotPostingOwner
		}
	}

	if !posting.Kind.ValidStatus(target) {
		return nil, apperrors.ErrInvalidStatus("posting",
			fmt.Sprintf("status %q is not valid for a %s posting", target, posting.Kind))
	}

	if s.strictTransitions && !models.AllowedPostingTransition(posting.Kind, posting.Status, target) {
		return nil, apperrors.ErrInvalidOperation("posting",
			fmt.Sprintf("transition %s -> %s is not allowed", posting.Status, target))
	}

	posting.Status = target
	if err := s.postingRepo.Update(ctx, posting); err != nil {
		return nil, s.mapRepoError(err)
	}
	return buildPostingResponse(posting), nil
}

// Delete удаляет публикацию вместе с ее откликами (каскад на уровне БД).
func (s *PostingService) Delete(ctx context.Context, principal auth.Principal, postingID string) error {
	posting, err := s.findPosting(ctx, postingID)
	if err != nil {
		return err
	}

	if posting.PostedBy != principal.Email && !principal.IsAdmin() {
		return apperrors.ErrNotPostingOwner
	}

	if err := s.postingRepo.Delete(ctx, postingID); err != nil {
		return s.mapRepoError(err)
	}
	return nil
}

func (s *PostingService) List(ctx context.Context, req dto.ListPostingsRequest) ([]dto.PostingResponse, error) {
	filter := repositories.PostingFilter{
		Kind:     models.PostingKind(req.Kind),
		JobType:  req.JobType,
		Location: req.Location,
		Status:   models.PostingStatus(req.Status),
		PostedBy: req.PostedBy,
	}

	postings, err := s.postingRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return buildPostingResponses(postings), nil
}

// ListInternships - legacy read-only листинг стажировок, сохранен для
// обратной совместимости со старым фронтендом.
func (s *PostingService) ListInternships(ctx context.Context) ([]dto.PostingResponse, error) {
	postings, err := s.postingRepo.List(ctx, repositories.PostingFilter{
		Kind: models.PostingKindInternship,
	})
	if err != nil {
		return nil, err
	}
	return buildPostingResponses(postings), nil
}

// --- helpers ---

func (s *PostingService) findPosting(ctx context.Context, id string) (*models.Posting, error) {
	posting, err := s.postingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err)
	}
	return posting, nil
}

func (s *PostingService) mapRepoError(err error) error {
	if errors.Is(err, repositories.ErrPostingNotFound) {
		return apperrors.ErrPostingNotFound
	}
	return err
}

// validateVariantFields проверяет вариантные инварианты: у вакансии
// обязательны город и тип занятости, зарплатная вилка согласована; у
// стажировки вместо вилки - стипендия.
func validateVariantFields(kind models.PostingKind, location, jobType *string, salaryMin, salaryMax *float64, stipend *string) error {
	if !kind.Valid() {
		return apperrors.ValidationError(map[string]string{"kind": "must be one of: job, internship"})
	}

	if location != nil && !models.ValidCity(*location) {
		return apperrors.ValidationError(map[string]string{"location": "must be one of the supported cities"})
	}

	switch kind {
	case models.PostingKindJob:
		fields := map[string]string{}
		if location == nil {
			fields["location"] = "This field is required"
		}
		if jobType == nil {
			fields["job_type"] = "This field is required"
		} else if !models.ValidJobType(*jobType) {
			fields["job_type"] = "Must be one of: " + joinList(models.JobTypes)
		}
		if stipend != nil {
			fields["stipend"] = "Not applicable to a job posting, use the salary range"
		}
		if salaryMin != nil && salaryMax != nil && *salaryMax < *salaryMin {
			fields["salary_max"] = "Cannot be less than salary_min"
		}
		if len(fields) > 0 {
			return apperrors.ValidationError(fields)
		}
	case models.PostingKindInternship:
		fields := map[string]string{}
		if salaryMin != nil || salaryMax != nil {
			fields["salary_min"] = "Not applicable to an internship, use the stipend"
		}
		if jobType != nil {
			fields["job_type"] = "Not applicable to an internship"
		}
		if len(fields) > 0 {
			return apperrors.ValidationError(fields)
		}
	}
	return nil
}

func joinList(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ", "
		}
		out += item
	}
	return out
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func buildPostingResponse(p *models.Posting) *dto.PostingResponse {
	return &dto.PostingResponse{
		ID:              p.ID,
		Kind:            p.Kind,
		Title:           p.Title,
		Company:         p.Company,
		Location:        p.Location,
		Description:     p.Description,
		SalaryMin:       p.SalaryMin,
		SalaryMax:       p.SalaryMax,
		Stipend:         p.Stipend,
		JobType:         p.JobType,
		ExperienceLevel: p.ExperienceLevel,
		Duration:        p.Duration,
		Requirements:    unmarshalStrings(p.Requirements),
		Benefits:        unmarshalStrings(p.Benefits),
		Skills:          unmarshalStrings(p.Skills),
		RemoteOption:    p.RemoteOption,
		PostedBy:        p.PostedBy,
		Status:          p.Status,
		CompanyLogo:     p.CompanyLogo,
		PostedAt:        p.PostedAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func buildPostingResponses(postings []models.Posting) []dto.PostingResponse {
	out := make([]dto.PostingResponse, 0, len(postings))
	for i := range postings {
		out = append(out, *buildPostingResponse(&postings[i]))
	}
	return out
}

func unmarshalStrings(raw datatypes.JSON) []string {
	items := []string{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &items)
	}
	return items
}
