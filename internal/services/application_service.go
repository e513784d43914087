package services

import (
	"context"
	"errors"
	"fmt"

	"careerhub_backend/internal/auth"
	"careerhub_backend/internal/logger"
	"careerhub_backend/internal/models"
	"careerhub_backend/internal/repositories"
	"careerhub_backend/internal/services/dto"

	"careerhub_backend/pkg/apperrors"
)

type ApplicationService struct {
	applicationRepo   repositories.ApplicationRepository
	postingRepo       repositories.PostingRepository
	strictTransitions bool
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	postingRepo repositories.PostingRepository,
	strictTransitions bool,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo:   applicationRepo,
		postingRepo:       postingRepo,
		strictTransitions: strictTransitions,
	}
}

// Create подает отклик от имени principal. Порядок фиксированный:
// сначала резолвим публикацию (fail fast на NotFound) и снимаем snapshot
// company_name/company_logo, затем одна вставка под составным уникальным
// индексом. Конкурентные дубликаты разруливает индекс, а не предпроверка.
func (s *ApplicationService) Create(ctx context.Context, principal auth.Principal, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	if principal.Role != models.UserRoleApplicant && !principal.IsAdmin() {
		return nil, apperrors.ErrInsufficientPermissions
	}

	posting, err := s.postingRepo.GetByID(ctx, req.PostingID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostingNotFound) {
			return nil, apperrors.ErrPostingNotFound
		}
		return nil, err
	}

	application := &models.Application{
		PostingID:      posting.ID,
		ApplicantEmail: principal.Email,
		ApplicantName:  req.ApplicantName,
		ResumeURL:      req.ResumeURL,
		CoverLetter:    req.CoverLetter,
		Phone:          req.Phone,
		Experience:     req.Experience,
		Status:         models.ApplicationStatusPending,
		CompanyName:    posting.Company,
		CompanyLogo:    posting.CompanyLogo,
	}

	if err := s.applicationRepo.Create(ctx, application); err != nil {
		if errors.Is(err, repositories.ErrDuplicateApplication) {
			return nil, apperrors.ErrDuplicateApplication
		}
		return nil, err
	}

	logger.CtxInfo(ctx, "application submitted",
		"application_id", application.ID,
		"posting_id", posting.ID,
	)
	return buildApplicationResponse(application), nil
}

func (s *ApplicationService) Get(ctx context.Context, principal auth.Principal, applicationID string) (*dto.ApplicationResponse, error) {
	application, err := s.findApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeRead(ctx, principal, application); err != nil {
		return nil, err
	}
	return buildApplicationResponse(application), nil
}

// UpdateStatus меняет статус отклика. Доступно автору публикации и
// администратору; поля, заполненные кандидатом, после создания не меняются.
func (s *ApplicationService) UpdateStatus(ctx context.Context, principal auth.Principal, applicationID string, target models.ApplicationStatus) (*dto.ApplicationResponse, error) {
	application, err := s.findApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeStatusChange(ctx, principal, application); err != nil {
		return nil, err
	}

	if !target.Valid() {
		return nil, apperrors.ErrInvalidStatus("application",
			fmt.Sprintf("status %q is not a valid application status", target))
	}

	if s.strictTransitions && !models.AllowedApplicationTransition(application.Status, target) {
		return nil, apperrors.ErrInvalidOperation("application",
			fmt.Sprintf("transition %s -> %s is not allowed", application.Status, target))
	}

	if err := s.applicationRepo.UpdateStatus(ctx, applicationID, target); err != nil {
		return nil, s.mapRepoError(err)
	}

	application.Status = target
	return buildApplicationResponse(application), nil
}

func (s *ApplicationService) Delete(ctx context.Context, principal auth.Principal, applicationID string) error {
	application, err := s.findApplication(ctx, applicationID)
	if err != nil {
		return err
	}

	if err := s.authorizeRead(ctx, principal, application); err != nil {
		return err
	}

	if err := s.applicationRepo.Delete(ctx, applicationID); err != nil {
		return s.mapRepoError(err)
	}
	return nil
}

// List - глобальная выборка по фильтру, админский срез.
func (s *ApplicationService) List(ctx context.Context, principal auth.Principal, req dto.ListApplicationsRequest) ([]dto.ApplicationResponse, error) {
	if !principal.IsAdmin() {
		return nil, apperrors.ErrInsufficientPermissions
	}

	applications, err := s.applicationRepo.List(ctx, repositories.ApplicationFilter{
		PostingID:      req.PostingID,
		ApplicantEmail: req.ApplicantEmail,
		Status:         models.ApplicationStatus(req.Status),
	})
	if err != nil {
		return nil, err
	}
	return buildApplicationResponses(applications), nil
}

// ListByPosting - отклики на публикацию, для ее автора или админа.
func (s *ApplicationService) ListByPosting(ctx context.Context, principal auth.Principal, postingID string) ([]dto.ApplicationResponse, error) {
	posting, err := s.postingRepo.GetByID(ctx, postingID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostingNotFound) {
			return nil, apperrors.ErrPostingNotFound
		}
		return nil, err
	}

	if posting.PostedBy != principal.Email && !principal.IsAdmin() {
		return nil, apperrors.ErrNotPostingOwner
	}

	applications, err := s.applicationRepo.List(ctx, repositories.ApplicationFilter{PostingID: postingID})
	if err != nil {
		return nil, err
	}
	return buildApplicationResponses(applications), nil
}

// ListByApplicant - отклики кандидата; смотреть чужие может только админ.
func (s *ApplicationService) ListByApplicant(ctx context.Context, principal auth.Principal, email string) ([]dto.ApplicationResponse, error) {
	if principal.Email != email && !principal.IsAdmin() {
		return nil, apperrors.ErrApplicationAccessDenied
	}

	applications, err := s.applicationRepo.List(ctx, repositories.ApplicationFilter{ApplicantEmail: email})
	if err != nil {
		return nil, err
	}
	return buildApplicationResponses(applications), nil
}

// --- helpers ---

func (s *ApplicationService) findApplication(ctx context.Context, id string) (*models.Application, error) {
	application, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err)
	}
	return application, nil
}

func (s *ApplicationService) mapRepoError(err error) error {
	if errors.Is(err, repositories.ErrApplicationNotFound) {
		return apperrors.ErrApplicationNotFound
	}
	return err
}

// authorizeRead: отклик видят сам кандидат, автор публикации и админ.
func (s *ApplicationService) authorizeRead(ctx context.Context, principal auth.Principal, application *models.Application) error {
	if principal.IsAdmin() || principal.Email == application.ApplicantEmail {
		return nil
	}
	return s.requirePostingOwner(ctx, principal, application)
}

// authorizeStatusChange: статус меняют автор публикации и админ, но не кандидат.
func (s *ApplicationService) authorizeStatusChange(ctx context.Context, principal auth.Principal, application *models.Application) error {
	if principal.IsAdmin() {
		return nil
	}
	return s.requirePostingOwner(ctx, principal, application)
}

func (s *ApplicationService) requirePostingOwner(ctx context.Context, principal auth.Principal, application *models.Application) error {
	posting, err := s.postingRepo.GetByID(ctx, application.PostingID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostingNotFound) {
			return apperrors.ErrApplicationAccessDenied
		}
		return err
	}
	if posting.PostedBy != principal.Email {
		return apperrors.ErrApplicationAccessDenied
	}
	return nil
}

func buildApplicationResponse(a *models.Application) *dto.ApplicationResponse {
	return &dto.ApplicationResponse{
		ID:             a.ID,
		PostingID:      a.PostingID,
		ApplicantEmail: a.ApplicantEmail,
		ApplicantName:  a.ApplicantName,
		ResumeURL:      a.ResumeURL,
		CoverLetter:    a.CoverLetter,
		Phone:          a.Phone,
		Experience:     a.Experience,
		Status:         a.Status,
		CompanyName:    a.CompanyName,
		CompanyLogo:    a.CompanyLogo,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func buildApplicationResponses(applications []models.Application) []dto.ApplicationResponse {
	out := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		out = append(out, *buildApplicationResponse(&applications[i]))
	}
	return out
}
