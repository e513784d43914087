package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"careerhub_backend/internal/auth"
	"careerhub_backend/internal/config"
	"careerhub_backend/internal/handlers"
	"careerhub_backend/internal/models"
	"careerhub_backend/internal/repositories"
	"careerhub_backend/internal/routes"
	"careerhub_backend/internal/services"
	"careerhub_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory репозитории для прогона полного HTTP-стека без Postgres.

type memPostingRepo struct {
	mu       sync.Mutex
	postings map[string]models.Posting
}

func (r *memPostingRepo) Create(_ context.Context, p *models.Posting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.PostedAt, p.CreatedAt, p.UpdatedAt = now, now, now
	r.postings[p.ID] = *p
	return nil
}

func (r *memPostingRepo) GetByID(_ context.Context, id string) (*models.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.postings[id]
	if !ok {
		return nil, repositories.ErrPostingNotFound
	}
	return &p, nil
}

func (r *memPostingRepo) Update(_ context.Context, p *models.Posting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.postings[p.ID]; !ok {
		return repositories.ErrPostingNotFound
	}
	r.postings[p.ID] = *p
	return nil
}

func (r *memPostingRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.postings[id]; !ok {
		return repositories.ErrPostingNotFound
	}
	delete(r.postings, id)
	return nil
}

func (r *memPostingRepo) List(_ context.Context, f repositories.PostingFilter) ([]models.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Posting
	for _, p := range r.postings {
		if f.Kind != "" && p.Kind != f.Kind {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.PostedBy != "" && p.PostedBy != f.PostedBy {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PostedAt.After(out[j].PostedAt) })
	return out, nil
}

type memApplicationRepo struct {
	mu           sync.Mutex
	applications map[string]models.Application
}

func (r *memApplicationRepo) Create(_ context.Context, a *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.applications {
		if existing.PostingID == a.PostingID && existing.ApplicantEmail == a.ApplicantEmail {
			return repositories.ErrDuplicateApplication
		}
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now
	r.applications[a.ID] = *a
	return nil
}

func (r *memApplicationRepo) GetByID(_ context.Context, id string) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.applications[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	return &a, nil
}

func (r *memApplicationRepo) UpdateStatus(_ context.Context, id string, status models.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.applications[id]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	a.Status = status
	r.applications[id] = a
	return nil
}

func (r *memApplicationRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.applications[id]; !ok {
		return repositories.ErrApplicationNotFound
	}
	delete(r.applications, id)
	return nil
}

func (r *memApplicationRepo) List(_ context.Context, f repositories.ApplicationFilter) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Application
	for _, a := range r.applications {
		if f.PostingID != "" && a.PostingID != f.PostingID {
			continue
		}
		if f.ApplicantEmail != "" && a.ApplicantEmail != f.ApplicantEmail {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// testServer поднимает роутер с полной цепочкой middleware/handlers/services.
type testServer struct {
	router *gin.Engine
	cfg    *config.Config
}

func newTestServer() *testServer {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"

	postingRepo := &memPostingRepo{postings: map[string]models.Posting{}}
	applicationRepo := &memApplicationRepo{applications: map[string]models.Application{}}

	postingService := services.NewPostingService(postingRepo, false)
	applicationService := services.NewApplicationService(applicationRepo, postingRepo, false)

	base := handlers.NewBaseHandler(validator.New(), cfg)
	appHandlers := &handlers.AppHandlers{
		PostingHandler:     handlers.NewPostingHandler(base, postingService, applicationService),
		ApplicationHandler: handlers.NewApplicationHandler(base, applicationService),
	}

	router := gin.New()
	routes.RegisterRoutes(router, appHandlers)
	return &testServer{router: router, cfg: cfg}
}

func (ts *testServer) token(t *testing.T, email string, role models.UserRole) string {
	t.Helper()
	token, err := auth.GenerateToken(email, role, ts.cfg.JWT.Secret, time.Hour)
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func jobBody() map[string]interface{} {
	return map[string]interface{}{
		"kind":        "job",
		"title":       "Backend Developer",
		"company":     "Acme",
		"location":    "Delhi",
		"description": "Go services",
		"job_type":    "Full-time",
	}
}

func TestRoutes_PostingLifecycle(t *testing.T) {
	ts := newTestServer()
	recruiterToken := ts.token(t, "hr@acme.io", models.UserRoleRecruiter)
	applicantToken := ts.token(t, "dev@mail.com", models.UserRoleApplicant)

	// Без токена публикация закрыта
	w := ts.do(t, http.MethodPost, "/api/v1/postings", "", jobBody())
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Кандидату роль не позволяет
	w = ts.do(t, http.MethodPost, "/api/v1/postings", applicantToken, jobBody())
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Рекрутер публикует
	w = ts.do(t, http.MethodPost, "/api/v1/postings", recruiterToken, jobBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	postingID := created["id"].(string)
	assert.Equal(t, "active", created["status"])

	// Публичное чтение без токена
	w = ts.do(t, http.MethodGet, "/api/v1/postings/"+postingID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/postings?kind=job", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Backend Developer")

	// 404 с конвертом ошибки
	w = ts.do(t, http.MethodGet, "/api/v1/postings/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")

	// Смена статуса владельцем
	w = ts.do(t, http.MethodPut, "/api/v1/postings/"+postingID+"/status", recruiterToken,
		map[string]interface{}{"status": "closed"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "closed")

	// Публичный листинг вакансий по умолчанию показывает только активные
	w = ts.do(t, http.MethodGet, "/api/v1/postings?kind=job", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), postingID)

	w = ts.do(t, http.MethodGet, "/api/v1/postings?kind=job&status=closed", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), postingID)
}

func TestRoutes_PublicListingHidesInactivePostings(t *testing.T) {
	ts := newTestServer()
	recruiterToken := ts.token(t, "hr@acme.io", models.UserRoleRecruiter)

	w := ts.do(t, http.MethodPost, "/api/v1/postings", recruiterToken, jobBody())
	require.Equal(t, http.StatusCreated, w.Code)

	draft := jobBody()
	draft["title"] = "Unpublished Role"
	draft["status"] = "draft"
	w = ts.do(t, http.MethodPost, "/api/v1/postings", recruiterToken, draft)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Без явного статуса публичный листинг отдает только active,
	// в том числе и без фильтра по kind
	w = ts.do(t, http.MethodGet, "/api/v1/postings", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Backend Developer")
	assert.NotContains(t, w.Body.String(), "Unpublished Role")

	// Явный статус в query уважается
	w = ts.do(t, http.MethodGet, "/api/v1/postings?status=draft", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Unpublished Role")
}

func TestRoutes_ValidationEnvelope(t *testing.T) {
	ts := newTestServer()
	recruiterToken := ts.token(t, "hr@acme.io", models.UserRoleRecruiter)

	body := jobBody()
	body["kind"] = "freelance"
	w := ts.do(t, http.MethodPost, "/api/v1/postings", recruiterToken, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
	assert.Contains(t, w.Body.String(), "kind")
}

func TestRoutes_ApplicationFlow(t *testing.T) {
	ts := newTestServer()
	recruiterToken := ts.token(t, "hr@acme.io", models.UserRoleRecruiter)
	applicantToken := ts.token(t, "dev@mail.com", models.UserRoleApplicant)

	w := ts.do(t, http.MethodPost, "/api/v1/postings", recruiterToken, jobBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var posting map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posting))
	postingID := posting["id"].(string)

	apply := map[string]interface{}{
		"posting_id":     postingID,
		"applicant_name": "Dev Applicant",
	}

	// Отклик подает кандидат
	w = ts.do(t, http.MethodPost, "/api/v1/applications", recruiterToken, apply)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/applications", applicantToken, apply)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var application map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &application))
	assert.Equal(t, "pending", application["status"])
	assert.Equal(t, "Acme", application["company_name"])
	applicationID := application["id"].(string)

	// Повторный отклик - конфликт
	w = ts.do(t, http.MethodPost, "/api/v1/applications", applicantToken, apply)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CONFLICT")

	// Отклик на несуществующую публикацию - 404
	w = ts.do(t, http.MethodPost, "/api/v1/applications", applicantToken, map[string]interface{}{
		"posting_id":     uuid.NewString(),
		"applicant_name": "Dev Applicant",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Рекрутер видит отклики на свою публикацию и двигает статус
	w = ts.do(t, http.MethodGet, "/api/v1/postings/"+postingID+"/applications", recruiterToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), applicationID)

	w = ts.do(t, http.MethodPut, "/api/v1/applications/"+applicationID+"/status", recruiterToken,
		map[string]interface{}{"status": "shortlisted"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "shortlisted")

	// Кандидат видит свои отклики
	w = ts.do(t, http.MethodGet, "/api/v1/applications/my", applicantToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), applicationID)
}

func TestRoutes_LegacyInternships(t *testing.T) {
	ts := newTestServer()
	recruiterToken := ts.token(t, "hr@acme.io", models.UserRoleRecruiter)

	w := ts.do(t, http.MethodPost, "/api/v1/postings", recruiterToken, map[string]interface{}{
		"kind":        "internship",
		"title":       "QA Intern",
		"company":     "Acme",
		"location":    "Pune",
		"description": "Manual testing",
		"stipend":     "15000/month",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var intern map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &intern))
	internID := intern["id"].(string)

	w = ts.do(t, http.MethodGet, "/api/v1/internships", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "QA Intern")

	w = ts.do(t, http.MethodGet, "/api/v1/internships/"+internID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "QA Intern")
}
