package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"careerhub_backend/internal/models"
	"careerhub_backend/internal/repositories"

	"github.com/google/uuid"
)

// fakePostingRepo - in-memory замена PostgresPostingRepository.
// Повторяет его контракт: генерация id/таймстампов при вставке,
// сентинельные ошибки, сортировка листинга по posted_at DESC.
type fakePostingRepo struct {
	mu       sync.Mutex
	postings map[string]models.Posting

	// Воспроизводит FK applications.posting_id ON DELETE CASCADE:
	// удаление публикации уносит ее отклики.
	applications *fakeApplicationRepo
}

func newFakePostingRepo() *fakePostingRepo {
	return &fakePostingRepo{postings: map[string]models.Posting{}}
}

func (r *fakePostingRepo) Create(_ context.Context, p *models.Posting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.PostedAt = now
	p.CreatedAt = now
	p.UpdatedAt = now
	r.postings[p.ID] = *p
	return nil
}

func (r *fakePostingRepo) GetByID(_ context.Context, id string) (*models.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.postings[id]
	if !ok {
		return nil, repositories.ErrPostingNotFound
	}
	return &p, nil
}

func (r *fakePostingRepo) Update(_ context.Context, p *models.Posting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.postings[p.ID]; !ok {
		return repositories.ErrPostingNotFound
	}
	p.UpdatedAt = time.Now().UTC()
	r.postings[p.ID] = *p
	return nil
}

func (r *fakePostingRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.postings[id]; !ok {
		return repositories.ErrPostingNotFound
	}
	delete(r.postings, id)

	if r.applications != nil {
		r.applications.deleteByPosting(id)
	}
	return nil
}

func (r *fakePostingRepo) List(_ context.Context, filter repositories.PostingFilter) ([]models.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Posting
	for _, p := range r.postings {
		if filter.Kind != "" && p.Kind != filter.Kind {
			continue
		}
		if filter.JobType != "" && (p.JobType == nil || *p.JobType != filter.JobType) {
			continue
		}
		if filter.Location != "" && (p.Location == nil || *p.Location != filter.Location) {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.PostedBy != "" && p.PostedBy != filter.PostedBy {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PostedAt.After(out[j].PostedAt)
	})
	return out, nil
}

// fakeApplicationRepo воспроизводит составной уникальный индекс
// (posting_id, applicant_email): второй Create с той же парой получает
// ErrDuplicateApplication, как от Postgres с кодом 23505.
type fakeApplicationRepo struct {
	mu           sync.Mutex
	applications map[string]models.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{applications: map[string]models.Application{}}
}

func (r *fakeApplicationRepo) Create(_ context.Context, a *models.Application) error {
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
	a.CreatedAt = now
	a.UpdatedAt = now
	r.applications[a.ID] = *a
	return nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id string) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.applications[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	return &a, nil
}

func (r *fakeApplicationRepo) UpdateStatus(_ context.Context, id string, status models.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.applications[id]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now().UTC()
	r.applications[id] = a
	return nil
}

func (r *fakeApplicationRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.applications[id]; !ok {
		return repositories.ErrApplicationNotFound
	}
	delete(r.applications, id)
	return nil
}

func (r *fakeApplicationRepo) List(_ context.Context, filter repositories.ApplicationFilter) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Application
	for _, a := range r.applications {
		if filter.PostingID != "" && a.PostingID != filter.PostingID {
			continue
		}
		if filter.ApplicantEmail != "" && a.ApplicantEmail != filter.ApplicantEmail {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeApplicationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.applications)
}

func (r *fakeApplicationRepo) deleteByPosting(postingID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.applications {
		if a.PostingID == postingID {
			delete(r.applications, id)
		}
	}
}
