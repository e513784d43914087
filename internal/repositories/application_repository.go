package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"careerhub_backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("duplicate application for (posting, applicant_email)")
)

// Код unique_violation Postgres
const pgUniqueViolation = "23505"

type ApplicationFilter struct {
	PostingID      string
	ApplicantEmail string
	Status         models.ApplicationStatus
}

type ApplicationRepository interface {
	Create(ctx context.Context, a *models.Application) error
	GetByID(ctx context.Context, id string) (*models.Application, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ApplicationFilter) ([]models.Application, error)
}

type PostgresApplicationRepository struct {
	db *sql.DB
}

func NewPostgresApplicationRepository(db *sql.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `
	id, posting_id, applicant_email, applicant_name, resume_url, cover_letter,
	phone, experience, status, company_name, company_logo, created_at, updated_at
`

// Create вставляет отклик под составным уникальным индексом
// (posting_id, applicant_email). При конкурентных дубликатах ровно одна
// вставка выигрывает; проигравшие получают ErrDuplicateApplication.
// Никакого check-then-insert здесь нет и быть не должно.
func (r *PostgresApplicationRepository) Create(ctx context.Context, a *models.Application) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO applications (
			id, posting_id, applicant_email, applicant_name, resume_url, cover_letter,
			phone, experience, status, company_name, company_logo, created_at, updated_at
		)
		VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12, $13
		)
	`,
		a.ID, a.PostingID, a.ApplicantEmail, a.ApplicantName, a.ResumeURL, a.CoverLetter,
		a.Phone, a.Experience, a.Status, a.CompanyName, a.CompanyLogo, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateApplication
		}
		return err
	}
	return nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id string) (*models.Application, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+applicationColumns+`
		FROM applications WHERE id = $1
	`, id)

	a, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateStatus меняет только статус: поля, заполненные кандидатом,
// неизменяемы после создания.
func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3
	`, status, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) List(ctx context.Context, filter ApplicationFilter) ([]models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications`
	var conds []string
	var args []interface{}

	addCond := func(expr string, val interface{}) {
		args = append(args, val)
		conds = append(conds, expr+placeholder(len(args)))
	}

	if filter.PostingID != "" {
		addCond("posting_id = ", filter.PostingID)
	}
	if filter.ApplicantEmail != "" {
		addCond("applicant_email = ", filter.ApplicantEmail)
	}
	if filter.Status != "" {
		addCond("status = ", filter.Status)
	}

	if len(conds) > 0 {
		query += " WHERE " + joinConds(conds)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []models.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, *a)
	}
	return applications, rows.Err()
}

func scanApplication(row rowScanner) (*models.Application, error) {
	var a models.Application
	err := row.Scan(
		&a.ID, &a.PostingID, &a.ApplicantEmail, &a.ApplicantName, &a.ResumeURL, &a.CoverLetter,
		&a.Phone, &a.Experience, &a.Status, &a.CompanyName, &a.CompanyLogo, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
