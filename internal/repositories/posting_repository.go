package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"careerhub_backend/internal/models"

	"github.com/google/uuid"
)

var ErrPostingNotFound = errors.New("posting not found")

// PostingFilter - конъюнкция exact-match предикатов; пустое поле означает
// "любое значение".
type PostingFilter struct {
	Kind     models.PostingKind
	JobType  string
	Location string
	Status   models.PostingStatus
	PostedBy string
}

type PostingRepository interface {
	Create(ctx context.Context, p *models.Posting) error
	GetByID(ctx context.Context, id string) (*models.Posting, error)
	Update(ctx context.Context, p *models.Posting) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter PostingFilter) ([]models.Posting, error)
}

type PostgresPostingRepository struct {
	db *sql.DB
}

func NewPostgresPostingRepository(db *sql.DB) *PostgresPostingRepository {
	return &PostgresPostingRepository{db: db}
}

const postingColumns = `
	id, kind, title, company, location, description,
	salary_min, salary_max, stipend, job_type, experience_level, duration,
	requirements, benefits, skills, remote_option, posted_by, status,
	company_logo, posted_at, created_at, updated_at
`

func (r *PostgresPostingRepository) Create(ctx context.Context, p *models.Posting) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if p.PostedAt.IsZero() {
		p.PostedAt = now
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO postings (
			id, kind, title, company, location, description,
			salary_min, salary_max, stipend, job_type, experience_level, duration,
			requirements, benefits, skills, remote_option, posted_by, status,
			company_logo, posted_at, created_at, updated_at
		)
		VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22
		)
	`,
		p.ID, p.Kind, p.Title, p.Company, p.Location, p.Description,
		p.SalaryMin, p.SalaryMax, p.Stipend, p.JobType, p.ExperienceLevel, p.Duration,
		[]byte(p.Requirements), []byte(p.Benefits), []byte(p.Skills), p.RemoteOption, p.PostedBy, p.Status,
		p.CompanyLogo, p.PostedAt, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *PostgresPostingRepository) GetByID(ctx context.Context, id string) (*models.Posting, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+postingColumns+`
		FROM postings WHERE id = $1
	`, id)

	p, err := scanPosting(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPostingNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresPostingRepository) Update(ctx context.Context, p *models.Posting) error {
	p.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
		UPDATE postings SET
			title = $1, company = $2, location = $3, description = $4,
			salary_min = $5, salary_max = $6, stipend = $7, job_type = $8,
			experience_level = $9, duration = $10, requirements = $11,
			benefits = $12, skills = $13, remote_option = $14, status = $15,
			company_logo = $16, updated_at = $17
		WHERE id = $18
	`,
		p.Title, p.Company, p.Location, p.Description,
		p.SalaryMin, p.SalaryMax, p.Stipend, p.JobType,
		p.ExperienceLevel, p.Duration, []byte(p.Requirements),
		[]byte(p.Benefits), []byte(p.Skills), p.RemoteOption, p.Status,
		p.CompanyLogo, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPostingNotFound
	}
	return nil
}

// Delete удаляет публикацию; отклики уходят каскадом (FK ON DELETE CASCADE),
// осиротевших записей не остается.
func (r *PostgresPostingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM postings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPostingNotFound
	}
	return nil
}

func (r *PostgresPostingRepository) List(ctx context.Context, filter PostingFilter) ([]models.Posting, error) {
	query := `SELECT ` + postingColumns + ` FROM postings`
	var conds []string
	var args []interface{}

	addCond := func(expr string, val interface{}) {
		args = append(args, val)
		conds = append(conds, expr+placeholder(len(args)))
	}

	if filter.Kind != "" {
		addCond("kind = ", filter.Kind)
	}
	if filter.JobType != "" {
		addCond("job_type = ", filter.JobType)
	}
	if filter.Location != "" {
		addCond("location = ", filter.Location)
	}
	if filter.Status != "" {
		addCond("status = ", filter.Status)
	}
	if filter.PostedBy != "" {
		addCond("posted_by = ", filter.PostedBy)
	}

	if len(conds) > 0 {
		query += " WHERE " + joinConds(conds)
	}
	query += " ORDER BY posted_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var postings []models.Posting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		postings = append(postings, *p)
	}
	return postings, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPosting(row rowScanner) (*models.Posting, error) {
	var p models.Posting
	var requirements, benefits, skills []byte

	err := row.Scan(
		&p.ID, &p.Kind, &p.Title, &p.Company, &p.Location, &p.Description,
		&p.SalaryMin, &p.SalaryMax, &p.Stipend, &p.JobType, &p.ExperienceLevel, &p.Duration,
		&requirements, &benefits, &skills, &p.RemoteOption, &p.PostedBy, &p.Status,
		&p.CompanyLogo, &p.PostedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Requirements = requirements
	p.Benefits = benefits
	p.Skills = skills
	return &p, nil
}
