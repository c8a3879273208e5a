package postgres

import (
	"context"
	"errors"
	"time"

	"middlebeat/internal/database"
	"middlebeat/internal/domain/project"

	"github.com/jackc/pgx/v5"
)

type ProjectRepository struct {
	db database.DB
}

var _ project.Repository = (*ProjectRepository)(nil)

func NewProjectRepository(db database.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, title, description, creator_id, creator_name, required_skills, genres,
	budget_min, budget_max, deadline, status, applicants, created_at, updated_at`

func (r *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	rows, err := r.db.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]project.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (project.Project, error) {
	p, err := scanProject(r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return project.Project{}, project.ErrNotFound
	}
	return p, err
}

func (r *ProjectRepository) Create(ctx context.Context, p project.Project) error {
	return InsertProject(ctx, r.db, p)
}

func (r *ProjectRepository) AddApplicant(ctx context.Context, id, userID string) (bool, error) {
	n, err := r.db.Exec(
		ctx,
		`UPDATE projects SET applicants = array_append(applicants, $2), updated_at = now() WHERE id = $1 AND NOT ($2 = ANY(applicants))`,
		id,
		userID,
	)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

func (r *ProjectRepository) UpdateStatus(ctx context.Context, id string, status project.Status) error {
	n, err := r.db.Exec(ctx, `UPDATE projects SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if n == 0 {
		return project.ErrNotFound
	}
	return nil
}

func InsertProject(ctx context.Context, q database.Querier, p project.Project) error {
	var bmin, bmax *int
	if p.Budget != nil {
		bmin, bmax = &p.Budget.Min, &p.Budget.Max
	}
	_, err := q.Exec(
		ctx,
		`INSERT INTO projects (
			id, title, description, creator_id, creator_name, required_skills, genres,
			budget_min, budget_max, deadline, status, applicants, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO NOTHING`,
		p.ID,
		p.Title,
		p.Description,
		p.CreatorID,
		p.CreatorName,
		nonNil(p.RequiredSkills),
		nonNil(p.Genres),
		bmin,
		bmax,
		p.Deadline,
		string(p.Status),
		nonNil(p.Applicants),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func scanProject(row database.Row) (project.Project, error) {
	var p project.Project
	var bmin, bmax *int
	var deadline *time.Time
	var status string
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.CreatorID,
		&p.CreatorName,
		&p.RequiredSkills,
		&p.Genres,
		&bmin,
		&bmax,
		&deadline,
		&status,
		&p.Applicants,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return project.Project{}, err
	}
	if bmin != nil || bmax != nil {
		b := project.Budget{}
		if bmin != nil {
			b.Min = *bmin
		}
		if bmax != nil {
			b.Max = *bmax
		}
		p.Budget = &b
	}
	p.Deadline = deadline
	p.Status = project.Status(status)
	return p, nil
}
