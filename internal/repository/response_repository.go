package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/upm-platform/complaint-service/internal/domain"
)

// ResponseRepository encapsulates admin response persistence.
type ResponseRepository interface {
	Create(ctx context.Context, response *domain.Response) error
	GetByID(ctx context.Context, id string) (*domain.Response, error)
	ListByComplaint(ctx context.Context, complaintID string) ([]domain.Response, error)
	SetRating(ctx context.Context, id string, rating int) error
}

type responseRepository struct {
	pool *pgxpool.Pool
}

// NewResponseRepository instantiates repository.
func NewResponseRepository(pool *pgxpool.Pool) ResponseRepository {
	return &responseRepository{pool: pool}
}

func (r *responseRepository) Create(ctx context.Context, response *domain.Response) error {
	const query = `
        INSERT INTO responses (complaint_id, admin_id, response_text)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		response.ComplaintID,
		response.AdminID,
		response.Text,
	).Scan(&response.ID, &response.CreatedAt)
}

func (r *responseRepository) GetByID(ctx context.Context, id string) (*domain.Response, error) {
	const query = `
        SELECT id, complaint_id, admin_id, response_text, rating, created_at
        FROM responses WHERE id=$1`

	var response domain.Response
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&response.ID,
		&response.ComplaintID,
		&response.AdminID,
		&response.Text,
		&response.Rating,
		&response.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &response, nil
}

// ListByComplaint returns responses in creation order.
func (r *responseRepository) ListByComplaint(ctx context.Context, complaintID string) ([]domain.Response, error) {
	const query = `
        SELECT id, complaint_id, admin_id, response_text, rating, created_at
        FROM responses WHERE complaint_id=$1
        ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Response
	for rows.Next() {
		var response domain.Response
		if err := rows.Scan(
			&response.ID,
			&response.ComplaintID,
			&response.AdminID,
			&response.Text,
			&response.Rating,
			&response.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, response)
	}
	return result, rows.Err()
}

func (r *responseRepository) SetRating(ctx context.Context, id string, rating int) error {
	const query = `UPDATE responses SET rating=$1 WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, rating, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
