package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/upm-platform/complaint-service/internal/domain"
)

// ComplaintRepository encapsulates complaint persistence.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.Complaint, error)
	ListAll(ctx context.Context) ([]domain.Complaint, error)
	CountForStudentOnDate(ctx context.Context, studentID string, day time.Time) (int, error)
	Delete(ctx context.Context, id string) error
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (title, description, student_id)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		complaint.Title,
		complaint.Description,
		complaint.StudentID,
	).Scan(&complaint.ID, &complaint.CreatedAt)
}

func (r *complaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	const query = `
        SELECT id, title, description, student_id, rating, created_at
        FROM complaints WHERE id=$1`

	var complaint domain.Complaint
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&complaint.ID,
		&complaint.Title,
		&complaint.Description,
		&complaint.StudentID,
		&complaint.Rating,
		&complaint.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) ListByStudent(ctx context.Context, studentID string) ([]domain.Complaint, error) {
	const query = `
        SELECT id, title, description, student_id, rating, created_at
        FROM complaints WHERE student_id=$1
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func (r *complaintRepository) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	const query = `
        SELECT id, title, description, student_id, rating, created_at
        FROM complaints
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

// CountForStudentOnDate counts complaints whose creation timestamp falls on
// the given calendar date, as seen by the database clock.
func (r *complaintRepository) CountForStudentOnDate(ctx context.Context, studentID string, day time.Time) (int, error) {
	const query = `
        SELECT COUNT(*) FROM complaints
        WHERE student_id=$1 AND created_at::date = $2::date`

	var count int
	if err := r.pool.QueryRow(ctx, query, studentID, day).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes the complaint and its responses in one transaction. The
// schema also cascades, the explicit delete keeps the policy visible here.
func (r *complaintRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM responses WHERE complaint_id=$1`, id); err != nil {
		return err
	}
	cmd, err := tx.Exec(ctx, `DELETE FROM complaints WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return tx.Commit(ctx)
}

func scanComplaints(rows pgx.Rows) ([]domain.Complaint, error) {
	var result []domain.Complaint
	for rows.Next() {
		var complaint domain.Complaint
		if err := rows.Scan(
			&complaint.ID,
			&complaint.Title,
			&complaint.Description,
			&complaint.StudentID,
			&complaint.Rating,
			&complaint.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, complaint)
	}
	return result, rows.Err()
}
