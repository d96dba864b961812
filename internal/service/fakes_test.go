package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/upm-platform/complaint-service/internal/domain"
)

type memUserRepo struct {
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) UpdateSubmissionStats(_ context.Context, id string, lastSent time.Time, messagesToday int) error {
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.LastSentDate = &lastSent
	user.MessagesToday = messagesToday
	return nil
}

type memComplaintRepo struct {
	complaints map[string]*domain.Complaint
	order      []string
	responses  *memResponseRepo
}

func newMemComplaintRepo(responses *memResponseRepo) *memComplaintRepo {
	return &memComplaintRepo{
		complaints: make(map[string]*domain.Complaint),
		responses:  responses,
	}
}

func (r *memComplaintRepo) Create(_ context.Context, complaint *domain.Complaint) error {
	complaint.ID = uuid.NewString()
	complaint.CreatedAt = time.Now()
	clone := *complaint
	r.complaints[complaint.ID] = &clone
	r.order = append(r.order, complaint.ID)
	return nil
}

func (r *memComplaintRepo) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	complaint, ok := r.complaints[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *complaint
	return &clone, nil
}

func (r *memComplaintRepo) ListByStudent(_ context.Context, studentID string) ([]domain.Complaint, error) {
	var result []domain.Complaint
	for i := len(r.order) - 1; i >= 0; i-- {
		if complaint, ok := r.complaints[r.order[i]]; ok && complaint.StudentID == studentID {
			result = append(result, *complaint)
		}
	}
	return result, nil
}

func (r *memComplaintRepo) ListAll(_ context.Context) ([]domain.Complaint, error) {
	var result []domain.Complaint
	for i := len(r.order) - 1; i >= 0; i-- {
		if complaint, ok := r.complaints[r.order[i]]; ok {
			result = append(result, *complaint)
		}
	}
	return result, nil
}

func (r *memComplaintRepo) CountForStudentOnDate(_ context.Context, studentID string, day time.Time) (int, error) {
	y, m, d := day.Date()
	count := 0
	for _, complaint := range r.complaints {
		cy, cm, cd := complaint.CreatedAt.Date()
		if complaint.StudentID == studentID && cy == y && cm == m && cd == d {
			count++
		}
	}
	return count, nil
}

func (r *memComplaintRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.complaints[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.complaints, id)
	if r.responses != nil {
		r.responses.deleteByComplaint(id)
	}
	return nil
}

type memResponseRepo struct {
	responses map[string]*domain.Response
	order     []string
}

func newMemResponseRepo() *memResponseRepo {
	return &memResponseRepo{responses: make(map[string]*domain.Response)}
}

func (r *memResponseRepo) Create(_ context.Context, response *domain.Response) error {
	response.ID = uuid.NewString()
	response.CreatedAt = time.Now()
	clone := *response
	r.responses[response.ID] = &clone
	r.order = append(r.order, response.ID)
	return nil
}

func (r *memResponseRepo) GetByID(_ context.Context, id string) (*domain.Response, error) {
	response, ok := r.responses[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *response
	return &clone, nil
}

func (r *memResponseRepo) ListByComplaint(_ context.Context, complaintID string) ([]domain.Response, error) {
	var result []domain.Response
	for _, id := range r.order {
		if response, ok := r.responses[id]; ok && response.ComplaintID == complaintID {
			result = append(result, *response)
		}
	}
	return result, nil
}

func (r *memResponseRepo) SetRating(_ context.Context, id string, rating int) error {
	response, ok := r.responses[id]
	if !ok {
		return pgx.ErrNoRows
	}
	value := rating
	response.Rating = &value
	return nil
}

func (r *memResponseRepo) deleteByComplaint(complaintID string) {
	for id, response := range r.responses {
		if response.ComplaintID == complaintID {
			delete(r.responses, id)
		}
	}
}
