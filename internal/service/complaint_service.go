package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/upm-platform/complaint-service/internal/domain"
	"github.com/upm-platform/complaint-service/internal/events"
	"github.com/upm-platform/complaint-service/internal/repository"
	apperrors "github.com/upm-platform/complaint-service/pkg/util"
)

// ComplaintService coordinates the student complaint workflow.
type ComplaintService struct {
	complaints  repository.ComplaintRepository
	responses   repository.ResponseRepository
	users       repository.UserRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	dailyLimit  int
	minFieldLen int
}

// ComplaintDependencies bundles requirements for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	ResponseRepo  repository.ResponseRepository
	UserRepo      repository.UserRepository
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
	DailyLimit    int
	MinFieldLen   int
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	dailyLimit := deps.DailyLimit
	if dailyLimit <= 0 {
		dailyLimit = 2
	}
	minFieldLen := deps.MinFieldLen
	if minFieldLen <= 0 {
		minFieldLen = 3
	}
	return &ComplaintService{
		complaints:  deps.ComplaintRepo,
		responses:   deps.ResponseRepo,
		users:       deps.UserRepo,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
		dailyLimit:  dailyLimit,
		minFieldLen: minFieldLen,
	}
}

// Submit creates a complaint for a student, enforcing the daily cap and field
// validation. Two submissions racing the cap check is an accepted race.
func (s *ComplaintService) Submit(ctx context.Context, caller *domain.User, title, description string) (*domain.Complaint, error) {
	if !caller.IsStudent() {
		return nil, apperrors.NewForbidden("complaint.access_denied", "students only")
	}

	count, err := s.complaints.CountForStudentOnDate(ctx, caller.ID, time.Now())
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if count >= s.dailyLimit {
		return nil, apperrors.NewRateLimited("complaint.daily_limit", "daily complaint limit reached")
	}

	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || utf8.RuneCountInString(title) < s.minFieldLen {
		return nil, apperrors.NewValidation("complaint.fill_fields", "title too short")
	}
	if description == "" || utf8.RuneCountInString(description) < s.minFieldLen {
		return nil, apperrors.NewValidation("complaint.too_short", "description too short")
	}

	complaint := &domain.Complaint{
		Title:       title,
		Description: description,
		StudentID:   caller.ID,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	// bookkeeping columns; a failure here must not fail the submission
	if err := s.users.UpdateSubmissionStats(ctx, caller.ID, complaint.CreatedAt, count+1); err != nil {
		s.logger.Warn("failed to update submission stats", zap.String("user_id", caller.ID), zap.Error(err))
	}

	s.publish(ctx, events.Event{
		Type:        events.EventComplaintSubmitted,
		ComplaintID: complaint.ID,
		Actor:       events.Actor{UserID: caller.ID, UserType: caller.UserType},
		Payload: events.ComplaintSubmittedPayload{
			Title:     complaint.Title,
			StudentID: caller.ID,
		},
	})
	return complaint, nil
}

// Delete removes a complaint owned by the caller, together with its
// responses. Any other caller, and any unknown id, gets a uniform denial.
func (s *ComplaintService) Delete(ctx context.Context, caller *domain.User, complaintID string) error {
	if !caller.IsStudent() {
		return apperrors.NewForbidden("complaint.access_denied", "students only")
	}

	if _, err := uuid.Parse(complaintID); err != nil {
		return apperrors.NewForbidden("complaint.access_denied", "access denied")
	}
	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewForbidden("complaint.access_denied", "access denied")
		}
		return apperrors.NewInternalError(err)
	}
	if complaint.StudentID != caller.ID {
		return apperrors.NewForbidden("complaint.access_denied", "access denied")
	}

	if err := s.complaints.Delete(ctx, complaintID); err != nil {
		return apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		Type:        events.EventComplaintDeleted,
		ComplaintID: complaintID,
		Actor:       events.Actor{UserID: caller.ID, UserType: caller.UserType},
		Payload:     events.ComplaintDeletedPayload{StudentID: caller.ID},
	})
	return nil
}

// ListForStudent returns the caller's complaints, newest first.
func (s *ComplaintService) ListForStudent(ctx context.Context, studentID string) ([]domain.Complaint, error) {
	complaints, err := s.complaints.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return complaints, nil
}

// ListAll returns every complaint, newest first, for the admin dashboard.
func (s *ComplaintService) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	complaints, err := s.complaints.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return complaints, nil
}

// Detail returns a complaint and its responses in creation order, restricted
// to the owning student.
func (s *ComplaintService) Detail(ctx context.Context, caller *domain.User, complaintID string) (*domain.Complaint, []domain.Response, error) {
	if _, err := uuid.Parse(complaintID); err != nil {
		return nil, nil, apperrors.NewNotFound("complaint.not_found", "complaint")
	}
	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("complaint.not_found", "complaint")
		}
		return nil, nil, apperrors.NewInternalError(err)
	}
	if caller == nil || complaint.StudentID != caller.ID {
		return nil, nil, apperrors.NewForbidden("complaint.access_denied", "access denied")
	}

	responses, err := s.responses.ListByComplaint(ctx, complaintID)
	if err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}
	return complaint, responses, nil
}

// Track is the public lookup used by the tracking view. An unknown id is not
// an error: it returns a nil complaint so the caller can render a not-found
// state.
func (s *ComplaintService) Track(ctx context.Context, complaintID string) (*domain.Complaint, []domain.Response, error) {
	if _, err := uuid.Parse(complaintID); err != nil {
		return nil, nil, nil
	}
	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, apperrors.NewInternalError(err)
	}

	responses, err := s.responses.ListByComplaint(ctx, complaintID)
	if err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}
	return complaint, responses, nil
}

func (s *ComplaintService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
