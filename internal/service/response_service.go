package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/upm-platform/complaint-service/internal/domain"
	"github.com/upm-platform/complaint-service/internal/events"
	"github.com/upm-platform/complaint-service/internal/repository"
	apperrors "github.com/upm-platform/complaint-service/pkg/util"
)

// ResponseService coordinates admin replies and rating submission.
//
// Respond and Reply are two deliberately distinct entry points with different
// validation rules, carried over from the route surface they serve.
type ResponseService struct {
	complaints     repository.ComplaintRepository
	responses      repository.ResponseRepository
	dispatcher     events.Dispatcher
	minResponseLen int
	ratingMin      int
	ratingMax      int
}

// ResponseDependencies bundles requirements for the response service.
type ResponseDependencies struct {
	ComplaintRepo  repository.ComplaintRepository
	ResponseRepo   repository.ResponseRepository
	Dispatcher     events.Dispatcher
	MinResponseLen int
	RatingMin      int
	RatingMax      int
}

// NewResponseService constructs the service.
func NewResponseService(deps ResponseDependencies) *ResponseService {
	minResponseLen := deps.MinResponseLen
	if minResponseLen <= 0 {
		minResponseLen = 4
	}
	ratingMin, ratingMax := deps.RatingMin, deps.RatingMax
	if ratingMin <= 0 {
		ratingMin = 1
	}
	if ratingMax <= 0 {
		ratingMax = 5
	}
	return &ResponseService{
		complaints:     deps.ComplaintRepo,
		responses:      deps.ResponseRepo,
		dispatcher:     deps.Dispatcher,
		minResponseLen: minResponseLen,
		ratingMin:      ratingMin,
		ratingMax:      ratingMax,
	}
}

// Respond creates a response through the dashboard respond form, which
// requires the text to be at least four characters.
func (s *ResponseService) Respond(ctx context.Context, caller *domain.User, complaintID, text string) (*domain.Response, error) {
	if utf8.RuneCountInString(text) < s.minResponseLen {
		return nil, apperrors.NewValidation("response.too_short", "response is too short")
	}
	return s.create(ctx, caller, complaintID, text)
}

// Reply creates a response through the quick-reply endpoint, which only
// requires non-empty text.
func (s *ResponseService) Reply(ctx context.Context, caller *domain.User, complaintID, text string) (*domain.Response, error) {
	if text == "" {
		return nil, apperrors.NewValidation("response.required", "response text required")
	}
	return s.create(ctx, caller, complaintID, text)
}

func (s *ResponseService) create(ctx context.Context, caller *domain.User, complaintID, text string) (*domain.Response, error) {
	if !caller.IsAdmin() {
		return nil, apperrors.NewForbidden("admin.access_denied", "admins only")
	}

	if _, err := uuid.Parse(complaintID); err != nil {
		return nil, apperrors.NewNotFound("complaint.not_found", "complaint")
	}
	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint.not_found", "complaint")
		}
		return nil, apperrors.NewInternalError(err)
	}

	response := &domain.Response{
		ComplaintID: complaint.ID,
		AdminID:     caller.ID,
		Text:        text,
	}
	if err := s.responses.Create(ctx, response); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		Type:        events.EventResponseCreated,
		ComplaintID: complaint.ID,
		Actor:       events.Actor{UserID: caller.ID, UserType: caller.UserType},
		Payload: events.ResponseCreatedPayload{
			ResponseID:  response.ID,
			AdminID:     caller.ID,
			TextPreview: textPreview(text, 80),
		},
	})
	return response, nil
}

// SubmitRating stores a rating on a response. The rating lives on the
// response row; the complaint-level rating column is never written here.
func (s *ResponseService) SubmitRating(ctx context.Context, caller *domain.User, responseID string, rating int) error {
	if rating < s.ratingMin || rating > s.ratingMax {
		return apperrors.NewValidation("rating.out_of_range", "rating out of range")
	}

	if _, err := uuid.Parse(responseID); err != nil {
		return apperrors.NewNotFound("rating.not_found", "response")
	}
	response, err := s.responses.GetByID(ctx, responseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("rating.not_found", "response")
		}
		return apperrors.NewInternalError(err)
	}

	if err := s.responses.SetRating(ctx, response.ID, rating); err != nil {
		return apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		Type:        events.EventRatingSubmitted,
		ComplaintID: response.ComplaintID,
		Actor:       events.Actor{UserID: caller.ID, UserType: caller.UserType},
		Payload: events.RatingSubmittedPayload{
			ResponseID: response.ID,
			Rating:     rating,
		},
	})
	return nil
}

func (s *ResponseService) publish(ctx context.Context, event events.Event) {
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

func textPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if utf8.RuneCountInString(body) <= max {
		return body
	}
	runes := []rune(body)
	return string(runes[:max-3]) + "..."
}
