package events

import (
	"time"

	"github.com/upm-platform/complaint-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintSubmitted EventType = "complaint_submitted"
	EventComplaintDeleted   EventType = "complaint_deleted"
	EventResponseCreated    EventType = "response_created"
	EventRatingSubmitted    EventType = "rating_submitted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID   string          `json:"user_id"`
	UserType domain.UserType `json:"user_type"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	ComplaintID string      `json:"complaint_id"`
	Actor       Actor       `json:"actor"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// ComplaintSubmittedPayload payload.
type ComplaintSubmittedPayload struct {
	Title     string `json:"title"`
	StudentID string `json:"student_id"`
}

// ComplaintDeletedPayload payload.
type ComplaintDeletedPayload struct {
	StudentID string `json:"student_id"`
}

// ResponseCreatedPayload payload.
type ResponseCreatedPayload struct {
	ResponseID  string `json:"response_id"`
	AdminID     string `json:"admin_id"`
	TextPreview string `json:"text_preview"`
}

// RatingSubmittedPayload payload.
type RatingSubmittedPayload struct {
	ResponseID string `json:"response_id"`
	Rating     int    `json:"rating"`
}
