package domain

import "time"

// Complaint is a student-submitted record requiring admin review.
//
// Rating is a complaint-level column kept distinct from Response.Rating; the
// rating-submission flow only ever writes the response-level field. The two
// fields are intentionally not merged.
type Complaint struct {
	ID          string
	Title       string
	Description string
	StudentID   string
	Rating      *int
	CreatedAt   time.Time
}
