package domain

import "time"

// Response is an admin's reply to a complaint. Immutable once created except
// for rating assignment.
type Response struct {
	ID          string
	ComplaintID string
	AdminID     string
	Text        string
	Rating      *int
	CreatedAt   time.Time
}
