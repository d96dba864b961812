package dto

// CreateComplaintRequest is the student submission payload. The description
// arrives in the form field named "note".
type CreateComplaintRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"note" form:"note"`
}

// DeleteComplaintRequest identifies the complaint to remove.
type DeleteComplaintRequest struct {
	ComplaintID string `json:"complaintId"`
}

// ComplaintSummary is a complaint row in listings.
type ComplaintSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Rating      *int   `json:"rating"`
}

// ResponseEntry is one admin reply in a complaint detail.
type ResponseEntry struct {
	Text string `json:"text"`
	Date string `json:"date"`
}

// ComplaintDetailResponse is the owner-facing detail payload.
type ComplaintDetailResponse struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Responses   []ResponseEntry `json:"responses"`
	Rating      *int            `json:"rating"`
}

// TrackComplaintResponse is the public tracking payload; Found is false when
// the id is unknown.
type TrackComplaintResponse struct {
	Found     bool                     `json:"found"`
	Complaint *ComplaintDetailResponse `json:"complaint,omitempty"`
	UserType  string                   `json:"user_type,omitempty"`
}
