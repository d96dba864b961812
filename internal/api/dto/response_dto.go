package dto

// ReplyRequest carries admin response text in the form field "response".
type ReplyRequest struct {
	Response string `json:"response" form:"response"`
}

// SubmitRatingRequest rates a single admin response.
type SubmitRatingRequest struct {
	ResponseID string `json:"responseId"`
	Rating     int    `json:"rating"`
}
