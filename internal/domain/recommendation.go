package domain

// RecommendationRequest is the body the browser sends and the body forwarded
// to the recommendation source.
type RecommendationRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}
