package domain

// RecommendationRequest is the single inbound request shape. It is treated as
// immutable for the lifetime of one request.
type RecommendationRequest struct {
	Genre             string `json:"genre"`
	Language          string `json:"language"`
	AdditionalDetails string `json:"additionalDetails,omitempty"`
	UserID            string `json:"userId,omitempty"`
	SavePreferences   bool   `json:"savePreferences,omitempty"`
}
