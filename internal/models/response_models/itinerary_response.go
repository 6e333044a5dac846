package response_models

import "wander/internal/models/doc_models"

type ReplaceActivityResponse struct {
	Activity doc_models.Place `json:"activity"`
	Day      doc_models.Day   `json:"day"`
}

type DistributeResponse struct {
	Considered      int      `json:"considered"`
	Distributed     int      `json:"distributed"`
	ForcedToLastDay bool     `json:"forced_to_last_day"`
	NotPlaced       []string `json:"not_placed,omitempty"`
}
