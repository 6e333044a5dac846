package request_models

type SearchPlacesRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit"`
}
