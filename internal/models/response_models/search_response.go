package response_models

type PlaceSearchResult struct {
	PlaceID     string   `json:"place_id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Categories  []string `json:"categories"`
	Description string   `json:"description"`
	Similarity  float64  `json:"similarity"`
}
