package response_models

// RemainingSwipes is null for upgraded members; Unlimited disambiguates that
// from "zero remaining".
type ExploreSessionResponse struct {
	Liked           []string `json:"liked"`
	Discarded       []string `json:"discarded"`
	SwipeCount      int      `json:"swipe_count"`
	RemainingSwipes *int     `json:"remaining_swipes"`
	Unlimited       bool     `json:"unlimited"`
}
