package request_models

// IncomingPlace is the caller-supplied reference to the place being added or
// swapped in. Two shapes are accepted: identifier-only, or full details when
// the client already fetched them. HasFullDetails decides which branch the
// enrichment takes.
type IncomingPlace struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Area         string   `json:"area"`
	Neighborhood *string  `json:"neighborhood"`
	Description  string   `json:"description"`
	ImageURL     string   `json:"image_url"`
	Tags         []string `json:"tags"`
}

// HasFullDetails reports whether the payload can be used as-is, skipping the
// place-lookup call.
func (p *IncomingPlace) HasFullDetails() bool {
	return p.Name != "" && p.Address != ""
}

type ReplaceActivityRequest struct {
	DayID         string        `json:"day_id"`
	TargetPlaceID string        `json:"target_place_id"`
	Place         IncomingPlace `json:"place"`
	Segment       string        `json:"segment"`
}

type DistributeLikedRequest struct {
	LikedPlaceIDs []string `json:"liked_place_ids"`
	Segment       string   `json:"segment"`
}

type AddFromSearchRequest struct {
	PlaceID string `json:"place_id"`
	Segment string `json:"segment"`
}

type GenerateItineraryRequest struct {
	Destination string   `json:"destination"`
	Days        int      `json:"days"`
	StartDate   string   `json:"start_date"`
	Interests   []string `json:"interests"`
	Segment     string   `json:"segment"`
}
