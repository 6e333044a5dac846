package request_models

const (
	SwipeLike    = "like"
	SwipeDiscard = "discard"
)

type SwipeRequest struct {
	PlaceID   string `json:"place_id"`
	Direction string `json:"direction"` // like | discard
	Segment   string `json:"segment"`
}
