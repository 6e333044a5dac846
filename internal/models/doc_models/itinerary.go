package doc_models

import "time"

// Slot labels are fixed. Anything else in a stored document is ignored by
// the allocator.
const (
	SlotMorning   = "morning"
	SlotAfternoon = "afternoon"
	SlotEvening   = "evening"
)

const DayDateLayout = "2006-01-02"

// SlotRank orders slots for allocation tie-breaks. Unknown labels get -1.
func SlotRank(label string) int {
	switch label {
	case SlotMorning:
		return 0
	case SlotAfternoon:
		return 1
	case SlotEvening:
		return 2
	default:
		return -1
	}
}

// ItineraryDocument is the full itinerary for one trip, or for one segment
// of a multi-city trip. It is persisted as a single JSONB blob.
type ItineraryDocument struct {
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	TripTips []string `json:"trip_tips"`
	Days     []Day    `json:"days"`
}

type Day struct {
	ID          string   `json:"id"`
	Index       int      `json:"index"`
	Date        string   `json:"date"`
	Title       string   `json:"title"`
	Theme       string   `json:"theme"`
	AreaCluster string   `json:"area_cluster"`
	Overview    string   `json:"overview"`
	Photos      []string `json:"photos"`
	Slots       []Slot   `json:"slots"`
}

type Slot struct {
	Label   string  `json:"label"`
	Summary string  `json:"summary"`
	Places  []Place `json:"places"`
}

type Place struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Area         string   `json:"area"`
	Neighborhood *string  `json:"neighborhood"`
	Tags         []string `json:"tags"`
	Photos       []string `json:"photos"`
	ImageURL     *string  `json:"image_url"`
	Visited      bool     `json:"visited"`
}

// ParsedDate returns the day's calendar date in the given location, or the
// zero time when the stored date is malformed.
func (d *Day) ParsedDate(loc *time.Location) time.Time {
	t, err := time.ParseInLocation(DayDateLayout, d.Date, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// TotalPlaces counts places across every slot of the day.
func (d *Day) TotalPlaces() int {
	total := 0
	for i := range d.Slots {
		total += len(d.Slots[i].Places)
	}
	return total
}

// IsPast reports whether the day's date is strictly before asOf, compared at
// day granularity in asOf's location. Malformed dates are treated as past so
// a corrupted day never accepts new places.
func (d *Day) IsPast(asOf time.Time) bool {
	date := d.ParsedDate(asOf.Location())
	if date.IsZero() {
		return true
	}
	y, m, dd := asOf.Date()
	today := time.Date(y, m, dd, 0, 0, 0, 0, asOf.Location())
	return date.Before(today)
}

// SlotByLabel returns the index of the first slot with the given label, or -1.
func (d *Day) SlotByLabel(label string) int {
	for i := range d.Slots {
		if d.Slots[i].Label == label {
			return i
		}
	}
	return -1
}
