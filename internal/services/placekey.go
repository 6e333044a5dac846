package services

import (
	"strings"

	"wander/internal/models/doc_models"
)

// PlaceKeyInput is the minimal shape the dedupe resolver needs. Any of the
// place representations in the system (document place, incoming payload,
// lookup details) can be projected onto it.
type PlaceKeyInput struct {
	ID           string
	Name         string
	Address      string
	Neighborhood string
}

// ResolvePlaceKey computes the identity key used for duplicate detection.
// The external identifier wins when present; otherwise the key is the
// normalized name plus the best locality signal we can find. Empty string
// means "cannot determine duplication" and callers must allow the place.
func ResolvePlaceKey(in PlaceKeyInput) string {
	if in.ID != "" {
		return "id:" + in.ID
	}

	name := normalizeName(in.Name)
	if name == "" {
		return ""
	}

	locality := in.Neighborhood
	if locality == "" {
		area, city := ParseAddressLocality(in.Address)
		locality = area
		if city != "" {
			locality += "," + city
		}
	}
	return "nm:" + name + "|" + normalizeName(locality)
}

// ParseAddressLocality best-effort extracts (area, city) from a free-text
// comma-separated address: next-to-last segment is the area, the one before
// it the city.
func ParseAddressLocality(address string) (area, city string) {
	segments := strings.Split(address, ",")
	parts := segments[:0]
	for _, s := range segments {
		if t := strings.TrimSpace(s); t != "" {
			parts = append(parts, t)
		}
	}
	if len(parts) >= 2 {
		area = parts[len(parts)-2]
	}
	if len(parts) >= 3 {
		city = parts[len(parts)-3]
	}
	return area, city
}

func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

func keyForDocumentPlace(p *doc_models.Place) string {
	neighborhood := ""
	if p.Neighborhood != nil {
		neighborhood = *p.Neighborhood
	}
	if neighborhood == "" {
		neighborhood = p.Area
	}
	return ResolvePlaceKey(PlaceKeyInput{
		ID:           p.ID,
		Name:         p.Name,
		Neighborhood: neighborhood,
	})
}

// DocumentKeySet collects the identity key of every place across all days
// and slots. Places with an unresolvable key are omitted.
func DocumentKeySet(doc *doc_models.ItineraryDocument) map[string]struct{} {
	keys := make(map[string]struct{})
	for di := range doc.Days {
		for si := range doc.Days[di].Slots {
			for pi := range doc.Days[di].Slots[si].Places {
				if k := keyForDocumentPlace(&doc.Days[di].Slots[si].Places[pi]); k != "" {
					keys[k] = struct{}{}
				}
			}
		}
	}
	return keys
}
