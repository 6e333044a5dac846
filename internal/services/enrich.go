package services

import (
	"strings"

	"wander/internal/models/doc_models"
	"wander/internal/models/request_models"
)

const fallbackDescription = "A local favorite worth a visit."

// buildEnrichedPlace merges the caller payload with lookup details into a
// document place. Payload fields win over lookup fields; either source may
// be partial. The image is resolved separately by the caller. Visited is
// always reset on a freshly placed record.
func buildEnrichedPlace(payload *request_models.IncomingPlace, details *PlaceDetails) doc_models.Place {
	place := doc_models.Place{Visited: false}

	if payload != nil {
		place.ID = payload.ID
		place.Name = payload.Name
		place.Description = payload.Description
		place.Area = payload.Area
		place.Neighborhood = payload.Neighborhood
		place.Tags = payload.Tags
	}
	if place.ID == "" && details != nil {
		place.ID = details.PlaceID
	}
	if place.Name == "" && details != nil {
		place.Name = details.Name
	}

	address := ""
	if payload != nil {
		address = payload.Address
	}
	if address == "" && details != nil {
		address = details.FormattedAddress
	}
	if place.Area == "" || place.Neighborhood == nil {
		// second-to-last address segment is the area, third-to-last the
		// neighborhood, both best-effort
		area, neighborhood := ParseAddressLocality(address)
		if place.Area == "" {
			place.Area = area
		}
		if place.Neighborhood == nil && neighborhood != "" {
			place.Neighborhood = &neighborhood
		}
	}

	if place.Description == "" && details != nil {
		place.Description = details.EditorialSummary
	}
	if place.Description == "" && details != nil && len(details.Categories) > 0 {
		place.Description = humanizeCategory(details.Categories[0])
	}
	if place.Description == "" {
		place.Description = fallbackDescription
	}

	if len(place.Tags) == 0 && details != nil {
		for _, category := range details.Categories {
			place.Tags = append(place.Tags, humanizeCategory(category))
			if len(place.Tags) == 3 {
				break
			}
		}
	}

	return place
}

func humanizeCategory(category string) string {
	return strings.ReplaceAll(category, "_", " ")
}
