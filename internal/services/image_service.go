package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/google/uuid"
	"wander/internal/models/db_models"
	"wander/internal/repositories"
)

// ImageRequest carries everything the fallback chain might use. Optional
// signals are zero-valued when absent.
type ImageRequest struct {
	TripID     uuid.UUID
	PlaceID    string
	Title      string
	PayloadURL string
	PhotoRef   string
	Lat        float64
	Lng        float64
}

// ImageServiceInterface resolves a public image URL for a place through an
// ordered provider chain. It never fails: the terminal state is an empty
// string.
type ImageServiceInterface interface {
	Cache(ctx context.Context, req ImageRequest) string
}

type imageProvider struct {
	name    string
	resolve func(req ImageRequest) (string, bool)
}

type imageService struct {
	imageRepo repositories.CachedImageRepository
	providers []imageProvider
}

func NewImageService(imageRepo repositories.CachedImageRepository) ImageServiceInterface {
	apiKey := os.Getenv("GOOGLE_MAPS_API_KEY")

	providers := []imageProvider{
		{
			name: "payload",
			resolve: func(req ImageRequest) (string, bool) {
				return req.PayloadURL, req.PayloadURL != ""
			},
		},
		{
			name: "photo_ref",
			resolve: func(req ImageRequest) (string, bool) {
				if req.PhotoRef == "" {
					return "", false
				}
				return fmt.Sprintf(
					"https://maps.googleapis.com/maps/api/place/photo?maxwidth=800&photo_reference=%s&key=%s",
					url.QueryEscape(req.PhotoRef), apiKey), true
			},
		},
		{
			name: "map_thumbnail",
			resolve: func(req ImageRequest) (string, bool) {
				if req.Lat == 0 && req.Lng == 0 {
					return "", false
				}
				return fmt.Sprintf(
					"https://maps.googleapis.com/maps/api/staticmap?center=%f,%f&zoom=15&size=800x450&key=%s",
					req.Lat, req.Lng, apiKey), true
			},
		},
	}

	return &imageService{
		imageRepo: imageRepo,
		providers: providers,
	}
}

func (s *imageService) Cache(ctx context.Context, req ImageRequest) string {
	if cached, err := s.imageRepo.Find(ctx, req.TripID, req.PlaceID); err == nil && cached != nil {
		return cached.PublicURL
	} else if err != nil {
		log.Printf("Image cache read failed for %s/%s: %v", req.TripID, req.PlaceID, err)
	}

	for _, provider := range s.providers {
		publicURL, ok := provider.resolve(req)
		if !ok {
			continue
		}

		record := &db_models.CachedImage{
			TripID:    req.TripID,
			PlaceID:   req.PlaceID,
			PublicURL: publicURL,
			Source:    provider.name,
		}
		if err := s.imageRepo.Save(ctx, record); err != nil {
			log.Printf("Image cache write failed for %s/%s via %s: %v", req.TripID, req.PlaceID, provider.name, err)
		}
		return publicURL
	}

	log.Printf("No image source available for place %s", req.PlaceID)
	return ""
}
