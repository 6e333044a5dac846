package db_models

import (
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// PlaceEmbedding backs the discovery search index. One row per known place,
// embedded from its name, categories and description.
type PlaceEmbedding struct {
	BaseModel
	PlaceID     string `gorm:"uniqueIndex"`
	Name        string
	Address     string
	Categories  pq.StringArray  `gorm:"type:text[]"`
	Description string
	Latitude    float64
	Longitude   float64
	Embedding   pgvector.Vector `gorm:"type:vector(1536)"`

	Similarity float64 `gorm:"-"` // populated by similarity queries only
}
