package core

import (
	"github.com/google/uuid"
)

// ImageFile is an uploaded image payload together with its declared MIME type.
type ImageFile struct {
	ContentType string
	Data        []byte
}

// ProductFields holds the scalar fields of a product submission.
type ProductFields struct {
	Name         string
	Brand        string
	RetailerName string
	Price        float64
	Category     string
}

// ProductSubmission is the ephemeral input to the ingestion pipeline.
// It is decomposed into stored assets and an indexed record; the
// submission itself is never persisted as a unit.
type ProductSubmission struct {
	Fields  ProductFields
	Image   ImageFile
	Texture ImageFile
}

// Product is the durable logical record assembled by the pipeline.
// The same Id joins the stored assets, the vector index entry, and the
// response payload.
type Product struct {
	Id           string  `json:"id"`
	Name         string  `json:"name"`
	Brand        string  `json:"brand"`
	RetailerName string  `json:"retailer_name"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	ImageURL     string  `json:"img_url"`
	TextureURL   string  `json:"texture"`
}

// NewProductID generates a fresh product identifier.
// Ids are UUIDv4 strings and are generated exactly once per submission.
func NewProductID() string {
	return uuid.NewString()
}

// ImageObjectName returns the asset object name for the product photo.
func ImageObjectName(id string) string {
	return "image_" + id
}

// TextureObjectName returns the asset object name for the texture swatch.
func TextureObjectName(id string) string {
	return "texture_" + id
}

// Metadata flattens the record into a scalar field map suitable for a
// vector index payload. Nested structures are never produced.
func (p *Product) Metadata() map[string]any {
	return map[string]any{
		"id":            p.Id,
		"name":          p.Name,
		"brand":         p.Brand,
		"retailer_name": p.RetailerName,
		"price":         p.Price,
		"category":      p.Category,
		"description":   p.Description,
		"img_url":       p.ImageURL,
		"texture":       p.TextureURL,
	}
}
