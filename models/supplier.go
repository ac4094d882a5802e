package models

import (
	"time"

	"github.com/google/uuid"
)

// SupplierStatus represents the moderation status of a supplier record
type SupplierStatus string

const (
	StatusPending  SupplierStatus = "pending"
	StatusApproved SupplierStatus = "approved"
	StatusRejected SupplierStatus = "rejected"
)

// CatalogKind discriminates the three ways a supplier can provide a catalog
type CatalogKind string

const (
	CatalogText CatalogKind = "text"
	CatalogFile CatalogKind = "file"
	CatalogLink CatalogKind = "link"
)

// FilePayload is a self-describing upload: a data URL of the form
// data:<mime-type>;base64,<encoded-bytes> plus the original filename.
type FilePayload struct {
	DataURL  string `json:"data_url"`
	Filename string `json:"filename"`
}

// Catalog is a tagged union; exactly one payload field is populated
// according to Kind.
type Catalog struct {
	Kind CatalogKind  `json:"kind"`
	Text string       `json:"text,omitempty"`
	File *FilePayload `json:"file,omitempty"`
	Link string       `json:"link,omitempty"`
}

// SupplierSubmission represents the request body of a registration attempt
type SupplierSubmission struct {
	BusinessName  string        `json:"business_name"`
	CompanyID     string        `json:"company_id"`
	ContactName   string        `json:"contact_name"`
	Phone         string        `json:"phone"`
	Email         string        `json:"email"`
	About         string        `json:"about"`
	Categories    []string      `json:"categories"`
	ActivityAreas []string      `json:"activity_areas"`
	Website       string        `json:"website"`
	Instagram     string        `json:"instagram"`
	Address       string        `json:"address"`
	Logo          *FilePayload  `json:"logo,omitempty"`
	ProductImages []FilePayload `json:"product_images,omitempty"`
	Catalog       *Catalog      `json:"catalog,omitempty"`
}

// Supplier represents a persisted supplier record
type Supplier struct {
	ID            uuid.UUID      `json:"id"`
	BusinessName  string         `json:"business_name"`
	CompanyID     *string        `json:"company_id,omitempty"`
	ContactName   string         `json:"contact_name"`
	Phone         string         `json:"phone"`
	Email         string         `json:"email"`
	About         string         `json:"about"`
	Categories    []string       `json:"categories"`
	ActivityAreas []string       `json:"activity_areas"`
	Website       *string        `json:"website,omitempty"`
	Instagram     *string        `json:"instagram,omitempty"`
	Address       string         `json:"address"`
	LogoURL       *string        `json:"logo_url,omitempty"`
	ImageURLs     []string       `json:"image_urls"`
	CatalogKind   *string        `json:"catalog_kind,omitempty"`
	CatalogText   *string        `json:"catalog_text,omitempty"`
	CatalogURL    *string        `json:"catalog_url,omitempty"`
	Status        SupplierStatus `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
}
