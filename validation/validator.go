package validation

import (
	"fmt"
	"regexp"
	"strings"

	"supplier-registry-backend/models"
)

// FieldError describes a single violated rule on a submission field
type FieldError struct {
	Field   string `json:"field"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("invalid field '%s': %s", e.Field, e.Message)
}

// Maximum lengths per field. Entries in categories and activity areas are
// bounded individually as well as in count.
const (
	MaxBusinessName = 120
	MaxCompanyID    = 64
	MaxContactName  = 120
	MaxPhone        = 32
	MaxEmail        = 254
	MaxAbout        = 2000
	MaxWebsite      = 500
	MaxInstagram    = 100
	MaxAddress      = 300
	MaxListEntry    = 100
	MaxListEntries  = 20
	MaxCatalogText  = 2000
	MaxCatalogLink  = 500
	MaxImages       = 10
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Validate trims every string field in place and returns one FieldError per
// violated rule. It never short-circuits: all violations are collected in a
// single pass. A nil return means the submission is acceptable.
func Validate(in *models.SupplierSubmission) []FieldError {
	trim(in)

	var errs []FieldError
	add := func(field, message string) {
		errs = append(errs, FieldError{Field: field, Label: Label(field), Message: message})
	}

	checkRequired := func(field, value string, max int) {
		switch {
		case value == "":
			add(field, "is required")
		case len(value) > max:
			add(field, fmt.Sprintf("must be at most %d characters", max))
		}
	}

	checkRequired("business_name", in.BusinessName, MaxBusinessName)
	checkRequired("contact_name", in.ContactName, MaxContactName)
	checkRequired("phone", in.Phone, MaxPhone)
	checkRequired("about", in.About, MaxAbout)
	checkRequired("address", in.Address, MaxAddress)

	switch {
	case in.Email == "":
		add("email", "is required")
	case len(in.Email) > MaxEmail:
		add("email", fmt.Sprintf("must be at most %d characters", MaxEmail))
	case !emailRegex.MatchString(in.Email):
		add("email", "must be a valid email address")
	}

	// Optional fields are bounded only when present.
	if in.CompanyID != "" && len(in.CompanyID) > MaxCompanyID {
		add("company_id", fmt.Sprintf("must be at most %d characters", MaxCompanyID))
	}
	if in.Website != "" && len(in.Website) > MaxWebsite {
		add("website", fmt.Sprintf("must be at most %d characters", MaxWebsite))
	}
	if in.Instagram != "" && len(in.Instagram) > MaxInstagram {
		add("instagram", fmt.Sprintf("must be at most %d characters", MaxInstagram))
	}

	checkList := func(field string, values []string) {
		switch {
		case len(values) == 0:
			add(field, "must contain at least one entry")
		case len(values) > MaxListEntries:
			add(field, fmt.Sprintf("must contain at most %d entries", MaxListEntries))
		default:
			for _, v := range values {
				if v == "" || len(v) > MaxListEntry {
					add(field, fmt.Sprintf("entries must be non-empty and at most %d characters", MaxListEntry))
					break
				}
			}
		}
	}
	checkList("categories", in.Categories)
	checkList("activity_areas", in.ActivityAreas)

	if len(in.ProductImages) > MaxImages {
		add("product_images", fmt.Sprintf("must contain at most %d images", MaxImages))
	}

	if in.Catalog != nil {
		validateCatalog(in.Catalog, add)
	}

	return errs
}

// validateCatalog enforces the tagged union: a known kind with exactly that
// kind's payload populated.
func validateCatalog(c *models.Catalog, add func(field, message string)) {
	switch c.Kind {
	case models.CatalogText:
		if c.Text == "" {
			add("catalog.text", "is required when catalog kind is text")
		} else if len(c.Text) > MaxCatalogText {
			add("catalog.text", fmt.Sprintf("must be at most %d characters", MaxCatalogText))
		}
		if c.File != nil || c.Link != "" {
			add("catalog", "must carry only the text payload")
		}
	case models.CatalogFile:
		if c.File == nil || c.File.DataURL == "" {
			add("catalog.file", "is required when catalog kind is file")
		}
		if c.Text != "" || c.Link != "" {
			add("catalog", "must carry only the file payload")
		}
	case models.CatalogLink:
		if c.Link == "" {
			add("catalog.link", "is required when catalog kind is link")
		} else if len(c.Link) > MaxCatalogLink {
			add("catalog.link", fmt.Sprintf("must be at most %d characters", MaxCatalogLink))
		}
		if c.Text != "" || c.File != nil {
			add("catalog", "must carry only the link payload")
		}
	default:
		add("catalog.kind", "must be one of: text, file, link")
	}
}

func trim(in *models.SupplierSubmission) {
	in.BusinessName = strings.TrimSpace(in.BusinessName)
	in.CompanyID = strings.TrimSpace(in.CompanyID)
	in.ContactName = strings.TrimSpace(in.ContactName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.About = strings.TrimSpace(in.About)
	in.Website = strings.TrimSpace(in.Website)
	in.Instagram = strings.TrimSpace(in.Instagram)
	in.Address = strings.TrimSpace(in.Address)
	for i, v := range in.Categories {
		in.Categories[i] = strings.TrimSpace(v)
	}
	for i, v := range in.ActivityAreas {
		in.ActivityAreas[i] = strings.TrimSpace(v)
	}
	if in.Catalog != nil {
		in.Catalog.Text = strings.TrimSpace(in.Catalog.Text)
		in.Catalog.Link = strings.TrimSpace(in.Catalog.Link)
	}
}
