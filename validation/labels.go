package validation

// fieldLabels maps machine field paths to display labels used by the form.
var fieldLabels = map[string]string{
	"business_name":  "Business name",
	"company_id":     "Company ID",
	"contact_name":   "Contact name",
	"phone":          "Phone",
	"email":          "Email",
	"about":          "About the business",
	"categories":     "Categories",
	"activity_areas": "Activity areas",
	"website":        "Website",
	"instagram":      "Instagram",
	"address":        "Main address",
	"product_images": "Product images",
	"catalog":        "Product catalog",
	"catalog.kind":   "Catalog type",
	"catalog.text":   "Catalog description",
	"catalog.file":   "Catalog file",
	"catalog.link":   "Catalog link",
}

// Label returns the display label for a field path, falling back to the
// path itself for fields the table does not know.
func Label(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}
