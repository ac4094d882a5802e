package notify

import (
	"html/template"
	"strings"

	"supplier-registry-backend/models"
)

// Email bodies are rendered with html/template, so every free-text field a
// submitter controls is entity-escaped before it reaches a mail client.

var internalSummaryTmpl = template.Must(template.New("internal_summary").Parse(`<h2>New supplier registration</h2>
<table cellpadding="4">
<tr><td><b>Business name</b></td><td>{{.BusinessName}}</td></tr>
{{if .CompanyID}}<tr><td><b>Company ID</b></td><td>{{.CompanyID}}</td></tr>{{end}}
<tr><td><b>Contact name</b></td><td>{{.ContactName}}</td></tr>
<tr><td><b>Phone</b></td><td>{{.Phone}}</td></tr>
<tr><td><b>Email</b></td><td>{{.Email}}</td></tr>
<tr><td><b>About</b></td><td>{{.About}}</td></tr>
<tr><td><b>Categories</b></td><td>{{.Categories}}</td></tr>
<tr><td><b>Activity areas</b></td><td>{{.ActivityAreas}}</td></tr>
{{if .Website}}<tr><td><b>Website</b></td><td>{{.Website}}</td></tr>{{end}}
{{if .Instagram}}<tr><td><b>Instagram</b></td><td>{{.Instagram}}</td></tr>{{end}}
<tr><td><b>Address</b></td><td>{{.Address}}</td></tr>
{{if .LogoURL}}<tr><td><b>Logo</b></td><td><a href="{{.LogoURL}}">{{.LogoURL}}</a></td></tr>{{end}}
{{range $i, $url := .ImageURLs}}<tr><td><b>Product image</b></td><td><a href="{{$url}}">{{$url}}</a></td></tr>
{{end}}{{if .CatalogKind}}<tr><td><b>Catalog ({{.CatalogKind}})</b></td><td>{{.CatalogValue}}</td></tr>{{end}}
<tr><td><b>Record</b></td><td>{{.ID}}</td></tr>
</table>`))

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<h2>Thank you for registering, {{.ContactName}}!</h2>
<p>We received the registration of <b>{{.BusinessName}}</b> and our team will
review it shortly. You will hear from us once the review is complete.</p>
<p>Your reference number is <b>{{.ID}}</b>.</p>`))

type internalSummaryData struct {
	*models.Supplier
	CompanyID     string
	Website       string
	Instagram     string
	LogoURL       string
	Categories    string
	ActivityAreas string
	CatalogKind   string
	CatalogValue  string
}

// InternalSummary renders the HTML digest sent to the internal recipient list
func InternalSummary(s *models.Supplier) (string, error) {
	data := internalSummaryData{
		Supplier:      s,
		CompanyID:     deref(s.CompanyID),
		Website:       deref(s.Website),
		Instagram:     deref(s.Instagram),
		LogoURL:       deref(s.LogoURL),
		Categories:    strings.Join(s.Categories, ", "),
		ActivityAreas: strings.Join(s.ActivityAreas, ", "),
		CatalogKind:   deref(s.CatalogKind),
	}
	switch data.CatalogKind {
	case string(models.CatalogText):
		data.CatalogValue = deref(s.CatalogText)
	case string(models.CatalogFile), string(models.CatalogLink):
		data.CatalogValue = deref(s.CatalogURL)
	}

	var buf strings.Builder
	if err := internalSummaryTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Confirmation renders the HTML message sent back to the submitter
func Confirmation(s *models.Supplier) (string, error) {
	var buf strings.Builder
	if err := confirmationTmpl.Execute(&buf, s); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
