package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"supplier-registry-backend/models"

	"github.com/google/uuid"
)

type fakeBlobStore struct {
	uploads []fakeUpload
	failOn  string // substring of key that triggers a failure
}

type fakeUpload struct {
	key         string
	contentType string
	size        int
}

func (f *fakeBlobStore) Upload(_ context.Context, key string, data []byte, contentType string) (string, error) {
	if f.failOn != "" && strings.Contains(key, f.failOn) {
		return "", errors.New("connection reset")
	}
	f.uploads = append(f.uploads, fakeUpload{key: key, contentType: contentType, size: len(data)})
	return f.PublicURL(key), nil
}

func (f *fakeBlobStore) PublicURL(key string) string {
	return "https://cdn.example/" + key
}

type fakeSupplierStore struct {
	inserted *models.Supplier
	failNext bool
}

func (f *fakeSupplierStore) Insert(_ context.Context, supplier *models.Supplier) error {
	if f.failNext {
		return errors.New("connection refused")
	}
	supplier.ID = uuid.New()
	supplier.CreatedAt = time.Now()
	f.inserted = supplier
	return nil
}

func (f *fakeSupplierStore) GetByID(_ context.Context, id uuid.UUID) (*models.Supplier, error) {
	if f.inserted == nil || f.inserted.ID != id {
		return nil, errors.New("no rows in result set")
	}
	return f.inserted, nil
}

type fakeNotifier struct {
	sent    []fakeMessage
	failFor string // recipient substring that triggers a failure
}

type fakeMessage struct {
	to      []string
	subject string
	html    string
}

func (f *fakeNotifier) Send(_ context.Context, _ string, to []string, subject, html string) error {
	for _, addr := range to {
		if f.failFor != "" && strings.Contains(addr, f.failFor) {
			return errors.New("smtp: 451 temporary failure")
		}
	}
	f.sent = append(f.sent, fakeMessage{to: to, subject: subject, html: html})
	return nil
}

type fakeLimiter struct {
	allowed bool
	calls   int
}

func (f *fakeLimiter) Allow(string) bool {
	f.calls++
	return f.allowed
}

type pipeline struct {
	svc      *SupplierService
	blobs    *fakeBlobStore
	store    *fakeSupplierStore
	notifier *fakeNotifier
	limiter  *fakeLimiter
}

func newPipeline() *pipeline {
	p := &pipeline{
		blobs:    &fakeBlobStore{},
		store:    &fakeSupplierStore{},
		notifier: &fakeNotifier{},
		limiter:  &fakeLimiter{allowed: true},
	}
	p.svc = NewSupplierService(
		WithSupplierStore(p.store),
		WithBlobStore(p.blobs),
		WithNotifier(p.notifier, "no-reply@registry.example", []string{"ops@registry.example"}),
		WithRateLimiter(p.limiter),
		WithClock(func() time.Time { return time.UnixMilli(1724668800000) }),
	)
	return p
}

func submission() *models.SupplierSubmission {
	return &models.SupplierSubmission{
		BusinessName:  "Negev Textiles",
		ContactName:   "Dana Levi",
		Phone:         "+972-50-1234567",
		Email:         "dana@negev-textiles.example",
		About:         "Family-run textile workshop.",
		Categories:    []string{"textiles"},
		ActivityAreas: []string{"south"},
		Address:       "12 Rothschild Blvd, Beer Sheva",
	}
}

func TestSubmitValidWithoutFiles(t *testing.T) {
	p := newPipeline()

	supplier, err := p.svc.Submit(context.Background(), "1.2.3.4", submission())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if supplier.ID == uuid.Nil {
		t.Errorf("expected a generated identifier")
	}
	if supplier.Status != models.StatusPending {
		t.Errorf("status = %q, want pending", supplier.Status)
	}
	if supplier.LogoURL != nil || supplier.CatalogURL != nil || len(supplier.ImageURLs) != 0 {
		t.Errorf("fileless submission must persist no URLs: %+v", supplier)
	}
	if len(p.blobs.uploads) != 0 {
		t.Errorf("no uploads expected, got %v", p.blobs.uploads)
	}
	if len(p.notifier.sent) != 2 {
		t.Fatalf("expected internal + submitter notifications, got %d", len(p.notifier.sent))
	}
	if p.notifier.sent[0].to[0] != "ops@registry.example" {
		t.Errorf("first notification must go to internal recipients: %v", p.notifier.sent[0].to)
	}
	if p.notifier.sent[1].to[0] != supplier.Email {
		t.Errorf("second notification must go to the submitter: %v", p.notifier.sent[1].to)
	}
}

func TestSubmitRateLimitedDoesNothingElse(t *testing.T) {
	p := newPipeline()
	p.limiter.allowed = false

	in := submission()
	in.BusinessName = "" // invalid on purpose: the gate must fire first

	_, err := p.svc.Submit(context.Background(), "1.2.3.4", in)
	if !IsKind(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if len(p.blobs.uploads) != 0 || p.store.inserted != nil || len(p.notifier.sent) != 0 {
		t.Errorf("rate-limited submission must have no side effects")
	}
}

func TestSubmitInvalidInputHasNoSideEffects(t *testing.T) {
	p := newPipeline()

	_, err := p.svc.Submit(context.Background(), "1.2.3.4", &models.SupplierSubmission{})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(validationErr.Fields) == 0 {
		t.Errorf("expected field errors")
	}
	if len(p.blobs.uploads) != 0 || p.store.inserted != nil || len(p.notifier.sent) != 0 {
		t.Errorf("invalid submission must have no side effects")
	}
}

func TestSubmitUploadsLogoUnderLogosNamespace(t *testing.T) {
	p := newPipeline()
	in := submission()
	in.Logo = &models.FilePayload{
		DataURL:  dataURL("image/png", []byte("png-bytes")),
		Filename: "my logo.png",
	}

	supplier, err := p.svc.Submit(context.Background(), "1.2.3.4", in)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(p.blobs.uploads) != 1 {
		t.Fatalf("expected one upload, got %v", p.blobs.uploads)
	}
	upload := p.blobs.uploads[0]
	if upload.key != "logos/1724668800000_my_logo.png" {
		t.Errorf("key = %q", upload.key)
	}
	if upload.contentType != "image/png" {
		t.Errorf("contentType = %q", upload.contentType)
	}
	if supplier.LogoURL == nil || *supplier.LogoURL != "https://cdn.example/"+upload.key {
		t.Errorf("LogoURL = %v", supplier.LogoURL)
	}
}

func TestSubmitOversizedLogoAbortsBeforeAnyUpload(t *testing.T) {
	p := newPipeline()
	in := submission()
	in.Logo = &models.FilePayload{
		DataURL:  dataURL("image/png", make([]byte, MaxFileBytes+1)),
		Filename: "logo.png",
	}

	_, err := p.svc.Submit(context.Background(), "1.2.3.4", in)
	if !IsKind(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	if len(p.blobs.uploads) != 0 {
		t.Errorf("inspection must run before upload, got %v", p.blobs.uploads)
	}
	if p.store.inserted != nil {
		t.Errorf("no record may be persisted on file failure")
	}
}

func TestSubmitProductImageURLsKeepInputOrder(t *testing.T) {
	p := newPipeline()
	in := submission()
	in.ProductImages = []models.FilePayload{
		{DataURL: dataURL("image/jpeg", []byte("first")), Filename: "a.jpg"},
		{DataURL: dataURL("image/jpeg", []byte("second")), Filename: "b.jpg"},
		{DataURL: dataURL("image/jpeg", []byte("third")), Filename: "c.jpg"},
	}

	supplier, err := p.svc.Submit(context.Background(), "1.2.3.4", in)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	want := []string{
		"https://cdn.example/products/1724668800000_0_a.jpg",
		"https://cdn.example/products/1724668800000_1_b.jpg",
		"https://cdn.example/products/1724668800000_2_c.jpg",
	}
	if len(supplier.ImageURLs) != len(want) {
		t.Fatalf("ImageURLs = %v", supplier.ImageURLs)
	}
	for i, url := range want {
		if supplier.ImageURLs[i] != url {
			t.Errorf("ImageURLs[%d] = %q, want %q", i, supplier.ImageURLs[i], url)
		}
	}
}

func TestSubmitImageFailureAbortsWithoutRollback(t *testing.T) {
	p := newPipeline()
	p.blobs.failOn = "_1_b.jpg"
	in := submission()
	in.ProductImages = []models.FilePayload{
		{DataURL: dataURL("image/jpeg", []byte("first")), Filename: "a.jpg"},
		{DataURL: dataURL("image/jpeg", []byte("second")), Filename: "b.jpg"},
	}

	_, err := p.svc.Submit(context.Background(), "1.2.3.4", in)
	if !IsKind(err, ErrStore) {
		t.Fatalf("expected ErrStore, got %v", err)
	}
	// The first blob stays in the store; it is never referenced by a record.
	if len(p.blobs.uploads) != 1 {
		t.Errorf("uploads = %v", p.blobs.uploads)
	}
	if p.store.inserted != nil {
		t.Errorf("no record may be persisted after an upload failure")
	}
	if len(p.notifier.sent) != 0 {
		t.Errorf("no notifications on aborted submission")
	}
}

func TestSubmitCatalogVariants(t *testing.T) {
	t.Run("text is carried through", func(t *testing.T) {
		p := newPipeline()
		in := submission()
		in.Catalog = &models.Catalog{Kind: models.CatalogText, Text: "Price list on request"}

		supplier, err := p.svc.Submit(context.Background(), "1.2.3.4", in)
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if supplier.CatalogText == nil || *supplier.CatalogText != "Price list on request" {
			t.Errorf("CatalogText = %v", supplier.CatalogText)
		}
		if supplier.CatalogURL != nil || len(p.blobs.uploads) != 0 {
			t.Errorf("text catalog must not upload anything")
		}
	})

	t.Run("link is carried through", func(t *testing.T) {
		p := newPipeline()
		in := submission()
		in.Catalog = &models.Catalog{Kind: models.CatalogLink, Link: "https://drive.example/catalog"}

		supplier, err := p.svc.Submit(context.Background(), "1.2.3.4", in)
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if supplier.CatalogURL == nil || *supplier.CatalogURL != "https://drive.example/catalog" {
			t.Errorf("CatalogURL = %v", supplier.CatalogURL)
		}
		if len(p.blobs.uploads) != 0 {
			t.Errorf("link catalog must not upload anything")
		}
	})

	t.Run("file is inspected and uploaded", func(t *testing.T) {
		p := newPipeline()
		in := submission()
		in.Catalog = &models.Catalog{
			Kind: models.CatalogFile,
			File: &models.FilePayload{DataURL: dataURL("application/pdf", []byte("%PDF")), Filename: "catalog.pdf"},
		}

		supplier, err := p.svc.Submit(context.Background(), "1.2.3.4", in)
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if len(p.blobs.uploads) != 1 || !strings.HasPrefix(p.blobs.uploads[0].key, "catalogs/") {
			t.Fatalf("uploads = %v", p.blobs.uploads)
		}
		if supplier.CatalogURL == nil {
			t.Errorf("expected catalog URL")
		}
	})
}

func TestSubmitPersistenceFailureAborts(t *testing.T) {
	p := newPipeline()
	p.store.failNext = true

	_, err := p.svc.Submit(context.Background(), "1.2.3.4", submission())
	if !IsKind(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if len(p.notifier.sent) != 0 {
		t.Errorf("no notifications without a persisted record")
	}
}

func TestSubmitSurvivesInternalNotificationFailure(t *testing.T) {
	p := newPipeline()
	p.notifier.failFor = "ops@"

	supplier, err := p.svc.Submit(context.Background(), "1.2.3.4", submission())
	if err != nil {
		t.Fatalf("notification failure must not fail the submission: %v", err)
	}
	if supplier.ID == uuid.Nil {
		t.Errorf("expected a persisted identifier")
	}
	// The submitter confirmation still goes out.
	if len(p.notifier.sent) != 1 || p.notifier.sent[0].to[0] != supplier.Email {
		t.Errorf("sent = %v", p.notifier.sent)
	}
}

func TestSubmitSurvivesSubmitterNotificationFailure(t *testing.T) {
	p := newPipeline()
	p.notifier.failFor = "dana@"

	supplier, err := p.svc.Submit(context.Background(), "1.2.3.4", submission())
	if err != nil {
		t.Fatalf("confirmation failure must not fail the submission: %v", err)
	}
	if supplier.ID == uuid.Nil {
		t.Errorf("expected a persisted identifier")
	}
}

func TestGetReturnsNotFoundKind(t *testing.T) {
	p := newPipeline()

	_, err := p.svc.Get(context.Background(), uuid.New())
	if !IsKind(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
