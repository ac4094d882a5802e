package service

import (
	"context"
	"strconv"
	"time"

	"supplier-registry-backend/models"
	"supplier-registry-backend/notify"
	"supplier-registry-backend/ratelimit"
	"supplier-registry-backend/storage"
	"supplier-registry-backend/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Namespaces the blob store files under per upload slot.
const (
	logoNamespace    = "logos"
	productNamespace = "products"
	catalogNamespace = "catalogs"
)

// SupplierStore is the persistence collaborator
type SupplierStore interface {
	Insert(ctx context.Context, supplier *models.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
}

// SupplierService runs the submission pipeline: rate-limit gate, validation,
// per-file inspection and upload, record persistence, notification
type SupplierService struct {
	store              SupplierStore
	blobs              storage.BlobStore
	notifier           notify.Notifier
	limiter            ratelimit.Store
	fromAddress        string
	internalRecipients []string
	now                func() time.Time
	log                zerolog.Logger
}

// SupplierServiceOption is a functional option for SupplierService
type SupplierServiceOption func(*SupplierService)

// WithSupplierStore sets the persistence collaborator
func WithSupplierStore(store SupplierStore) SupplierServiceOption {
	return func(s *SupplierService) {
		s.store = store
	}
}

// WithBlobStore sets the blob store collaborator
func WithBlobStore(blobs storage.BlobStore) SupplierServiceOption {
	return func(s *SupplierService) {
		s.blobs = blobs
	}
}

// WithNotifier sets the notifier and its addressing
func WithNotifier(notifier notify.Notifier, from string, internal []string) SupplierServiceOption {
	return func(s *SupplierService) {
		s.notifier = notifier
		s.fromAddress = from
		s.internalRecipients = internal
	}
}

// WithRateLimiter sets the rate-limit store
func WithRateLimiter(limiter ratelimit.Store) SupplierServiceOption {
	return func(s *SupplierService) {
		s.limiter = limiter
	}
}

// WithLogger sets the service logger
func WithLogger(log zerolog.Logger) SupplierServiceOption {
	return func(s *SupplierService) {
		s.log = log
	}
}

// WithClock overrides the time source used for storage-key prefixes
func WithClock(now func() time.Time) SupplierServiceOption {
	return func(s *SupplierService) {
		s.now = now
	}
}

// NewSupplierService creates a new supplier service
func NewSupplierService(opts ...SupplierServiceOption) *SupplierService {
	s := &SupplierService{
		now: time.Now,
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit runs one registration attempt through the pipeline. The steps are
// strictly sequential; the insert is the single durability point, and blobs
// uploaded before a later failure are not rolled back. Notification
// failures after the insert are logged and swallowed.
func (s *SupplierService) Submit(ctx context.Context, clientKey string, in *models.SupplierSubmission) (*models.Supplier, error) {
	if !s.limiter.Allow(clientKey) {
		s.log.Warn().Str("client", clientKey).Msg("submission rate limited")
		return nil, ErrRateLimited
	}

	if fieldErrs := validation.Validate(in); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	supplier := recordFromSubmission(in)

	if in.Logo != nil {
		url, err := s.uploadFile(ctx, *in.Logo, "logo", logoNamespace, imageTypes, -1)
		if err != nil {
			return nil, err
		}
		supplier.LogoURL = &url
	}

	for i, image := range in.ProductImages {
		slot := productSlot(i)
		url, err := s.uploadFile(ctx, image, slot, productNamespace, imageTypes, i)
		if err != nil {
			return nil, err
		}
		supplier.ImageURLs = append(supplier.ImageURLs, url)
	}

	if in.Catalog != nil {
		if err := s.attachCatalog(ctx, in.Catalog, supplier); err != nil {
			return nil, err
		}
	}

	if err := s.store.Insert(ctx, supplier); err != nil {
		s.log.Error().Err(err).Msg("supplier insert failed")
		return nil, Wrap(ErrPersistence, "insert supplier", err)
	}

	// The record is durable from here on; notification failures must not
	// fail the submission.
	s.notifyInternal(ctx, supplier)
	s.notifySubmitter(ctx, supplier)

	s.log.Info().
		Str("supplier_id", supplier.ID.String()).
		Str("business", supplier.BusinessName).
		Msg("supplier registered")
	return supplier, nil
}

// Get retrieves a persisted supplier record
func (s *SupplierService) Get(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	supplier, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, Wrap(ErrNotFound, "get supplier", err)
	}
	return supplier, nil
}

func (s *SupplierService) uploadFile(ctx context.Context, payload models.FilePayload, slot, namespace string, allowed []string, index int) (string, error) {
	file, err := inspectFile(payload, slot, allowed)
	if err != nil {
		return "", err
	}

	key := storage.BuildKey(namespace, payload.Filename, s.now(), index)
	url, err := s.blobs.Upload(ctx, key, file.data, file.mimeType)
	if err != nil {
		s.log.Error().Err(err).Str("slot", slot).Str("key", key).Msg("blob upload failed")
		return "", Wrap(ErrStore, "upload "+slot, err)
	}
	return url, nil
}

func (s *SupplierService) attachCatalog(ctx context.Context, catalog *models.Catalog, supplier *models.Supplier) error {
	kind := string(catalog.Kind)
	supplier.CatalogKind = &kind

	switch catalog.Kind {
	case models.CatalogText:
		supplier.CatalogText = &catalog.Text
	case models.CatalogLink:
		supplier.CatalogURL = &catalog.Link
	case models.CatalogFile:
		url, err := s.uploadFile(ctx, *catalog.File, "catalog file", catalogNamespace, catalogTypes, -1)
		if err != nil {
			return err
		}
		supplier.CatalogURL = &url
	}
	return nil
}

func (s *SupplierService) notifyInternal(ctx context.Context, supplier *models.Supplier) {
	if len(s.internalRecipients) == 0 {
		return
	}
	html, err := notify.InternalSummary(supplier)
	if err != nil {
		s.log.Error().Err(err).Msg("internal summary rendering failed")
		return
	}
	subject := "New supplier registration: " + supplier.BusinessName
	if err := s.notifier.Send(ctx, s.fromAddress, s.internalRecipients, subject, html); err != nil {
		s.log.Error().Err(err).Str("supplier_id", supplier.ID.String()).Msg("internal notification failed")
	}
}

func (s *SupplierService) notifySubmitter(ctx context.Context, supplier *models.Supplier) {
	html, err := notify.Confirmation(supplier)
	if err != nil {
		s.log.Error().Err(err).Msg("confirmation rendering failed")
		return
	}
	subject := "We received your registration"
	if err := s.notifier.Send(ctx, s.fromAddress, []string{supplier.Email}, subject, html); err != nil {
		s.log.Error().Err(err).Str("supplier_id", supplier.ID.String()).Msg("submitter confirmation failed")
	}
}

func recordFromSubmission(in *models.SupplierSubmission) *models.Supplier {
	supplier := &models.Supplier{
		BusinessName:  in.BusinessName,
		ContactName:   in.ContactName,
		Phone:         in.Phone,
		Email:         in.Email,
		About:         in.About,
		Categories:    in.Categories,
		ActivityAreas: in.ActivityAreas,
		Address:       in.Address,
		Status:        models.StatusPending,
	}
	if in.CompanyID != "" {
		supplier.CompanyID = &in.CompanyID
	}
	if in.Website != "" {
		supplier.Website = &in.Website
	}
	if in.Instagram != "" {
		supplier.Instagram = &in.Instagram
	}
	return supplier
}

func productSlot(i int) string {
	return "product image " + strconv.Itoa(i+1)
}
