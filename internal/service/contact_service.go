package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kalakar-academy/academy-api/internal/models"
	appErrors "github.com/kalakar-academy/academy-api/pkg/errors"
)

type contactStore interface {
	Insert(ctx context.Context, record *models.ContactRecord) error
	List(ctx context.Context, filter models.ContactFilter) ([]models.ContactRecord, error)
}

// ContactService orchestrates server-side contact-form persistence.
type ContactService struct {
	store     contactStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewContactService constructs ContactService.
func NewContactService(store contactStore, validate *validator.Validate, logger *zap.Logger) *ContactService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{store: store, validator: validate, logger: logger}
}

// Save validates and persists a contact submission. The contactId is
// generated server-side; status and timestamps are stamped here so the
// caller only needs to supply the form fields.
func (s *ContactService) Save(ctx context.Context, record *models.ContactRecord) (*models.ContactRecord, error) {
	if err := s.validator.Struct(record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"Missing required fields: name and email are required")
	}

	if record.ContactID == "" {
		record.ContactID = newContactID()
	}
	record.Status = models.ContactStatusNew
	record.SubmittedAt = time.Now().UTC()

	if err := s.store.Insert(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
			"Failed to save contact form to database")
	}
	return record, nil
}

// List returns contacts matching the filter.
func (s *ContactService) List(ctx context.Context, filter models.ContactFilter) ([]models.ContactRecord, error) {
	records, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
			"Failed to fetch contact forms")
	}
	if records == nil {
		records = []models.ContactRecord{}
	}
	return records, nil
}

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newContactID keeps the legacy format: CNT + unix millis + 5 random
// upper-alphanumeric characters.
func newContactID() string {
	return fmt.Sprintf("CNT%d%s", time.Now().UnixMilli(), randomSuffix(5))
}

func randomSuffix(n int) string {
	buf := make([]byte, n)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			buf[i] = idAlphabet[time.Now().UnixNano()%int64(len(idAlphabet))]
			continue
		}
		buf[i] = idAlphabet[idx.Int64()]
	}
	return string(buf)
}
