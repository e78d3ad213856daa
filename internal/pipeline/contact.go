package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kalakar-academy/academy-api/internal/models"
	"github.com/kalakar-academy/academy-api/internal/outbox"
)

// ContactResult is what the form surface shows the user. Submissions
// that only made it into the local queue still read as accepted; backend
// availability must not block a visitor from reaching out.
type ContactResult struct {
	Accepted      bool
	Message       string
	QueuedLocally bool
}

// ContactPersister is the remote side of the contact flow; *client.Client
// satisfies it.
type ContactPersister interface {
	SaveContact(ctx context.Context, record *models.ContactRecord) error
	SaveContactRaw(ctx context.Context, raw json.RawMessage) error
}

// Contact orchestrates contact-form submissions: the enrollment flow
// minus the payment step.
type Contact struct {
	persister ContactPersister
	store     outbox.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewContact constructs the pipeline.
func NewContact(persister ContactPersister, store outbox.Store, logger *zap.Logger) *Contact {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Contact{
		persister: persister,
		store:     store,
		validator: validator.New(),
		logger:    logger,
	}
}

// Submit validates and sends a contact form. Validation failures are
// rejected locally with zero network calls; everything else yields a
// success-shaped result.
func (p *Contact) Submit(ctx context.Context, record models.ContactRecord) ContactResult {
	if err := p.validator.Struct(record); err != nil {
		return ContactResult{
			Accepted: false,
			Message:  "Please provide your name and a valid email address.",
		}
	}

	record.SubmittedAt = time.Now().UTC()
	record.Status = models.ContactStatusNew

	if err := p.persister.SaveContact(ctx, &record); err != nil {
		p.logger.Warn("contact persistence failed, queued locally",
			zap.String("email", record.Email), zap.Error(err))
		p.enqueue(outbox.BucketContactsPending, &record, false, err.Error())
		return ContactResult{
			Accepted:      true,
			Message:       "Contact form submitted successfully! We will get back to you soon.",
			QueuedLocally: true,
		}
	}

	p.enqueue(outbox.BucketContactsSaved, &record, true, "")
	return ContactResult{
		Accepted: true,
		Message:  "Contact form submitted successfully!",
	}
}

// RetryFailed replays queued contact submissions against the gateway.
func (p *Contact) RetryFailed(ctx context.Context) (outbox.RetryReport, error) {
	buckets := []string{outbox.BucketContactsFailed, outbox.BucketContactsPending}
	return outbox.DrainAndRetry(p.store, buckets, func(raw json.RawMessage) error {
		return p.persister.SaveContactRaw(ctx, raw)
	})
}

func (p *Contact) enqueue(bucket string, record *models.ContactRecord, persisted bool, errMsg string) {
	entry, err := outbox.NewEntry(record, persisted, errMsg)
	if err != nil {
		p.logger.Error("outbox entry encode failed", zap.Error(err))
		return
	}
	if err := p.store.Enqueue(bucket, entry); err != nil {
		p.logger.Error("outbox enqueue failed", zap.String("bucket", bucket), zap.Error(err))
	}
}
