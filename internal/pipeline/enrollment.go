// Package pipeline drives the client-side submission flows: collect the
// form, run the external checkout, persist the resulting record with a
// durable local fallback.
package pipeline

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kalakar-academy/academy-api/internal/catalog"
	"github.com/kalakar-academy/academy-api/internal/models"
	"github.com/kalakar-academy/academy-api/internal/outbox"
	"github.com/kalakar-academy/academy-api/internal/payment"
)

// State identifies where a submission attempt ended up.
type State string

const (
	StateCollectingDetails State = "collecting_details"
	StateAwaitingPayment   State = "awaiting_payment"
	StatePaymentSucceeded  State = "payment_succeeded"
	StatePaymentFailed     State = "payment_failed"
	StateSuccess           State = "success"
)

// PersistOutcome reports how the background persistence attempt went.
// It never affects the user-facing success state.
type PersistOutcome struct {
	Persisted bool
	Warning   string
	Err       error
}

// Outcome is the result of one Submit call. On success, Persisted
// delivers exactly one PersistOutcome once the background attempt
// settles.
type Outcome struct {
	State         State
	Record        *models.EnrollmentRecord
	FailureCode   payment.FailureCode
	FailureReason string
	Persisted     <-chan PersistOutcome
}

// EnrollmentPersister is the remote side of the pipeline; *client.Client
// satisfies it.
type EnrollmentPersister interface {
	SaveEnrollment(ctx context.Context, record *models.EnrollmentRecord) error
	SaveEnrollmentRaw(ctx context.Context, raw json.RawMessage) error
}

// Options tune checkout presentation and the failure redirect.
type Options struct {
	KeyID           string
	ThemeColor      string
	LogoPath        string
	CheckoutTimeout time.Duration
	MaxRetries      int
	RedirectDelay   time.Duration
	// OnRedirect fires RedirectDelay after a payment failure, sending
	// the user back to the course catalog. Cancelled by Close.
	OnRedirect func()
}

// Enrollment orchestrates the paid-enrollment submission flow.
type Enrollment struct {
	gateway   payment.Gateway
	persister EnrollmentPersister
	store     outbox.Store
	validator *validator.Validate
	logger    *zap.Logger
	opts      Options

	mu            sync.Mutex
	redirectTimer *time.Timer
	closed        bool
}

// NewEnrollment constructs the pipeline.
func NewEnrollment(gateway payment.Gateway, persister EnrollmentPersister, store outbox.Store, opts Options, logger *zap.Logger) *Enrollment {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.RedirectDelay <= 0 {
		opts.RedirectDelay = 5 * time.Second
	}
	if opts.CheckoutTimeout <= 0 {
		opts.CheckoutTimeout = 5 * time.Minute
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	return &Enrollment{
		gateway:   gateway,
		persister: persister,
		store:     store,
		validator: validator.New(),
		logger:    logger,
		opts:      opts,
	}
}

type verdictKind int

const (
	verdictSuccess verdictKind = iota
	verdictFailure
	verdictDismiss
)

type verdict struct {
	kind    verdictKind
	ref     payment.Ref
	failure payment.FailureInfo
}

// Submit runs one enrollment attempt end to end. Payment failures are
// terminal for the attempt; persistence failures are not — they degrade
// to the local outbox while the caller still sees success.
func (p *Enrollment) Submit(ctx context.Context, student models.StudentInfo, course catalog.Course) Outcome {
	if err := p.validator.Struct(student); err != nil {
		return Outcome{
			State:         StateCollectingDetails,
			FailureReason: "Please fill in your name, email and phone number.",
		}
	}
	if !course.IsValid() {
		return Outcome{
			State:         StateCollectingDetails,
			FailureReason: "Selected course is not available.",
		}
	}

	v, ok := p.awaitPayment(ctx, student, course)
	if !ok {
		// Context ended while the checkout was open; any verdict that
		// arrives later is dropped by the callback guard.
		return p.failPayment(payment.FailureInfo{Code: payment.FailureUnknown})
	}

	switch v.kind {
	case verdictFailure:
		return p.failPayment(v.failure)
	case verdictDismiss:
		// A dismissed checkout is a plain failure to the user and is
		// never reported to the backend.
		return p.failPayment(payment.FailureInfo{Code: payment.FailureUnknown})
	}

	record := p.buildRecord(student, course, v.ref)

	persisted := make(chan PersistOutcome, 1)
	go p.persist(record, persisted)

	return Outcome{State: StateSuccess, Record: record, Persisted: persisted}
}

func (p *Enrollment) awaitPayment(ctx context.Context, student models.StudentInfo, course catalog.Course) (verdict, bool) {
	cfg := payment.CheckoutConfig{
		KeyID:       p.opts.KeyID,
		AmountPaise: course.FeeAmount() * 100,
		Currency:    "INR",
		Name:        "Kalakar Art Academy",
		Description: course.Title + " - " + course.LocalizedName,
		ImagePath:   p.opts.LogoPath,
		Prefill: payment.Prefill{
			Name:    student.Name,
			Email:   student.Email,
			Contact: student.Phone,
		},
		Notes: map[string]string{
			"course_title":    course.Title,
			"course_level":    course.Level,
			"course_duration": course.Duration,
			"student_address": student.Address,
		},
		ThemeColor: p.opts.ThemeColor,
		Timeout:    p.opts.CheckoutTimeout,
		MaxRetries: p.opts.MaxRetries,
	}

	verdicts := make(chan verdict, 1)
	var once sync.Once
	deliver := func(v verdict) {
		once.Do(func() { verdicts <- v })
	}

	cb := payment.Callbacks{
		OnSuccess: func(ref payment.Ref) { deliver(verdict{kind: verdictSuccess, ref: ref}) },
		OnFailure: func(info payment.FailureInfo) { deliver(verdict{kind: verdictFailure, failure: info}) },
		OnDismiss: func() { deliver(verdict{kind: verdictDismiss}) },
	}

	if err := p.gateway.Open(ctx, cfg, cb); err != nil {
		p.logger.Warn("checkout failed to open", zap.Error(err))
		deliver(verdict{kind: verdictFailure, failure: payment.FailureInfo{
			Code:        payment.FailureGateway,
			Description: err.Error(),
		}})
	}

	select {
	case v := <-verdicts:
		return v, true
	case <-ctx.Done():
		return verdict{}, false
	}
}

func (p *Enrollment) failPayment(info payment.FailureInfo) Outcome {
	reason := info.Code.Message()
	p.logger.Info("payment failed",
		zap.String("code", string(info.Code)),
		zap.String("description", info.Description))
	p.scheduleRedirect()
	return Outcome{State: StatePaymentFailed, FailureCode: info.Code, FailureReason: reason}
}

func (p *Enrollment) buildRecord(student models.StudentInfo, course catalog.Course, ref payment.Ref) *models.EnrollmentRecord {
	now := time.Now().UTC()

	transactionID := ref.PaymentID
	if transactionID == "" {
		transactionID = newTransactionID(now)
	}

	return &models.EnrollmentRecord{
		EnrollmentID: newEnrollmentID(now),
		StudentInfo:  student,
		CourseInfo:   course.Snapshot(),
		PaymentInfo: models.PaymentInfo{
			Amount:           course.FeeAmount(),
			TransactionID:    transactionID,
			GatewayPaymentID: ref.PaymentID,
			GatewayOrderID:   ref.OrderID,
			GatewaySignature: ref.Signature,
			PaymentStatus:    models.PaymentStatusSuccess,
			PaymentDate:      now,
		},
		InvoiceInfo: models.InvoiceInfo{
			InvoiceNumber: newInvoiceNumber(now),
			InvoiceDate:   invoiceDate(now),
		},
		EnrollmentDate: now,
		Status:         models.EnrollmentStatusActive,
	}
}

// persist runs detached from the submit context: a slow or failing
// backend must never delay the user-visible success state.
func (p *Enrollment) persist(record *models.EnrollmentRecord, out chan<- PersistOutcome) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := p.persister.SaveEnrollment(ctx, record); err != nil {
		p.logger.Warn("enrollment persistence failed, queued locally",
			zap.String("enrollment_id", record.EnrollmentID), zap.Error(err))
		p.enqueue(outbox.BucketEnrollmentsPending, record, false, err.Error())
		out <- PersistOutcome{
			Persisted: false,
			Warning:   "Payment succeeded, but your enrollment could not be recorded yet. Please contact support with your enrollment ID.",
			Err:       err,
		}
		return
	}

	p.enqueue(outbox.BucketEnrollmentsSaved, record, true, "")
	out <- PersistOutcome{Persisted: true}
}

func (p *Enrollment) enqueue(bucket string, record *models.EnrollmentRecord, persisted bool, errMsg string) {
	entry, err := outbox.NewEntry(record, persisted, errMsg)
	if err != nil {
		p.logger.Error("outbox entry encode failed", zap.Error(err))
		return
	}
	if err := p.store.Enqueue(bucket, entry); err != nil {
		p.logger.Error("outbox enqueue failed", zap.String("bucket", bucket), zap.Error(err))
	}
}

// RetryFailed replays queued enrollments against the gateway. Safe to
// repeat: the server treats a resubmitted enrollmentId as a no-op.
func (p *Enrollment) RetryFailed(ctx context.Context) (outbox.RetryReport, error) {
	buckets := []string{outbox.BucketEnrollmentsFailed, outbox.BucketEnrollmentsPending}
	return outbox.DrainAndRetry(p.store, buckets, func(raw json.RawMessage) error {
		return p.persister.SaveEnrollmentRaw(ctx, raw)
	})
}

func (p *Enrollment) scheduleRedirect() {
	if p.opts.OnRedirect == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if p.redirectTimer != nil {
		p.redirectTimer.Stop()
	}
	p.redirectTimer = time.AfterFunc(p.opts.RedirectDelay, p.opts.OnRedirect)
}

// Close cancels any scheduled redirect. Must be called when the view
// owning the pipeline is torn down so a stale navigation never fires.
func (p *Enrollment) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if p.redirectTimer != nil {
		p.redirectTimer.Stop()
		p.redirectTimer = nil
	}
}
