package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalakar-academy/academy-api/internal/catalog"
	"github.com/kalakar-academy/academy-api/internal/models"
	"github.com/kalakar-academy/academy-api/internal/outbox"
	"github.com/kalakar-academy/academy-api/internal/payment"
)

// fakeGateway delivers a scripted verdict through the callbacks, plus
// optional duplicate callbacks to exercise the single-verdict guard.
type fakeGateway struct {
	verdict   string
	ref       payment.Ref
	failure   payment.FailureInfo
	openErr   error
	lastCfg   payment.CheckoutConfig
	duplicate bool
}

func (g *fakeGateway) Open(_ context.Context, cfg payment.CheckoutConfig, cb payment.Callbacks) error {
	g.lastCfg = cfg
	if g.openErr != nil {
		return g.openErr
	}
	deliver := func() {
		switch g.verdict {
		case "success":
			cb.OnSuccess(g.ref)
		case "failure":
			cb.OnFailure(g.failure)
		case "dismiss":
			cb.OnDismiss()
		}
	}
	deliver()
	if g.duplicate {
		deliver()
		cb.OnDismiss()
	}
	return nil
}

type fakePersister struct {
	saveErr error
	saved   []*models.EnrollmentRecord
	rawErr  error
	raws    []json.RawMessage
	calls   int32
}

func (p *fakePersister) SaveEnrollment(_ context.Context, record *models.EnrollmentRecord) error {
	atomic.AddInt32(&p.calls, 1)
	if p.saveErr != nil {
		return p.saveErr
	}
	p.saved = append(p.saved, record)
	return nil
}

func (p *fakePersister) SaveEnrollmentRaw(_ context.Context, raw json.RawMessage) error {
	if p.rawErr != nil {
		return p.rawErr
	}
	p.raws = append(p.raws, raw)
	return nil
}

func newTestStore(t *testing.T) *outbox.FileStore {
	store, err := outbox.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func testStudent() models.StudentInfo {
	return models.StudentInfo{
		Name:    "Priya Sharma",
		Email:   "priya@example.com",
		Phone:   "+91 98765 43210",
		Address: "42 MG Road, Pune",
	}
}

func testCourse(t *testing.T) catalog.Course {
	course, ok := catalog.FindByTitle("Beginner Adult Program")
	require.True(t, ok)
	return course
}

func TestEnrollmentSubmitSuccess(t *testing.T) {
	gateway := &fakeGateway{verdict: "success", ref: payment.Ref{PaymentID: "pay_ABC123", OrderID: "order_XYZ", Signature: "sig"}}
	persister := &fakePersister{}
	store := newTestStore(t)
	p := NewEnrollment(gateway, persister, store, Options{KeyID: "rzp_test_deJclZWsYK2wrx"}, nil)
	defer p.Close()

	outcome := p.Submit(context.Background(), testStudent(), testCourse(t))

	require.Equal(t, StateSuccess, outcome.State)
	require.NotNil(t, outcome.Record)

	record := outcome.Record
	assert.Regexp(t, regexp.MustCompile(`^ENR\d{8}[A-Z0-9]{5}$`), record.EnrollmentID)
	assert.Regexp(t, regexp.MustCompile(`^INV\d{8}$`), record.InvoiceInfo.InvoiceNumber)
	assert.Equal(t, int64(6000), record.PaymentInfo.Amount)
	assert.Equal(t, "pay_ABC123", record.PaymentInfo.GatewayPaymentID)
	assert.Equal(t, "pay_ABC123", record.PaymentInfo.TransactionID)
	assert.Equal(t, models.PaymentStatusSuccess, record.PaymentInfo.PaymentStatus)
	assert.Equal(t, models.EnrollmentStatusActive, record.Status)
	assert.Equal(t, "Beginner Adult Program", record.CourseInfo.Title)

	// Checkout was configured in paise with the student's prefill.
	assert.Equal(t, int64(600000), gateway.lastCfg.AmountPaise)
	assert.Equal(t, "INR", gateway.lastCfg.Currency)
	assert.Equal(t, "priya@example.com", gateway.lastCfg.Prefill.Email)

	select {
	case result := <-outcome.Persisted:
		assert.True(t, result.Persisted)
		assert.Empty(t, result.Warning)
	case <-time.After(2 * time.Second):
		t.Fatal("persistence outcome never delivered")
	}
	require.Len(t, persister.saved, 1)

	saved, err := store.List(outbox.BucketEnrollmentsSaved)
	require.NoError(t, err)
	assert.Len(t, saved, 1)
	pending, err := store.List(outbox.BucketEnrollmentsPending)
	require.NoError(t, err)
	assert.Empty(t, pending, "acknowledged records must not linger in the pending queue")
}

func TestEnrollmentSubmitPaymentFailure(t *testing.T) {
	gateway := &fakeGateway{verdict: "failure", failure: payment.FailureInfo{Code: payment.FailureNetwork, Description: "timeout"}}
	persister := &fakePersister{}
	p := NewEnrollment(gateway, persister, newTestStore(t), Options{}, nil)
	defer p.Close()

	outcome := p.Submit(context.Background(), testStudent(), testCourse(t))

	assert.Equal(t, StatePaymentFailed, outcome.State)
	assert.Nil(t, outcome.Record)
	assert.Equal(t, payment.FailureNetwork, outcome.FailureCode)
	assert.Equal(t, "Network connection issue. Please check your internet and try again.", outcome.FailureReason)
	assert.Zero(t, atomic.LoadInt32(&persister.calls), "failed payments are never sent to the backend")
}

func TestEnrollmentSubmitDismissIsPlainFailure(t *testing.T) {
	gateway := &fakeGateway{verdict: "dismiss"}
	persister := &fakePersister{}
	p := NewEnrollment(gateway, persister, newTestStore(t), Options{}, nil)
	defer p.Close()

	outcome := p.Submit(context.Background(), testStudent(), testCourse(t))

	assert.Equal(t, StatePaymentFailed, outcome.State)
	assert.Equal(t, payment.FailureUnknown, outcome.FailureCode)
	assert.Equal(t, "Payment was unsuccessful. Please try again.", outcome.FailureReason)
	assert.Zero(t, atomic.LoadInt32(&persister.calls))
}

func TestEnrollmentSubmitIgnoresDuplicateCallbacks(t *testing.T) {
	gateway := &fakeGateway{verdict: "success", ref: payment.Ref{PaymentID: "pay_ABC123"}, duplicate: true}
	p := NewEnrollment(gateway, &fakePersister{}, newTestStore(t), Options{}, nil)
	defer p.Close()

	outcome := p.Submit(context.Background(), testStudent(), testCourse(t))
	assert.Equal(t, StateSuccess, outcome.State)
}

func TestEnrollmentSubmitValidationRejectedLocally(t *testing.T) {
	gateway := &fakeGateway{verdict: "success"}
	persister := &fakePersister{}
	p := NewEnrollment(gateway, persister, newTestStore(t), Options{}, nil)
	defer p.Close()

	student := testStudent()
	student.Email = ""
	outcome := p.Submit(context.Background(), student, testCourse(t))

	assert.Equal(t, StateCollectingDetails, outcome.State)
	assert.Empty(t, gateway.lastCfg.KeyID, "checkout must not open for invalid details")
	assert.Zero(t, atomic.LoadInt32(&persister.calls))
}

func TestEnrollmentSubmitUnknownCourseRejected(t *testing.T) {
	p := NewEnrollment(&fakeGateway{verdict: "success"}, &fakePersister{}, newTestStore(t), Options{}, nil)
	defer p.Close()

	outcome := p.Submit(context.Background(), testStudent(), catalog.Course{Title: "Made Up Course", Fee: "₹1"})
	assert.Equal(t, StateCollectingDetails, outcome.State)
}

func TestEnrollmentSubmitPersistenceFailureQueuesLocally(t *testing.T) {
	gateway := &fakeGateway{verdict: "success", ref: payment.Ref{PaymentID: "pay_ABC123"}}
	persister := &fakePersister{saveErr: errors.New("gateway returned status 500: Failed to save enrollment data to database")}
	store := newTestStore(t)
	p := NewEnrollment(gateway, persister, store, Options{}, nil)
	defer p.Close()

	outcome := p.Submit(context.Background(), testStudent(), testCourse(t))

	// The user still sees success; only the warning reveals the outage.
	require.Equal(t, StateSuccess, outcome.State)
	select {
	case result := <-outcome.Persisted:
		assert.False(t, result.Persisted)
		assert.Contains(t, result.Warning, "could not be recorded")
		assert.Error(t, result.Err)
	case <-time.After(2 * time.Second):
		t.Fatal("persistence outcome never delivered")
	}

	pending, err := store.List(outbox.BucketEnrollmentsPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.False(t, pending[0].RemotelyPersisted)

	var queued models.EnrollmentRecord
	require.NoError(t, json.Unmarshal(pending[0].Record, &queued))
	assert.Equal(t, outcome.Record.EnrollmentID, queued.EnrollmentID)
}

func TestEnrollmentGatewayOpenErrorMapsToGatewayFailure(t *testing.T) {
	gateway := &fakeGateway{openErr: errors.New("sdk not loaded")}
	p := NewEnrollment(gateway, &fakePersister{}, newTestStore(t), Options{}, nil)
	defer p.Close()

	outcome := p.Submit(context.Background(), testStudent(), testCourse(t))
	assert.Equal(t, StatePaymentFailed, outcome.State)
	assert.Equal(t, payment.FailureGateway, outcome.FailureCode)
}

func TestEnrollmentRedirectFiresAfterDelay(t *testing.T) {
	fired := make(chan struct{})
	gateway := &fakeGateway{verdict: "failure", failure: payment.FailureInfo{Code: payment.FailureServer}}
	p := NewEnrollment(gateway, &fakePersister{}, newTestStore(t), Options{
		RedirectDelay: 20 * time.Millisecond,
		OnRedirect:    func() { close(fired) },
	}, nil)
	defer p.Close()

	p.Submit(context.Background(), testStudent(), testCourse(t))

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("redirect never fired")
	}
}

func TestEnrollmentCloseCancelsRedirect(t *testing.T) {
	var fired int32
	gateway := &fakeGateway{verdict: "failure", failure: payment.FailureInfo{Code: payment.FailureServer}}
	p := NewEnrollment(gateway, &fakePersister{}, newTestStore(t), Options{
		RedirectDelay: 50 * time.Millisecond,
		OnRedirect:    func() { atomic.AddInt32(&fired, 1) },
	}, nil)

	p.Submit(context.Background(), testStudent(), testCourse(t))
	p.Close()

	time.Sleep(120 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&fired), "redirect must not fire after Close")
}

func TestEnrollmentRetryFailedReplaysQueue(t *testing.T) {
	store := newTestStore(t)
	for i := 0; i < 2; i++ {
		entry, err := outbox.NewEntry(map[string]string{"enrollmentId": "ENR00000001AAAAA"}, false, "down")
		require.NoError(t, err)
		require.NoError(t, store.Enqueue(outbox.BucketEnrollmentsPending, entry))
	}

	persister := &fakePersister{}
	p := NewEnrollment(&fakeGateway{}, persister, store, Options{}, nil)
	defer p.Close()

	report, err := p.RetryFailed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, outbox.RetryReport{Success: 2, Failed: 0}, report)
	assert.Len(t, persister.raws, 2)

	remaining, err := store.List(outbox.BucketEnrollmentsPending)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
