package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalakar-academy/academy-api/internal/models"
	"github.com/kalakar-academy/academy-api/internal/outbox"
)

type fakeContactPersister struct {
	saveErr error
	rawErr  error
	calls   int32
	raws    []json.RawMessage
}

func (p *fakeContactPersister) SaveContact(_ context.Context, _ *models.ContactRecord) error {
	atomic.AddInt32(&p.calls, 1)
	return p.saveErr
}

func (p *fakeContactPersister) SaveContactRaw(_ context.Context, raw json.RawMessage) error {
	if p.rawErr != nil {
		return p.rawErr
	}
	p.raws = append(p.raws, raw)
	return nil
}

func testContact() models.ContactRecord {
	return models.ContactRecord{
		Name:    "Ravi Kumar",
		Email:   "ravi@example.com",
		Message: "Do you run weekend batches?",
	}
}

func TestContactSubmitSuccess(t *testing.T) {
	persister := &fakeContactPersister{}
	store := newTestStore(t)
	p := NewContact(persister, store, nil)

	result := p.Submit(context.Background(), testContact())

	assert.True(t, result.Accepted)
	assert.False(t, result.QueuedLocally)
	assert.Equal(t, "Contact form submitted successfully!", result.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&persister.calls))
}

func TestContactSubmitValidationRejectedWithoutNetwork(t *testing.T) {
	persister := &fakeContactPersister{}
	p := NewContact(persister, newTestStore(t), nil)

	record := testContact()
	record.Email = ""
	result := p.Submit(context.Background(), record)

	assert.False(t, result.Accepted)
	assert.Zero(t, atomic.LoadInt32(&persister.calls), "invalid forms must not hit the network")
}

func TestContactSubmitOutageDegradesToQueue(t *testing.T) {
	persister := &fakeContactPersister{saveErr: errors.New("gateway unreachable")}
	store := newTestStore(t)
	p := NewContact(persister, store, nil)

	result := p.Submit(context.Background(), testContact())

	// The visitor still sees a success-shaped reply.
	assert.True(t, result.Accepted)
	assert.True(t, result.QueuedLocally)
	assert.Contains(t, result.Message, "We will get back to you soon.")

	pending, err := store.List(outbox.BucketContactsPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "gateway unreachable", pending[0].Error)
}

func TestContactRetryFailedReplaysQueue(t *testing.T) {
	store := newTestStore(t)
	entry, err := outbox.NewEntry(testContact(), false, "down")
	require.NoError(t, err)
	require.NoError(t, store.Enqueue(outbox.BucketContactsPending, entry))

	persister := &fakeContactPersister{}
	p := NewContact(persister, store, nil)

	report, err := p.RetryFailed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, outbox.RetryReport{Success: 1, Failed: 0}, report)
	assert.Len(t, persister.raws, 1)
}
