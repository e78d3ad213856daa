package outbox

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	entry, err := NewEntry(map[string]string{"enrollmentId": "ENR12345678ABCDE"}, false, "connection refused")
	require.NoError(t, err)
	require.NoError(t, store.Enqueue(BucketEnrollmentsPending, entry))

	// A fresh handle over the same directory sees the queued entry.
	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	entries, err := reopened.List(BucketEnrollmentsPending)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].RemotelyPersisted)
	assert.Equal(t, "connection refused", entries[0].Error)
	assert.JSONEq(t, `{"enrollmentId":"ENR12345678ABCDE"}`, string(entries[0].Record))
}

func TestFileStoreBucketsAreIndependent(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	entry, err := NewEntry(map[string]string{"name": "Ravi"}, true, "")
	require.NoError(t, err)
	require.NoError(t, store.Enqueue(BucketContactsSaved, entry))

	pending, err := store.List(BucketContactsPending)
	require.NoError(t, err)
	assert.Empty(t, pending)

	saved, err := store.List(BucketContactsSaved)
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestDrainAndRetryClearsQueueOnSuccess(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, id := range []string{"ENR00000001AAAAA", "ENR00000002BBBBB", "ENR00000003CCCCC"} {
		entry, err := NewEntry(map[string]string{"enrollmentId": id}, false, "gateway unreachable")
		require.NoError(t, err)
		require.NoError(t, store.Enqueue(BucketEnrollmentsPending, entry))
	}

	var replayed []string
	report, err := DrainAndRetry(store, []string{BucketEnrollmentsFailed, BucketEnrollmentsPending}, func(raw json.RawMessage) error {
		var record struct {
			EnrollmentID string `json:"enrollmentId"`
		}
		require.NoError(t, json.Unmarshal(raw, &record))
		replayed = append(replayed, record.EnrollmentID)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, RetryReport{Success: 3, Failed: 0}, report)
	assert.Len(t, replayed, 3)

	remaining, err := store.List(BucketEnrollmentsPending)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestDrainAndRetryKeepsFailuresQueued(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	good, err := NewEntry(map[string]string{"enrollmentId": "ENR00000001AAAAA"}, false, "")
	require.NoError(t, err)
	bad, err := NewEntry(map[string]string{"enrollmentId": "ENR00000002BBBBB"}, false, "")
	require.NoError(t, err)
	require.NoError(t, store.Enqueue(BucketEnrollmentsPending, good))
	require.NoError(t, store.Enqueue(BucketEnrollmentsPending, bad))

	report, err := DrainAndRetry(store, []string{BucketEnrollmentsPending}, func(raw json.RawMessage) error {
		var record struct {
			EnrollmentID string `json:"enrollmentId"`
		}
		require.NoError(t, json.Unmarshal(raw, &record))
		if record.EnrollmentID == "ENR00000002BBBBB" {
			return errors.New("still down")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, RetryReport{Success: 1, Failed: 1}, report)

	remaining, err := store.List(BucketEnrollmentsPending)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "still down", remaining[0].Error)
}
