// Package outbox is the client-side durable fallback store: records that
// could not be persisted remotely wait here, surviving restarts, until an
// operator triggers a retry. Entries never expire on their own.
package outbox

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Bucket names. "saved" buckets hold non-authoritative backups of
// records the gateway acknowledged; "pending" and "failed" hold records
// still awaiting remote persistence.
const (
	BucketEnrollmentsPending = "enrollments_pending"
	BucketEnrollmentsFailed  = "enrollments_failed"
	BucketEnrollmentsSaved   = "enrollments_saved"
	BucketContactsPending    = "contacts_pending"
	BucketContactsFailed     = "contacts_failed"
	BucketContactsSaved      = "contacts_saved"
)

// Entry wraps a record with its local bookkeeping.
type Entry struct {
	Record            json.RawMessage `json:"record"`
	SavedAt           time.Time       `json:"savedAt"`
	RemotelyPersisted bool            `json:"remotelyPersisted"`
	Error             string          `json:"error,omitempty"`
}

// NewEntry marshals a record into an outbox entry.
func NewEntry(record interface{}, remotelyPersisted bool, errMsg string) (Entry, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return Entry{}, fmt.Errorf("marshal outbox record: %w", err)
	}
	return Entry{
		Record:            raw,
		SavedAt:           time.Now().UTC(),
		RemotelyPersisted: remotelyPersisted,
		Error:             errMsg,
	}, nil
}

// Store is the durable outbox contract. Implementations must survive
// process restarts.
type Store interface {
	Enqueue(bucket string, entry Entry) error
	List(bucket string) ([]Entry, error)
	Replace(bucket string, entries []Entry) error
}

// FileStore keeps each bucket as a JSON file under a base directory.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore ensures the base directory exists and returns a handle.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "./outbox"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create outbox directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Enqueue appends an entry to the named bucket.
func (s *FileStore) Enqueue(bucket string, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read(bucket)
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	return s.write(bucket, entries)
}

// List returns all entries in the named bucket.
func (s *FileStore) List(bucket string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(bucket)
}

// Replace overwrites the named bucket with the given entries.
func (s *FileStore) Replace(bucket string, entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(bucket, entries)
}

func (s *FileStore) read(bucket string) ([]Entry, error) {
	raw, err := os.ReadFile(s.path(bucket))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read outbox bucket %s: %w", bucket, err)
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode outbox bucket %s: %w", bucket, err)
	}
	return entries, nil
}

func (s *FileStore) write(bucket string, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode outbox bucket %s: %w", bucket, err)
	}
	if err := os.WriteFile(s.path(bucket), raw, 0o644); err != nil {
		return fmt.Errorf("write outbox bucket %s: %w", bucket, err)
	}
	return nil
}

func (s *FileStore) path(bucket string) string {
	return filepath.Join(s.dir, bucket+".json")
}

// RetryReport summarises a drain pass.
type RetryReport struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

// DrainAndRetry replays every entry in the given buckets through the
// persist function. Entries that persist are removed; failures stay
// queued with their latest error so the next manual retry picks them up.
func DrainAndRetry(store Store, buckets []string, persist func(json.RawMessage) error) (RetryReport, error) {
	var report RetryReport
	for _, bucket := range buckets {
		entries, err := store.List(bucket)
		if err != nil {
			return report, err
		}
		if len(entries) == 0 {
			continue
		}

		var remaining []Entry
		for _, entry := range entries {
			if err := persist(entry.Record); err != nil {
				entry.Error = err.Error()
				remaining = append(remaining, entry)
				report.Failed++
				continue
			}
			report.Success++
		}
		if err := store.Replace(bucket, remaining); err != nil {
			return report, err
		}
	}
	return report, nil
}
