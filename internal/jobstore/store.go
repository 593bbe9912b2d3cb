// Package jobstore holds the in-memory job and log records: id/version
// assignment, per-job mutation serialization, the patch engine, and the
// filter-query engine over job records.
package jobstore

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"bisectbroker/internal/jobschema"
)

// record pairs a job with the lock that serializes its mutations. A single
// writer per job id is enforced by holding mu for the whole read-check-
// apply-commit span of Apply, while Get only takes the read side.
type record struct {
	mu  sync.RWMutex
	job jobschema.Job
}

// Store is the process-lifetime, in-memory home for every job and its log.
// It is the only component in this repo holding shared mutable state.
type Store struct {
	mu      sync.RWMutex
	records map[string]*record
	logs    *logStore
	clock   func() time.Time
	genID   func() string
}

// New constructs an empty Store.
func New() *Store {
	return &Store{
		records: make(map[string]*record),
		logs:    newLogStore(),
		clock:   time.Now,
		genID:   uuid.NewString,
	}
}

// ETag renders a version counter as the opaque token clients see. Any
// function injective over (id, version) would do; a stringified counter
// is enough, and clients must treat it as opaque regardless.
func ETag(version int) string {
	return fmt.Sprintf("%d", version)
}

// Create assigns a fresh id, time_created, and initial version to an
// already-validated job, stores it, and returns the id.
func (s *Store) Create(job jobschema.Job) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.genID()
	job.ID = id
	job.TimeCreated = s.clock().UnixMilli()
	job.Version = 1

	s.records[id] = &record{job: job}
	return id
}

// Get returns a deep-copied snapshot of job id plus its current ETag.
func (s *Store) Get(id string) (jobschema.Job, string, error) {
	rec, ok := s.lookup(id)
	if !ok {
		return jobschema.Job{}, "", &jobschema.NotFoundError{ID: id}
	}
	rec.mu.RLock()
	defer rec.mu.RUnlock()
	return rec.job.Clone(), ETag(rec.job.Version), nil
}

// List returns every known job id, in no particular order.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	return ids
}

// Snapshot returns a deep-copied view of every job, for the query engine
// to scan. Each record's own lock is held only long enough to copy it, so
// a long-running scan never blocks a concurrent PATCH on an unrelated id.
func (s *Store) Snapshot() []jobschema.Job {
	s.mu.RLock()
	recs := make([]*record, 0, len(s.records))
	for _, rec := range s.records {
		recs = append(recs, rec)
	}
	s.mu.RUnlock()

	jobs := make([]jobschema.Job, 0, len(recs))
	for _, rec := range recs {
		rec.mu.RLock()
		jobs = append(jobs, rec.job.Clone())
		rec.mu.RUnlock()
	}
	return jobs
}

// Filter scans every job against clauses and returns the matching ids.
func (s *Store) Filter(clauses []Clause) ([]string, error) {
	return FilterIDs(s.Snapshot(), clauses)
}

// Apply runs the full patch pipeline against job id: precondition check,
// structural/readonly validation, ordered apply to a working copy,
// post-apply schema validation, then an atomic commit that bumps the
// version. Holding rec.mu for the whole span is what makes two concurrent
// PATCHes on the same id resolve to exactly one winner.
func (s *Store) Apply(id, ifMatch string, ops []PatchOp) (string, error) {
	rec, ok := s.lookup(id)
	if !ok {
		return "", &jobschema.NotFoundError{ID: id}
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	current := ETag(rec.job.Version)
	if current != ifMatch {
		return "", &jobschema.PreconditionFailedError{Expected: current, Got: ifMatch}
	}

	working := rec.job.Clone()
	if err := applyPatch(&working, ops); err != nil {
		return "", err
	}
	if err := jobschema.ValidatePatchResult(working); err != nil {
		return "", jobschema.NewBadRequestError("%s", err.Error())
	}

	working.Version = rec.job.Version + 1
	rec.job = working
	return ETag(rec.job.Version), nil
}

// AppendLog records chunk for job id, NotFound if id is unknown.
func (s *Store) AppendLog(id string, chunk []byte) error {
	if _, ok := s.lookup(id); !ok {
		return &jobschema.NotFoundError{ID: id}
	}
	s.logs.append(id, chunk)
	return nil
}

// ReadLog returns the concatenation of every chunk appended for job id,
// NotFound if id is unknown.
func (s *Store) ReadLog(id string) (string, error) {
	if _, ok := s.lookup(id); !ok {
		return "", &jobschema.NotFoundError{ID: id}
	}
	return s.logs.read(id), nil
}

func (s *Store) lookup(id string) (*record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	return rec, ok
}
