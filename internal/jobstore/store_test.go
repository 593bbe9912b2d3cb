package jobstore

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bisectbroker/internal/jobschema"
)

func newTestJob(t *testing.T) jobschema.Job {
	job, err := jobschema.ValidateCreate(map[string]interface{}{
		"gist": "a",
		"type": jobschema.TypeBisect,
	})
	require.NoError(t, err)
	return job
}

func TestCreateAndGet(t *testing.T) {
	s := New()
	before := time.Now().UnixMilli()
	id := s.Create(newTestJob(t))

	job, etag, err := s.Get(id)
	require.NoError(t, err)
	require.Equal(t, id, job.ID)
	require.Equal(t, jobschema.TypeBisect, job.Type)
	require.Equal(t, "1", etag)
	require.GreaterOrEqual(t, job.TimeCreated, before)
	require.LessOrEqual(t, job.TimeCreated, time.Now().UnixMilli())
}

func TestGet_NotFound(t *testing.T) {
	s := New()
	_, _, err := s.Get("missing")
	require.Error(t, err)
	require.IsType(t, &jobschema.NotFoundError{}, err)
}

func TestReadonlyAttributesNeverChange(t *testing.T) {
	s := New()
	id := s.Create(newTestJob(t))
	job, etag, err := s.Get(id)
	require.NoError(t, err)

	_, err = s.Apply(id, etag, []PatchOp{{Op: "replace", Path: "/id", Value: "poop"}})
	require.Error(t, err)

	again, _, err := s.Get(id)
	require.NoError(t, err)
	require.Equal(t, job.ID, again.ID)
	require.Equal(t, job.Type, again.Type)
	require.Equal(t, job.TimeCreated, again.TimeCreated)
}

func TestApply_VersionIncrementsAndETagTracksGet(t *testing.T) {
	s := New()
	id := s.Create(newTestJob(t))
	_, e1, err := s.Get(id)
	require.NoError(t, err)

	e2, err := s.Apply(id, e1, []PatchOp{{Op: "replace", Path: "/gist", Value: "new"}})
	require.NoError(t, err)
	require.NotEqual(t, e1, e2)

	job, e3, err := s.Get(id)
	require.NoError(t, err)
	require.Equal(t, "new", job.Gist)
	require.Equal(t, e2, e3)
}

func TestApply_StaleIfMatchIsNoOp(t *testing.T) {
	s := New()
	id := s.Create(newTestJob(t))
	_, e1, err := s.Get(id)
	require.NoError(t, err)

	_, err = s.Apply(id, e1, []PatchOp{{Op: "replace", Path: "/gist", Value: "new"}})
	require.NoError(t, err)

	_, err = s.Apply(id, e1, []PatchOp{{Op: "replace", Path: "/gist", Value: "newer"}})
	require.Error(t, err)
	require.IsType(t, &jobschema.PreconditionFailedError{}, err)

	job, _, err := s.Get(id)
	require.NoError(t, err)
	require.Equal(t, "new", job.Gist)
}

func TestApply_UnknownOpIsNoOp(t *testing.T) {
	s := New()
	id := s.Create(newTestJob(t))
	_, etag, err := s.Get(id)
	require.NoError(t, err)

	_, err = s.Apply(id, etag, []PatchOp{{Op: "\U0001F4A9", Path: "/gist", Value: "x"}})
	require.Error(t, err)

	job, _, err := s.Get(id)
	require.NoError(t, err)
	require.Equal(t, "a", job.Gist)
}

func TestApply_ConcurrentPatchesSameETagExactlyOneWins(t *testing.T) {
	s := New()
	id := s.Create(newTestJob(t))
	_, etag, err := s.Get(id)
	require.NoError(t, err)

	const attempts = 20
	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = s.Apply(id, etag, []PatchOp{{Op: "replace", Path: "/gist", Value: "x"}})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
		}
	}
	require.Equal(t, 1, successes)

	job, finalETag, err := s.Get(id)
	require.NoError(t, err)
	require.Equal(t, "x", job.Gist)
	require.Equal(t, "2", finalETag)
}
