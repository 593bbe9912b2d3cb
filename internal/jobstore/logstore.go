package jobstore

import (
	"bytes"
	"sync"
)

// logStore holds per-job append-only byte chunks. It never rejects a read
// or append on existence grounds itself; the owning Store checks job
// existence first.
type logStore struct {
	mu     sync.Mutex
	chunks map[string][][]byte
}

func newLogStore() *logStore {
	return &logStore{chunks: make(map[string][][]byte)}
}

func (l *logStore) append(id string, chunk []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := make([]byte, len(chunk))
	copy(cp, chunk)
	l.chunks[id] = append(l.chunks[id], cp)
}

// read returns the concatenation of every chunk appended for id, in
// receipt order. A never-appended id yields the empty string.
func (l *logStore) read(id string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var buf bytes.Buffer
	for _, c := range l.chunks[id] {
		buf.Write(c)
	}
	return buf.String()
}
