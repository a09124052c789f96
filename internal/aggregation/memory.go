package aggregation

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/blindcalc/internal/common"
	"github.com/dmitrijs2005/blindcalc/internal/paillier"
)

type memorySession struct {
	mu    sync.Mutex
	state *Snapshot
}

// MemoryStore keeps sessions in process memory. Each session has its own
// mutex, so submissions to different sessions do not contend.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memorySession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*memorySession)}
}

func (s *MemoryStore) session(id string) *memorySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

// Submit registers a session only once its first submission has been
// accepted, so rejected input never leaves an empty session behind.
func (s *MemoryStore) Submit(ctx context.Context, sessionID string, pk *paillier.PublicKey, ct *paillier.Ciphertext) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	ms := s.session(sessionID)
	if ms == nil {
		first, err := Accumulate(nil, sessionID, pk, ct)
		if err != nil {
			return 0, err
		}

		s.mu.Lock()
		ms = s.sessions[sessionID]
		if ms == nil {
			s.sessions[sessionID] = &memorySession{state: first}
			s.mu.Unlock()
			return first.Count, nil
		}
		s.mu.Unlock()
		// Another submitter created the session meanwhile; fold into it.
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	next, err := Accumulate(ms.state, sessionID, pk, ct)
	if err != nil {
		return 0, err
	}
	ms.state = next
	return next.Count, nil
}

func (s *MemoryStore) Finalize(ctx context.Context, sessionID string) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ms := s.session(sessionID)
	if ms == nil {
		return nil, fmt.Errorf("%w: %s", common.ErrEmptySession, sessionID)
	}

	ms.mu.Lock()
	state := ms.state
	ms.mu.Unlock()

	if state == nil || state.Count == 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrEmptySession, sessionID)
	}

	// Snapshots are never mutated after creation, so sharing is safe.
	return state, nil
}
