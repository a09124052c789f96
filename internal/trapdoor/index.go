package trapdoor

import (
	"context"
	"slices"
	"sync"
)

// Index maps tokens to the ids of the records that contain them.
//
// Query is exact-match only and returns an empty result, not an error, when
// nothing matches. A record's tokens must be added only after the record
// itself is stored.
type Index interface {
	Add(ctx context.Context, recordID string, tokens []Token) error
	Query(ctx context.Context, token Token) ([]string, error)
	Remove(ctx context.Context, recordID string) error
}

// MemoryIndex is an in-process Index. Writers for distinct records only
// contend on the map lock for the duration of the map updates.
type MemoryIndex struct {
	mu       sync.RWMutex
	byToken  map[Token]map[string]struct{}
	byRecord map[string][]Token
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		byToken:  make(map[Token]map[string]struct{}),
		byRecord: make(map[string][]Token),
	}
}

func (ix *MemoryIndex) Add(ctx context.Context, recordID string, tokens []Token) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	for _, t := range tokens {
		ids, ok := ix.byToken[t]
		if !ok {
			ids = make(map[string]struct{})
			ix.byToken[t] = ids
		}
		if _, exists := ids[recordID]; exists {
			continue
		}
		ids[recordID] = struct{}{}
		ix.byRecord[recordID] = append(ix.byRecord[recordID], t)
	}
	return nil
}

func (ix *MemoryIndex) Query(ctx context.Context, token Token) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	ids := ix.byToken[token]
	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out, nil
}

func (ix *MemoryIndex) Remove(ctx context.Context, recordID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	for _, t := range ix.byRecord[recordID] {
		ids := ix.byToken[t]
		delete(ids, recordID)
		if len(ids) == 0 {
			delete(ix.byToken, t)
		}
	}
	delete(ix.byRecord, recordID)
	return nil
}
