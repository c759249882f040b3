package source

import (
	"context"
	"sync"
)

// Memory is an in-process source used in tests and embedded setups.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document

	// FailWith, when set, is returned by every read; lets tests exercise
	// the accessors' degraded paths.
	FailWith error
}

func NewMemory() *Memory {
	return &Memory{collections: make(map[string]map[string]Document)}
}

func (m *Memory) GetByID(_ context.Context, collection, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	return m.collections[collection][id], nil
}

func (m *Memory) QueryByOwner(_ context.Context, collection, field, ownerID string) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	var docs []Document
	for _, doc := range m.collections[collection] {
		if owner, ok := doc[field].(string); ok && owner == ownerID {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (m *Memory) Put(_ context.Context, collection string, doc Document) error {
	id, ok := doc["id"].(string)
	if !ok || id == "" {
		return errDocumentWithoutID
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.collections[collection] == nil {
		m.collections[collection] = make(map[string]Document)
	}
	m.collections[collection][id] = doc
	return nil
}

func (m *Memory) Fail(err error) {
	m.mu.Lock()
	m.FailWith = err
	m.mu.Unlock()
}
