package model

import (
	"slices"
	"time"
)

// Entry is one cached value with its bookkeeping. Fields are exported so the
// persistence layer can round-trip the whole table through JSON; the insertion
// sequence is runtime-only and reassigned on restore.
type Entry struct {
	Data           any           `json:"data"`
	CreatedAt      time.Time     `json:"created_at"`
	TTL            time.Duration `json:"ttl"`
	AccessCount    int64         `json:"access_count"`
	LastAccessedAt time.Time     `json:"last_accessed_at"`
	Version        int           `json:"version"`
	Tags           []string      `json:"tags,omitempty"`

	// Seq orders entries with identical LastAccessedAt deterministically
	// during eviction.
	Seq uint64 `json:"-"`
}

func NewEntry(data any, ttl time.Duration, tags []string, seq uint64) *Entry {
	now := time.Now()
	return &Entry{
		Data:           data,
		CreatedAt:      now,
		TTL:            ttl,
		AccessCount:    1,
		LastAccessedAt: now,
		Version:        1,
		Tags:           tags,
		Seq:            seq,
	}
}

// IsExpired checks that elapsed time since creation reached the TTL.
func (e *Entry) IsExpired(now time.Time) bool {
	if e == nil {
		return false
	}
	return now.Sub(e.CreatedAt) >= e.TTL
}

// Touch records a successful read.
func (e *Entry) Touch(now time.Time) {
	e.AccessCount++
	e.LastAccessedAt = now
}

func (e *Entry) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}
