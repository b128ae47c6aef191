// Package kvstore is the small get/set/clear capability over a string
// keyspace used for credentials and request counters. It has an in-memory
// implementation and a SQLite one.
package kvstore

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Sentinel errors shared by every Store.
var (
	// ErrEmptyKey is returned for a blank key.
	ErrEmptyKey = errors.New("kvstore: key is required")

	// ErrClosed is returned by a closed store.
	ErrClosed = errors.New("kvstore: store is closed")
)

// Store gets, sets and clears string values. Get reports found=false for a
// missing key without an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context, key string) error
	Close() error
}

func normalizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrEmptyKey
	}
	return key, nil
}

// Memory is a Store held in a map. The zero value is not usable; call NewMemory.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
	closed bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.values[key]

	return v, ok, nil
}

// Set stores value under key, replacing any previous value.
func (m *Memory) Set(_ context.Context, key, value string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.values[key] = value

	return nil
}

// Clear removes key. Clearing a missing key is not an error.
func (m *Memory) Clear(_ context.Context, key string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.values, key)

	return nil
}

// Close drops every value.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.values = nil

	return nil
}
