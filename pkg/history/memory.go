package history

import (
	"net/http"
	"sync"
)

// Memory is an in-process history stack. It starts at "/" and behaves like a
// browser session: pushing after going back discards the forward entries.
type Memory struct {
	base    string
	mu      sync.RWMutex
	entries []string
	index   int
}

// NewMemoryHistory creates an in-memory history positioned at "/".
func NewMemoryHistory(base string) *Memory {
	return &Memory{
		base:    NormalizeBase(base),
		entries: []string{"/"},
	}
}

func (m *Memory) Mode() Mode   { return ModeMemory }
func (m *Memory) Base() string { return m.base }

// Location ignores the request and returns the current stack entry.
func (m *Memory) Location(r *http.Request) string {
	return m.Current()
}

func (m *Memory) Href(location string) string {
	return join(m.base, location)
}

// Push appends location after the current entry.
func (m *Memory) Push(location string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries[:m.index+1], location)
	m.index = len(m.entries) - 1
}

// Replace overwrites the current entry.
func (m *Memory) Replace(location string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[m.index] = location
}

// Back moves one entry back. It reports false at the start of the stack.
func (m *Memory) Back() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.index == 0 {
		return m.entries[0], false
	}
	m.index--
	return m.entries[m.index], true
}

// Forward moves one entry forward. It reports false at the end of the stack.
func (m *Memory) Forward() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.index == len(m.entries)-1 {
		return m.entries[m.index], false
	}
	m.index++
	return m.entries[m.index], true
}

// Current returns the entry the history is positioned at.
func (m *Memory) Current() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.entries[m.index]
}

// Len returns the number of entries in the stack.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}
