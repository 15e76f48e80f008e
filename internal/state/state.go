// Package state keeps the view state of every file shown at once.
package state

import (
	"github.com/sokinpui/mdv/internal/perf"
	"github.com/sokinpui/mdv/internal/virtual"
	"github.com/sokinpui/mdv/model"
)

// Manager owns one controller per file identity. Controllers are never
// shared between files.
type Manager struct {
	limits perf.Limits
	order  []string
	byID   map[string]*virtual.Controller
}

// New creates an empty manager.
func New(limits perf.Limits) *Manager {
	return &Manager{
		limits: limits,
		byID:   make(map[string]*virtual.Controller),
	}
}

// Sync replaces the set of files. Files already known keep their window,
// new files start with a fresh one and files no longer present are
// dropped. Diffs of the same file are merged, in order, into one. The
// returned controllers follow the order of diffs.
func (m *Manager) Sync(diffs []model.FileDiff) []*virtual.Controller {
	diffs = model.MergeFiles(diffs)
	next := make(map[string]*virtual.Controller, len(diffs))
	order := make([]string, 0, len(diffs))

	for _, d := range diffs {
		id := d.ID()
		c, ok := m.byID[id]
		if ok {
			c.SetDiff(d)
		} else {
			c = virtual.New(d, m.limits)
		}
		next[id] = c
		order = append(order, id)
	}

	m.byID = next
	m.order = order
	return m.Controllers()
}

// Controllers returns the controllers in display order.
func (m *Manager) Controllers() []*virtual.Controller {
	out := make([]*virtual.Controller, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out
}

// Get returns the controller for a file identity.
func (m *Manager) Get(id string) (*virtual.Controller, bool) {
	c, ok := m.byID[id]
	return c, ok
}

// Len is the number of files.
func (m *Manager) Len() int { return len(m.order) }
