package session

import (
	"strings"
	"sync"

	"github.com/dgallion1/covolex/internal/report"
)

// Selection accumulates the operator's chosen tuples until a report is
// generated. Uniqueness is keyed on (brand, category, field): re-adding an
// existing tuple is reported as already present, never silently duplicated.
type Selection struct {
	mu    sync.Mutex
	items []report.Item
	index map[string]bool
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{index: make(map[string]bool)}
}

func key(brand string, category, field string) string {
	return strings.Join([]string{brand, category, field}, "\x00")
}

// Add appends one tuple, reporting false when the (brand, category, field)
// key is already present.
func (s *Selection) Add(it report.Item) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(it.Brand, string(it.Category), it.Field)
	if s.index[k] {
		return false
	}
	s.index[k] = true
	s.items = append(s.items, it)
	return true
}

// AddAll adds a batch and reports how many were added vs already present.
func (s *Selection) AddAll(items []report.Item) (added, existing int) {
	for _, it := range items {
		if s.Add(it) {
			added++
		} else {
			existing++
		}
	}
	return added, existing
}

// Remove drops one tuple by key, reporting whether it was present.
func (s *Selection) Remove(brand, category, field string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(brand, category, field)
	if !s.index[k] {
		return false
	}
	delete(s.index, k)
	for i, it := range s.items {
		if it.Brand == brand && string(it.Category) == category && it.Field == field {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	return true
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.index = make(map[string]bool)
}

// Items returns a copy of the selection in insertion order.
func (s *Selection) Items() []report.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]report.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len reports the number of accumulated tuples.
func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
