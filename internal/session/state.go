// Package session holds the shared slot map agents read and write during one
// request.
package session

import (
	"errors"
	"fmt"
	"sync"
)

const (
	SlotCalendarResults   = "calendar_results"
	SlotTaskResults       = "task_results"
	SlotReminderResults   = "reminder_results"
	SlotDailySummary      = "daily_summary"
	SlotCriticFeedback    = "critic_feedback"
	SlotAdjustmentResults = "adjustment_results"
	SlotActiveHours       = "habit:active_hours"
)

var ErrSlotOwned = errors.New("slot owned by another writer")

// ErrorMarker is stored in a slot when its producer failed. Readers treat it
// as "no data".
type ErrorMarker struct {
	Error string
}

// State is a slot map with a single writer per slot. Values are replaced
// whole; readers never see a partial write.
type State struct {
	mu     sync.RWMutex
	values map[string]any
	owners map[string]string
}

func New() *State {
	return &State{values: map[string]any{}, owners: map[string]string{}}
}

// Claim reserves slots for owner. It fails without claiming anything if any
// slot already belongs to someone else.
func (s *State) Claim(owner string, slots ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, slot := range slots {
		if current, ok := s.owners[slot]; ok && current != owner {
			return fmt.Errorf("claim %s for %s: %w (owner %s)", slot, owner, ErrSlotOwned, current)
		}
	}
	for _, slot := range slots {
		s.owners[slot] = owner
	}

	return nil
}

// Set replaces the value of slot. The first writer of an unclaimed slot
// becomes its owner.
func (s *State) Set(owner, slot string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.owners[slot]; ok && current != owner {
		return fmt.Errorf("set %s by %s: %w (owner %s)", slot, owner, ErrSlotOwned, current)
	}
	s.owners[slot] = owner
	s.values[slot] = value

	return nil
}

func (s *State) Get(slot string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[slot]
	return value, ok
}

// Lookup returns the slot value as T. A missing slot, an ErrorMarker or a
// value of another type all report false.
func Lookup[T any](s *State, slot string) (T, bool) {
	var zero T
	value, ok := s.Get(slot)
	if !ok {
		return zero, false
	}
	typed, ok := value.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Failed reports whether slot holds an ErrorMarker.
func (s *State) Failed(slot string) (ErrorMarker, bool) {
	return Lookup[ErrorMarker](s, slot)
}

// Snapshot returns a shallow copy of every slot.
func (s *State) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]any, len(s.values))
	for slot, value := range s.values {
		out[slot] = value
	}
	return out
}
