package orchestrator

import (
	"context"
	"errors"
	"sync"

	"github.com/looplab/fsm"
)

// Slot states. Every resource gets its own slot; there is no shared page
// status.
const (
	StateIdle    = "idle"
	StateLoading = "loading"
	StateLoaded  = "loaded"
	StateErrored = "errored"
)

// Slot tracks the lifecycle of one loaded resource. Loads are re-enterable:
// a refresh moves loaded or errored back through loading. Each load gets a
// generation number; completions carrying a stale generation are dropped so
// a response that arrives after a newer load started cannot overwrite state.
type Slot[T any] struct {
	mu    sync.Mutex
	fsm   *fsm.FSM
	gen   uint64
	value T
	err   error
}

func NewSlot[T any]() *Slot[T] {
	return &Slot[T]{
		fsm: fsm.NewFSM(
			StateIdle,
			fsm.Events{
				// a load may start over an in-flight one; the older
				// completion is then dropped by its stale generation
				{Name: "load", Src: []string{StateIdle, StateLoading, StateLoaded, StateErrored}, Dst: StateLoading},
				{Name: "succeed", Src: []string{StateLoading}, Dst: StateLoaded},
				{Name: "fail", Src: []string{StateLoading}, Dst: StateErrored},
			},
			fsm.Callbacks{},
		),
	}
}

// Begin marks the slot loading and returns the generation token the caller
// must hand back to Complete.
func (s *Slot[T]) Begin(ctx context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fsm.Event(ctx, "load"); err != nil {
		// loading->loading is a no-op transition, not a failure
		var noTransition fsm.NoTransitionError
		if !errors.As(err, &noTransition) {
			return 0, err
		}
	}
	s.gen++
	return s.gen, nil
}

// Complete records the outcome of the load started with gen. Returns false
// when the completion was stale and discarded.
func (s *Slot[T]) Complete(ctx context.Context, gen uint64, value T, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	if err != nil {
		s.err = err
		s.fsm.Event(ctx, "fail")
		return true
	}
	s.value = value
	s.err = nil
	s.fsm.Event(ctx, "succeed")
	return true
}

func (s *Slot[T]) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fsm.Current()
}

// Get returns the loaded value. ok is false unless the slot is loaded.
func (s *Slot[T]) Get() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fsm.Current() != StateLoaded {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Err returns the failure of the most recent load, if the slot is errored.
func (s *Slot[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fsm.Current() != StateErrored {
		return nil
	}
	return s.err
}
