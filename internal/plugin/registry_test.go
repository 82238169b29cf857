package plugin

import "testing"

func TestRegistrationIsIdempotentReplace(t *testing.T) {
	r := NewRegistry()
	calls := 0
	r.On("on_block_place", func(args ...any) { calls++ })
	r.On("on_block_place", func(args ...any) { calls += 10 })

	r.Fire("on_block_place")

	if calls != 10 {
		t.Fatalf("expected only the second registration to run, got calls=%d", calls)
	}
}

func TestFireOnUnregisteredEventIsNoop(t *testing.T) {
	r := NewRegistry()
	r.Fire("nothing_registered") // must not panic
}

func TestPanickingHandlerDoesNotPropagate(t *testing.T) {
	r := NewRegistry()
	ran := false
	r.On("on_block_break", func(args ...any) { panic("boom") })

	func() {
		defer func() {
			if recover() != nil {
				t.Fatalf("panic escaped Fire")
			}
		}()
		r.Fire("on_block_break")
		ran = true
	}()

	if !ran {
		t.Fatalf("Fire should have returned normally after recovering")
	}

	// Registration remains installed after a panic.
	r.mu.Lock()
	_, stillInstalled := r.handlers["on_block_break"]
	r.mu.Unlock()
	if !stillInstalled {
		t.Fatalf("panicking handler was removed from the registry")
	}
	calledAgain := false
	r.On("on_block_break", func(args ...any) { calledAgain = true })
	r.Fire("on_block_break")
	if !calledAgain {
		t.Fatalf("replacement handler should still run")
	}
}
