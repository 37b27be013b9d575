package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"
)

type closer struct {
	closed int
}

func (c *closer) Close() error {
	c.closed++
	return nil
}

func TestShutdownRunsHooksInReverseOrder(t *testing.T) {
	m := New(time.Second, nil)

	var order []string
	for _, name := range []string{"postgres", "redis", "http_server"} {
		name := name
		m.Register(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	if err := m.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	want := []string{"http_server", "redis", "postgres"}
	if len(order) != len(want) {
		t.Fatalf("order = %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestShutdownCollectsErrorsAndContinues(t *testing.T) {
	m := New(time.Second, nil)

	broken := errors.New("connection reset")
	ran := false
	m.Register("first", func(context.Context) error {
		ran = true
		return nil
	})
	m.Register("second", func(context.Context) error { return broken })

	err := m.Shutdown(context.Background())
	if !errors.Is(err, broken) {
		t.Errorf("err = %v, want wrapped %v", err, broken)
	}
	if !ran {
		t.Error("hook after the failing one was skipped")
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	m := New(time.Second, nil)

	calls := 0
	m.Register("once", func(context.Context) error {
		calls++
		return nil
	})

	if err := m.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := m.Shutdown(context.Background()); err != nil {
		t.Fatalf("second Shutdown: %v", err)
	}
	if calls != 1 {
		t.Errorf("hook ran %d times, want 1", calls)
	}
}

func TestRegisterCloser(t *testing.T) {
	m := New(time.Second, nil)

	c := &closer{}
	m.RegisterCloser("store", c)

	if err := m.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if c.closed != 1 {
		t.Errorf("Close called %d times, want 1", c.closed)
	}
}
