package plugin

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

// testPlugin implements Plugin + BeforeDecide + AfterDecide.
type testPlugin struct {
	beforeCalled bool
	afterCalled  bool
}

func (t *testPlugin) Name() string { return "test-plugin" }

func (t *testPlugin) OnBeforeDecide(_ context.Context, _, _ any) error {
	t.beforeCalled = true
	return nil
}

func (t *testPlugin) OnAfterDecide(_ context.Context, _, _, _ any) error {
	t.afterCalled = true
	return nil
}

// minimalPlugin only implements Plugin (no hooks).
type minimalPlugin struct{}

func (m *minimalPlugin) Name() string { return "minimal" }

// failingPlugin always errors from its hook.
type failingPlugin struct{}

func (f *failingPlugin) Name() string { return "failing" }

func (f *failingPlugin) OnAfterDecide(_ context.Context, _, _, _ any) error {
	return errors.New("boom")
}

func TestRegistryDispatch(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(slog.Default())

	tp := &testPlugin{}
	reg.Register(tp)
	reg.Register(&minimalPlugin{})

	if len(reg.Plugins()) != 2 {
		t.Fatalf("expected 2 plugins, got %d", len(reg.Plugins()))
	}

	reg.EmitBeforeDecide(ctx, nil, nil)
	if !tp.beforeCalled {
		t.Fatal("OnBeforeDecide was not called")
	}

	reg.EmitAfterDecide(ctx, nil, nil, nil)
	if !tp.afterCalled {
		t.Fatal("OnAfterDecide was not called")
	}
}

func TestRegistryHookErrorDoesNotPropagate(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(slog.Default())
	reg.Register(&failingPlugin{})

	// Must not panic; the error is logged and swallowed.
	reg.EmitAfterDecide(ctx, nil, nil, nil)
}

func TestRegistryNilLogger(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Register(&failingPlugin{})
	reg.EmitAfterDecide(context.Background(), nil, nil, nil)
}
