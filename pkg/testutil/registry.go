package testutil

import (
	"context"
	"sync"

	errs "github.com/ajxudir/cargo-stabilize/pkg/errors"
)

// FakeRegistry is a scripted registry client.
//
// Names without a scripted answer return *errors.NotFoundError. Every call is
// recorded in order.
type FakeRegistry struct {
	mu       sync.Mutex
	versions map[string]string
	errors   map[string]error
	calls    []string
	onCall   func(name string)
}

// NewRegistry creates an empty FakeRegistry.
func NewRegistry() *FakeRegistry {
	return &FakeRegistry{
		versions: make(map[string]string),
		errors:   make(map[string]error),
	}
}

// WithVersion scripts the latest version of name.
//
// Parameters:
//   - name: Crate name as queried
//   - version: Version to return
//
// Returns:
//   - *FakeRegistry: Self for method chaining
func (f *FakeRegistry) WithVersion(name, version string) *FakeRegistry {
	f.versions[name] = version
	return f
}

// WithError scripts a failure for name.
func (f *FakeRegistry) WithError(name string, err error) *FakeRegistry {
	f.errors[name] = err
	return f
}

// OnCall registers fn to run at the start of every Latest call, e.g. to
// cancel a context mid-run.
func (f *FakeRegistry) OnCall(fn func(name string)) *FakeRegistry {
	f.onCall = fn
	return f
}

// Latest returns the scripted answer for name.
func (f *FakeRegistry) Latest(_ context.Context, name string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	hook := f.onCall
	f.mu.Unlock()

	if hook != nil {
		hook(name)
	}
	if err, ok := f.errors[name]; ok {
		return "", err
	}
	if v, ok := f.versions[name]; ok {
		return v, nil
	}
	return "", &errs.NotFoundError{Registry: "crates.io", Name: name}
}

// Calls returns the queried names in call order.
func (f *FakeRegistry) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}
