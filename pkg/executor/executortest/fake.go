// Package executortest provides a scripted Executor for tests.
package executortest

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Call records one command invocation
type Call struct {
	Dir  string
	Name string
	Args []string
}

// Handler answers a call. It may create files the real tool would have written.
type Handler func(call Call) (string, error)

// Fake routes commands to per-binary handlers and records every call
type Fake struct {
	mu       sync.Mutex
	handlers map[string]Handler
	missing  map[string]bool
	calls    []Call
}

func New() *Fake {
	return &Fake{
		handlers: map[string]Handler{},
		missing:  map[string]bool{},
	}
}

// On registers the handler for a binary name
func (f *Fake) On(name string, h Handler) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[name] = h
	return f
}

// Missing makes LookPath fail for name
func (f *Fake) Missing(name string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.missing[name] = true
	return f
}

// Calls returns a copy of the recorded calls
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsTo returns the recorded calls for one binary
func (f *Fake) CallsTo(name string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func (f *Fake) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.ExecuteInDir(ctx, "", name, args...)
}

func (f *Fake) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	call := Call{Dir: dir, Name: name, Args: append([]string(nil), args...)}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	h, ok := f.handlers[name]
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("command '%s' failed: no handler", name)
	}
	return h(call)
}

func (f *Fake) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.missing[name] {
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}
	return "/usr/bin/" + name, nil
}

// ArgAfter returns the argument following flag, or "" when absent
func (c Call) ArgAfter(flag string) string {
	for i := 0; i < len(c.Args)-1; i++ {
		if c.Args[i] == flag {
			return c.Args[i+1]
		}
	}
	return ""
}

// Has reports whether arg appears in the call
func (c Call) Has(arg string) bool {
	for _, a := range c.Args {
		if a == arg {
			return true
		}
	}
	return false
}

func (c Call) String() string {
	return c.Name + " " + strings.Join(c.Args, " ")
}
