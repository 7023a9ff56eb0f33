package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"ntask/internal/service"
)

var (
	// ErrUnknownTool is returned when the model names a tool that is not registered.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrInvalidArguments is returned when the tool arguments are not valid JSON
	// for the tool's argument object.
	ErrInvalidArguments = errors.New("invalid arguments")
)

// IsCallError reports whether err was caused by the tool call itself rather
// than by the store: an unknown tool, undecodable arguments or a rejected task.
func IsCallError(err error) bool {
	var invalid *service.InvalidTaskError
	return errors.Is(err, ErrUnknownTool) ||
		errors.Is(err, ErrInvalidArguments) ||
		errors.As(err, &invalid)
}

// Handler executes a tool against the service with the model's raw JSON arguments.
// The returned string is handed back to the model verbatim.
type Handler func(ctx context.Context, svc service.Service, args json.RawMessage) (string, error)

// Tool is one action the model may call.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any // JSON schema of the arguments object
	Handler     Handler
}

// Registry holds registered tools.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool to the registry.
// Returns an error if the name is already registered.
func (r *Registry) Register(t Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[t.Name]; exists {
		return fmt.Errorf("tool already registered: %s", t.Name)
	}
	r.tools[t.Name] = t
	return nil
}

// Find looks up a tool by name.
func (r *Registry) Find(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// All returns all tools sorted by name.
func (r *Registry) All() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]Tool, len(names))
	for i, name := range names {
		result[i] = r.tools[name]
	}
	return result
}

// Dispatcher binds a registry to a service so tools can be invoked by name.
type Dispatcher struct {
	registry *Registry
	svc      service.Service
}

// NewDispatcher creates a dispatcher over the given registry and service.
func NewDispatcher(registry *Registry, svc service.Service) *Dispatcher {
	return &Dispatcher{registry: registry, svc: svc}
}

// Tools returns the tools the dispatcher can invoke.
func (d *Dispatcher) Tools() []Tool {
	return d.registry.All()
}

// Dispatch runs the named tool. Service errors are returned unmodified.
func (d *Dispatcher) Dispatch(ctx context.Context, name, args string) (string, error) {
	t, ok := d.registry.Find(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	raw := json.RawMessage(args)
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	return t.Handler(ctx, d.svc, raw)
}
