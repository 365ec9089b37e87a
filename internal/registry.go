package internal

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrymomot/modkit/pkg/eventbus"
	"github.com/dmitrymomot/modkit/pkg/hookchain"
	"github.com/dmitrymomot/modkit/pkg/middleware"
)

// Registry errors.
var (
	// ErrRegistryFrozen is returned when registering after Freeze.
	ErrRegistryFrozen = errors.New("modkit: registry is frozen")

	// ErrAlreadyApplied is returned when a ledger section is applied to a
	// live component more than once in the same process lifecycle.
	ErrAlreadyApplied = errors.New("modkit: registry already applied")
)

// RouteDef is a deferred route registration. The kernel does not
// interpret Meta; it is carried verbatim for route modules and tooling
// (schemas, docs, feature flags).
type RouteDef struct {
	Meta        map[string]any
	Handler     HandlerFunc
	Method      string
	Path        string
	Middlewares []Middleware
}

// hookDef and eventDef pair a name with a deferred handler.
type hookDef struct {
	handler hookchain.Handler
	stage   string
}

type eventDef struct {
	listener eventbus.Listener
	topic    string
}

// Registry accumulates route, hook, event, and middleware registrations
// made by feature modules before the serving components exist, then
// applies them exactly once onto live instances during bootstrap.
//
// Modules typically register against Default() from their init functions;
// tests construct their own Registry and hand it to the app via
// WithRegistry, which keeps ordering and apply-once verifiable without a
// module loader.
type Registry struct {
	hooks       []hookDef
	events      []eventDef
	routes      []RouteDef
	routerMWs   []Middleware
	httpMWs     []middleware.Middleware
	applied     map[string]bool
	frozen      bool
	mu          sync.Mutex
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{applied: make(map[string]bool)}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry that feature modules imported
// for side effects register into.
func Default() *Registry {
	return defaultRegistry
}

// AddHook appends handler to the stage's deferred list.
func (r *Registry) AddHook(stage string, handler hookchain.Handler) error {
	if handler == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return ErrRegistryFrozen
	}
	r.hooks = append(r.hooks, hookDef{stage: stage, handler: handler})
	return nil
}

// AddEvent appends listener to the topic's deferred list.
func (r *Registry) AddEvent(topic string, listener eventbus.Listener) error {
	if listener == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return ErrRegistryFrozen
	}
	r.events = append(r.events, eventDef{topic: topic, listener: listener})
	return nil
}

// RegisterRoute appends a deferred route definition. On a method+path
// collision the first definition wins once applied (router behavior).
func (r *Registry) RegisterRoute(def RouteDef) error {
	if def.Handler == nil {
		return fmt.Errorf("modkit: route %s %s has no handler", def.Method, def.Path)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return ErrRegistryFrozen
	}
	r.routes = append(r.routes, def)
	return nil
}

// Use appends a router-bound middleware to the deferred list.
func (r *Registry) Use(mw Middleware) error {
	if mw == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return ErrRegistryFrozen
	}
	r.routerMWs = append(r.routerMWs, mw)
	return nil
}

// UseHTTP appends a generic continuation-style middleware to the
// deferred list for the plain net/http chain.
func (r *Registry) UseHTTP(mw middleware.Middleware) error {
	if mw == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return ErrRegistryFrozen
	}
	r.httpMWs = append(r.httpMWs, mw)
	return nil
}

// Freeze rejects all further registration. Called by the app once the
// ledger has been consumed, closing the import-time mutation window.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// ApplyHooks copies every deferred hook into chain in insertion order.
// Applying twice in one process lifecycle returns ErrAlreadyApplied.
func (r *Registry) ApplyHooks(chain *hookchain.Chain) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.markApplied("hooks"); err != nil {
		return err
	}
	for _, h := range r.hooks {
		chain.Register(h.stage, h.handler)
	}
	return nil
}

// ApplyEvents copies every deferred listener into bus in insertion order.
func (r *Registry) ApplyEvents(bus *eventbus.Bus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.markApplied("events"); err != nil {
		return err
	}
	for _, e := range r.events {
		bus.Subscribe(e.topic, e.listener)
	}
	return nil
}

// ApplyRoutes hands every deferred route to register in insertion order.
// The callback is the router's own registration call; the ledger does not
// interpret the definitions.
func (r *Registry) ApplyRoutes(register func(RouteDef)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.markApplied("routes"); err != nil {
		return err
	}
	for _, def := range r.routes {
		register(def)
	}
	return nil
}

// ApplyMiddlewares copies the deferred router-bound middlewares through
// useRouter and the generic ones into httpChain, in insertion order.
func (r *Registry) ApplyMiddlewares(useRouter func(Middleware), httpChain *middleware.Chain) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.markApplied("middlewares"); err != nil {
		return err
	}
	for _, mw := range r.routerMWs {
		useRouter(mw)
	}
	for _, mw := range r.httpMWs {
		httpChain.Use(mw)
	}
	return nil
}

func (r *Registry) markApplied(section string) error {
	if r.applied[section] {
		return fmt.Errorf("%w: %s", ErrAlreadyApplied, section)
	}
	r.applied[section] = true
	return nil
}

// Counts reports the number of deferred entries per section, for
// diagnostics and tests.
func (r *Registry) Counts() (hooks, events, routes, middlewares int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.hooks), len(r.events), len(r.routes), len(r.routerMWs) + len(r.httpMWs)
}
