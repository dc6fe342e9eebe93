// Package dispatch routes uniform calls to resource operations. It knows
// nothing about resource internals: resources expose per-method capability
// flags and handlers, and the engine guarantees consistent status semantics
// (404/405/406/501) across all of them.
package dispatch

import (
	"log/slog"

	"uniform-http/call"
	"uniform-http/call/status"
)

// Result is the status-bearing outcome of a resource method.
type Result struct {
	Status status.Status
	Entity *call.Representation
}

// Resource is the capability contract a dispatch target fulfills. Flags may
// be call-dependent; the engine re-reads them on every report.
type Resource interface {
	AllowGet() bool
	AllowPost() bool
	AllowPut() bool
	AllowDelete() bool

	// Representations returns the candidate variants for GET/HEAD
	// content negotiation.
	Representations() []*call.Representation

	Post(entity *call.Representation) Result
	Put(entity *call.Representation) Result
	Delete() Result
}

// TargetFunc resolves the resource a call is aimed at. Returning false
// means not found.
type TargetFunc func(request *call.Request, response *call.Response) (Resource, bool)

// HandleFunc is a method handler. It updates the response in place.
type HandleFunc func(request *call.Request, response *call.Response)

// Options tunes a [Finder].
type Options struct {
	// FallbackLanguage is used when negotiation cannot produce a
	// language match. Empty disables the fallback.
	FallbackLanguage call.Language

	// Overrides replaces the built-in handler for a method.
	Overrides map[call.Method]HandleFunc

	// CatchAll handles absent and unrecognized methods. Nil leaves them
	// as no-ops (the response keeps its initial 200).
	CatchAll HandleFunc
}

// Finder finds the target resource of a call and dispatches the request
// method on it. One finder serves any number of sequential calls; it holds
// no per-call state.
type Finder struct {
	findTarget TargetFunc
	logger     *slog.Logger
	opts       Options

	handlers map[call.Method]HandleFunc
	catchAll HandleFunc

	started bool
}

func New(findTarget TargetFunc, logger *slog.Logger, opts Options) *Finder {
	f := &Finder{
		findTarget: findTarget,
		logger:     logger,
		opts:       opts,
	}

	f.handlers = map[call.Method]HandleFunc{
		call.MethodGet:     f.handleGet,
		call.MethodHead:    f.handleHead,
		call.MethodPost:    f.handlePost,
		call.MethodPut:     f.handlePut,
		call.MethodDelete:  f.handleDelete,
		call.MethodConnect: f.defaultHandle,
		call.MethodTrace:   f.defaultHandle,
		call.MethodOptions: f.handleOptions,
	}
	for method, handler := range opts.Overrides {
		f.handlers[method] = handler
	}

	f.catchAll = opts.CatchAll
	if f.catchAll == nil {
		f.catchAll = func(*call.Request, *call.Response) {}
	}

	return f
}

func (f *Finder) Start() { f.started = true }
func (f *Finder) Stop()  { f.started = false }

func (f *Finder) IsStarted() bool { return f.started }

// Handle dispatches one call. When the finder is not started, no handler
// executes and the response is left untouched beyond initialization.
func (f *Finder) Handle(request *call.Request, response *call.Response) {
	f.init(response)

	if !f.started {
		return
	}

	handler, ok := f.handlers[request.Method]
	if !ok || request.Method == "" {
		handler = f.catchAll
	}

	handler(request, response)
}

// init resets the per-call bookkeeping: a call starts as 200 OK with an
// empty allowed-methods set.
func (f *Finder) init(response *call.Response) {
	response.Status = status.OK
	if response.AllowedMethods == nil {
		response.AllowedMethods = call.NewMethodSet()
	}
}

// defaultHandle reports methods the engine does not implement.
func (f *Finder) defaultHandle(request *call.Request, response *call.Response) {
	response.Status = status.NotImplemented
}

// handleGet returns the best representation available from the target,
// negotiated against the client's preferences.
func (f *Finder) handleGet(request *call.Request, response *call.Response) {
	target, found := f.findTarget(request, response)
	if !found {
		response.Status = status.NotFound
		return
	}

	if target.AllowGet() {
		preferred := PreferredRepresentation(
			&request.Client.Accept, target.Representations(), f.opts.FallbackLanguage,
		)
		if preferred != nil {
			response.Entity = preferred
		} else {
			f.logger.Debug("no acceptable representation",
				"target", request.Ref.String())
			response.Status = status.NotAcceptable
		}
	} else {
		response.Status = status.MethodNotAllowed
	}

	f.setAllowedMethods(target, response)
}

// handleHead reuses the GET logic. Body suppression happens in the
// transport layer, which must send the entity headers without the entity.
func (f *Finder) handleHead(request *call.Request, response *call.Response) {
	f.handleGet(request, response)
}

func (f *Finder) handlePost(request *call.Request, response *call.Response) {
	f.handleWithEntity(request, response, Resource.AllowPost, Resource.Post)
}

func (f *Finder) handlePut(request *call.Request, response *call.Response) {
	f.handleWithEntity(request, response, Resource.AllowPut, Resource.Put)
}

// handleWithEntity covers the methods for which a request body is
// mandatory: without one the resource method is never invoked.
func (f *Finder) handleWithEntity(
	request *call.Request, response *call.Response,
	allowed func(Resource) bool,
	invoke func(Resource, *call.Representation) Result,
) {
	target, found := f.findTarget(request, response)
	if !found {
		response.Status = status.NotFound
		return
	}

	if allowed(target) {
		if request.EntityAvailable() {
			response.Status = invoke(target, request.Entity).Status
		} else {
			response.Status = status.NotAcceptable.WithReason("Missing request entity")
		}
	} else {
		response.Status = status.MethodNotAllowed
	}

	f.setAllowedMethods(target, response)
}

func (f *Finder) handleDelete(request *call.Request, response *call.Response) {
	target, found := f.findTarget(request, response)
	if !found {
		response.Status = status.NotFound
		return
	}

	if target.AllowDelete() {
		response.Status = target.Delete().Status
	} else {
		response.Status = status.MethodNotAllowed
	}

	f.setAllowedMethods(target, response)
}

// handleOptions leaves the response at its initial 200.
func (f *Finder) handleOptions(request *call.Request, response *call.Response) {}

// setAllowedMethods recomputes the allowed-methods set from the resource's
// current capability flags. Never cached: capabilities may be
// call-dependent.
func (f *Finder) setAllowedMethods(resource Resource, response *call.Response) {
	response.AllowedMethods.Clear()

	if resource.AllowGet() {
		response.AllowedMethods.Add(call.MethodHead)
		response.AllowedMethods.Add(call.MethodGet)
	}
	if resource.AllowDelete() {
		response.AllowedMethods.Add(call.MethodDelete)
	}
	if resource.AllowPost() {
		response.AllowedMethods.Add(call.MethodPost)
	}
	if resource.AllowPut() {
		response.AllowedMethods.Add(call.MethodPut)
	}
}
