package handler

import "github.com/dmitrymomot/conduit/core/codec"

// Module is the capability interface a handler module implements to be
// served by a pipeline. Handlers and Routes are read once at pipeline
// construction and must be side-effect free; the returned values are shared
// across concurrent requests and treated as read-only.
type Module[S any] interface {
	// Handlers returns the module's named handler functions.
	Handlers() map[string]Func[S]

	// Routes returns the per-method handler chains. A nil result selects
	// the system default method spec.
	Routes() MethodSpec
}

// Init carries the per-request configuration an Initializer produces.
// Zero-value fields keep the module-level defaults.
type Init[S any] struct {
	// State seeds the opaque state threaded through the handler chain.
	State S

	// Routes overrides the module's method spec for this request.
	Routes MethodSpec

	// Codecs overrides the codec spec for this request.
	Codecs *codec.Spec
}

// Initializer is an optional module capability invoked once per request
// before the decode stage. Construction must be cheap and side-effect free:
// the returned values are owned by the single request being processed.
type Initializer[S any] interface {
	Init(r *Request) (*Init[S], error)
}

// AbortHandler is an optional module capability invoked for status-carrying
// signals. Returning nil falls through to the built-in handler, which passes
// the signal's response along unchanged.
type AbortHandler interface {
	HandleAbort(r *Request, status int, resp *Response) *Response
}

// FailureHandler is an optional module capability invoked for opaque
// failures. Returning nil falls through to the built-in handler, which logs
// the failure and responds 500.
type FailureHandler interface {
	HandleFailure(r *Request, err error) *Response
}
