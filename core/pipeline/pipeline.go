package pipeline

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/conduit/core/codec"
	"github.com/dmitrymomot/conduit/core/handler"
)

// Pipeline drives requests through a single handler module. Module
// capabilities (initializer, error handlers) are resolved once at
// construction, never per call.
type Pipeline[S any] struct {
	module   handler.Module[S]
	handlers map[string]handler.Func[S]
	routes   handler.MethodSpec
	init     handler.Initializer[S]
	abort    handler.AbortHandler
	failure  handler.FailureHandler
	logger   *slog.Logger
	bindings BindingFunc
	newID    func() string
}

// Option configures a pipeline.
type Option[S any] func(*Pipeline[S])

// WithLogger sets the logger used for access records and failure reports.
// The default discards everything.
func WithLogger[S any](log *slog.Logger) Option[S] {
	return func(p *Pipeline[S]) {
		if log != nil {
			p.logger = log
		}
	}
}

// WithBindings sets how path parameters are extracted from the incoming
// request. The default yields no bindings.
func WithBindings[S any](fn BindingFunc) Option[S] {
	return func(p *Pipeline[S]) {
		p.bindings = fn
	}
}

// WithRequestID sets the request ID generator. The default is UUID v4.
func WithRequestID[S any](gen func() string) Option[S] {
	return func(p *Pipeline[S]) {
		if gen != nil {
			p.newID = gen
		}
	}
}

// New builds a pipeline serving the given module.
func New[S any](module handler.Module[S], opts ...Option[S]) *Pipeline[S] {
	p := &Pipeline[S]{
		module:   module,
		handlers: module.Handlers(),
		routes:   module.Routes(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)), // No-op logger by default
		newID:    func() string { return uuid.New().String() },
	}

	if p.routes == nil {
		p.routes = handler.DefaultMethodSpec()
	}
	if init, ok := module.(handler.Initializer[S]); ok {
		p.init = init
	}
	if ah, ok := module.(handler.AbortHandler); ok {
		p.abort = ah
	}
	if fh, ok := module.(handler.FailureHandler); ok {
		p.failure = fh
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Do runs the full pipeline for one normalized request and its raw body
// bytes. It never panics and always returns a response whose body holds the
// encoded bytes and whose headers carry the negotiated content type. The
// transport adapter (ServeHTTP) and tests are the intended callers.
func (p *Pipeline[S]) Do(req *handler.Request, body []byte) *handler.Response {
	spec, routes, state, err := p.initialize(req)
	if err != nil {
		return p.encodeResponse(req, p.resolve(req, err), spec)
	}

	resp, err := p.process(req, body, spec, routes, state)
	if err != nil {
		resp = p.resolve(req, err)
	}

	return p.encodeResponse(req, resp, spec)
}

// initialize resolves the per-request codec spec, method spec, and initial
// opaque state, consulting the module's optional initializer. The
// initializer runs inside a protected scope so a panic surfaces as an
// opaque failure instead of escaping the pipeline.
func (p *Pipeline[S]) initialize(req *handler.Request) (spec *codec.Spec, routes handler.MethodSpec, state S, err error) {
	spec = codec.DefaultSpec()
	routes = p.routes

	if p.init == nil {
		return spec, routes, state, nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = newPanicError(r)
		}
	}()

	ini, ierr := p.init.Init(req)
	if ierr != nil {
		return spec, routes, state, ierr
	}
	if ini == nil {
		return spec, routes, state, nil
	}

	state = ini.State
	if ini.Routes != nil {
		routes = ini.Routes
	}
	if ini.Codecs != nil {
		spec = ini.Codecs
	}
	return spec, routes, state, nil
}

// process runs the decode stage and the handler chain.
func (p *Pipeline[S]) process(req *handler.Request, body []byte, spec *codec.Spec, routes handler.MethodSpec, state S) (*handler.Response, error) {
	if err := p.decodeBody(req, body, spec); err != nil {
		return nil, err
	}
	return p.runChain(req, routes, state)
}

var _ http.Handler = (*Pipeline[struct{}])(nil)
