package pipeline

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/conduit/core/codec"
	"github.com/dmitrymomot/conduit/core/handler"
	"github.com/dmitrymomot/conduit/core/logger"
)

// BindingFunc extracts the path-parameter bindings for a request. Routing
// itself happens outside the pipeline; this only reads what the router
// already resolved.
type BindingFunc func(r *http.Request) map[string]string

// PathValues builds a BindingFunc on top of net/http's PathValue for the
// named route parameters, for use with the standard library's pattern mux.
func PathValues(names ...string) BindingFunc {
	return func(r *http.Request) map[string]string {
		bindings := make(map[string]string, len(names))
		for _, name := range names {
			if v := r.PathValue(name); v != "" {
				bindings[name] = v
			}
		}
		return bindings
	}
}

// ServeHTTP implements http.Handler: it normalizes the transport request,
// runs the pipeline, writes the response, and emits one access-log record.
func (p *Pipeline[S]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := p.newRequest(r)

	var body []byte
	if r.Body != nil && r.ContentLength != 0 {
		var err error
		if body, err = io.ReadAll(r.Body); err != nil {
			resp := p.encodeResponse(req, p.resolve(req, err), codec.DefaultSpec())
			p.send(w, req, resp)
			return
		}
	}

	p.send(w, req, p.Do(req, body))
}

// newRequest builds the canonical request value from transport primitives,
// body unset. Header keys are lower-cased; multi-valued headers and query
// parameters keep their first value.
func (p *Pipeline[S]) newRequest(r *http.Request) *handler.Request {
	// Unknown methods map to the zero Method, which no method spec lists,
	// so the chain executor answers 405.
	method, _ := handler.ParseMethod(r.Method)

	headers := make(map[string]string, len(r.Header))
	for name, values := range r.Header {
		if len(values) > 0 {
			headers[strings.ToLower(name)] = values[0]
		}
	}

	query := make(map[string]string)
	for name, values := range r.URL.Query() {
		if len(values) > 0 {
			query[name] = values[0]
		}
	}

	var bindings map[string]string
	if p.bindings != nil {
		bindings = p.bindings(r)
	}
	if bindings == nil {
		bindings = make(map[string]string)
	}

	return &handler.Request{
		ID:         p.newID(),
		Method:     method,
		Path:       r.URL.Path,
		Proto:      r.Proto,
		Host:       r.Host,
		RemoteAddr: r.RemoteAddr,
		Headers:    headers,
		Bindings:   bindings,
		Query:      query,
	}
}

// send writes the finalized response to the transport and logs the access
// record. Transport write failures are outside the pipeline's recovery
// scope.
func (p *Pipeline[S]) send(w http.ResponseWriter, req *handler.Request, resp *handler.Response) {
	for name, value := range resp.Headers {
		w.Header().Set(name, value)
	}
	w.WriteHeader(resp.Status)
	if b, ok := resp.Body.([]byte); ok && len(b) > 0 {
		_, _ = w.Write(b)
	}
	p.access(req, resp.Status)
}

// access emits one structured log record per request. Absent fields are
// logged as "-".
func (p *Pipeline[S]) access(req *handler.Request, status int) {
	p.logger.LogAttrs(context.Background(), slog.LevelInfo, "request completed",
		logger.Component("pipeline"),
		logger.Event("access"),
		logger.RemoteAddr(orDash(req.RemoteAddr)),
		logger.Host(orDash(req.Host)),
		logger.Method(orDash(string(req.Method))),
		logger.Path(orDash(req.Path)),
		logger.Proto(orDash(req.Proto)),
		logger.StatusCode(status),
		logger.UserAgent(orDash(req.Header("user-agent"))),
		logger.RequestID(req.ID),
	)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
