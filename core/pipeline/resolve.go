package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/conduit/core/handler"
	"github.com/dmitrymomot/conduit/core/logger"
)

// resolve converts a pipeline failure into the response to send. Tier 1
// dispatches to the module's matching error handler when present; Tier 2 is
// the built-in fallback, used when the module handler is absent, returns
// nil, or panics. The resolved response still flows through the encode stage
// like any success.
func (p *Pipeline[S]) resolve(req *handler.Request, err error) *handler.Response {
	var sig *handler.Signal
	if errors.As(err, &sig) {
		if p.abort != nil {
			if resp, ok := p.callAbort(req, sig); ok {
				return resp
			}
		}
		// Built-in: pass the signal's response through unchanged.
		if sig.Response == nil {
			return handler.NewResponse(sig.Status, nil)
		}
		return sig.Response
	}

	if p.failure != nil {
		if resp, ok := p.callFailure(req, err); ok {
			return resp
		}
	}

	// Built-in: log the failure detail and answer with a fixed 500.
	attrs := []slog.Attr{
		logger.Component("pipeline"),
		logger.Event("failure"),
		logger.Method(string(req.Method)),
		logger.Path(req.Path),
		logger.RequestID(req.ID),
		logger.Error(err),
	}
	var pe *panicError
	if errors.As(err, &pe) {
		attrs = append(attrs, slog.String("stack", string(pe.stack)))
	}
	p.logger.LogAttrs(context.Background(), slog.LevelError, "unhandled failure", attrs...)

	return handler.NewResponse(http.StatusInternalServerError, "Internal server error")
}

// callAbort invokes the module's status-signal handler inside a protected
// scope. A panic is logged and reported as not-handled so the built-in
// fallback takes over; a nil response falls through the same way.
func (p *Pipeline[S]) callAbort(req *handler.Request, sig *handler.Signal) (resp *handler.Response, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.LogAttrs(context.Background(), slog.LevelError, "abort handler failed",
				logger.Component("pipeline"),
				logger.RequestID(req.ID),
				logger.StatusCode(sig.Status),
				logger.Error(newPanicError(r)),
			)
			resp, ok = nil, false
		}
	}()

	if resp = p.abort.HandleAbort(req, sig.Status, sig.Response); resp == nil {
		return nil, false
	}
	return resp, true
}

// callFailure invokes the module's opaque-failure handler inside a protected
// scope, with the same fallback rules as callAbort.
func (p *Pipeline[S]) callFailure(req *handler.Request, err error) (resp *handler.Response, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.LogAttrs(context.Background(), slog.LevelError, "failure handler failed",
				logger.Component("pipeline"),
				logger.RequestID(req.ID),
				logger.Error(newPanicError(r)),
			)
			resp, ok = nil, false
		}
	}()

	if resp = p.failure.HandleFailure(req, err); resp == nil {
		return nil, false
	}
	return resp, true
}
