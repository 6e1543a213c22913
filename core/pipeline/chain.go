package pipeline

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/dmitrymomot/conduit/core/handler"
)

// runChain invokes the ordered handler functions bound to the request's
// method, threading the opaque state between them and stopping at the first
// terminal outcome. All terminations other than a handler-returned response
// travel back as errors: 405 for an unmapped or empty method, 501 for a
// chain entry naming an unregistered handler, the thrown 204 for an
// exhausted chain, and the handler's own failure otherwise. A handler panic
// is recovered and surfaces as an opaque failure.
func (p *Pipeline[S]) runChain(req *handler.Request, routes handler.MethodSpec, state S) (resp *handler.Response, err error) {
	names := routes[req.Method]
	if len(names) == 0 {
		return nil, handler.NewSignal(http.StatusMethodNotAllowed, "Method not allowed")
	}

	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, newPanicError(r)
		}
	}()

	for _, name := range names {
		fn, ok := p.handlers[name]
		if !ok {
			return nil, handler.NewSignal(http.StatusNotImplemented, "Not implemented")
		}

		next, r, ferr := fn(req, state)
		if ferr != nil {
			return nil, ferr
		}
		if r != nil {
			return r, nil
		}
		state = next
	}

	// Exhaustion is an empty success, represented as a thrown 204 so it
	// passes through the same resolver tail as every other termination.
	return nil, handler.NewSignal(http.StatusNoContent, nil)
}

// panicError wraps a recovered panic value as an opaque failure.
type panicError struct {
	value any
	stack []byte
}

func newPanicError(value any) *panicError {
	return &panicError{value: value, stack: debug.Stack()}
}

// Error implements the error interface.
func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

// Unwrap allows errors.Is/As to work with wrapped panics.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
