package handler

import "fmt"

// Func is one step of a handler chain. It receives the normalized request
// and the opaque state produced by the previous step, and reports its outcome
// through the returned triple:
//
//   - (state, nil, nil): continuation, the chain advances with the new state
//   - (_, resp, nil): terminal success, resp is sent after encoding
//   - (_, _, err): terminal failure, routed to the error resolver; a non-nil
//     error always takes precedence over a non-nil response
type Func[S any] func(r *Request, state S) (S, *Response, error)

// MethodSpec maps an HTTP method to the ordered handler-function names
// invoked for it. The pipeline never runs a function whose name is not
// listed for the request's method.
type MethodSpec map[Method][]string

// defaultMethodSpec is the process-wide default chain layout. It is built
// once and treated as read-only; DefaultMethodSpec hands out copies.
var defaultMethodSpec = MethodSpec{
	GET:    {"index"},
	POST:   {"create"},
	PUT:    {"update"},
	PATCH:  {"modify"},
	DELETE: {"delete"},
}

// DefaultMethodSpec returns a copy of the system default method spec, used
// when a module's Routes returns nil and no per-request override applies.
func DefaultMethodSpec() MethodSpec {
	spec := make(MethodSpec, len(defaultMethodSpec))
	for m, names := range defaultMethodSpec {
		spec[m] = append([]string(nil), names...)
	}
	return spec
}

// Signal is a deliberate, status-carrying short-circuit: both error
// terminations (405, 501, 400, 500) and early successful ones (the empty
// chain 204) travel through the pipeline as signals. Any other error a
// handler returns is treated as an opaque failure.
type Signal struct {
	Status   int
	Response *Response
}

// NewSignal creates a signal carrying a fresh response with the given status
// and structured body.
func NewSignal(status int, body any) *Signal {
	return &Signal{Status: status, Response: NewResponse(status, body)}
}

// Error implements the error interface.
func (s *Signal) Error() string {
	return fmt.Sprintf("signal %d", s.Status)
}
