// Package handler defines the contract between the request pipeline and
// application handler modules. It provides the protocol-agnostic request and
// response values, the handler function calling convention, and the typed
// module interface the pipeline resolves at construction time.
//
// # Handler Functions
//
// A handler function receives the normalized request and the opaque state
// accumulated by preceding handlers in the chain, and returns one of three
// outcomes through its (state, response, error) triple:
//
//	func create(r *handler.Request, s AppState) (AppState, *handler.Response, error) {
//		// continuation: pass new state to the next handler in the chain
//		return s, nil, nil
//
//		// terminal success: stop the chain and send this response
//		return s, handler.NewResponse(http.StatusOK, payload), nil
//
//		// terminal failure: short-circuit with a status-carrying signal
//		return s, nil, handler.NewSignal(http.StatusForbidden, "nope")
//
//		// terminal failure: opaque error, converted to 500 by the pipeline
//		return s, nil, errors.New("database unavailable")
//	}
//
// A non-nil error always wins over a non-nil response.
//
// # Handler Modules
//
// A module bundles named handler functions with the per-method chains that
// invoke them:
//
//	type widgets struct{}
//
//	func (widgets) Handlers() map[string]handler.Func[AppState] {
//		return map[string]handler.Func[AppState]{
//			"authorize": authorize,
//			"create":    create,
//		}
//	}
//
//	func (widgets) Routes() handler.MethodSpec {
//		return handler.MethodSpec{
//			handler.POST: {"authorize", "create"},
//		}
//	}
//
// Optional capabilities are separate interfaces (Initializer, AbortHandler,
// FailureHandler) detected once when the pipeline is built, never per call.
package handler
