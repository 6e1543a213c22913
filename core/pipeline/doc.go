// Package pipeline executes the request-processing pipeline between a raw
// HTTP transport and an application handler module: it normalizes the inbound
// request, decodes the payload by content type, runs the ordered handler
// chain for the request's method with threaded state, resolves any failure
// through the two-tier error protocol, encodes the result per the accept
// header, and writes exactly one response.
//
// A pipeline is built once per module and is safe for concurrent use; all
// per-request values (request, opaque state, per-request codec and method
// specs) are owned by the single request being processed.
//
//	p := pipeline.New[AppState](widgetsModule{},
//		pipeline.WithLogger[AppState](slog.Default()),
//		pipeline.WithBindings[AppState](pipeline.PathValues("id")),
//	)
//	mux.Handle("/v1/widgets/{id}", p)
//
// Failure handling is a redirection, not a parallel path: every signal
// (405, 501, 400, 500, and the empty-chain 204) and every opaque failure is
// recovered exactly once, converted into a response, and sent through the
// same encode and write tail as a normal success.
package pipeline
