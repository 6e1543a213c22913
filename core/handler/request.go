package handler

// Method is an HTTP method from the fixed set the pipeline understands.
type Method string

const (
	GET     Method = "GET"
	POST    Method = "POST"
	PUT     Method = "PUT"
	PATCH   Method = "PATCH"
	DELETE  Method = "DELETE"
	HEAD    Method = "HEAD"
	OPTIONS Method = "OPTIONS"
)

var methods = map[string]Method{
	"GET":     GET,
	"POST":    POST,
	"PUT":     PUT,
	"PATCH":   PATCH,
	"DELETE":  DELETE,
	"HEAD":    HEAD,
	"OPTIONS": OPTIONS,
}

// ParseMethod maps a transport method string to the enumerated set.
// The second return value is false for methods outside the set.
func ParseMethod(s string) (Method, bool) {
	m, ok := methods[s]
	return m, ok
}

// Request is the protocol-agnostic view of one inbound call, created once by
// the pipeline's normalizer. Apart from Body, which the decode stage attaches
// before the handler chain runs, it is never mutated after construction and
// handlers must treat it as read-only.
type Request struct {
	ID         string // per-request identifier, used in access logs
	Method     Method
	Path       string
	Proto      string
	Host       string
	RemoteAddr string

	// Headers holds single-valued request headers keyed by lower-cased name.
	Headers map[string]string

	// Bindings holds path parameters resolved by the routing layer.
	// The pipeline treats both keys and values as opaque.
	Bindings map[string]string

	// Query holds single-valued query parameters.
	Query map[string]string

	// Body is the decoded payload. It is nil until the decode stage runs and
	// an empty map when the request carried no body.
	Body any
}

// Header returns the value of the named header, matching the transport's
// case handling (lower-cased keys).
func (r *Request) Header(name string) string {
	return r.Headers[name]
}

// Binding returns the named path parameter, or "" when absent.
func (r *Request) Binding(name string) string {
	return r.Bindings[name]
}

// QueryValue returns the named query parameter, or "" when absent.
func (r *Request) QueryValue(name string) string {
	return r.Query[name]
}

// Response is the in-memory response a handler or the pipeline produces.
// Body holds a structured value until the encode stage runs, and the encoded
// bytes afterwards.
type Response struct {
	Status  int
	Headers map[string]string
	Body    any
}

// NewResponse creates a response with the given status and structured body.
func NewResponse(status int, body any) *Response {
	return &Response{
		Status:  status,
		Headers: make(map[string]string),
		Body:    body,
	}
}

// SetHeader sets a response header. Note that the encode stage currently
// replaces all handler-set headers with the negotiated content type; see the
// pipeline package.
func (r *Response) SetHeader(name, value string) {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	r.Headers[name] = value
}
