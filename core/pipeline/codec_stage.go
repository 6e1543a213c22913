package pipeline

import (
	"net/http"

	"github.com/dmitrymomot/conduit/core/codec"
	"github.com/dmitrymomot/conduit/core/handler"
)

// decodeBody attaches the decoded payload to the request. An empty body
// becomes an empty structured value without touching the codec spec. Strict
// on input: an unmatched content type or a failing decoder is a 400 signal.
func (p *Pipeline[S]) decodeBody(req *handler.Request, body []byte, spec *codec.Spec) error {
	if len(body) == 0 {
		req.Body = map[string]any{}
		return nil
	}

	contentType := req.Header("content-type")
	if contentType == "" {
		contentType = codec.MIMEJSON
	}

	dec, ok := spec.DecoderFor(contentType)
	if !ok {
		return handler.NewSignal(http.StatusBadRequest, "Not supported content-type")
	}

	v, err := safeDecode(dec, body)
	if err != nil {
		return handler.NewSignal(http.StatusBadRequest, decodeFailure(contentType))
	}

	req.Body = v
	return nil
}

// encodeResponse serializes the response body per the accept header and
// shapes the outgoing headers. Lenient on output: an unmatched accept value
// falls back to the JSON encoder. An encoder failure becomes a 500 signal
// resolved like any other, then serialized with the built-in JSON encoder.
func (p *Pipeline[S]) encodeResponse(req *handler.Request, resp *handler.Response, spec *codec.Spec) *handler.Response {
	contentType := req.Header("accept")
	if contentType == "" {
		contentType = codec.MIMEJSON
	}

	enc, ok := spec.EncoderFor(contentType)
	if !ok {
		contentType = codec.MIMEJSON
		if enc, ok = spec.EncoderFor(contentType); !ok {
			enc = codec.EncodeJSON
		}
	}

	data, err := encodeBody(resp.Body, enc)
	if err != nil {
		sig := handler.NewSignal(http.StatusInternalServerError, encodeFailure(contentType))
		resp = p.resolve(req, sig)
		contentType = codec.MIMEJSON
		if data, err = encodeBody(resp.Body, codec.EncodeJSON); err != nil {
			data = nil
		}
	}

	resp.Body = data
	// TODO: merge handler-set headers instead of replacing them.
	resp.Headers = map[string]string{"content-type": contentType}
	return resp
}

// encodeBody serializes a structured body value. A nil body means no
// payload; a []byte body is already encoded and passes through untouched.
func encodeBody(v any, enc codec.Encoder) ([]byte, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	default:
		return safeEncode(enc, v)
	}
}

// safeDecode calls a codec-spec decoder inside a protected scope so a
// panicking application-supplied decoder reports as a decode failure.
func safeDecode(dec codec.Decoder, data []byte) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, newPanicError(r)
		}
	}()
	return dec(data)
}

// safeEncode calls a codec-spec encoder inside a protected scope.
func safeEncode(enc codec.Encoder, v any) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, newPanicError(r)
		}
	}()
	return enc(v)
}

func decodeFailure(contentType string) string {
	switch contentType {
	case codec.MIMEJSON:
		return "Can't decode JSON payload"
	case codec.MIMEMsgPack:
		return "Can't decode MsgPack payload"
	}
	return "Can't decode payload"
}

func encodeFailure(contentType string) string {
	switch contentType {
	case codec.MIMEJSON:
		return "Can't encode JSON payload"
	case codec.MIMEMsgPack:
		return "Can't encode MsgPack payload"
	}
	return "Can't encode payload"
}
