// Package codec provides the content-type keyed payload converters the
// pipeline uses for request decoding and response encoding. Matching is
// exact-string and ordered: the first entry registered for a content type
// wins. The built-in spec covers JSON and MessagePack.
package codec

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Recognized content types. Matching is exact; parameters such as charset
// are not stripped.
const (
	MIMEJSON    = "application/json"
	MIMEMsgPack = "application/x-msgpack"
)

// Decoder converts raw payload bytes into a structured value.
type Decoder func(data []byte) (any, error)

// Encoder converts a structured value into payload bytes.
type Encoder func(v any) ([]byte, error)

type decoderEntry struct {
	contentType string
	decode      Decoder
}

type encoderEntry struct {
	contentType string
	encode      Encoder
}

// Spec is an ordered registry of content-type keyed decoders and encoders.
// A spec is built once (per module or per request) and is read-only
// afterwards, safe for concurrent lookups.
type Spec struct {
	decoders []decoderEntry
	encoders []encoderEntry
}

// NewSpec returns an empty codec spec.
func NewSpec() *Spec {
	return &Spec{}
}

// AddDecoder appends a decoder for the given content type and returns the
// spec for chaining.
func (s *Spec) AddDecoder(contentType string, fn Decoder) *Spec {
	s.decoders = append(s.decoders, decoderEntry{contentType: contentType, decode: fn})
	return s
}

// AddEncoder appends an encoder for the given content type and returns the
// spec for chaining.
func (s *Spec) AddEncoder(contentType string, fn Encoder) *Spec {
	s.encoders = append(s.encoders, encoderEntry{contentType: contentType, encode: fn})
	return s
}

// DecoderFor returns the first decoder registered for the content type.
func (s *Spec) DecoderFor(contentType string) (Decoder, bool) {
	for _, e := range s.decoders {
		if e.contentType == contentType {
			return e.decode, true
		}
	}
	return nil, false
}

// EncoderFor returns the first encoder registered for the content type.
func (s *Spec) EncoderFor(contentType string) (Encoder, bool) {
	for _, e := range s.encoders {
		if e.contentType == contentType {
			return e.encode, true
		}
	}
	return nil, false
}

// DefaultSpec returns a fresh spec covering the built-in JSON and
// MessagePack codecs.
func DefaultSpec() *Spec {
	return NewSpec().
		AddDecoder(MIMEJSON, DecodeJSON).
		AddDecoder(MIMEMsgPack, DecodeMsgPack).
		AddEncoder(MIMEJSON, EncodeJSON).
		AddEncoder(MIMEMsgPack, EncodeMsgPack)
}

// DecodeJSON is the built-in JSON decoder.
func DecodeJSON(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// EncodeJSON is the built-in JSON encoder. It is also the fallback the
// pipeline uses when the accept header names an unknown content type.
func EncodeJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

// DecodeMsgPack is the built-in MessagePack decoder, backed by
// vmihailenco/msgpack.
func DecodeMsgPack(data []byte) (any, error) {
	var v any
	if err := msgpack.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// EncodeMsgPack is the built-in MessagePack encoder.
func EncodeMsgPack(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}
