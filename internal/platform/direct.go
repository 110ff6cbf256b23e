package platform

import (
	"bytes"
	"encoding/json"
)

// DirectCodec handles raw invocations whose payload is already structured.
// The host conveys status itself, so the response is the bare body.
type DirectCodec struct{}

// NewDirect creates an adapter for direct invocations.
func NewDirect(svc Services) *Adapter[json.RawMessage, json.RawMessage] {
	return NewAdapter[json.RawMessage, json.RawMessage](DirectCodec{}, svc)
}

// Name implements Codec.
func (DirectCodec) Name() string {
	return string(KindDirect)
}

// ParseInboundEvent passes JSON objects through and treats any other payload
// as an empty object.
func (DirectCodec) ParseInboundEvent(event json.RawMessage) ([]byte, error) {
	trimmed := bytes.TrimSpace(event)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return []byte("{}"), nil
	}
	return trimmed, nil
}

// FormatResponse implements Codec. The status is dropped.
func (DirectCodec) FormatResponse(_ int, body any) json.RawMessage {
	out, _ := encodeBody(body)
	return out
}
