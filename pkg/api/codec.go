package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Codec marshals plain Go messages as JSON. It registers under the name
// "json", replacing Connect's protobuf-only JSON codec, so both the Connect
// protocol and browser fetch calls with application/json work.
//
// Unknown fields are rejected: a request cannot smuggle in an id or a
// createdAt.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal implements connect.Codec. An empty body decodes to the zero
// message.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(msg); err != nil {
		return fmt.Errorf("decode %T: %w", msg, err)
	}
	if dec.More() {
		return fmt.Errorf("decode %T: trailing data after message", msg)
	}
	return nil
}
