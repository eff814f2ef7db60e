package cache

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec converts typed values to and from the bytes persisted in a Store.
// It must tolerate arbitrary parameterized types (slices, maps, nested
// generics); decode failures are handled by the Adapter, never propagated to
// callers.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	// Name identifies the encoding, e.g. for logging and diagnostics.
	Name() string
}

// JSONCodec encodes entries as JSON. This is the default codec.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (JSONCodec) Name() string { return "json" }

// MsgpackCodec encodes entries as msgpack. Denser than JSON and faster to
// decode, at the cost of entries not being human-readable in the store.
type MsgpackCodec struct{}

func (MsgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (MsgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

func (MsgpackCodec) Name() string { return "msgpack" }
