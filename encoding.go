package bitattr

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

type EncodingMethod int

const (
	MsgPack EncodingMethod = iota
	JSON
)

func (enc EncodingMethod) String() string {
	switch enc {
	case MsgPack:
		return "msgpack"
	case JSON:
		return "json"
	default:
		return fmt.Sprintf("invalid encoding %d", int(enc))
	}
}

func (enc EncodingMethod) EncodeValue(v any) ([]byte, error) {
	switch enc {
	case MsgPack:
		var buf bytes.Buffer
		e := msgpack.GetEncoder()
		e.ResetDict(&buf, nil)
		e.SetSortMapKeys(true)
		err := e.Encode(v)
		msgpack.PutEncoder(e)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %T using MsgPack: %w", v, err)
		}
		return buf.Bytes(), nil
	case JSON:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %T to JSON: %w", v, err)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("bitattr: %v", enc)
	}
}

func (enc EncodingMethod) DecodeValue(buf []byte, ptr any) error {
	switch enc {
	case MsgPack:
		var r bytes.Reader
		r.Reset(buf)
		d := msgpack.GetDecoder()
		d.ResetDict(&r, nil)
		err := d.Decode(ptr)
		msgpack.PutDecoder(d)
		if err != nil {
			return fmt.Errorf("failed to decode msgpack into %T: %w", ptr, err)
		}
		return nil
	case JSON:
		err := json.Unmarshal(buf, ptr)
		if err != nil {
			return fmt.Errorf("failed to decode JSON into %T: %w", ptr, err)
		}
		return nil
	default:
		return fmt.Errorf("bitattr: %v", enc)
	}
}
