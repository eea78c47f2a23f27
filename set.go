package bitattr

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

var errNoCodec = errors.New("bitattr: Set has no codec")

// Set is the value of a bitmask attribute: a codec plus the mask it
// currently holds. The zero Set has no codec and can only be read.
type Set struct {
	codec *Codec
	mask  int64
}

var (
	_ msgpack.CustomEncoder = Set{}
	_ msgpack.CustomDecoder = (*Set)(nil)
	_ json.Marshaler        = Set{}
	_ json.Unmarshaler      = (*Set)(nil)
)

// NewSet returns a Set holding the given values.
func (c *Codec) NewSet(values ...string) (Set, error) {
	mask, err := c.Encode(values...)
	if err != nil {
		return Set{}, err
	}
	return Set{c, mask}, nil
}

// SetOf wraps a raw mask, failing with ErrInvalidMask if it's out of range.
func (c *Codec) SetOf(mask int64) (Set, error) {
	if err := c.Validate(mask); err != nil {
		return Set{}, err
	}
	return Set{c, mask}, nil
}

// EmptySet returns a Set bound to c with no values.
func (c *Codec) EmptySet() Set {
	return Set{codec: c}
}

func (s Set) Codec() *Codec    { return s.codec }
func (s Set) Mask() int64      { return s.mask }
func (s Set) IsEmpty() bool    { return s.mask == 0 }
func (s Set) Len() int         { return bits.OnesCount64(uint64(s.mask)) }
func (s Set) Equal(o Set) bool { return s.codec == o.codec && s.mask == o.mask }

// Has reports whether v is in the set. Unknown, blank and zero values are
// never in any set.
func (s Set) Has(v string) bool {
	if s.codec == nil {
		return false
	}
	bit, ok := s.codec.bits[v]
	return ok && s.mask&bit != 0
}

// Values returns the members in definition order.
func (s Set) Values() []string {
	if s.codec == nil {
		return nil
	}
	return s.codec.MustDecode(s.mask)
}

func (s Set) String() string {
	return "[" + strings.Join(s.Values(), " ") + "]"
}

// Add merges values into the set. Adding a member twice is a no-op.
func (s *Set) Add(values ...string) error {
	if s.codec == nil {
		return errNoCodec
	}
	mask, err := s.codec.Encode(values...)
	if err != nil {
		return err
	}
	s.mask |= mask
	return nil
}

func (s *Set) Remove(values ...string) error {
	if s.codec == nil {
		return errNoCodec
	}
	mask, err := s.codec.Encode(values...)
	if err != nil {
		return err
	}
	s.mask &^= mask
	return nil
}

// Replace sets the members to exactly values. On error the set is unchanged.
func (s *Set) Replace(values ...string) error {
	if s.codec == nil {
		return errNoCodec
	}
	mask, err := s.codec.Encode(values...)
	if err != nil {
		return err
	}
	s.mask = mask
	return nil
}

func (s *Set) Clear() {
	s.mask = 0
}

// EncodeMsgpack stores the set as its integer mask, the same thing a host
// would put into the column.
func (s Set) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeInt(s.mask)
}

func (s *Set) DecodeMsgpack(dec *msgpack.Decoder) error {
	if s.codec == nil {
		return errNoCodec
	}
	mask, err := dec.DecodeInt64()
	if err != nil {
		return err
	}
	if err := s.codec.Validate(mask); err != nil {
		return err
	}
	s.mask = mask
	return nil
}

func (s Set) MarshalJSON() ([]byte, error) {
	values := s.Values()
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}

// UnmarshalJSON accepts either a list of values or a single value.
func (s *Set) UnmarshalJSON(raw []byte) error {
	if s.codec == nil {
		return errNoCodec
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		var single string
		if err2 := json.Unmarshal(raw, &single); err2 != nil {
			return fmt.Errorf("%s: expected a list of values or a single value: %w", s.codec.name, err)
		}
		values = []string{single}
	}
	return s.Replace(values...)
}
