package bitattr

import (
	"fmt"
	"maps"
	"math/bits"
	"slices"
	"strings"
)

// MaxSymbols is the largest vocabulary a single attribute can have. Masks
// are stored in signed 64-bit integer columns, so the sign bit is never used.
const MaxSymbols = 63

// EmptyQueryMode decides what ContainsAny and ContainsAll answer when given
// no query values at all.
type EmptyQueryMode int

const (
	// EmptyQueryAnySet treats an empty query as "at least one value is set",
	// which is how the unqualified with/with_any scopes behave.
	EmptyQueryAnySet EmptyQueryMode = iota

	// EmptyQueryVacuous uses plain set logic: any-of-nothing is false,
	// all-of-nothing is true.
	EmptyQueryVacuous
)

func (m EmptyQueryMode) String() string {
	switch m {
	case EmptyQueryAnySet:
		return "any_set"
	case EmptyQueryVacuous:
		return "vacuous"
	default:
		return fmt.Sprintf("invalid empty query mode %d", int(m))
	}
}

type CodecOpts struct {
	// Zero is an optional escape value that encodes to 0 and is never
	// returned by Decode. It must not be one of the regular symbols.
	Zero string

	// AllowNull says the backing column may hold NULL in addition to 0.
	// Only scopes care about this; Encode and Decode don't.
	AllowNull bool

	// Default lists the values new rows start with.
	Default []string

	EmptyQuery EmptyQueryMode
}

// Codec maps the ordered vocabulary of one attribute to bits. The i-th
// symbol owns bit 1<<i. A Codec is immutable and safe for concurrent use.
type Codec struct {
	record     string
	name       string
	symbols    []string
	bits       map[string]int64
	zero       string
	allowNull  bool
	def        int64
	emptyQuery EmptyQueryMode
}

func NewCodec(name string, symbols []string, opt CodecOpts) (*Codec, error) {
	return newCodec("", name, symbols, opt)
}

func newCodec(record, name string, symbols []string, opt CodecOpts) (*Codec, error) {
	if isBlank(name) {
		return nil, defErrf(record, name, "attribute name is blank")
	}
	if len(symbols) > MaxSymbols {
		return nil, defErrf(record, name, "%d symbols defined, at most %d supported", len(symbols), MaxSymbols)
	}

	c := &Codec{
		record:     record,
		name:       name,
		symbols:    slices.Clone(symbols),
		bits:       make(map[string]int64, len(symbols)),
		zero:       opt.Zero,
		allowNull:  opt.AllowNull,
		emptyQuery: opt.EmptyQuery,
	}
	for i, sym := range c.symbols {
		if isBlank(sym) {
			return nil, defErrf(record, name, "symbol #%d is blank", i)
		}
		if _, dup := c.bits[sym]; dup {
			return nil, defErrf(record, name, "duplicate symbol %q", sym)
		}
		c.bits[sym] = 1 << i
	}

	if opt.Zero != "" {
		if isBlank(opt.Zero) {
			return nil, defErrf(record, name, "zero value is blank")
		}
		if _, clash := c.bits[opt.Zero]; clash {
			return nil, defErrf(record, name, "zero value %q is also a regular symbol", opt.Zero)
		}
	}

	if opt.EmptyQuery != EmptyQueryAnySet && opt.EmptyQuery != EmptyQueryVacuous {
		return nil, defErrf(record, name, "%v", opt.EmptyQuery)
	}

	def, err := c.Encode(opt.Default...)
	if err != nil {
		return nil, defErrf(record, name, "default: %v", err)
	}
	c.def = def

	return c, nil
}

func (c *Codec) Name() string { return c.name }

// Record returns the name of the record the attribute was defined on, if any.
func (c *Codec) Record() string { return c.record }

func (c *Codec) Len() int          { return len(c.symbols) }
func (c *Codec) Symbols() []string { return slices.Clone(c.symbols) }
func (c *Codec) Zero() string      { return c.zero }
func (c *Codec) AllowNull() bool   { return c.allowNull }

// Default returns the mask new rows are initialized with.
func (c *Codec) Default() int64 { return c.def }

func (c *Codec) EmptyQuery() EmptyQueryMode { return c.emptyQuery }

// Max returns the largest valid mask, i.e. all symbols set.
func (c *Codec) Max() int64 {
	return int64(uint64(1)<<uint(len(c.symbols)) - 1)
}

// Bit returns the single-bit mask of the given symbol.
func (c *Codec) Bit(sym string) (int64, bool) {
	bit, ok := c.bits[sym]
	return bit, ok
}

// Bits returns a copy of the symbol to bit table.
func (c *Codec) Bits() map[string]int64 {
	return maps.Clone(c.bits)
}

func (c *Codec) String() string {
	return c.name + "[" + strings.Join(c.symbols, " ") + "]"
}

// bitFor resolves one input value. Blanks and the zero value resolve to 0.
func (c *Codec) bitFor(v string) (int64, error) {
	if isBlank(v) || (c.zero != "" && v == c.zero) {
		return 0, nil
	}
	bit, ok := c.bits[v]
	if !ok {
		return 0, &UnsupportedValueError{c.name, v}
	}
	return bit, nil
}

// Encode ORs together the bits of the given values. Blank values and the
// zero value contribute nothing; unknown values fail with ErrUnsupportedValue.
func (c *Codec) Encode(values ...string) (int64, error) {
	var mask int64
	for _, v := range values {
		bit, err := c.bitFor(v)
		if err != nil {
			return 0, err
		}
		mask |= bit
	}
	return mask, nil
}

// Validate fails with ErrInvalidMask unless 0 <= mask <= Max().
func (c *Codec) Validate(mask int64) error {
	if mask < 0 || mask > c.Max() {
		return &MaskError{c.name, mask, c.Max()}
	}
	return nil
}

// Decode returns the symbols whose bits are set, in definition order.
func (c *Codec) Decode(mask int64) ([]string, error) {
	if err := c.Validate(mask); err != nil {
		return nil, err
	}
	result := make([]string, 0, bits.OnesCount64(uint64(mask)))
	for rem := uint64(mask); rem != 0; rem &= rem - 1 {
		result = append(result, c.symbols[bits.TrailingZeros64(rem)])
	}
	return result, nil
}

func (c *Codec) MustEncode(values ...string) int64 {
	return must(c.Encode(values...))
}

func (c *Codec) MustDecode(mask int64) []string {
	return must(c.Decode(mask))
}

// ContainsAny reports whether mask has at least one of the query bits.
func (c *Codec) ContainsAny(mask int64, query ...string) (bool, error) {
	if len(query) == 0 {
		return c.emptyQuery == EmptyQueryAnySet && mask > 0, nil
	}
	q, err := c.Encode(query...)
	if err != nil {
		return false, err
	}
	return mask&q != 0, nil
}

// ContainsAll reports whether every query value is set in mask. A blank or
// zero query value has no bit and therefore is never contained.
func (c *Codec) ContainsAll(mask int64, query ...string) (bool, error) {
	if len(query) == 0 {
		if c.emptyQuery == EmptyQueryVacuous {
			return true, nil
		}
		return mask > 0, nil
	}
	all := true
	for _, v := range query {
		bit, err := c.bitFor(v)
		if err != nil {
			return false, err
		}
		if mask&bit == 0 {
			all = false
		}
	}
	return all, nil
}

// EqualsExact reports whether mask holds exactly the query values.
func (c *Codec) EqualsExact(mask int64, query ...string) (bool, error) {
	q, err := c.Encode(query...)
	if err != nil {
		return false, err
	}
	return mask == q, nil
}

func (c *Codec) IsEmpty(mask int64) bool {
	return mask == 0
}
