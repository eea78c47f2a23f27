package bitattr

import (
	"fmt"
	"strings"
)

// NullMask is the content of a bitmask column that may be NULL.
type NullMask struct {
	Mask  int64
	Valid bool
}

func MaskOf(mask int64) NullMask { return NullMask{mask, true} }

var Null = NullMask{}

func (m NullMask) String() string {
	if !m.Valid {
		return "NULL"
	}
	return fmt.Sprint(m.Mask)
}

type ScopeKind int

const (
	ScopeAnySet ScopeKind = iota
	ScopeEvery
	ScopeNothing
	ScopeWith
	ScopeWithAny
	ScopeWithout
	ScopeWithExact
	ScopeNo
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeAnySet:
		return "any_set"
	case ScopeEvery:
		return "every"
	case ScopeNothing:
		return "nothing"
	case ScopeWith:
		return "with"
	case ScopeWithAny:
		return "with_any"
	case ScopeWithout:
		return "without"
	case ScopeWithExact:
		return "with_exact"
	case ScopeNo:
		return "no"
	default:
		return fmt.Sprintf("invalid scope kind %d", int(k))
	}
}

// Scope is a row predicate over one bitmask attribute. Scopes are built by
// a Codec and evaluated with Match, or in bulk by Column.Select.
//
// NULL rows only ever match Without and No, and only when the codec allows
// NULL.
type Scope struct {
	codec  *Codec
	kind   ScopeKind
	mask   int64
	values []string
}

func (s Scope) Codec() *Codec   { return s.codec }
func (s Scope) Kind() ScopeKind { return s.kind }

// Mask returns the combined bits of the scope's values.
func (s Scope) Mask() int64 { return s.mask }

func (s Scope) String() string {
	var buf strings.Builder
	buf.WriteString(s.codec.name)
	buf.WriteByte(' ')
	buf.WriteString(s.kind.String())
	if len(s.values) > 0 {
		buf.WriteString(" [")
		buf.WriteString(strings.Join(s.values, " "))
		buf.WriteByte(']')
	}
	return buf.String()
}

func (c *Codec) emptyWithKind() ScopeKind {
	if c.emptyQuery == EmptyQueryVacuous {
		return ScopeEvery
	}
	return ScopeAnySet
}

func (c *Codec) emptyWithAnyKind() ScopeKind {
	if c.emptyQuery == EmptyQueryVacuous {
		return ScopeNothing
	}
	return ScopeAnySet
}

// With matches rows that have every one of values. A blank or zero value
// has no bit, so it makes the scope match nothing. With no values, it
// matches rows that have any value set.
func (c *Codec) With(values ...string) (Scope, error) {
	if len(values) == 0 {
		return Scope{codec: c, kind: c.emptyWithKind()}, nil
	}
	var mask int64
	never := false
	for _, v := range values {
		bit, err := c.bitFor(v)
		if err != nil {
			return Scope{}, err
		}
		if bit == 0 {
			never = true
		}
		mask |= bit
	}
	if never {
		return Scope{codec: c, kind: ScopeNothing, mask: mask, values: values}, nil
	}
	return Scope{codec: c, kind: ScopeWith, mask: mask, values: values}, nil
}

// For matches rows that have the given value.
func (c *Codec) For(value string) (Scope, error) {
	return c.With(value)
}

// WithAny matches rows that have at least one of values.
func (c *Codec) WithAny(values ...string) (Scope, error) {
	if len(values) == 0 {
		return Scope{codec: c, kind: c.emptyWithAnyKind()}, nil
	}
	mask, err := c.Encode(values...)
	if err != nil {
		return Scope{}, err
	}
	return Scope{codec: c, kind: ScopeWithAny, mask: mask, values: values}, nil
}

// Without matches rows that have none of values. With no values it is No().
func (c *Codec) Without(values ...string) (Scope, error) {
	if len(values) == 0 {
		return c.No(), nil
	}
	mask, err := c.Encode(values...)
	if err != nil {
		return Scope{}, err
	}
	return Scope{codec: c, kind: ScopeWithout, mask: mask, values: values}, nil
}

// WithExact matches rows holding exactly values. With no values it is No().
func (c *Codec) WithExact(values ...string) (Scope, error) {
	if len(values) == 0 {
		return c.No(), nil
	}
	mask, err := c.Encode(values...)
	if err != nil {
		return Scope{}, err
	}
	return Scope{codec: c, kind: ScopeWithExact, mask: mask, values: values}, nil
}

// No matches rows with no values, including NULL rows when allowed.
func (c *Codec) No() Scope {
	return Scope{codec: c, kind: ScopeNo}
}

func (s Scope) Match(m NullMask) bool {
	if !m.Valid {
		switch s.kind {
		case ScopeWithout, ScopeNo:
			return s.codec.allowNull
		default:
			return false
		}
	}
	switch s.kind {
	case ScopeAnySet:
		return m.Mask > 0
	case ScopeEvery:
		return true
	case ScopeNothing:
		return false
	case ScopeWith:
		return m.Mask&s.mask == s.mask
	case ScopeWithAny:
		return m.Mask&s.mask != 0
	case ScopeWithout:
		return m.Mask&s.mask == 0
	case ScopeWithExact:
		return m.Mask == s.mask
	case ScopeNo:
		return m.Mask == 0
	default:
		panic(fmt.Errorf("%s: %v", s.codec.name, s.kind))
	}
}

// MatchAll reports whether every scope matches the mask.
func MatchAll(m NullMask, scopes ...Scope) bool {
	for _, s := range scopes {
		if !s.Match(m) {
			return false
		}
	}
	return true
}
