package bitattr

import (
	"fmt"
	"math/bits"

	"github.com/RoaringBitmap/roaring/v2"
)

// Column holds the values of one attribute for a batch of rows, addressed
// by row ordinal. Besides the raw masks it keeps one bitmap per symbol and
// a bitmap of NULL rows, so that Select answers scopes with bitmap algebra
// instead of visiting every row.
type Column struct {
	codec *Codec
	masks []NullMask
	bits  []*roaring.Bitmap
	nulls *roaring.Bitmap
}

func (c *Codec) NewColumn() *Column {
	col := &Column{
		codec: c,
		bits:  make([]*roaring.Bitmap, len(c.symbols)),
		nulls: roaring.New(),
	}
	for i := range col.bits {
		col.bits[i] = roaring.New()
	}
	return col
}

func (col *Column) Codec() *Codec { return col.codec }
func (col *Column) Len() int      { return len(col.masks) }

func (col *Column) At(row int) NullMask {
	return col.masks[row]
}

// Append adds a row holding mask and returns its ordinal.
func (col *Column) Append(mask int64) (int, error) {
	if err := col.codec.Validate(mask); err != nil {
		return -1, err
	}
	row := len(col.masks)
	col.masks = append(col.masks, MaskOf(mask))
	for rem := uint64(mask); rem != 0; rem &= rem - 1 {
		col.bits[bits.TrailingZeros64(rem)].Add(uint32(row))
	}
	return row, nil
}

func (col *Column) AppendValues(values ...string) (int, error) {
	mask, err := col.codec.Encode(values...)
	if err != nil {
		return -1, err
	}
	return col.Append(mask)
}

// AppendNull adds a NULL row. It fails unless the codec allows NULL.
func (col *Column) AppendNull() (int, error) {
	if !col.codec.allowNull {
		return -1, fmt.Errorf("%s: %w: NULL not allowed", col.codec.name, ErrInvalidMask)
	}
	row := len(col.masks)
	col.masks = append(col.masks, Null)
	col.nulls.Add(uint32(row))
	return row, nil
}

func (col *Column) AppendNullMask(m NullMask) (int, error) {
	if !m.Valid {
		return col.AppendNull()
	}
	return col.Append(m.Mask)
}

// Select returns the ordinals of rows matched by every scope. With no
// scopes, all rows are returned.
func (col *Column) Select(scopes ...Scope) *roaring.Bitmap {
	result := col.all()
	for _, s := range scopes {
		if s.codec != col.codec {
			panic(fmt.Errorf("scope %v used on column %s", s, col.codec.name))
		}
		result.And(col.eval(s))
	}
	return result
}

// Count returns the number of rows matched by every scope.
func (col *Column) Count(scopes ...Scope) int {
	return int(col.Select(scopes...).GetCardinality())
}

func (col *Column) all() *roaring.Bitmap {
	bm := roaring.New()
	bm.AddRange(0, uint64(len(col.masks)))
	return bm
}

func (col *Column) valid() *roaring.Bitmap {
	return roaring.AndNot(col.all(), col.nulls)
}

// union ORs the per-symbol bitmaps of all bits in mask.
func (col *Column) union(mask int64) *roaring.Bitmap {
	var bms []*roaring.Bitmap
	for rem := uint64(mask); rem != 0; rem &= rem - 1 {
		bms = append(bms, col.bits[bits.TrailingZeros64(rem)])
	}
	switch len(bms) {
	case 0:
		return roaring.New()
	case 1:
		return bms[0].Clone()
	default:
		return roaring.FastOr(bms...)
	}
}

func (col *Column) eval(s Scope) *roaring.Bitmap {
	switch s.kind {
	case ScopeAnySet:
		return col.union(col.codec.Max())
	case ScopeEvery:
		return col.valid()
	case ScopeNothing:
		return roaring.New()
	case ScopeWith:
		result := col.valid()
		for rem := uint64(s.mask); rem != 0; rem &= rem - 1 {
			result.And(col.bits[bits.TrailingZeros64(rem)])
		}
		return result
	case ScopeWithAny:
		return col.union(s.mask)
	case ScopeWithout:
		result := roaring.AndNot(col.valid(), col.union(s.mask))
		if col.codec.allowNull {
			result.Or(col.nulls)
		}
		return result
	case ScopeWithExact:
		result := col.valid()
		for rem := uint64(s.mask); rem != 0; rem &= rem - 1 {
			result.And(col.bits[bits.TrailingZeros64(rem)])
		}
		result.AndNot(col.union(col.codec.Max() &^ s.mask))
		return result
	case ScopeNo:
		result := roaring.AndNot(col.valid(), col.union(col.codec.Max()))
		if col.codec.allowNull {
			result.Or(col.nulls)
		}
		return result
	default:
		panic(fmt.Errorf("%s: %v", col.codec.name, s.kind))
	}
}
