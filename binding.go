package bitattr

import (
	"fmt"
	"reflect"
)

// Binding connects a record's bitmask attributes to the integer fields of a
// Go struct, so that rows can be read and written in terms of values.
type Binding[Row any] struct {
	rec     *Record
	rowType reflect.Type
	fields  map[string]*fieldInfo
}

// Bind builds a binding of rec onto Row, which must be a struct type.
// Attributes without a matching field only produce a warning, matching
// hosts whose columns are added by a later migration; row operations on
// them fail with ErrUnknownAttr. Any other mismatch panics.
func Bind[Row any](rec *Record) *Binding[Row] {
	return must(TryBind[Row](rec))
}

func TryBind[Row any](rec *Record) (*Binding[Row], error) {
	rowType := reflect.TypeOf((*Row)(nil)).Elem()
	if rowType.Kind() != reflect.Struct {
		return nil, defErrf(rec.name, "", "%v is not a struct", rowType)
	}
	b := &Binding[Row]{
		rec:     rec,
		rowType: rowType,
		fields:  make(map[string]*fieldInfo),
	}
	for _, c := range rec.Attrs() {
		sf, ok := findField(rowType, c.name, rec.FieldName(c.name))
		if !ok {
			rec.schema.logf("bitattr: WARNING: %s.%s has no field in %v", rec.name, c.name, rowType)
			continue
		}
		fi, err := reflectField(rowType, c, sf)
		if err != nil {
			return nil, err
		}
		b.fields[c.name] = fi
	}
	return b, nil
}

func (b *Binding[Row]) Record() *Record { return b.rec }

// Bound reports whether attr has a backing field.
func (b *Binding[Row]) Bound(attr string) bool {
	return b.fields[attr] != nil
}

func (b *Binding[Row]) lookup(attr string) (*Codec, *fieldInfo, error) {
	c := b.rec.Attr(attr)
	fi := b.fields[attr]
	if c == nil || fi == nil {
		return nil, nil, fmt.Errorf("%s: %w %q", b.rec.name, ErrUnknownAttr, attr)
	}
	return c, fi, nil
}

func (b *Binding[Row]) NullMask(row *Row, attr string) (NullMask, error) {
	_, fi, err := b.lookup(attr)
	if err != nil {
		return Null, err
	}
	return fi.get(reflect.ValueOf(row)), nil
}

// Get returns the attribute's current Set. NULL reads as the empty set.
func (b *Binding[Row]) Get(row *Row, attr string) (Set, error) {
	c, fi, err := b.lookup(attr)
	if err != nil {
		return Set{}, err
	}
	m := fi.get(reflect.ValueOf(row))
	if !m.Valid {
		return c.EmptySet(), nil
	}
	return c.SetOf(m.Mask)
}

func (b *Binding[Row]) Values(row *Row, attr string) ([]string, error) {
	s, err := b.Get(row, attr)
	if err != nil {
		return nil, err
	}
	return s.Values(), nil
}

// SetValues replaces the attribute's values. Blank and zero values are
// dropped; an unknown value leaves the row untouched.
func (b *Binding[Row]) SetValues(row *Row, attr string, values ...string) error {
	c, fi, err := b.lookup(attr)
	if err != nil {
		return err
	}
	mask, err := c.Encode(values...)
	if err != nil {
		return err
	}
	fi.set(reflect.ValueOf(row), MaskOf(mask))
	return nil
}

// SetMask stores a raw mask after validating it.
func (b *Binding[Row]) SetMask(row *Row, attr string, mask int64) error {
	c, fi, err := b.lookup(attr)
	if err != nil {
		return err
	}
	if err := c.Validate(mask); err != nil {
		return err
	}
	fi.set(reflect.ValueOf(row), MaskOf(mask))
	return nil
}

// Put stores s into the attribute it was built for.
func (b *Binding[Row]) Put(row *Row, s Set) error {
	if s.codec == nil {
		return errNoCodec
	}
	c, fi, err := b.lookup(s.codec.name)
	if err != nil {
		return err
	}
	if c != s.codec {
		return fmt.Errorf("%s: set of %s belongs to another record", b.rec.name, s.codec.name)
	}
	fi.set(reflect.ValueOf(row), MaskOf(s.mask))
	return nil
}

// Add merges values into the attribute.
func (b *Binding[Row]) Add(row *Row, attr string, values ...string) error {
	s, err := b.Get(row, attr)
	if err != nil {
		return err
	}
	if err := s.Add(values...); err != nil {
		return err
	}
	return b.Put(row, s)
}

// Has reports whether all values are set. With no values, it reports
// whether any value is set.
func (b *Binding[Row]) Has(row *Row, attr string, values ...string) (bool, error) {
	c, fi, err := b.lookup(attr)
	if err != nil {
		return false, err
	}
	m := fi.get(reflect.ValueOf(row))
	if !m.Valid {
		return false, nil
	}
	return c.ContainsAll(m.Mask, values...)
}

// ApplyDefaults writes each attribute's default into fields that are NULL
// or zero. Attributes without a default are left alone.
func (b *Binding[Row]) ApplyDefaults(row *Row) {
	rowVal := reflect.ValueOf(row)
	for _, c := range b.rec.Attrs() {
		fi := b.fields[c.name]
		if fi == nil || c.def == 0 {
			continue
		}
		if m := fi.get(rowVal); !m.Valid || m.Mask == 0 {
			fi.set(rowVal, MaskOf(c.def))
		}
	}
}

// New returns a zero row with defaults applied.
func (b *Binding[Row]) New() *Row {
	row := new(Row)
	b.ApplyDefaults(row)
	return row
}

// Match reports whether the row satisfies every scope. Scopes may refer to
// different attributes of the record.
func (b *Binding[Row]) Match(row *Row, scopes ...Scope) (bool, error) {
	rowVal := reflect.ValueOf(row)
	for _, s := range scopes {
		fi, err := b.scopeField(s)
		if err != nil {
			return false, err
		}
		if !s.Match(fi.get(rowVal)) {
			return false, nil
		}
	}
	return true, nil
}

// Filter returns the rows matching every scope, preserving order.
func (b *Binding[Row]) Filter(rows []*Row, scopes ...Scope) ([]*Row, error) {
	var result []*Row
	for _, row := range rows {
		ok, err := b.Match(row, scopes...)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, row)
		}
	}
	return result, nil
}

// Column collects attr across rows; row ordinals are slice indexes.
func (b *Binding[Row]) Column(rows []*Row, attr string) (*Column, error) {
	c, fi, err := b.lookup(attr)
	if err != nil {
		return nil, err
	}
	col := c.NewColumn()
	for _, row := range rows {
		if _, err := col.AppendNullMask(fi.get(reflect.ValueOf(row))); err != nil {
			return nil, err
		}
	}
	if b.rec.schema.verbose {
		b.rec.schema.logf("bitattr: COLUMN %s.%s", b.rec.name, col.loggableStats())
	}
	return col, nil
}

func (b *Binding[Row]) scopeField(s Scope) (*fieldInfo, error) {
	if s.codec == nil {
		return nil, fmt.Errorf("%s: zero Scope", b.rec.name)
	}
	c, fi, err := b.lookup(s.codec.name)
	if err != nil {
		return nil, err
	}
	if c != s.codec {
		return nil, fmt.Errorf("%s: scope %v belongs to another record", b.rec.name, s)
	}
	return fi, nil
}
