package bitattr

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

const structTag = "bitmask"

var nullInt64Type = reflect.TypeOf((*sql.NullInt64)(nil)).Elem()

type fieldKind int

const (
	fieldInt fieldKind = iota
	fieldUint
	fieldInt64Ptr
	fieldNullInt64
)

type fieldInfo struct {
	name  string
	index []int
	kind  fieldKind
}

// findField locates the struct field backing attr: an explicit mapping,
// then a `bitmask:"attr"` tag, then a field named like the attribute.
func findField(typ reflect.Type, attr, explicit string) (reflect.StructField, bool) {
	if explicit != "" {
		return typ.FieldByName(explicit)
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if tag, _, _ := strings.Cut(f.Tag.Get(structTag), ","); tag == attr {
			return f, true
		}
	}
	if f, ok := typ.FieldByName(attr); ok {
		return f, true
	}
	return typ.FieldByName(exportedName(attr))
}

func exportedName(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

func reflectField(typ reflect.Type, c *Codec, sf reflect.StructField) (*fieldInfo, error) {
	if !sf.IsExported() {
		return nil, defErrf(c.record, c.name, "field %v.%s must be exported", typ, sf.Name)
	}
	fi := &fieldInfo{name: sf.Name, index: sf.Index}
	capacity := 0
	switch ft := sf.Type; {
	case ft == nullInt64Type:
		fi.kind, capacity = fieldNullInt64, 63
	case ft.Kind() == reflect.Ptr && ft.Elem().Kind() == reflect.Int64:
		fi.kind, capacity = fieldInt64Ptr, 63
	case ft.Kind() >= reflect.Int && ft.Kind() <= reflect.Int64:
		fi.kind, capacity = fieldInt, ft.Bits()-1
	case ft.Kind() >= reflect.Uint && ft.Kind() <= reflect.Uint64:
		fi.kind, capacity = fieldUint, ft.Bits()
	default:
		return nil, defErrf(c.record, c.name, "field %v.%s has unsupported type %v", typ, sf.Name, ft)
	}
	if c.Len() > capacity {
		return nil, defErrf(c.record, c.name, "field %v.%s holds %d bits, need %d", typ, sf.Name, capacity, c.Len())
	}
	return fi, nil
}

func (fi *fieldInfo) get(rowVal reflect.Value) NullMask {
	v := rowVal.Elem().FieldByIndex(fi.index)
	switch fi.kind {
	case fieldInt:
		return MaskOf(v.Int())
	case fieldUint:
		return MaskOf(int64(v.Uint()))
	case fieldInt64Ptr:
		if v.IsNil() {
			return Null
		}
		return MaskOf(v.Elem().Int())
	case fieldNullInt64:
		n := v.Interface().(sql.NullInt64)
		return NullMask{n.Int64, n.Valid}
	default:
		panic(fmt.Errorf("field %s: invalid kind %d", fi.name, fi.kind))
	}
}

// set stores m. Fields that cannot hold NULL store 0 instead.
func (fi *fieldInfo) set(rowVal reflect.Value, m NullMask) {
	v := rowVal.Elem().FieldByIndex(fi.index)
	switch fi.kind {
	case fieldInt:
		v.SetInt(m.Mask)
	case fieldUint:
		v.SetUint(uint64(m.Mask))
	case fieldInt64Ptr:
		if !m.Valid {
			v.SetZero()
			return
		}
		p := reflect.New(v.Type().Elem())
		p.Elem().SetInt(m.Mask)
		v.Set(p)
	case fieldNullInt64:
		v.Set(reflect.ValueOf(sql.NullInt64{Int64: m.Mask, Valid: m.Valid}))
	default:
		panic(fmt.Errorf("field %s: invalid kind %d", fi.name, fi.kind))
	}
}
