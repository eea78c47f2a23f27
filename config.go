package bitattr

import (
	"fmt"
)

// Definition is the plain-data form of one bitmask attribute, suitable for
// keeping in configuration files. A Definition with an empty Attr only
// declares the record (and its parent).
type Definition struct {
	Record     string   `msgpack:"record" json:"record"`
	Parent     string   `msgpack:"parent,omitempty" json:"parent,omitempty"`
	Attr       string   `msgpack:"attr,omitempty" json:"attr,omitempty"`
	Field      string   `msgpack:"field,omitempty" json:"field,omitempty"`
	Symbols    []string `msgpack:"as" json:"as"`
	Zero       string   `msgpack:"zero_value,omitempty" json:"zero_value,omitempty"`
	AllowNull  bool     `msgpack:"null" json:"null"`
	Default    []string `msgpack:"default,omitempty" json:"default,omitempty"`
	EmptyQuery string   `msgpack:"empty_query,omitempty" json:"empty_query,omitempty"`
}

func ParseEmptyQueryMode(s string) (EmptyQueryMode, error) {
	switch s {
	case "", "any_set":
		return EmptyQueryAnySet, nil
	case "vacuous":
		return EmptyQueryVacuous, nil
	default:
		return 0, fmt.Errorf("invalid empty query mode %q", s)
	}
}

func (d *Definition) opts() (CodecOpts, error) {
	mode, err := ParseEmptyQueryMode(d.EmptyQuery)
	if err != nil {
		return CodecOpts{}, defErrf(d.Record, d.Attr, "%v", err)
	}
	return CodecOpts{
		Zero:       d.Zero,
		AllowNull:  d.AllowNull,
		Default:    d.Default,
		EmptyQuery: mode,
	}, nil
}

func DecodeDefinitions(data []byte, enc EncodingMethod) ([]Definition, error) {
	var defs []Definition
	if err := enc.DecodeValue(data, &defs); err != nil {
		return nil, err
	}
	return defs, nil
}

func EncodeDefinitions(defs []Definition, enc EncodingMethod) ([]byte, error) {
	return enc.EncodeValue(defs)
}

// Load defines records from defs. Definitions are grouped by record in
// order of first appearance; a parent must appear before its children or
// already exist in the schema. Records loaded before a failing one stay
// defined.
func (scm *Schema) Load(defs []Definition) error {
	var order []string
	byRecord := make(map[string][]Definition)
	parents := make(map[string]string)
	for _, d := range defs {
		if _, seen := byRecord[d.Record]; !seen {
			order = append(order, d.Record)
		}
		byRecord[d.Record] = append(byRecord[d.Record], d)
		if d.Parent != "" {
			if p := parents[d.Record]; p != "" && p != d.Parent {
				return defErrf(d.Record, d.Attr, "conflicting parents %s and %s", p, d.Parent)
			}
			parents[d.Record] = d.Parent
		}
	}

	for _, name := range order {
		var parent *Record
		if pname := parents[name]; pname != "" {
			parent = scm.RecordNamed(pname)
			if parent == nil {
				return defErrf(name, "", "unknown parent %s", pname)
			}
		}
		_, err := scm.TryDefineRecord(name, parent, func(b *RecordBuilder) error {
			for _, d := range byRecord[name] {
				if d.Attr == "" {
					continue
				}
				opt, err := d.opts()
				if err != nil {
					return err
				}
				if _, err := b.Define(d.Attr, d.Symbols, opt); err != nil {
					return err
				}
				if d.Field != "" {
					b.Field(d.Attr, d.Field)
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// LoadEncoded decodes definitions and loads them.
func (scm *Schema) LoadEncoded(data []byte, enc EncodingMethod) error {
	defs, err := DecodeDefinitions(data, enc)
	if err != nil {
		return err
	}
	return scm.Load(defs)
}

// Definitions returns the schema in plain-data form. Loading the result into
// an empty schema reproduces the same records and bit layouts.
func (scm *Schema) Definitions() []Definition {
	var defs []Definition
	for _, rec := range scm.records {
		var parent string
		if rec.parent != nil {
			parent = rec.parent.name
		}
		if len(rec.attrs) == 0 {
			defs = append(defs, Definition{Record: rec.name, Parent: parent})
			continue
		}
		for _, c := range rec.attrs {
			d := Definition{
				Record:    rec.name,
				Parent:    parent,
				Attr:      c.name,
				Field:     rec.fields[c.name],
				Symbols:   c.Symbols(),
				Zero:      c.zero,
				AllowNull: c.allowNull,
				Default:   c.MustDecode(c.def),
			}
			if c.emptyQuery != EmptyQueryAnySet {
				d.EmptyQuery = c.emptyQuery.String()
			}
			if len(d.Default) == 0 {
				d.Default = nil
			}
			defs = append(defs, d)
		}
	}
	return defs
}
