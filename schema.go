package bitattr

import (
	"fmt"
	"log"
	"strings"
)

// Schema is the set of records whose attributes are bitmasks. It is built
// once at startup and read concurrently afterwards.
type Schema struct {
	records       []*Record
	recordsByName map[string]*Record
	logf          func(format string, args ...any)
	verbose       bool
}

type SchemaOpts struct {
	Logf    func(format string, args ...any)
	Verbose bool
}

func NewSchema(opt SchemaOpts) *Schema {
	scm := &Schema{
		recordsByName: make(map[string]*Record),
		logf:          opt.Logf,
		verbose:       opt.Verbose,
	}
	if scm.logf == nil {
		scm.logf = log.Printf
	}
	return scm
}

func (scm *Schema) Records() []*Record {
	return append([]*Record(nil), scm.records...)
}

func (scm *Schema) RecordNamed(name string) *Record {
	return scm.recordsByName[name]
}

// Record is a named record type with its own bitmask attributes and,
// optionally, the attributes of a parent record it extends.
type Record struct {
	schema      *Schema
	name        string
	parent      *Record
	attrs       []*Codec
	attrsByName map[string]*Codec
	fields      map[string]string
}

func (rec *Record) Name() string    { return rec.name }
func (rec *Record) Parent() *Record { return rec.parent }
func (rec *Record) Schema() *Schema { return rec.schema }

// Attr returns the codec of the named attribute, looking through parent
// records. Attribute names are case-sensitive.
func (rec *Record) Attr(name string) *Codec {
	for r := rec; r != nil; r = r.parent {
		if c := r.attrsByName[name]; c != nil {
			return c
		}
	}
	return nil
}

func (rec *Record) MustAttr(name string) *Codec {
	c := rec.Attr(name)
	if c == nil {
		panic(fmt.Errorf("%s: %w %q", rec.name, ErrUnknownAttr, name))
	}
	return c
}

// Attrs returns inherited attributes first, then own ones, each group in
// definition order.
func (rec *Record) Attrs() []*Codec {
	var result []*Codec
	if rec.parent != nil {
		result = rec.parent.Attrs()
	}
	return append(result, rec.attrs...)
}

func (rec *Record) OwnAttrs() []*Codec {
	return append([]*Codec(nil), rec.attrs...)
}

// FieldName returns the Go struct field explicitly mapped to attr, if any.
func (rec *Record) FieldName(attr string) string {
	for r := rec; r != nil; r = r.parent {
		if f := r.fields[attr]; f != "" {
			return f
		}
	}
	return ""
}

func (scm *Schema) addRecord(name string, parent *Record) (*Record, error) {
	if isBlank(name) {
		return nil, defErrf(name, "", "record name is blank")
	}
	if scm.recordsByName[name] != nil {
		return nil, defErrf(name, "", "record already defined")
	}
	if parent != nil && parent.schema != scm {
		return nil, defErrf(name, "", "parent %s belongs to another schema", parent.name)
	}
	return &Record{
		schema:      scm,
		name:        name,
		parent:      parent,
		attrsByName: make(map[string]*Codec),
		fields:      make(map[string]string),
	}, nil
}

func (scm *Schema) commitRecord(rec *Record) {
	scm.records = append(scm.records, rec)
	scm.recordsByName[rec.name] = rec
}

func (rec *Record) define(attr string, symbols []string, opt CodecOpts) (*Codec, error) {
	if rec.Attr(attr) != nil {
		return nil, defErrf(rec.name, attr, "attribute already defined")
	}
	c, err := newCodec(rec.name, attr, symbols, opt)
	if err != nil {
		return nil, err
	}
	rec.attrs = append(rec.attrs, c)
	rec.attrsByName[attr] = c
	if rec.schema.verbose {
		rec.schema.logf("bitattr: DEFINE %s.%s => %s", rec.name, attr, layoutString(c))
	}
	return c, nil
}

func layoutString(c *Codec) string {
	var buf strings.Builder
	for i, sym := range c.symbols {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%s=%d", sym, c.bits[sym])
	}
	if c.zero != "" {
		fmt.Fprintf(&buf, " (zero=%s)", c.zero)
	}
	return buf.String()
}
