package bitattr

type RecordBuilder struct {
	rec *Record
}

// DefineRecord adds a record to the schema, letting f declare its bitmask
// attributes. parent may be nil. Definition errors panic; use
// Schema.TryDefineRecord when the definitions come from configuration.
func DefineRecord(scm *Schema, name string, parent *Record, f func(b *RecordBuilder)) *Record {
	return must(scm.TryDefineRecord(name, parent, func(b *RecordBuilder) error {
		if f != nil {
			f(b)
		}
		return nil
	}))
}

// TryDefineRecord is DefineRecord that reports errors. The record is only
// added to the schema when f succeeds.
func (scm *Schema) TryDefineRecord(name string, parent *Record, f func(b *RecordBuilder) error) (*Record, error) {
	rec, err := scm.addRecord(name, parent)
	if err != nil {
		return nil, err
	}
	b := RecordBuilder{rec}
	if f != nil {
		if err := f(&b); err != nil {
			return nil, err
		}
	}
	scm.commitRecord(rec)
	return rec, nil
}

// Bitmask defines an attribute, panicking on an invalid definition.
func (b *RecordBuilder) Bitmask(attr string, symbols []string, opt CodecOpts) *Codec {
	return must(b.rec.define(attr, symbols, opt))
}

func (b *RecordBuilder) Define(attr string, symbols []string, opt CodecOpts) (*Codec, error) {
	return b.rec.define(attr, symbols, opt)
}

// Field maps attr to a Go struct field name for row bindings.
func (b *RecordBuilder) Field(attr, field string) {
	b.rec.fields[attr] = field
}

func (b *RecordBuilder) Record() *Record {
	return b.rec
}
