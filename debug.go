package bitattr

import (
	"fmt"
	"strings"
)

var (
	dumpSep1 = strings.Repeat("=", 80)
	dumpSep2 = strings.Repeat("-", 60)
)

// Dump describes every record, its attributes and their bit layouts.
func (scm *Schema) Dump() string {
	var buf strings.Builder
	for _, rec := range scm.records {
		rec.dump(&buf)
	}
	return buf.String()
}

func (rec *Record) dump(w *strings.Builder) {
	fmt.Fprintln(w, dumpSep1)
	if rec.parent != nil {
		fmt.Fprintf(w, "%s < %s (%d attributes)\n", rec.name, rec.parent.name, len(rec.Attrs()))
	} else {
		fmt.Fprintf(w, "%s (%d attributes)\n", rec.name, len(rec.attrs))
	}
	for _, c := range rec.Attrs() {
		fmt.Fprintln(w, dumpSep2)
		prefix := rec.name + "." + c.name
		if c.record != rec.name {
			prefix += " (from " + c.record + ")"
		}
		fmt.Fprintf(w, "%s: null = %v, zero = %q, default = %v, empty_query = %v, fingerprint = %016x\n", prefix, c.allowNull, c.zero, c.MustDecode(c.def), c.emptyQuery, c.Fingerprint())
		width := 0
		for _, sym := range c.symbols {
			width = max(width, len(sym))
		}
		for i, sym := range c.symbols {
			fmt.Fprintf(w, "  %s %2d  %#x\n", rpad(sym, width, ' '), i, c.bits[sym])
		}
	}
}
