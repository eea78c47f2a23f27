package bitattr

import (
	"fmt"
	"strings"
)

type ColumnStats struct {
	Rows  int
	Nulls int
	Empty int

	// Symbols counts rows holding each symbol, in definition order.
	Symbols []int

	IndexSize int
}

// Set returns the number of rows with at least one value.
func (cs *ColumnStats) Set() int {
	return cs.Rows - cs.Nulls - cs.Empty
}

func (col *Column) Stats() ColumnStats {
	result := ColumnStats{
		Rows:    len(col.masks),
		Nulls:   int(col.nulls.GetCardinality()),
		Symbols: make([]int, len(col.bits)),
	}
	result.Empty = result.Rows - result.Nulls - int(col.union(col.codec.Max()).GetCardinality())
	result.IndexSize = int(col.nulls.GetSizeInBytes())
	for i, bm := range col.bits {
		result.Symbols[i] = int(bm.GetCardinality())
		result.IndexSize += int(bm.GetSizeInBytes())
	}
	return result
}

func (col *Column) loggableStats() string {
	cs := col.Stats()
	var buf strings.Builder
	fmt.Fprintf(&buf, "%s: rows=%d null=%d empty=%d", col.codec.name, cs.Rows, cs.Nulls, cs.Empty)
	for i, n := range cs.Symbols {
		fmt.Fprintf(&buf, " %s=%d", col.codec.symbols[i], n)
	}
	return buf.String()
}
