package bitattr

import (
	"testing"
)

func campaignColumn(t testing.TB, c *Codec) *Column {
	t.Helper()
	col := c.NewColumn()
	for _, m := range campaignMasks(c.AllowNull()) {
		must(col.AppendNullMask(m))
	}
	return col
}

func TestColumnSelect(t *testing.T) {
	for _, rec := range []*Record{campaignWithNull, campaignWithoutNull} {
		c := rec.MustAttr("medium")
		col := campaignColumn(t, c)
		for _, tt := range campaignScopeCases {
			t.Run(rec.Name()+"/"+tt.name, func(t *testing.T) {
				s := must(tt.scope(c))
				var a []int
				for _, row := range col.Select(s).ToArray() {
					if row != 0 {
						a = append(a, int(row))
					}
				}
				deepEqual(t, a, tt.e)
			})
		}
	}
}

func TestColumnSelectAgreesWithMatch(t *testing.T) {
	c := campaignWithNull.MustAttr("medium")
	col := c.NewColumn()
	must(col.AppendNull())
	for m := int64(0); m <= c.Max(); m++ {
		must(col.Append(m))
	}

	queries := [][]string{nil, {"web"}, {"print", "phone"}, {"web", "print", "email", "phone"}, {""}}
	var scopes []Scope
	for _, q := range queries {
		scopes = append(scopes, must(c.With(q...)), must(c.WithAny(q...)), must(c.Without(q...)), must(c.WithExact(q...)))
	}
	scopes = append(scopes, c.No())

	for _, s := range scopes {
		bm := col.Select(s)
		for row := 0; row < col.Len(); row++ {
			if e, a := s.Match(col.At(row)), bm.Contains(uint32(row)); e != a {
				t.Errorf("** %v row %d (%v): Select = %v, Match = %v", s, row, col.At(row), a, e)
			}
		}
	}
}

func TestColumnChainedScopes(t *testing.T) {
	c := campaignWithNull.MustAttr("medium")
	col := campaignColumn(t, c)
	bm := col.Select(must(c.For("print")), must(c.For("web")))
	deepEqual(t, bm.ToArray(), []uint32{1, 5, 6})
	deepEqual(t, col.Count(must(c.For("email")), must(c.For("phone"))), 2)
	deepEqual(t, col.Count(), 8)
}

func TestColumnAppend(t *testing.T) {
	c := campaignWithoutNull.MustAttr("medium")
	col := c.NewColumn()
	deepEqual(t, must(col.AppendValues("web", "phone")), 0)
	deepEqual(t, col.At(0), MaskOf(9))

	_, err := col.Append(16)
	failure(t, err, ErrInvalidMask)
	_, err = col.AppendNull()
	failure(t, err, ErrInvalidMask)
	_, err = col.AppendValues("fax")
	failure(t, err, ErrUnsupportedValue)
	deepEqual(t, col.Len(), 1)
	deepEqual(t, col.Codec(), c)
}

func TestColumnForeignScope(t *testing.T) {
	col := campaignWithNull.MustAttr("medium").NewColumn()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	col.Select(campaignWithoutNull.MustAttr("medium").No())
}
