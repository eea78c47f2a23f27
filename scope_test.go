package bitattr

import (
	"testing"
)

// campaignMasks returns the seven campaigns used by scope tests, indexed
// from 1. Campaign 2 has no medium: NULL if the record allows it, else 0.
// Entry 0 is a placeholder copy of campaign 2.
func campaignMasks(allowNull bool) []NullMask {
	none := MaskOf(0)
	if allowNull {
		none = Null
	}
	return []NullMask{
		none,
		MaskOf(0b0011), // web print
		none,
		MaskOf(0b0101), // web email
		MaskOf(0b0001), // web
		MaskOf(0b0111), // web print email
		MaskOf(0b1111), // web print email phone
		MaskOf(0b1100), // email phone
	}
}

type scopeCase struct {
	name  string
	scope func(c *Codec) (Scope, error)
	e     []int
}

var campaignScopeCases = []scopeCase{
	{"with", func(c *Codec) (Scope, error) { return c.With() }, []int{1, 3, 4, 5, 6, 7}},
	{"with print", func(c *Codec) (Scope, error) { return c.With("print") }, []int{1, 5, 6}},
	{"for print", func(c *Codec) (Scope, error) { return c.For("print") }, []int{1, 5, 6}},
	{"with_any print email", func(c *Codec) (Scope, error) { return c.WithAny("print", "email") }, []int{1, 3, 5, 6, 7}},
	{"with_any", func(c *Codec) (Scope, error) { return c.WithAny() }, []int{1, 3, 4, 5, 6, 7}},
	{"with web print", func(c *Codec) (Scope, error) { return c.With("web", "print") }, []int{1, 5, 6}},
	{"with web email", func(c *Codec) (Scope, error) { return c.With("web", "email") }, []int{3, 5, 6}},
	{"without", func(c *Codec) (Scope, error) { return c.Without() }, []int{2}},
	{"no", func(c *Codec) (Scope, error) { return c.No(), nil }, []int{2}},
	{"without print", func(c *Codec) (Scope, error) { return c.Without("print") }, []int{2, 3, 4, 7}},
	{"without web print", func(c *Codec) (Scope, error) { return c.Without("web", "print") }, []int{2, 7}},
	{"without print phone", func(c *Codec) (Scope, error) { return c.Without("print", "phone") }, []int{2, 3, 4}},
	{"with_exact web", func(c *Codec) (Scope, error) { return c.WithExact("web") }, []int{4}},
	{"with_exact web print", func(c *Codec) (Scope, error) { return c.WithExact("web", "print") }, []int{1}},
	{"with_exact", func(c *Codec) (Scope, error) { return c.WithExact() }, []int{2}},
	{"with blank", func(c *Codec) (Scope, error) { return c.With("web", "") }, nil},
}

func TestScopeMatch(t *testing.T) {
	for _, rec := range []*Record{campaignWithNull, campaignWithoutNull, subCampaignWithNull} {
		c := rec.MustAttr("medium")
		masks := campaignMasks(c.AllowNull())
		for _, tt := range campaignScopeCases {
			t.Run(rec.Name()+"/"+tt.name, func(t *testing.T) {
				s := must(tt.scope(c))
				var a []int
				for i := 1; i < len(masks); i++ {
					if s.Match(masks[i]) {
						a = append(a, i)
					}
				}
				deepEqual(t, a, tt.e)
			})
		}
	}
}

func TestScopeNull(t *testing.T) {
	nullable := campaignWithNull.MustAttr("medium")
	strict := campaignWithoutNull.MustAttr("medium")

	for _, c := range []*Codec{nullable, strict} {
		deepEqual(t, must(c.With()).Match(Null), false)
		deepEqual(t, must(c.WithAny("web")).Match(Null), false)
		deepEqual(t, must(c.WithExact("web")).Match(Null), false)
	}
	deepEqual(t, nullable.No().Match(Null), true)
	deepEqual(t, must(nullable.Without("web")).Match(Null), true)
	deepEqual(t, strict.No().Match(Null), false)
	deepEqual(t, must(strict.Without("web")).Match(Null), false)
}

func TestScopeZeroValue(t *testing.T) {
	c := campaignWithNull.MustAttr("allow_zero")
	s := must(c.With("none"))
	deepEqual(t, s.Kind(), ScopeNothing)
	deepEqual(t, s.Match(MaskOf(0)), false)
	deepEqual(t, s.Match(MaskOf(7)), false)

	s = must(c.WithExact("none"))
	deepEqual(t, s.Match(MaskOf(0)), true)

	s = must(c.Without("none"))
	deepEqual(t, s.Match(MaskOf(7)), true)
}

func TestScopeVacuous(t *testing.T) {
	c := must(NewCodec("medium", mediumSymbols, CodecOpts{EmptyQuery: EmptyQueryVacuous}))
	deepEqual(t, must(c.With()).Match(MaskOf(0)), true)
	deepEqual(t, must(c.With()).Match(Null), false)
	deepEqual(t, must(c.WithAny()).Match(MaskOf(15)), false)
}

func TestScopeErrors(t *testing.T) {
	c := newMediumCodec(t)
	for _, f := range []func(...string) (Scope, error){c.With, c.WithAny, c.Without, c.WithExact} {
		_, err := f("web", "and_this_isnt_valid")
		failure(t, err, ErrUnsupportedValue)
	}
	_, err := c.For("bogus")
	failure(t, err, ErrUnsupportedValue)
}

func TestScopeString(t *testing.T) {
	c := newMediumCodec(t)
	deepEqual(t, must(c.WithAny("print", "web")).String(), "medium with_any [print web]")
	deepEqual(t, c.No().String(), "medium no")
	deepEqual(t, must(c.With()).String(), "medium any_set")
	deepEqual(t, must(c.With("web", "print")).Mask(), int64(3))
	deepEqual(t, Null.String(), "NULL")
	deepEqual(t, MaskOf(5).String(), "5")
}

func TestMatchAll(t *testing.T) {
	c := newMediumCodec(t)
	onWeb := must(c.For("web"))
	onPrint := must(c.For("print"))
	deepEqual(t, MatchAll(MaskOf(3), onWeb, onPrint), true)
	deepEqual(t, MatchAll(MaskOf(1), onWeb, onPrint), false)
	deepEqual(t, MatchAll(MaskOf(0)), true)
}
