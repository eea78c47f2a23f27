package bitattr

import (
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

type (
	Campaign struct {
		ID        int
		Medium    int64         `bitmask:"medium"`
		AllowZero sql.NullInt64 `bitmask:"allow_zero"`
		Misc      *int64
		Legacy    uint16 `bitmask:"Legacy"`
	}

	DefaultValue struct {
		DefaultSym   int32
		DefaultArray int64 `bitmask:"default_array"`
	}
)

var (
	mediumSymbols = []string{"web", "print", "email", "phone"}

	testSchema = NewSchema(SchemaOpts{Logf: func(format string, args ...any) {}})

	campaignWithNull = DefineRecord(testSchema, "CampaignWithNull", nil, func(b *RecordBuilder) {
		b.Bitmask("medium", mediumSymbols, CodecOpts{AllowNull: true})
		b.Bitmask("allow_zero", []string{"one", "two", "three"}, CodecOpts{Zero: "none", AllowNull: true})
		b.Bitmask("misc", []string{"some", "useless", "values"}, CodecOpts{AllowNull: true})
		b.Bitmask("Legacy", []string{"upper", "case"}, CodecOpts{AllowNull: true})
	})
	subCampaignWithNull = DefineRecord(testSchema, "SubCampaignWithNull", campaignWithNull, nil)

	campaignWithoutNull = DefineRecord(testSchema, "CampaignWithoutNull", nil, func(b *RecordBuilder) {
		b.Bitmask("medium", mediumSymbols, CodecOpts{})
		b.Bitmask("allow_zero", []string{"one", "two", "three"}, CodecOpts{Zero: "none"})
		b.Bitmask("misc", []string{"some", "useless", "values"}, CodecOpts{})
		b.Bitmask("Legacy", []string{"upper", "case"}, CodecOpts{})
	})

	defaultValues = DefineRecord(testSchema, "DefaultValue", nil, func(b *RecordBuilder) {
		b.Bitmask("default_sym", []string{"x", "y", "z"}, CodecOpts{Default: []string{"y"}})
		b.Bitmask("default_array", []string{"x", "y", "z"}, CodecOpts{Default: []string{"y", "z"}})
		b.Field("default_sym", "DefaultSym")
	})
)

func newMediumCodec(t testing.TB) *Codec {
	t.Helper()
	return must(NewCodec("medium", mediumSymbols, CodecOpts{}))
}

func deepEqual[T any](t testing.TB, a, e T) {
	if !reflect.DeepEqual(a, e) {
		t.Helper()
		t.Errorf("** got %v, wanted %v", a, e)
	}
}

func isnil[T any, P ~*T](t testing.TB, a P) {
	if a != nil {
		t.Helper()
		t.Errorf("** got &%v, wanted nil", *a)
	}
}

func success(t testing.TB, err error) {
	if err != nil {
		t.Helper()
		t.Fatalf("** unexpected error: %v", err)
	}
}

func failure(t testing.TB, err, target error) {
	t.Helper()
	if err == nil {
		t.Fatalf("** got no error, wanted %v", target)
	}
	if !errors.Is(err, target) {
		t.Fatalf("** got error %v, wanted %v", err, target)
	}
}

func contains(t testing.TB, s string, substrs ...string) {
	t.Helper()
	for _, sub := range substrs {
		if !strings.Contains(s, sub) {
			t.Errorf("** %q does not contain %q", s, sub)
		}
	}
}

// logCapture collects everything logged through a schema.
type logCapture struct {
	lines []string
}

func (lc *logCapture) logf(format string, args ...any) {
	lc.lines = append(lc.lines, fmt.Sprintf(format, args...))
}

func (lc *logCapture) String() string {
	return strings.Join(lc.lines, "\n")
}
