package mutation

import (
	"testing"

	"github.com/nextstrain/nextclade-core/internal/coord"
)

func TestNucSubStringRoundTrip(t *testing.T) {
	sub := NucSub{Pos: coord.NewNucRefGlobalPosition(122), RefNuc: 'C', QryNuc: 'T'}
	if got := sub.String(); got != "C123T" {
		t.Fatalf("String() = %q, want C123T", got)
	}
	parsed, err := ParseNucSub("C123T")
	if err != nil {
		t.Fatalf("ParseNucSub() error = %v", err)
	}
	if parsed != sub {
		t.Errorf("ParseNucSub() = %+v, want %+v", parsed, sub)
	}
}

func TestParseNucSubInvalid(t *testing.T) {
	if _, err := ParseNucSub("garbage"); err == nil {
		t.Error("expected error for malformed mutation string")
	}
}

func TestAaSubStringRoundTrip(t *testing.T) {
	sub := AaSub{Gene: "S", Pos: coord.NewAaRefPosition(500), RefAa: 'N', QryAa: 'Y'}
	if got := sub.String(); got != "S:N501Y" {
		t.Fatalf("String() = %q, want S:N501Y", got)
	}
	parsed, err := ParseAaSub("S:N501Y")
	if err != nil {
		t.Fatalf("ParseAaSub() error = %v", err)
	}
	if parsed != sub {
		t.Errorf("ParseAaSub() = %+v, want %+v", parsed, sub)
	}
}

func TestParseAaSubMinimal(t *testing.T) {
	parsed, err := ParseAaSubMinimal("S", "N501Y")
	if err != nil {
		t.Fatalf("ParseAaSubMinimal() error = %v", err)
	}
	want := AaSub{Gene: "S", Pos: coord.NewAaRefPosition(500), RefAa: 'N', QryAa: 'Y'}
	if parsed != want {
		t.Errorf("ParseAaSubMinimal() = %+v, want %+v", parsed, want)
	}
}
