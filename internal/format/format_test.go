package format

import (
	"bytes"
	"testing"
)

type sample struct {
	SessionID string         `json:"sessionId"`
	Rounds    int            `json:"roundsCompleted"`
	Ratio     float64        `json:"ratio"`
	Tags      []string       `json:"tags"`
	ByGame    map[string]int `json:"byGame"`
	Note      *string        `json:"note"`
}

func TestWrite_JSONKeepsSymbols(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, map[string]string{"title": "Fraction to Decimal & Percent"}, "", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != "{\"title\":\"Fraction to Decimal & Percent\"}\n" {
		t.Fatalf("got %q", got)
	}
}

func TestWrite_EDN(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	v := sample{SessionID: "s-1", Rounds: 3, Ratio: 0.5, Tags: []string{"1/2", "33⅓%"}, ByGame: map[string]int{"times": 2}}
	if err := Write(&buf, v, "EDN", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := `{:by-game {:times 2} :note nil :ratio 0.5 :rounds-completed 3 :session-id "s-1" :tags ["1/2" "33⅓%"]}` + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestWrite_EDNPretty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteEDN(&buf, map[string]any{"levels": []int{1, 2}, "empty": []int{}}, true); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	want := "{\n  :empty []\n  :levels [\n    1\n    2\n  ]\n}\n"
	if got := buf.String(); got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	if err := Write(&bytes.Buffer{}, 1, "yaml", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestKeyword(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"id":              "id",
		"roundsCompleted": "rounds-completed",
		"zone_id":         "zone-id",
		"_hints":          "-hints",
	}
	for in, want := range cases {
		if got := keyword(in); got != want {
			t.Fatalf("keyword(%q) = %q, want %q", in, got, want)
		}
	}
}
