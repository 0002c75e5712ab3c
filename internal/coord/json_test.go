package coord

import (
	"encoding/json"
	"testing"
)

func TestRangeJSONRoundTrip(t *testing.T) {
	r := NewAaRefRange(5, 10)
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"begin":5,"end":10}` {
		t.Errorf("Marshal() = %s, want {\"begin\":5,\"end\":10}", data)
	}
	var got AaRefRange
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got != r {
		t.Errorf("round trip = %+v, want %+v", got, r)
	}
}

func TestPositionJSONRoundTrip(t *testing.T) {
	p := NewNucRefGlobalPosition(42)
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != "42" {
		t.Errorf("Marshal() = %s, want 42", data)
	}
	var got NucRefGlobalPosition
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got != p {
		t.Errorf("round trip = %+v, want %+v", got, p)
	}
}
