package coord

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON renders a Position as a plain 0-based integer, the shape
// original_source's Range<P>/serde derive produces for position
// fields, so dataset JSON (e.g. a QC config's ignored frame-shift
// codon ranges) round-trips without a custom deserializer.
func (p Position[S]) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.value)
}

func (p *Position[S]) UnmarshalJSON(data []byte) error {
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decoding position: %w", err)
	}
	p.value = v
	return nil
}

// rangeJSON is the {begin, end} wire shape for Range[S].
type rangeJSON struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

func (r Range[S]) MarshalJSON() ([]byte, error) {
	return json.Marshal(rangeJSON{Begin: r.Begin.Int(), End: r.End.Int()})
}

func (r *Range[S]) UnmarshalJSON(data []byte) error {
	var raw rangeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding range: %w", err)
	}
	*r = RangeFromInts[S](raw.Begin, raw.End)
	return nil
}
