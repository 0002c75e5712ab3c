package primer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/nextstrain/nextclade-core/internal/errutil"
)

// ParseDefinitions reads a primer CSV with columns "name,sequence,direction"
// (direction is "fwd"/"rev", case-insensitive), the format datasets ship
// PCR primer sets in. Grounded on the teacher's csv_helper package's
// plain encoding/csv usage, narrowed from file-to-file CSV transforms
// down to a single read-into-memory pass.
func ParseDefinitions(r io.Reader) ([]Definition, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errutil.WrapKind(err, errutil.KindInputParse, "reading primer CSV")
	}

	defs := make([]Definition, 0, len(rows))
	for i, row := range rows {
		if i == 0 && strings.EqualFold(row[0], "name") {
			continue
		}
		dir, err := parseDirection(row[2])
		if err != nil {
			return nil, errutil.New(errutil.KindInputParse, fmt.Sprintf("primer row %d: %v", i+1, err))
		}
		defs = append(defs, Definition{
			Name:      row[0],
			Sequence:  []byte(strings.ToUpper(row[1])),
			Direction: dir,
		})
	}
	return defs, nil
}

func parseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fwd", "forward", "+":
		return Forward, nil
	case "rev", "reverse", "-":
		return Reverse, nil
	default:
		return Forward, fmt.Errorf("unknown primer direction %q", s)
	}
}
