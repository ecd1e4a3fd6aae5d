package sqlite

import (
	"fmt"
	"time"
)

// timeLayout is how timestamps are written to DATETIME columns.
const timeLayout = time.RFC3339Nano

// readLayouts are tried in order when the driver hands back text.
var readLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// timestamp scans a DATETIME column whether the driver returns time.Time or text.
type timestamp struct {
	t *time.Time
}

// Scan implements sql.Scanner.
func (ts timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*ts.t = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	case nil:
		*ts.t = time.Time{}
		return nil
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (ts timestamp) parse(s string) error {
	for _, layout := range readLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*ts.t = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
