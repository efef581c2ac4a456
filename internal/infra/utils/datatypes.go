package utils

import (
	"database/sql/driver"
	"fmt"
	"time"
)

type Time struct {
	time.Time
}

// Value stores the wrapped time as a plain timestamp column.
func (t Time) Value() (driver.Value, error) {
	return t.Time, nil
}

func (t *Time) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("unsupported time column type %T", value)
	}
}

func (t *Time) scanString(raw string) error {
	// sqlite hands timestamps back as text
	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported time literal %q", raw)
}

func (t Time) MarshalJSON() ([]byte, error) {
	formatted := t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	return []byte(`"` + formatted + `"`), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" {
		return nil
	}
	parsed, err := time.Parse(`"2006-01-02T15:04:05.000Z07:00"`, raw)
	if err != nil {
		parsed, err = time.Parse(`"`+time.RFC3339+`"`, raw)
		if err != nil {
			return err
		}
	}
	t.Time = parsed
	return nil
}

func Now() Time {
	return Time{Time: time.Now()}
}
