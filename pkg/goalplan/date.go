package goalplan

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a custom type that handles date-only values in JSON, YAML and TOML
type Date struct {
	time.Time
}

// NewDate returns the Date for the given calendar day
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD, RFC3339 or a timestamp without zone
func ParseDate(str string) (Date, error) {
	str = strings.TrimSpace(str)
	if str == "" || str == "null" {
		return Date{}, nil
	}

	for _, layout := range []string{dateLayout, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, str); err == nil {
			return Date{Time: t}, nil
		}
	}

	return Date{}, fmt.Errorf("unable to parse date: %s", str)
}

// UnmarshalJSON implements json.Unmarshaler for Date
func (d *Date) UnmarshalJSON(data []byte) error {
	parsed, err := ParseDate(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON implements json.Marshaler for Date
func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf(`"%s"`, d.Time.Format(dateLayout))), nil
}

// UnmarshalText lets YAML and TOML decoders read quoted or bare dates
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler for Date
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// String returns the date as a string
func (d Date) String() string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Time.Format(dateLayout)
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the number of whole calendar days from `from` to `to`.
// Time of day is ignored; the result is negative when `to` is earlier.
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int((t.Unix() - f.Unix()) / secondsPerDay)
}
