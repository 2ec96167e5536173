package model

import (
	"bytes"
	"fmt"
	"hostel/shared/constant"
	"time"
)

// Date is a calendar day without time of day, encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(value string) (Date, error) {
	parsed, err := time.Parse(constant.DateFormat, value)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", value, err)
	}

	return Date{Time: parsed}, nil
}

func (d Date) String() string {
	return d.Format(constant.DateFormat)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}

		return nil
	}

	raw := string(bytes.Trim(data, `"`))

	// timestamp columns cast to date still arrive with a time part
	if len(raw) > len(constant.DateFormat) {
		raw = raw[:len(constant.DateFormat)]
	}

	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// Nights is the number of days between two dates.
func Nights(checkIn, checkOut Date) int {
	return int(checkOut.Sub(checkIn.Time).Hours() / 24)
}
