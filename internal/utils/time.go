package util

import (
	"strings"
	"time"
)

// LocalDateTime is a wall-clock timestamp in the quiz timezone. The
// history file and the JSON API both use the same zone-less layout.
type LocalDateTime struct {
	time.Time
}

const layout = "2006-01-02T15:04:05"

var madridLocation *time.Location

func init() {
	var err error
	madridLocation, err = time.LoadLocation("Europe/Madrid")
	if err != nil {
		madridLocation = time.FixedZone("CET", 60*60)
	}
}

func Local(t time.Time) LocalDateTime {
	return LocalDateTime{t.In(madridLocation)}
}

func Now() LocalDateTime {
	return Local(time.Now())
}

func Parse(s string) (LocalDateTime, error) {
	t, err := time.ParseInLocation(layout, s, madridLocation)
	if err != nil {
		return LocalDateTime{}, err
	}
	return LocalDateTime{t}, nil
}

func ToTimePtr(ldt *LocalDateTime) *time.Time {
	if ldt == nil {
		return nil
	}
	t := ldt.Time
	return &t
}

func (ldt LocalDateTime) String() string {
	if ldt.IsZero() {
		return ""
	}
	return ldt.In(madridLocation).Format(layout)
}

func (ldt *LocalDateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.ParseInLocation(layout, s, madridLocation)
	if err != nil {
		return err
	}
	ldt.Time = t
	return nil
}

func (ldt LocalDateTime) MarshalJSON() ([]byte, error) {
	if ldt.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + ldt.In(madridLocation).Format(layout) + `"`), nil
}

func (ldt LocalDateTime) Equal(other LocalDateTime) bool {
	return ldt.Time.Equal(other.Time)
}
