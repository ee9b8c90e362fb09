package archive

import (
	"math"
	"time"
)

// SystemTime is a broken-down calendar timestamp with millisecond precision.
// Field order is the wire order.
type SystemTime struct {
	Year         uint16
	Month        uint16
	DayOfWeek    uint16
	Day          uint16
	Hour         uint16
	Minute       uint16
	Second       uint16
	Milliseconds uint16
}

// SystemTimeFrom converts t, in its own location, to a SystemTime. Years
// outside 0..65535 are clamped to that range; the other fields are kept.
func SystemTimeFrom(t time.Time) SystemTime {
	if t.IsZero() {
		return SystemTime{}
	}
	return SystemTime{
		Year:         uint16(min(max(t.Year(), 0), math.MaxUint16)),
		Month:        uint16(t.Month()),
		DayOfWeek:    uint16(t.Weekday()),
		Day:          uint16(t.Day()),
		Hour:         uint16(t.Hour()),
		Minute:       uint16(t.Minute()),
		Second:       uint16(t.Second()),
		Milliseconds: uint16(t.Nanosecond() / int(time.Millisecond)),
	}
}

// Time returns the timestamp as a UTC time. The zero SystemTime maps to the
// zero time.Time.
func (st SystemTime) Time() time.Time {
	if st.IsZero() {
		return time.Time{}
	}
	return time.Date(
		int(st.Year), time.Month(st.Month), int(st.Day),
		int(st.Hour), int(st.Minute), int(st.Second),
		int(st.Milliseconds)*int(time.Millisecond), time.UTC,
	)
}

// IsZero reports whether every field is zero.
func (st SystemTime) IsZero() bool {
	return st == SystemTime{}
}

func (st SystemTime) fields() [8]uint16 {
	return [8]uint16{st.Year, st.Month, st.DayOfWeek, st.Day, st.Hour, st.Minute, st.Second, st.Milliseconds}
}

func systemTimeFromFields(f [8]uint16) SystemTime {
	return SystemTime{
		Year:         f[0],
		Month:        f[1],
		DayOfWeek:    f[2],
		Day:          f[3],
		Hour:         f[4],
		Minute:       f[5],
		Second:       f[6],
		Milliseconds: f[7],
	}
}
