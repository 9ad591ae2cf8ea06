package ptr

import "time"

func String(s string) *string {
	return &s
}

func Float64(f float64) *float64 {
	return &f
}

func Time(t time.Time) *time.Time {
	return &t
}
