package timeutils

import (
	"fmt"
	"time"
)

// Age renders how long ago t happened, for list output.
func Age(t time.Time, now time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// FormatStamp renders an absolute timestamp in the local timezone.
func FormatStamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
