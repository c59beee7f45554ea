package library

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Kind is a short label for a mime type.
func Kind(mime string) string {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return "image"
	case mime == "application/pdf":
		return "pdf"
	case mime == "text/csv":
		return "csv"
	case mime == "text/plain":
		return "text"
	}
	return "file"
}

// FormatDate renders an upload date like "Mar 1, 2024".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("Jan 2, 2006")
}

// FormatAge renders t relative to now, e.g. "3 days ago".
func FormatAge(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}

// FormatExpiry describes when a share link stops working.
func FormatExpiry(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "never expires"
	}
	if t.Before(time.Now()) {
		return "expired " + humanize.Time(*t)
	}
	return "expires " + humanize.Time(*t)
}
