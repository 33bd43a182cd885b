package rotation

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Aleph-Alpha/logsink/v1/logerr"
)

// DateToken is the placeholder in a file naming template that is replaced
// by the current date when a file is opened.
const DateToken = "%DATE%"

// DateLayout is the format substituted for DateToken.
const DateLayout = "2006-01-02"

// Cadence is how often a new physical file begins.
type Cadence string

// Daily is currently the only cadence: one file per calendar day.
const Daily Cadence = "daily"

// Policy describes how a file sink is named, rotated and retained.
type Policy struct {
	// Template is the file name, relative to the log directory, containing
	// DateToken exactly once.
	Template string

	// Cadence is always Daily.
	Cadence Cadence

	// MaxRetentionDays is how many days a rotated file is kept. Always >= 1.
	MaxRetentionDays int
}

// NewPolicy validates its arguments and returns a daily policy.
func NewPolicy(template string, maxRetentionDays int) (Policy, error) {
	if maxRetentionDays <= 0 {
		return Policy{}, fmt.Errorf("%w: retention must be at least 1 day, got %d",
			logerr.ErrConfiguration, maxRetentionDays)
	}
	if strings.Count(template, DateToken) != 1 {
		return Policy{}, fmt.Errorf("%w: file name template %q must contain %s exactly once",
			logerr.ErrConfiguration, template, DateToken)
	}
	return Policy{
		Template:         template,
		Cadence:          Daily,
		MaxRetentionDays: maxRetentionDays,
	}, nil
}

// FileName returns the name of the file that is active at t.
func (p Policy) FileName(t time.Time) string {
	return strings.Replace(p.Template, DateToken, t.Format(DateLayout), 1)
}

// backupTimeFormat is the timestamp lumberjack inserts before the extension
// when it moves an oversized file aside.
const backupTimeFormat = "2006-01-02T15-04-05.000"

// DateOf extracts the date embedded in name. Size-rotated backups such as
// "info_2024-04-01-2024-04-01T18-02-11.512.log" carry the date of the file
// they were split from. ok is false if name was not produced by this policy.
func (p Policy) DateOf(name string, loc *time.Location) (date time.Time, ok bool) {
	if date, ok := p.dateOfActive(name, loc); ok {
		return date, true
	}
	active, ok := activeName(name)
	if !ok {
		return time.Time{}, false
	}
	return p.dateOfActive(active, loc)
}

// activeName strips a lumberjack backup timestamp from name.
func activeName(name string) (string, bool) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	cut := len(stem) - len(backupTimeFormat) - 1
	if cut <= 0 || stem[cut] != '-' {
		return "", false
	}
	if _, err := time.Parse(backupTimeFormat, stem[cut+1:]); err != nil {
		return "", false
	}
	return stem[:cut] + ext, true
}

func (p Policy) dateOfActive(name string, loc *time.Location) (time.Time, bool) {
	prefix, suffix, found := strings.Cut(p.Template, DateToken)
	if !found || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, suffix) {
		return time.Time{}, false
	}
	middle := name[len(prefix):]
	if len(middle) < len(suffix) {
		return time.Time{}, false
	}
	middle = middle[:len(middle)-len(suffix)]
	date, err := time.ParseInLocation(DateLayout, middle, loc)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// Expired reports whether a file dated fileDate must be deleted at now. A
// file is kept for MaxRetentionDays full calendar days after its own date,
// so a file younger than the window is never expired.
func (p Policy) Expired(fileDate, now time.Time) bool {
	return calendarDaysBetween(fileDate, now) > p.MaxRetentionDays
}

func calendarDaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
