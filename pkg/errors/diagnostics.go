package errors

import (
	"fmt"
	"strings"
)

// Severity classifies a diagnostic.
type Severity int

const (
	// SeverityWarning marks a problem the engine recovered from.
	SeverityWarning Severity = iota
	// SeverityError marks a problem that failed at least one diagram.
	SeverityError
)

// String returns the lower-case severity name.
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is one recorded problem. Subject names the class, view or file
// the problem is about, if any.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Subject  string
	Message  string
}

// String formats the diagnostic as "severity CODE subject: message".
func (d Diagnostic) String() string {
	if d.Subject == "" {
		return fmt.Sprintf("%s %s: %s", d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s %s %s: %s", d.Severity, d.Code, d.Subject, d.Message)
}

// Diagnostics accumulates problems found while generating diagrams. The zero
// value is ready to use. Diagnostics is not safe for concurrent use; each
// diagram pass owns its own collector and merges it into the run's collector
// when done.
type Diagnostics struct {
	items []Diagnostic
}

// Warn records a recovered problem.
func (d *Diagnostics) Warn(code Code, subject, format string, args ...any) {
	d.add(SeverityWarning, code, subject, fmt.Sprintf(format, args...))
}

// Fail records a problem that failed a diagram.
func (d *Diagnostics) Fail(code Code, subject, format string, args ...any) {
	d.add(SeverityError, code, subject, fmt.Sprintf(format, args...))
}

// Add records err as a warning. Structured errors keep their code; other
// errors are filed under ErrCodeInternal. A nil err is ignored.
func (d *Diagnostics) Add(subject string, err error) {
	d.addErr(SeverityWarning, subject, err)
}

// AddError records err with error severity. A nil err is ignored.
func (d *Diagnostics) AddError(subject string, err error) {
	d.addErr(SeverityError, subject, err)
}

func (d *Diagnostics) addErr(sev Severity, subject string, err error) {
	if err == nil {
		return
	}
	code := GetCode(err)
	if code == "" {
		code = ErrCodeInternal
	}
	d.add(sev, code, subject, UserMessage(err))
}

func (d *Diagnostics) add(sev Severity, code Code, subject, msg string) {
	d.items = append(d.items, Diagnostic{Severity: sev, Code: code, Subject: subject, Message: msg})
}

// Merge appends all diagnostics of other.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}
	d.items = append(d.items, other.items...)
}

// Items returns a copy of the recorded diagnostics in insertion order.
func (d *Diagnostics) Items() []Diagnostic {
	out := make([]Diagnostic, len(d.items))
	copy(out, d.items)
	return out
}

// Len returns the number of recorded diagnostics.
func (d *Diagnostics) Len() int { return len(d.items) }

// HasErrors reports whether any error-severity diagnostic was recorded.
func (d *Diagnostics) HasErrors() bool {
	for _, it := range d.items {
		if it.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns how many diagnostics carry the given code.
func (d *Diagnostics) Count(code Code) int {
	n := 0
	for _, it := range d.items {
		if it.Code == code {
			n++
		}
	}
	return n
}

// String joins all diagnostics, one per line.
func (d *Diagnostics) String() string {
	lines := make([]string, len(d.items))
	for i, it := range d.items {
		lines[i] = it.String()
	}
	return strings.Join(lines, "\n")
}
