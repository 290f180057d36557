package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestDiagnostics(t *testing.T) {
	var d Diagnostics

	d.Warn(ErrCodeConfiguration, "nodesep", "invalid number %q", "abc")
	d.Add("Foo", New(ErrCodeRelationTag, "expected 4 fields"))
	d.Add("ignored", nil)

	if d.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", d.Len())
	}
	if d.HasErrors() {
		t.Error("HasErrors() = true, want false")
	}

	d.AddError("out.dot", errors.New("disk full"))
	if !d.HasErrors() {
		t.Error("HasErrors() = false, want true")
	}

	items := d.Items()
	if items[2].Code != ErrCodeInternal {
		t.Errorf("plain error code = %v, want %v", items[2].Code, ErrCodeInternal)
	}
	if items[1].Message != "expected 4 fields" {
		t.Errorf("Message = %q, want %q", items[1].Message, "expected 4 fields")
	}
	if got := d.Count(ErrCodeConfiguration); got != 1 {
		t.Errorf("Count(CONFIGURATION) = %d, want 1", got)
	}

	want := `warning CONFIGURATION nodesep: invalid number "abc"`
	if first := strings.Split(d.String(), "\n")[0]; first != want {
		t.Errorf("String() first line = %q, want %q", first, want)
	}
}

func TestDiagnosticsMerge(t *testing.T) {
	var a, b Diagnostics
	a.Warn(ErrCodeSink, "", "a")
	b.Fail(ErrCodeResolution, "View", "b")

	a.Merge(&b)
	a.Merge(nil)

	if a.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", a.Len())
	}
	if got := a.Items()[1].String(); got != "error RESOLUTION View: b" {
		t.Errorf("String() = %q", got)
	}
}
