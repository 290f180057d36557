package htmldoc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/classgraph/pkg/errors"
)

func TestPatterns(t *testing.T) {
	tests := []struct {
		name string
		line string
		pkg  bool
		cls  bool
	}{
		{"h2 close", "</H2>", true, false},
		{"h1 package", `<h1 title="Package" class="title">Package com.acme</h1>`, true, false},
		{"h2 with text", "<h2>x</h2> tail", false, false},
		{"class title", `<h1 title="Class Widget" class="title">Class Widget</h1>`, false, true},
		{"interface title", `<h2 title="Interface Widget">Interface Widget</h2>`, false, true},
		{"other class", `<h1 title="Class Gadget">Class Gadget</h1>`, false, false},
	}
	cls := ClassPattern("Widget")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PackagePattern().MatchString(tt.line); got != tt.pkg {
				t.Errorf("PackagePattern(%q) = %v, want %v", tt.line, got, tt.pkg)
			}
			if got := cls.MatchString(tt.line); got != tt.cls {
				t.Errorf("ClassPattern(%q) = %v, want %v", tt.line, got, tt.cls)
			}
		})
	}
}

func TestTag(t *testing.T) {
	d := Diagram{Data: "Widget.svg", Alt: "Class diagram Widget"}

	plain := (&Patcher{}).Tag(d)
	if !strings.Contains(plain, `width="100%" height="100%" type="image/svg+xml" data="Widget.svg"`) {
		t.Errorf("Tag = %s", plain)
	}
	auto := (&Patcher{AutoSize: true}).Tag(d)
	if strings.Contains(auto, "width=") {
		t.Errorf("autosized tag must not fix the size: %s", auto)
	}
	coll := (&Patcher{Collapsible: true}).Tag(d)
	for _, want := range []string{"<script", ShowCaption, HideCaption, `data="Widget.svg"`} {
		if !strings.Contains(coll, want) {
			t.Errorf("collapsible tag lacks %q", want)
		}
	}
	if png := (&Patcher{}).Tag(Diagram{Data: "a.png"}); !strings.Contains(png, `type="image/png"`) {
		t.Errorf("png tag = %s", png)
	}
}

func writePage(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Widget.html")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPatch(t *testing.T) {
	page := writePage(t, "<html>\r\n<h1 title=\"Class Widget\">Class Widget</h1>\r\n<p>Class Widget again</p>\r\n</html>")
	p := &Patcher{AutoSize: true}
	ok, err := p.Patch(page, ClassPattern("Widget"), Diagram{Data: "Widget.svg", Alt: "Widget"})
	if err != nil || !ok {
		t.Fatalf("Patch = %v, %v", ok, err)
	}
	got, _ := os.ReadFile(page)
	lines := strings.Split(string(got), "\n")
	if len(lines) != 7 {
		t.Fatalf("patched page has %d lines:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(lines[2], "<!-- UML diagram added by classgraph version") {
		t.Errorf("line 3 = %q, want the generator comment", lines[2])
	}
	if !strings.Contains(lines[3], `data="Widget.svg"`) {
		t.Errorf("line 4 = %q, want the object tag", lines[3])
	}
	if strings.Count(string(got), "<object") != 1 {
		t.Error("the diagram must be inserted once")
	}
	if _, err := os.Stat(page + ".uml"); !os.IsNotExist(err) {
		t.Error("sibling file left behind")
	}
}

func TestPatchNoMatch(t *testing.T) {
	const content = "<html>\n<p>nothing here</p>\n</html>\n"
	page := writePage(t, content)
	ok, err := (&Patcher{}).Patch(page, PackagePattern(), Diagram{Data: "p.svg"})
	if err != nil || ok {
		t.Fatalf("Patch = %v, %v; want false, nil", ok, err)
	}
	got, _ := os.ReadFile(page)
	if string(got) != content {
		t.Errorf("unmatched page changed:\n%s", got)
	}
	if _, err := os.Stat(page + ".uml"); !os.IsNotExist(err) {
		t.Error("sibling file left behind")
	}
}

func TestPatchMissingPage(t *testing.T) {
	_, err := (&Patcher{}).Patch(filepath.Join(t.TempDir(), "none.html"), PackagePattern(), Diagram{})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestPatchEncoding(t *testing.T) {
	// "Café" in ISO-8859-1
	page := writePage(t, "<h1 title=\"Class Widget\">Caf\xe9</h1>\n")
	p := &Patcher{Encoding: "ISO-8859-1"}
	if ok, err := p.Patch(page, ClassPattern("Widget"), Diagram{Data: "Widget.svg", Alt: "Widget"}); err != nil || !ok {
		t.Fatalf("Patch = %v, %v", ok, err)
	}
	got, _ := os.ReadFile(page)
	if !strings.HasPrefix(string(got), "<h1 title=\"Class Widget\">Caf\xe9</h1>\n") {
		t.Errorf("page not kept in its encoding: %q", got)
	}

	if _, err := (&Patcher{Encoding: "no-such-charset"}).Patch(page, PackagePattern(), Diagram{}); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("err = %v, want CONFIGURATION", err)
	}
}
