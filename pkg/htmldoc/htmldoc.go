package htmldoc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/matzehuels/classgraph/pkg/buildinfo"
	"github.com/matzehuels/classgraph/pkg/errors"
)

// PackageSummary is the page a package diagram is inserted into.
const PackageSummary = "package-summary.html"

// Button captions of collapsible diagrams.
const (
	ShowCaption = "Show UML class diagram"
	HideCaption = "Hide UML class diagram"
)

const divTag = `<div align="center"><object width="100%%" height="100%%" type="%s" data="%s" alt="%s" border=0></object></div>`

const autoSizedDivTag = `<div align="center"><object type="%s" data="%s" alt="%s" border=0></object></div>`

const buttonStyle = "font-family: Arial,Helvetica,sans-serif;font-size: 1.5em; display: block; width: 250px; height: 20px; " +
	"background: #009933; padding: 5px; text-align: center; border-radius: 8px; color: white; font-weight: bold;"

const collapsible = `<script type="text/javascript">
function show() {
    document.getElementById("uml").innerHTML = 
        '<a style="` + buttonStyle + `" href="javascript:hide()">%[3]s</a>' +
        '%[1]s';
}
function hide() {
	document.getElementById("uml").innerHTML = 
	'<a style="` + buttonStyle + `" href="javascript:show()">%[2]s</a>' ;
}
</script>
<div id="uml" >
	<a href="javascript:show()">
	<a style="` + buttonStyle + `" href="javascript:show()">%[2]s</a> 
</div>`

// PackagePattern matches the heading line of a package summary page.
func PackagePattern() *regexp.Regexp {
	return fullLine(`(</[Hh]2>)|(<h1 title="Package").*`)
}

// ClassPattern matches the title line of the page of the class, interface
// or enum called simpleName.
func ClassPattern(simpleName string) *regexp.Regexp {
	return fullLine(`.*(Class|Interface|Enum) ` + regexp.QuoteMeta(simpleName) + `.*`)
}

func fullLine(expr string) *regexp.Regexp {
	return regexp.MustCompile(`^(?:` + expr + `)$`)
}

// Diagram describes the inserted reference.
type Diagram struct {
	// Data is the diagram file relative to the page, e.g. "Widget.svg".
	Data string
	// Alt is the alternative text of the object.
	Alt string
}

// Patcher rewrites HTML pages.
type Patcher struct {
	// AutoSize lets the browser size the diagram instead of filling the
	// page width.
	AutoSize bool
	// Collapsible hides the diagram behind a show/hide button.
	Collapsible bool
	// Encoding is the character set of the pages; empty means UTF-8.
	Encoding string
	Logger   *log.Logger
}

// Tag returns the markup inserted for d.
func (p *Patcher) Tag(d Diagram) string {
	format := divTag
	if p.AutoSize {
		format = autoSizedDivTag
	}
	tag := fmt.Sprintf(format, mimeType(d.Data), d.Data, d.Alt)
	if p.Collapsible {
		tag = fmt.Sprintf(collapsible, tag, ShowCaption, HideCaption)
	}
	return tag
}

func mimeType(file string) string {
	switch {
	case strings.HasSuffix(file, ".png"):
		return "image/png"
	case strings.HasSuffix(file, ".jpg"):
		return "image/jpeg"
	default:
		return "image/svg+xml"
	}
}

// Patch inserts the reference to d after the first line of page matching
// insertAt. It reports whether a line matched. A missing page is a
// FILE_NOT_FOUND error; an unmatched page is left as it was.
func (p *Patcher) Patch(page string, insertAt *regexp.Regexp, d Diagram) (bool, error) {
	enc, err := codec(p.Encoding)
	if err != nil {
		return false, err
	}
	in, err := os.Open(page)
	if os.IsNotExist(err) {
		return false, errors.Wrap(errors.ErrCodeFileNotFound, err, "expected file not found: %s", page)
	}
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeSink, err, "open %s", page)
	}
	defer in.Close()

	altered := page + ".uml"
	out, err := os.Create(altered)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeSink, err, "create %s", altered)
	}
	matched, err := p.rewrite(enc.NewEncoder().Writer(out), enc.NewDecoder().Reader(in), insertAt, d)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil || !matched {
		os.Remove(altered)
		if err != nil {
			return false, errors.Wrap(errors.ErrCodeSink, err, "rewrite %s", page)
		}
		p.logger().Warn("could not find a line that matches the pattern; class diagram reference not inserted",
			"page", page, "pattern", insertAt.String())
		return false, nil
	}
	in.Close()
	if err := os.Rename(altered, page); err != nil {
		return false, errors.Wrap(errors.ErrCodeSink, err, "replace %s", page)
	}
	p.logger().Debug("inserted class diagram", "page", page, "diagram", d.Data)
	return true, nil
}

// rewrite copies r to w line by line, inserting the diagram after the
// first matching line.
func (p *Patcher) rewrite(w io.Writer, r io.Reader, insertAt *regexp.Regexp, d Diagram) (bool, error) {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	matched := false
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			text := strings.TrimRight(line, "\r\n")
			bw.WriteString(text + "\n")
			if !matched && insertAt.MatchString(text) {
				matched = true
				bw.WriteString("<!-- UML diagram added by " + buildinfo.Generator() + " -->\n")
				bw.WriteString(p.Tag(d) + "\n")
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return false, err
		}
	}
	if err := bw.Flush(); err != nil {
		return false, err
	}
	if c, ok := w.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return false, err
		}
	}
	return matched, nil
}

func (p *Patcher) logger() *log.Logger {
	if p.Logger == nil {
		return log.Default()
	}
	return p.Logger
}

func codec(charset string) (encoding.Encoding, error) {
	if charset == "" {
		return encoding.Nop, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "unsupported output encoding %q", charset)
	}
	return enc, nil
}
