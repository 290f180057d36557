package dot

import (
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/matzehuels/classgraph/pkg/errors"
)

// EncodeWriter returns a writer that encodes UTF-8 text written to it into
// the named character set before passing it to w. Names are those of the
// WHATWG encoding standard ("UTF-8", "ISO-8859-1", "windows-1252", ...).
// Close flushes the encoder; it never closes w.
func EncodeWriter(w io.Writer, charset string) (io.WriteCloser, error) {
	if charset == "" || strings.EqualFold(charset, "utf-8") || strings.EqualFold(charset, "utf8") {
		return nopCloser{w}, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "unsupported output encoding %q", charset)
	}
	if enc == unicode.UTF8 {
		return nopCloser{w}, nil
	}
	return transform.NewWriter(w, enc.NewEncoder()), nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
