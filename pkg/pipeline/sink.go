package pipeline

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/classgraph/pkg/errors"
	"github.com/matzehuels/classgraph/pkg/render/dot"
)

// StdoutName is the output name that writes the diagram to standard output.
const StdoutName = "-"

// sink is the output of one pass. File sinks write to a temporary sibling
// of the target, which replaces the target only on commit; an aborted pass
// leaves any previous diagram untouched.
type sink struct {
	target string
	tmp    *os.File
	enc    io.WriteCloser
	buf    *bufio.Writer
	done   bool
}

// openSink acquires the output for target. StdoutName writes to stdout.
func openSink(target, encoding string, stdout io.Writer) (*sink, error) {
	s := &sink{target: target}
	var w io.Writer = stdout
	if target != StdoutName {
		dir := filepath.Dir(target)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeSink, err, "create directory %s", dir)
		}
		tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSink, err, "open %s", target)
		}
		s.tmp = tmp
		w = tmp
	}
	enc, err := dot.EncodeWriter(w, encoding)
	if err != nil {
		s.abort()
		return nil, err
	}
	s.enc = enc
	s.buf = bufio.NewWriter(enc)
	return s, nil
}

func (s *sink) Write(p []byte) (int, error) { return s.buf.Write(p) }

// commit flushes the output and moves it into place.
func (s *sink) commit() error {
	if s.done {
		return nil
	}
	s.done = true
	err := s.buf.Flush()
	if cerr := s.enc.Close(); err == nil {
		err = cerr
	}
	if s.tmp == nil {
		if err != nil {
			return errors.Wrap(errors.ErrCodeSink, err, "write standard output")
		}
		return nil
	}
	if cerr := s.tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(s.tmp.Name(), s.target)
	}
	if err != nil {
		os.Remove(s.tmp.Name())
		return errors.Wrap(errors.ErrCodeSink, err, "write %s", s.target)
	}
	return nil
}

// abort releases the output without touching the target. It is a no-op
// after commit.
func (s *sink) abort() {
	if s.done {
		return
	}
	s.done = true
	if s.tmp != nil {
		s.tmp.Close()
		os.Remove(s.tmp.Name())
	}
}
