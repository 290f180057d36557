package render

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/classgraph/pkg/errors"
	"github.com/matzehuels/classgraph/pkg/observability"
)

// Command renders by running a Graphviz executable.
type Command struct {
	// Executable is the program to run; empty means "dot".
	Executable string
	Logger     *log.Logger
}

// NewCommand returns a renderer running exe.
func NewCommand(exe string, logger *log.Logger) *Command {
	if exe == "" {
		exe = "dot"
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Command{Executable: exe, Logger: logger}
}

func (r *Command) Name() string { return "command:" + r.Executable }

// Render runs "<exe> -T<format> -o <out> <in>". Every line the program
// prints on standard error becomes a warning. A program that cannot be
// started or exits with a non-zero status is a SINK error.
func (r *Command) Render(ctx context.Context, req Request) error {
	if err := req.normalize(); err != nil {
		return err
	}
	exe := r.Executable
	if exe == "" {
		exe = "dot"
	}
	if _, err := exec.LookPath(exe); err != nil {
		return errors.Wrap(errors.ErrCodeSink, err,
			"Graphviz executable %q not found; install Graphviz or set dotexecutable", exe)
	}

	cmd := exec.CommandContext(ctx, exe, "-T"+req.Format, "-o", req.Output, req.Input)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, req.Format)
	err := cmd.Run()
	observability.Pipeline().OnRenderComplete(ctx, req.Format, time.Since(start), err)

	sc := bufio.NewScanner(&stderr)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		r.Logger.Warn(line, "renderer", exe)
		if req.Diagnostics != nil {
			req.Diagnostics.Warn(errors.ErrCodeSink, req.Input, "%s", line)
		}
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeSink, err, "errors running Graphviz on %s", req.Input)
	}
	r.Logger.Debug("rendered diagram", "in", req.Input, "out", req.Output)
	return nil
}
