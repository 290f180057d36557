package render

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/matzehuels/classgraph/pkg/errors"
)

// Output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatJPG = "jpg"
)

// ValidFormats lists the formats every renderer accepts.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatJPG: true,
}

// Request names one DOT file to render.
type Request struct {
	// Input is the DOT file.
	Input string
	// Output is the artifact to write. Empty means Input with its
	// extension replaced by Format.
	Output string
	// Format is one of [ValidFormats]; empty means SVG.
	Format string
	// Diagnostics receives renderer warnings. May be nil.
	Diagnostics *errors.Diagnostics
}

// Renderer lays out and draws a DOT file.
type Renderer interface {
	Render(ctx context.Context, req Request) error
	// Name identifies the renderer in logs and cache keys.
	Name() string
}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeConfiguration, "invalid format: %q (must be one of: svg, png, jpg)", format)
	}
	return nil
}

// OutputPath returns the artifact path of in for format.
func OutputPath(in, format string) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + "." + format
}

// normalize fills in the defaults of req.
func (req *Request) normalize() error {
	if req.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "no DOT file to render")
	}
	if req.Format == "" {
		req.Format = FormatSVG
	}
	req.Format = strings.ToLower(req.Format)
	if err := ValidateFormat(req.Format); err != nil {
		return err
	}
	if req.Output == "" {
		req.Output = OutputPath(req.Input, req.Format)
	}
	return nil
}
