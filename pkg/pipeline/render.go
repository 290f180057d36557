package pipeline

import (
	"context"

	"github.com/matzehuels/classgraph/pkg/errors"
	"github.com/matzehuels/classgraph/pkg/render"
)

// DefaultFormats are rendered when no format is configured.
var DefaultFormats = []string{render.FormatSVG}

// ValidateFormats checks that every format can be rendered.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := render.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// render draws the DOT file in every configured format and returns the
// artifacts written. Renderer problems are warnings; the DOT file stays
// usable either way.
func (g *Generator) render(ctx context.Context, res *Result, dotFile string) []string {
	if g.Renderer == nil {
		return nil
	}
	formats := g.Formats
	if len(formats) == 0 {
		formats = DefaultFormats
	}
	var images []string
	for _, format := range formats {
		req := render.Request{
			Input:       dotFile,
			Output:      render.OutputPath(dotFile, format),
			Format:      format,
			Diagnostics: res.Diagnostics,
		}
		if err := g.Renderer.Render(ctx, req); err != nil {
			g.Logger.Warn("render failed", "renderer", g.Renderer.Name(), "file", dotFile, "format", format, "err", err)
			res.Diagnostics.Warn(errors.ErrCodeSink, dotFile, "%s", errors.UserMessage(err))
			continue
		}
		images = append(images, req.Output)
	}
	return images
}
