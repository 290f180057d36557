package render

import (
	"bytes"
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/classgraph/pkg/cache"
	"github.com/matzehuels/classgraph/pkg/errors"
	"github.com/matzehuels/classgraph/pkg/observability"
)

// TTLArtifact is how long a rendered artifact stays cached.
const TTLArtifact = 30 * 24 * time.Hour

var graphvizFormats = map[string]graphviz.Format{
	FormatSVG: graphviz.SVG,
	FormatPNG: graphviz.PNG,
	FormatJPG: graphviz.JPG,
}

// Graphviz renders in-process with go-graphviz.
//
// Graphviz is stateless except for the cache and logger, so one value may
// serve several goroutines.
type Graphviz struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewGraphviz returns a renderer caching in c. A nil cache disables
// caching; a nil keyer means [cache.DefaultKeyer].
func NewGraphviz(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Graphviz {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Graphviz{Cache: c, Keyer: keyer, Logger: logger}
}

func (r *Graphviz) Name() string { return "graphviz" }

// Render reads req.Input and writes the rendered artifact.
func (r *Graphviz) Render(ctx context.Context, req Request) error {
	if err := req.normalize(); err != nil {
		return err
	}
	dot, err := os.ReadFile(req.Input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSink, err, "read %s", req.Input)
	}
	out, err := r.Bytes(ctx, dot, req.Format)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSink, err, "render %s", req.Input)
	}
	if err := os.WriteFile(req.Output, out, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeSink, err, "write %s", req.Output)
	}
	r.Logger.Debug("rendered diagram", "in", req.Input, "out", req.Output, "bytes", len(out))
	return nil
}

// Bytes renders dot in format, consulting the cache first.
func (r *Graphviz) Bytes(ctx context.Context, dot []byte, format string) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	key := r.Keyer.RenderKey(cache.Hash(dot), cache.RenderKeyOpts{Format: format, Engine: r.Name()})
	hooks := observability.Cache()
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		hooks.OnCacheHit(ctx, "render")
		return data, nil
	}
	hooks.OnCacheMiss(ctx, "render")

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, format)
	data, err := renderGraphviz(ctx, dot, graphvizFormats[format])
	observability.Pipeline().OnRenderComplete(ctx, format, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if err := r.Cache.Set(ctx, key, data, TTLArtifact); err != nil {
		r.Logger.Warn("cannot cache rendered diagram", "err", err)
	} else {
		hooks.OnCacheSet(ctx, "render", len(data))
	}
	return data, nil
}

func renderGraphviz(ctx context.Context, dot []byte, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSink, err, "render")
	}
	return buf.Bytes(), nil
}
