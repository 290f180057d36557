package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/classgraph/pkg/errors"
	"github.com/matzehuels/classgraph/pkg/model"
	"github.com/matzehuels/classgraph/pkg/observability"
)

// Load obtains the model from p. source names the input in logs and hooks.
// An empty model is an INVALID_INPUT error.
func Load(ctx context.Context, p model.Provider, source string, logger *log.Logger) (*model.Universe, error) {
	if logger == nil {
		logger = log.Default()
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()

	u, err := p.Load(ctx)
	if err == nil && u.Len() == 0 {
		err = errors.New(errors.ErrCodeInvalidInput, "no classes found in %s", source)
	}
	hooks.OnLoadComplete(ctx, source, u.Len(), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded model",
		"source", source,
		"classes", u.Len(),
		"packages", len(u.Packages()),
		"duration", time.Since(start))
	return u, nil
}
