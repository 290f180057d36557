package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/classgraph/pkg/apidoc"
	"github.com/matzehuels/classgraph/pkg/buildinfo"
	"github.com/matzehuels/classgraph/pkg/cache"
	"github.com/matzehuels/classgraph/pkg/httputil"
	"github.com/matzehuels/classgraph/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "classgraph"

	// defaultConfigFile is read from the working directory when --config
	// is not given.
	defaultConfigFile = appName + ".toml"

	// renderCacheDir and listCacheDir are the cache subdirectories of
	// rendered images and fetched package lists.
	renderCacheDir = "render"
	listCacheDir   = "package-lists"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "classgraph draws UML class diagrams of Java sources with Graphviz",
		Long: `classgraph reads Java sources (or a JSON class model), infers the relationships
between classes and writes UML class diagrams as Graphviz DOT files, rendered to
SVG or PNG and optionally linked into javadoc HTML pages.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.diagramCommand())
	root.AddCommand(c.viewsCommand())
	root.AddCommand(c.docCommand())
	root.AddCommand(c.modelCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Renderer and Client Factories
// =============================================================================

// newRenderer picks the external dot executable when one is configured and
// in-process go-graphviz otherwise.
func (c *CLI) newRenderer(exe string, noCache bool) render.Renderer {
	if exe != "" {
		return render.NewCommand(exe, c.Logger)
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version)
	return render.NewGraphviz(newCache(noCache, renderCacheDir), keyer, c.Logger)
}

// newLinks returns the package-list client used for "link" options.
func (c *CLI) newLinks(noCache, refresh bool) *apidoc.Client {
	var lists *httputil.Cache
	if !noCache {
		if dir, err := cacheDir(); err == nil {
			lists, err = httputil.NewCache(filepath.Join(dir, listCacheDir), apidoc.DefaultTTL)
			if err != nil {
				c.Logger.Warn("package-list cache disabled", "err", err)
				lists = nil
			}
		}
	}
	return apidoc.NewClient(lists, c.Logger).WithRefresh(refresh)
}

func newCache(noCache bool, sub string) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(filepath.Join(dir, sub))
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/classgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Flag Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}
