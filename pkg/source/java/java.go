package java

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/classgraph/pkg/errors"
	"github.com/matzehuels/classgraph/pkg/model"
)

// Provider loads a model from Java source files.
type Provider struct {
	// Paths are .java files and directories searched recursively.
	// Directories whose name starts with a dot are skipped.
	Paths []string
	// Workers bounds the number of files parsed at once. Zero means
	// GOMAXPROCS.
	Workers int
	Logger  *log.Logger
}

// New returns a provider reading the given files and directories. A nil
// logger discards output.
func New(paths []string, logger *log.Logger) *Provider {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Provider{Paths: paths, Logger: logger}
}

// Load parses every source file and returns the declared classes in file
// path order, each file's classes in declaration order. All parsed classes
// are part of the documented set.
func (p *Provider) Load(ctx context.Context) (*model.Universe, error) {
	logger := p.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	files, err := Files(p.Paths)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	units, err := p.parseAll(ctx, files)
	if err != nil {
		return nil, err
	}
	var classes []*model.Class
	for _, u := range units {
		if u.syntax {
			logger.Warn("syntax errors, declarations may be incomplete", "file", u.path)
		}
		logger.Debug("parsed", "file", u.path, "package", u.pkg, "classes", len(u.classes))
		classes = append(classes, u.classes...)
	}

	r := newResolver(classes)
	universe := model.NewUniverse()
	for _, c := range classes {
		r.class(c)
		if err := universe.Add(c); err != nil {
			logger.Warn("skipping class", "class", c.Name, "err", err)
		}
	}
	logger.Debug("java sources loaded", "files", len(files), "classes", universe.Len(), "duration", time.Since(start))
	return universe, nil
}

// parseAll parses files on up to Workers goroutines, each with its own
// tree-sitter parser. The units are returned in file order.
func (p *Provider) parseAll(ctx context.Context, files []string) ([]*unit, error) {
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, max(len(files), 1))

	units := make([]*unit, len(files))
	next := make(chan int)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(next)
		for i := range files {
			select {
			case next <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})
	for range workers {
		g.Go(func() error {
			ps, err := newParser()
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "java parser")
			}
			defer ps.Close()
			for i := range next {
				if err := gctx.Err(); err != nil {
					return err
				}
				src, err := os.ReadFile(files[i])
				if err != nil {
					return errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", files[i])
				}
				u, err := ps.parse(files[i], src)
				if err != nil {
					return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", files[i])
				}
				units[i] = u
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return units, nil
}

// Files expands paths into the sorted list of .java files they name.
// module-info.java is skipped. A path that does not exist is a
// FILE_NOT_FOUND error.
func Files(paths []string) ([]string, error) {
	var out []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "source path not found: %s", root)
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", root)
		}
		if !info.IsDir() {
			out = append(out, root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if isSource(d.Name()) {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "walk %s", root)
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

func isSource(name string) bool {
	return strings.HasSuffix(name, ".java") && name != "module-info.java"
}
