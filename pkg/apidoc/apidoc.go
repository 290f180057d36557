package apidoc

import (
	"bufio"
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/classgraph/pkg/errors"
	"github.com/matzehuels/classgraph/pkg/httputil"
	"github.com/matzehuels/classgraph/pkg/options"
)

// List file names, tried in order.
const (
	PackageListFile = "package-list"
	ElementListFile = "element-list"
)

// DefaultTTL is how long a fetched package list stays cached.
const DefaultTTL = 7 * 24 * time.Hour

// Client fetches package lists.
type Client struct {
	http    *http.Client
	cache   *httputil.Cache
	logger  *log.Logger
	refresh bool
}

// NewClient returns a client caching in cache. A nil cache disables
// caching; a nil logger discards log output.
func NewClient(cache *httputil.Cache, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cache != nil {
		cache = cache.Namespace("package-list:")
	}
	return &Client{http: httputil.NewClient(), cache: cache, logger: logger}
}

// WithHTTPClient replaces the HTTP client. Tests use it to talk to an
// httptest server.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

// WithRefresh makes the client ignore cached lists.
func (c *Client) WithRefresh(refresh bool) *Client {
	c.refresh = refresh
	return c
}

// Packages returns the packages listed under listURL. listURL is an
// http(s) URL, a file:// URL or a local directory. The "package-list"
// file is tried first, then "element-list".
func (c *Client) Packages(ctx context.Context, listURL string) ([]string, error) {
	base := strings.TrimSuffix(strings.TrimSpace(listURL), "/")
	if base == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty package list location")
	}
	if !isRemote(base) {
		return readLocal(strings.TrimPrefix(base, "file://"))
	}

	var pkgs []string
	if c.cache != nil && !c.refresh {
		if ok, _ := c.cache.Get(base, &pkgs); ok {
			c.logger.Debug("package list from cache", "url", base, "packages", len(pkgs))
			return pkgs, nil
		}
	}
	pkgs, err := c.fetch(ctx, base)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		_ = c.cache.Set(base, pkgs)
	}
	c.logger.Debug("fetched package list", "url", base, "packages", len(pkgs))
	return pkgs, nil
}

func (c *Client) fetch(ctx context.Context, base string) ([]string, error) {
	var lastErr error
	for _, name := range []string{PackageListFile, ElementListFile} {
		var body []byte
		err := httputil.RetryWithBackoff(ctx, func() error {
			var err error
			body, err = httputil.Get(ctx, c.http, base+"/"+name)
			return err
		})
		if err == nil {
			return ParseList(bytes.NewReader(body))
		}
		lastErr = err
		if !stderrors.Is(err, httputil.ErrNotFound) {
			break
		}
	}
	code := errors.ErrCodeNetwork
	if stderrors.Is(lastErr, httputil.ErrNotFound) {
		code = errors.ErrCodeNotFound
	}
	return nil, errors.Wrap(code, lastErr, "cannot read package list from %s", base)
}

func readLocal(dir string) ([]string, error) {
	var lastErr error
	for _, name := range []string{PackageListFile, ElementListFile} {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			lastErr = err
			continue
		}
		pkgs, err := ParseList(f)
		f.Close()
		return pkgs, err
	}
	return nil, errors.Wrap(errors.ErrCodeFileNotFound, lastErr, "no package list in %s", dir)
}

// isRemote reports whether s is fetched over HTTP rather than read from disk.
func isRemote(s string) bool {
	return errors.ValidateURL(s) == nil
}

// ParseList reads one package per line. Blank lines and "module:" lines
// are skipped.
func ParseList(r io.Reader) ([]string, error) {
	var pkgs []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "module:") {
			continue
		}
		pkgs = append(pkgs, line)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "reading package list")
	}
	return pkgs, nil
}

// Resolve maps the packages of every link in opt to the link's doc root
// and clears the links. A list that cannot be read is recorded as a
// warning; the classes of its packages keep their default links.
func (c *Client) Resolve(ctx context.Context, opt *options.Options, diag *errors.Diagnostics) {
	for _, l := range opt.Links() {
		pkgs, err := c.Packages(ctx, l.ListURL)
		if err != nil {
			c.logger.Warn("skipping external doc root", "root", l.DocRoot, "err", err)
			if diag != nil {
				diag.Add(l.DocRoot, err)
			}
			continue
		}
		opt.AddPackageList(l.DocRoot, pkgs)
		c.logger.Debug("linked external docs", "root", l.DocRoot, "packages", len(pkgs))
	}
	opt.ClearLinks()
}
