// Package httputil holds the HTTP plumbing of the documentation-link
// resolver: an on-disk response cache, retries with exponential backoff,
// and a GET helper that classifies failures.
//
// # Caching
//
// [Cache] stores JSON values as files under ~/.cache/classgraph/ (or a
// directory of your choice), one file per key, with an optional TTL:
//
//	c, err := httputil.NewCache("", 24*time.Hour)
//	lists := c.Namespace("package-list:")
//	var pkgs []string
//	if ok, _ := lists.Get(url, &pkgs); !ok {
//		pkgs = fetch(url)
//		_ = lists.Set(url, pkgs)
//	}
//
// # Retry
//
// [Retry] repeats an operation only while it fails with a
// [RetryableError]. [Get] wraps network errors, 5xx and 429 responses that
// way, so
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//		body, err = httputil.Get(ctx, client, url)
//		return err
//	})
//
// retries transient failures and gives up on a 404 right away.
//
// Run `classgraph cache clear` or remove the directory to drop all cached
// responses.
package httputil
