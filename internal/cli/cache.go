package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/classgraph/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render and package-list caches",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var lists, renders bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear cached images and package lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if !lists && !renders {
				lists, renders = true, true
			}

			var subs []string
			if renders {
				subs = append(subs, renderCacheDir)
			}
			if lists {
				subs = append(subs, listCacheDir)
			}

			total := 0
			for _, sub := range subs {
				n, err := clearCache(filepath.Join(dir, sub))
				if err != nil {
					return fmt.Errorf("clear %s cache: %w", sub, err)
				}
				c.Logger.Debug("cleared cache", "dir", sub, "entries", n)
				total += n
			}
			if total == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", total)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
	cmd.Flags().BoolVar(&renders, "renders", false, "clear only rendered images")
	cmd.Flags().BoolVar(&lists, "package-lists", false, "clear only fetched package lists")
	return cmd
}

// clearCache empties one cache directory and reports the number of entries
// removed. A missing directory is empty.
func clearCache(dir string) (int, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}
	count := 0
	_ = filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			count++
		}
		return nil
	})
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return 0, err
	}
	return count, fc.Clear()
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(uiOut, dir)
			return nil
		},
	}
}
