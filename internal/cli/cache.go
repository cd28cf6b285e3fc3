package cli

import (
	"github.com/spf13/cobra"

	"checkin-cli/internal/store"
)

func newCacheCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the local cache",
	}
	cmd.AddCommand(newCacheInfoCmd(a))
	cmd.AddCommand(newCacheClearCmd(a))
	return cmd
}

func cacheFor(a *App) (store.Cache, error) {
	dir := a.Dir
	if dir == "" {
		var err error
		dir, err = store.DefaultDir()
		if err != nil {
			return store.Cache{}, err
		}
	}
	return store.Cache{Dir: dir}, nil
}

func newCacheInfoCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache location, keys and approximate size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := cacheFor(a)
			if err != nil {
				return writeErr(cmd, err)
			}
			keys, err := cache.Keys(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			size, err := cache.EstimateSize(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, map[string]any{
				"dir":   cache.Dir,
				"keys":  keys,
				"bytes": size,
			})
		},
	}
}

func newCacheClearCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every cached entry (remote data is untouched)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := cacheFor(a)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := cache.Clear(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, map[string]bool{"cleared": true})
		},
	}
}
