package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"draftkit/internal/cache"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the component cache",
	Long: `Show cache statistics (the default), print the cache location, or clear
cached component code. Clearing never touches the catalog or docs; only
fetched component files are removed.`,
	RunE: runCache,
}

var (
	cacheStats bool
	cacheClear bool
	cachePath  bool
	cacheForce bool
)

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.Flags().BoolVar(&cacheStats, "stats", false, "show cache statistics (default)")
	cacheCmd.Flags().BoolVar(&cacheClear, "clear", false, "remove all cached component code")
	cacheCmd.Flags().BoolVar(&cachePath, "path", false, "print the cache directory")
	cacheCmd.Flags().BoolVar(&cacheForce, "force", false, "skip the clear confirmation")
}

func runCache(cmd *cobra.Command, args []string) error {
	paths, _ := loadPaths()
	componentCache := cache.New(paths)

	switch {
	case cachePath:
		fmt.Println(paths.CacheDir())
		return nil
	case cacheClear:
		return clearCache(componentCache)
	default:
		return printCacheStats(componentCache, paths.CacheDir())
	}
}

func printCacheStats(componentCache *cache.Cache, dir string) error {
	stats := componentCache.Stats()

	styler.PrintHeader("Component cache")
	const kvWidth = 10
	styler.PrintKV("Location", dir, kvWidth)
	styler.PrintKV("Components", fmt.Sprintf("%d", stats.ComponentCount), kvWidth)
	styler.PrintKV("Files", fmt.Sprintf("%d", stats.FileCount), kvWidth)
	styler.PrintKV("Previews", fmt.Sprintf("%d", stats.PreviewCount), kvWidth)
	styler.PrintKV("Size", FormatSize(stats.TotalBytes), kvWidth)
	return nil
}

func clearCache(componentCache *cache.Cache) error {
	stats := componentCache.Stats()
	if stats.FileCount == 0 {
		styler.PrintInfo("Cache is already empty")
		return nil
	}

	if !cacheForce {
		fmt.Printf("Clear %d cached files (%s)? [y/N]: ", stats.FileCount, FormatSize(stats.TotalBytes))
		answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return err
		}
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			styler.PrintInfo("Aborted")
			return nil
		}
	}

	freed, err := componentCache.Clear()
	if err != nil {
		return err
	}
	styler.PrintSuccess(fmt.Sprintf("Cleared cache, freed %s", FormatSize(freed)))
	return nil
}
