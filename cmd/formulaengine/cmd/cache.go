package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or reset the engine's AST/dependency cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats [expressions-file]",
	Short: "Parse expressions (one per line, or stdin) and report cache hit/miss stats",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCacheStats(args)
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset cache hit/miss counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine()
		if err != nil {
			return err
		}
		eng.ClearCache()
		stats := eng.CacheStats()
		fmt.Printf("cache cleared: size=%d hits=%d misses=%d\n", stats.Size, stats.Hits, stats.Misses)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd, cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStats(args []string) error {
	eng, err := loadEngine()
	if err != nil {
		return err
	}

	var reader = os.Stdin
	if len(args) == 1 {
		if err := validateExpressionsFilePath(args[0]); err != nil {
			return fmt.Errorf("invalid file: %w", err)
		}
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open file: %w", err)
		}
		defer f.Close()
		reader = f
	}

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if _, err := eng.Parse(line); err != nil {
			fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
		}
	}

	stats := eng.CacheStats()
	fmt.Printf("size=%d hits=%d misses=%d hit_rate=%.2f\n", stats.Size, stats.Hits, stats.Misses, stats.HitRate)
	return nil
}
