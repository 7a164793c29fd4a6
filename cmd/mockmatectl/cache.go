package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/abhishek622/mockmate/internal/questions"
	"github.com/abhishek622/mockmate/internal/repository"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the question cache",
}

var cacheCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete idle, rarely used question sets",
	Long:  "Deletes cached question sets unused for 30 days with fewer than 3 uses, then prints the number removed.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withCache(cmd.Context(), func(c *questions.Cache) error {
			n, err := c.Cleanup(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d cached question sets\n", n)
			return nil
		})
	},
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print question cache statistics as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withCache(cmd.Context(), func(c *questions.Cache) error {
			stats, err := c.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), stats)
		})
	},
}

var (
	popularRole  string
	popularLimit int
)

var cachePopularCmd = &cobra.Command{
	Use:   "popular",
	Short: "Print the most used question sets for a role",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withCache(cmd.Context(), func(c *questions.Cache) error {
			sets, err := c.Popular(cmd.Context(), popularRole, popularLimit)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), sets)
		})
	},
}

func init() {
	cachePopularCmd.Flags().StringVarP(&popularRole, "role", "r", "", "Role to look up (required)")
	cachePopularCmd.Flags().IntVarP(&popularLimit, "limit", "n", questions.DefaultPopularLimit, "Maximum sets to print")
	if err := cachePopularCmd.MarkFlagRequired("role"); err != nil {
		panic(fmt.Sprintf("failed to mark role flag as required: %v", err))
	}

	cacheCmd.AddCommand(cacheCleanupCmd, cacheStatsCmd, cachePopularCmd)
	rootCmd.AddCommand(cacheCmd)
}

func withCache(ctx context.Context, fn func(*questions.Cache) error) error {
	_, pool, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := repository.NewRepository(pool, nil)
	return fn(questions.NewCache(repo.Cache))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
