package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ezeqja22/sciencepioneers-cli/internal/client/updater"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update spctl to the latest release",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		info, err := updater.CheckForUpdate(ctx, Version)
		if err != nil {
			fail(fmt.Errorf("checking for updates: %w", err))
		}
		if !info.Available {
			fmt.Printf("spctl %s is up to date.\n", Version)
			return
		}

		fmt.Printf("Updating %s -> %s...\n", info.CurrentVersion, info.LatestVersion)
		result, err := updater.PerformUpdate(ctx, info)
		if err != nil {
			fail(err)
		}
		fmt.Println(result.Message)
	},
}
