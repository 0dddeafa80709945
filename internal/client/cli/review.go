package cli

import (
	"context"
	"fmt"

	"github.com/ezeqja22/sciencepioneers-cli/internal/client/config"
	"github.com/ezeqja22/sciencepioneers-cli/internal/client/events"
	"github.com/ezeqja22/sciencepioneers-cli/internal/client/inspector"
	"github.com/ezeqja22/sciencepioneers-cli/internal/client/logger"
	"github.com/ezeqja22/sciencepioneers-cli/internal/client/tui"
	"github.com/ezeqja22/sciencepioneers-cli/internal/sentry"
	"github.com/spf13/cobra"
)

var (
	inspectFlag   bool
	inspectorPort string
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Interactive report review session",
	Long: `Open the full-screen review UI: the report queue, per-report detail
with the actions available to you, and the target user's moderation
history. One review session at a time; the session holds the local
draft store.`,
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newClient(true)
		if err != nil {
			fail(err)
		}

		me, err := client.Me(context.Background())
		if err != nil {
			fail(err)
		}
		if !me.Role.CanModerate() {
			fail(fmt.Errorf("account %s has no moderation privileges", me.Username))
		}

		if err := config.AcquireLock(); err != nil {
			fail(err)
		}
		defer config.ReleaseLock()

		store, err := openStore()
		if err != nil {
			fail(err)
		}
		defer store.Close()

		bus := events.NewBus()
		defer bus.Close()
		logger.SetEventBus(bus)
		logger.SetTUIMode(true)
		defer logger.SetTUIMode(false)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if inspectFlag {
			insp := inspector.NewServer(inspectorPort, nil)
			client.SetRecorder(insp)
			insp.StartAsync(ctx)
			logger.Info("inspector running on http://%s", insp.Addr())
		}

		if err := tui.Run(client, *me, store, bus); err != nil {
			sentry.CaptureError(err, "review session failed")
			fail(err)
		}
	},
}

func init() {
	reviewCmd.Flags().BoolVar(&inspectFlag, "inspect", false, "serve a local web UI showing this session's API traffic")
	reviewCmd.Flags().StringVar(&inspectorPort, "inspect-port", "4040", "inspector listen port")
}
