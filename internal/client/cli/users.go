package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ezeqja22/sciencepioneers-cli/internal/api"
	"github.com/ezeqja22/sciencepioneers-cli/internal/client/logger"
	"github.com/ezeqja22/sciencepioneers-cli/internal/moderation"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Moderation actions and history for users",
}

var usersHistoryCmd = &cobra.Command{
	Use:   "history <user-id>",
	Short: "Show a user's moderation log",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			fail(fmt.Errorf("invalid user id %q", args[0]))
		}
		client, _, err := newClient(true)
		if err != nil {
			fail(err)
		}

		history, err := client.ModerationHistory(context.Background(), id)
		if err != nil {
			fail(err)
		}

		flags := "in good standing"
		switch {
		case history.User.IsBanned:
			flags = "banned"
		case !history.User.IsActive:
			flags = "deactivated"
		}
		fmt.Printf("%s (id %d): %s\n\n", history.User.Username, history.User.ID, flags)

		if len(history.Entries) == 0 {
			fmt.Println("No moderation history.")
			return
		}
		for _, e := range history.Entries {
			line := fmt.Sprintf("%s  %-10s by %s", e.CreatedAt.Format("2006-01-02 15:04"), e.ActionType, e.Moderator)
			if e.Duration != nil {
				line += fmt.Sprintf(" (%d days)", *e.Duration)
			}
			if e.ReportID != nil {
				line += fmt.Sprintf(" [report %d]", *e.ReportID)
			}
			fmt.Println(line)
			fmt.Printf("    %s\n", e.Reason)
		}
	},
}

var (
	actionReason   string
	actionReportID int
	banDuration    string
)

// newUserActionCmd builds one cobra command per moderation action. The
// gating is identical across actions; only the policy rule differs.
func newUserActionCmd(action moderation.Action) *cobra.Command {
	short := map[moderation.Action]string{
		moderation.ActionWarn:       "Warn a user",
		moderation.ActionBan:        "Ban a user",
		moderation.ActionUnban:      "Lift a user's ban",
		moderation.ActionDeactivate: "Deactivate a user's account",
		moderation.ActionActivate:   "Reactivate a user's account",
	}

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s <user-id>", action),
		Short: short[action],
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			userID, err := strconv.Atoi(args[0])
			if err != nil || userID <= 0 {
				fail(fmt.Errorf("invalid user id %q", args[0]))
			}
			if err := moderation.ValidateReason(actionReason); err != nil {
				fail(err)
			}
			if actionReportID <= 0 {
				fail(fmt.Errorf("--report is required: moderation actions are taken in the context of a report"))
			}

			var duration *int
			if action == moderation.ActionBan {
				if banDuration == "" {
					fail(fmt.Errorf("--duration is required for a ban: 1, 2, 7, 30, 365 or %q", moderation.PermanentBan))
				}
				duration, err = moderation.ParseBanDuration(banDuration)
				if err != nil {
					fail(err)
				}
			}

			client, me, report := loadForAction(actionReportID)
			if report.TargetUser == nil || report.TargetUser.ID != userID {
				fail(fmt.Errorf("report %d does not target user %d", actionReportID, userID))
			}
			if err := moderation.Allowed(action, report, *me); err != nil {
				fail(err)
			}

			ctx := context.Background()
			req := api.UserActionRequest{Reason: actionReason, ReportID: actionReportID, Duration: duration}
			if err := client.UserAction(ctx, userID, action, req); err != nil {
				fail(err)
			}

			// Re-fetch report state, then refresh the target snapshot so the
			// printed flags reflect the action. The snapshot refresh is best
			// effort.
			refreshed := refetch(client, actionReportID)
			target := refreshed.TargetUser
			if user, err := client.GetUser(ctx, userID); err == nil {
				target = user
			} else {
				logger.Warn("could not refresh target user snapshot: %v", err)
			}

			fmt.Printf("Action %s recorded against user %d.\n", action, userID)
			if target != nil {
				fmt.Printf("Current flags: banned=%t active=%t\n", target.IsBanned, target.IsActive)
			}
		},
	}

	cmd.Flags().StringVar(&actionReason, "reason", "", "reason for the action (required)")
	cmd.Flags().IntVar(&actionReportID, "report", 0, "report this action belongs to (required)")
	if action == moderation.ActionBan {
		cmd.Flags().StringVar(&banDuration, "duration", "", "ban length in days (1, 2, 7, 30, 365) or 'permanent'")
	}
	return cmd
}

func init() {
	usersCmd.AddCommand(usersHistoryCmd)
	for _, action := range moderation.UserActions {
		usersCmd.AddCommand(newUserActionCmd(action))
	}
}
