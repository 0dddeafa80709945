package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ezeqja22/sciencepioneers-cli/internal/api"
	"github.com/ezeqja22/sciencepioneers-cli/internal/client/logger"
	"github.com/ezeqja22/sciencepioneers-cli/internal/models"
	"github.com/ezeqja22/sciencepioneers-cli/internal/moderation"
	"github.com/ezeqja22/sciencepioneers-cli/internal/storage"
	"github.com/spf13/cobra"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Browse and work the report moderation queue",
}

var (
	listStatus string
	listPage   int
)

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reports, optionally filtered by status",
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newClient(true)
		if err != nil {
			fail(err)
		}

		filter := moderation.ListFilter{Page: listPage}
		if listStatus != "" {
			status, err := parseStatus(listStatus)
			if err != nil {
				fail(err)
			}
			filter.Status = &status
		}

		page, err := client.ListReports(context.Background(), filter)
		if err != nil {
			fail(err)
		}

		if len(page.Reports) == 0 {
			fmt.Println("No reports.")
			return
		}

		fmt.Printf("%-6s %-9s %-13s %-16s %-12s %s\n", "ID", "TYPE", "STATUS", "ASSIGNEE", "REPORTER", "REASON")
		for _, r := range page.Reports {
			assignee := r.AssignedTo
			if assignee == "" {
				assignee = "-"
			}
			fmt.Printf("%-6d %-9s %-13s %-16s %-12s %s\n",
				r.ID, r.ReportType, r.Status, assignee, r.Reporter.Username, r.Reason)
		}

		pager := moderation.NewPager(page.Page, page.TotalPages)
		nav := []string{}
		if pager.HasPrev() {
			nav = append(nav, fmt.Sprintf("--page %d for previous", pager.Prev()))
		}
		if pager.HasNext() {
			nav = append(nav, fmt.Sprintf("--page %d for next", pager.Next()))
		}
		fmt.Printf("\nPage %d of %d", pager.Page, pager.TotalPages)
		if len(nav) > 0 {
			fmt.Printf(" (%s)", strings.Join(nav, ", "))
		}
		fmt.Println()
	},
}

var reportsShowCmd = &cobra.Command{
	Use:   "show <report-id>",
	Short: "Show one report and the actions available to you",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		client, _, err := newClient(true)
		if err != nil {
			fail(err)
		}

		ctx := context.Background()
		report, err := client.GetReport(ctx, id)
		if err != nil {
			fail(err)
		}
		me, err := client.Me(ctx)
		if err != nil {
			fail(err)
		}

		printReport(report)

		actions := moderation.Available(report, *me)
		if len(actions) == 0 {
			fmt.Println("\nNo actions available to you on this report.")
			return
		}
		labels := make([]string, len(actions))
		for i, a := range actions {
			labels[i] = a.Label()
		}
		fmt.Printf("\nAvailable actions: %s\n", strings.Join(labels, ", "))

		if store, err := openStore(); err == nil {
			defer store.Close()
			if draft, err := store.GetDraft(id); err == nil {
				fmt.Printf("\nUnsubmitted notes draft (saved %s):\n%s\n",
					draft.UpdatedAt.Format("2006-01-02 15:04"), draft.Body)
			}
		}
	},
}

var reportsTakeCmd = &cobra.Command{
	Use:   "take <report-id>",
	Short: "Assign the report to yourself (take or take over)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		client, me, report := loadForAction(id)
		ctx := context.Background()

		// Either gate may pass: take for pending reports, take-over for
		// reports another moderator holds.
		if err := moderation.Allowed(moderation.ActionTake, report, *me); err != nil {
			if err2 := moderation.Allowed(moderation.ActionTakeOver, report, *me); err2 != nil {
				fail(err2)
			}
		}

		if err := client.AssignReport(ctx, id); err != nil {
			fail(err)
		}
		refreshed := refetch(client, id)
		fmt.Printf("Report %d is now %s, assigned to %s.\n", id, refreshed.Status, refreshed.AssignedTo)
	},
}

var notesText string

var reportsNotesCmd = &cobra.Command{
	Use:   "notes <report-id>",
	Short: "Overwrite the report's investigation notes",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		text := notesText

		store, storeErr := openStore()
		if storeErr == nil {
			defer store.Close()
		}

		// With no --text, fall back to a previously saved draft.
		if text == "" && storeErr == nil {
			if draft, err := store.GetDraft(id); err == nil {
				text = draft.Body
				fmt.Println("Submitting saved draft.")
			}
		}
		if strings.TrimSpace(text) == "" {
			fail(fmt.Errorf("no notes given: use --text or save a draft first"))
		}

		client, me, report := loadForAction(id)
		if err := moderation.Allowed(moderation.ActionNotes, report, *me); err != nil {
			fail(err)
		}

		// Draft first, so a failed submit loses nothing.
		if storeErr == nil {
			if _, err := store.SaveDraft(id, text); err != nil {
				logger.Warn("could not save local draft: %v", err)
			}
		}

		if err := client.UpdateNotes(context.Background(), id, text); err != nil {
			fail(err)
		}
		if storeErr == nil {
			if err := store.DeleteDraft(id); err != nil {
				logger.Warn("could not clear local draft: %v", err)
			}
		}
		refetch(client, id)
		fmt.Printf("Notes updated on report %d.\n", id)
	},
}

var resolveText string

var reportsResolveCmd = &cobra.Command{
	Use:   "resolve <report-id>",
	Short: "Resolve the report (terminal)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		if strings.TrimSpace(resolveText) == "" {
			fail(moderation.ErrEmptyResolution)
		}

		client, me, report := loadForAction(id)
		if err := moderation.Allowed(moderation.ActionResolve, report, *me); err != nil {
			fail(err)
		}

		if err := client.ResolveReport(context.Background(), id, resolveText); err != nil {
			fail(err)
		}
		refreshed := refetch(client, id)
		fmt.Printf("Report %d resolved.\n", id)
		if !refreshed.EmailSent {
			fmt.Printf("Use 'spctl reports send-email %d' to notify the reporter.\n", id)
		}
	},
}

var dismissReason string

var reportsDismissCmd = &cobra.Command{
	Use:   "dismiss <report-id>",
	Short: "Dismiss the report (terminal)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		if err := moderation.ValidateReason(dismissReason); err != nil {
			fail(err)
		}

		client, me, report := loadForAction(id)
		if err := moderation.Allowed(moderation.ActionDismiss, report, *me); err != nil {
			fail(err)
		}

		if err := client.DismissReport(context.Background(), id, dismissReason); err != nil {
			fail(err)
		}
		refetch(client, id)
		fmt.Printf("Report %d dismissed.\n", id)
	},
}

var emailContent string

var reportsSendEmailCmd = &cobra.Command{
	Use:   "send-email <report-id>",
	Short: "Send the follow-up email to the reporter",
	Long: `Send the one-time follow-up email to the reporter of a resolved
report. Without --content, the standard template built from the report
and its resolution is sent; pass --content to edit it.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		client, me, report := loadForAction(id)
		if err := moderation.Allowed(moderation.ActionEmail, report, *me); err != nil {
			fail(err)
		}

		content := emailContent
		if content == "" {
			content = moderation.EmailTemplate(report, me.Username)
		}

		if err := client.SendReportEmail(context.Background(), id, content); err != nil {
			fail(err)
		}
		refetch(client, id)
		fmt.Printf("Follow-up email sent to %s.\n", report.Reporter.Username)
	},
}

// loadForAction fetches everything a gated action needs: the client,
// the authenticated identity, and the fresh report.
func loadForAction(id int) (*api.Client, *models.CurrentUser, *models.Report) {
	client, _, err := newClient(true)
	if err != nil {
		fail(err)
	}
	ctx := context.Background()
	me, err := client.Me(ctx)
	if err != nil {
		fail(err)
	}
	report, err := client.GetReport(ctx, id)
	if err != nil {
		fail(err)
	}
	return client, me, report
}

// refetch re-reads the report after a mutation, so the printed state is
// the server's and never a local guess. A failed re-fetch is reported
// but does not undo the action.
func refetch(client *api.Client, id int) *models.Report {
	report, err := client.GetReport(context.Background(), id)
	if err != nil {
		logger.Warn("action succeeded but re-fetch failed: %v", err)
		return &models.Report{ID: id}
	}
	return report
}

func printReport(r *models.Report) {
	fmt.Printf("Report #%d  [%s]\n", r.ID, r.Status)
	fmt.Printf("  Type:        %s (target %d)\n", r.ReportType, r.TargetID)
	fmt.Printf("  Reporter:    %s\n", r.Reporter.Username)
	fmt.Printf("  Reason:      %s\n", r.Reason)
	if r.Description != "" {
		fmt.Printf("  Description: %s\n", r.Description)
	}
	if r.AssignedTo != "" {
		fmt.Printf("  Assignee:    %s\n", r.AssignedTo)
	}
	if r.InvestigationNotes != "" {
		fmt.Printf("  Notes:       %s\n", r.InvestigationNotes)
	}
	if r.Resolution != "" {
		fmt.Printf("  Resolution:  %s\n", r.Resolution)
	}
	if r.EmailSent && r.EmailSentAt != nil {
		fmt.Printf("  Email sent:  %s\n", r.EmailSentAt.Format("2006-01-02 15:04"))
	}
	fmt.Printf("  Created:     %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
	if r.TargetUser != nil {
		flags := []string{}
		if r.TargetUser.IsBanned {
			flags = append(flags, "banned")
		}
		if !r.TargetUser.IsActive {
			flags = append(flags, "deactivated")
		}
		status := "in good standing"
		if len(flags) > 0 {
			status = strings.Join(flags, ", ")
		}
		fmt.Printf("  Target user: %s (id %d, %s)\n", r.TargetUser.Username, r.TargetUser.ID, status)
	}
}

func parseID(s string) int {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		fail(fmt.Errorf("invalid report id %q", s))
	}
	return id
}

func parseStatus(s string) (models.ReportStatus, error) {
	status := models.ReportStatus(strings.ToLower(strings.TrimSpace(s)))
	switch status {
	case models.StatusPending, models.StatusUnderReview, models.StatusResolved, models.StatusDismissed:
		return status, nil
	}
	return "", fmt.Errorf("invalid status %q: use pending, under_review, resolved or dismissed", s)
}

func openStore() (storage.Store, error) {
	path, err := storage.DefaultPath()
	if err != nil {
		return nil, err
	}
	return storage.NewSQLiteStore(path)
}

func init() {
	reportsListCmd.Flags().StringVar(&listStatus, "status", "", "filter by status (pending, under_review, resolved, dismissed)")
	reportsListCmd.Flags().IntVar(&listPage, "page", 1, "page number")
	reportsNotesCmd.Flags().StringVar(&notesText, "text", "", "investigation notes (falls back to the saved draft)")
	reportsResolveCmd.Flags().StringVar(&resolveText, "resolution", "", "resolution text (required)")
	reportsDismissCmd.Flags().StringVar(&dismissReason, "reason", "", "dismissal reason (required)")
	reportsSendEmailCmd.Flags().StringVar(&emailContent, "content", "", "email body (defaults to the standard template)")

	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsShowCmd)
	reportsCmd.AddCommand(reportsTakeCmd)
	reportsCmd.AddCommand(reportsNotesCmd)
	reportsCmd.AddCommand(reportsResolveCmd)
	reportsCmd.AddCommand(reportsDismissCmd)
	reportsCmd.AddCommand(reportsSendEmailCmd)
}
