package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ezeqja22/sciencepioneers-cli/internal/models"
	"github.com/ezeqja22/sciencepioneers-cli/internal/moderation"
)

// ListReports fetches one page of the report index, optionally filtered
// by status. Page size is fixed server-side and mirrored here.
func (c *Client) ListReports(ctx context.Context, filter moderation.ListFilter) (*models.ReportPage, error) {
	filter = filter.Normalize()

	q := url.Values{}
	q.Set("page", strconv.Itoa(filter.Page))
	q.Set("limit", strconv.Itoa(moderation.PageSize))
	if filter.Status != nil {
		q.Set("status", string(*filter.Status))
	}

	var page models.ReportPage
	if err := c.get(ctx, "/admin/reports?"+q.Encode(), &page); err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	return &page, nil
}

// GetReport fetches one report's full record.
func (c *Client) GetReport(ctx context.Context, id int) (*models.Report, error) {
	var report models.Report
	if err := c.get(ctx, fmt.Sprintf("/admin/reports/%d", id), &report); err != nil {
		return nil, fmt.Errorf("fetching report %d: %w", id, err)
	}
	return &report, nil
}

// AssignReport takes (or takes over) a report for the current user. The
// server decides the assignee from the token.
func (c *Client) AssignReport(ctx context.Context, id int) error {
	if err := c.put(ctx, fmt.Sprintf("/admin/reports/%d/assign", id), nil, nil); err != nil {
		return fmt.Errorf("assigning report %d: %w", id, err)
	}
	return nil
}

type notesRequest struct {
	InvestigationNotes string `json:"investigation_notes"`
}

// UpdateNotes overwrites the report's investigation notes. No merging,
// no versioning; the last write wins.
func (c *Client) UpdateNotes(ctx context.Context, id int, notes string) error {
	if err := c.put(ctx, fmt.Sprintf("/admin/reports/%d/investigation-notes", id), notesRequest{InvestigationNotes: notes}, nil); err != nil {
		return fmt.Errorf("updating notes on report %d: %w", id, err)
	}
	return nil
}

type resolveRequest struct {
	Resolution string `json:"resolution"`
}

// ResolveReport moves a report to its resolved terminal state.
func (c *Client) ResolveReport(ctx context.Context, id int, resolution string) error {
	if err := c.put(ctx, fmt.Sprintf("/admin/reports/%d/resolve", id), resolveRequest{Resolution: resolution}, nil); err != nil {
		return fmt.Errorf("resolving report %d: %w", id, err)
	}
	return nil
}

type dismissRequest struct {
	Reason string `json:"reason"`
}

// DismissReport moves a report to its dismissed terminal state.
func (c *Client) DismissReport(ctx context.Context, id int, reason string) error {
	if err := c.put(ctx, fmt.Sprintf("/admin/reports/%d/dismiss", id), dismissRequest{Reason: reason}, nil); err != nil {
		return fmt.Errorf("dismissing report %d: %w", id, err)
	}
	return nil
}

type sendEmailRequest struct {
	EmailContent string `json:"email_content"`
}

// SendReportEmail sends the follow-up email to the reporter. At most
// once per report: the server flips email_sent and the action is no
// longer offered after the next fetch. A failed send leaves it false,
// so the moderator may simply try again.
func (c *Client) SendReportEmail(ctx context.Context, id int, content string) error {
	if err := c.post(ctx, fmt.Sprintf("/admin/reports/%d/send-email", id), sendEmailRequest{EmailContent: content}, nil); err != nil {
		return fmt.Errorf("sending email for report %d: %w", id, err)
	}
	return nil
}
