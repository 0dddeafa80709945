package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the platform role carried by the authenticated user.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)

// CanModerate reports whether the role is allowed into the moderation queue at all.
func (r Role) CanModerate() bool {
	return r == RoleAdmin || r == RoleModerator
}

// ReportStatus tracks a report through the moderation workflow.
type ReportStatus string

const (
	StatusPending     ReportStatus = "pending"
	StatusUnderReview ReportStatus = "under_review"
	StatusResolved    ReportStatus = "resolved"
	StatusDismissed   ReportStatus = "dismissed"
)

// Terminal reports whether no further workflow transitions are permitted.
func (s ReportStatus) Terminal() bool {
	return s == StatusResolved || s == StatusDismissed
}

// ReportType identifies what kind of entity a report targets.
type ReportType string

const (
	ReportTypeUser    ReportType = "user"
	ReportTypeForum   ReportType = "forum"
	ReportTypeProblem ReportType = "problem"
	ReportTypeComment ReportType = "comment"
	ReportTypeMessage ReportType = "message"
)

// UserRef is a minimal user reference embedded in other payloads.
type UserRef struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// TargetUser is the denormalized snapshot of a reported user, present
// only when the report targets a user. The server refreshes it as
// moderation actions change the underlying flags.
type TargetUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	IsBanned bool   `json:"is_banned"`
	IsActive bool   `json:"is_active"`
}

// Report is a user-submitted flag tracked through the moderation
// workflow. The server owns every field; the client only ever reads
// what the last fetch returned.
type Report struct {
	ID                 int          `json:"id"`
	ReportType         ReportType   `json:"report_type"`
	TargetID           int          `json:"target_id"`
	Reporter           UserRef      `json:"reporter"`
	Reason             string       `json:"reason"`
	Description        string       `json:"description,omitempty"`
	Status             ReportStatus `json:"status"`
	AssignedTo         string       `json:"assigned_to,omitempty"`
	InvestigationNotes string       `json:"investigation_notes,omitempty"`
	Resolution         string       `json:"resolution,omitempty"`
	EmailSent          bool         `json:"email_sent"`
	EmailSentAt        *time.Time   `json:"email_sent_at,omitempty"`
	EmailContent       string       `json:"email_content,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
	TargetUser         *TargetUser  `json:"target_user,omitempty"`
}

// Assigned reports whether a moderator has taken the report.
func (r *Report) Assigned() bool {
	return r.AssignedTo != ""
}

// AssignedToUser reports whether the given username is the current assignee.
func (r *Report) AssignedToUser(username string) bool {
	return r.AssignedTo != "" && r.AssignedTo == username
}

// ReportPage is one page of the report index plus pagination metadata.
type ReportPage struct {
	Reports    []Report `json:"reports"`
	Page       int      `json:"page"`
	TotalPages int      `json:"total_pages"`
	Total      int      `json:"total"`
}

// HistoryActionType classifies entries in a user's moderation log.
type HistoryActionType string

const (
	HistoryWarn       HistoryActionType = "warn"
	HistoryBan        HistoryActionType = "ban"
	HistoryUnban      HistoryActionType = "unban"
	HistoryDeactivate HistoryActionType = "deactivate"
	HistoryActivate   HistoryActionType = "activate"
	HistoryTimeBan    HistoryActionType = "time_ban"
)

// ModerationHistoryEntry is one row of the append-only moderation log
// the server keeps per user. Read-only on this side.
type ModerationHistoryEntry struct {
	ActionType HistoryActionType `json:"action_type"`
	Reason     string            `json:"reason"`
	Duration   *int              `json:"duration,omitempty"` // days, time-bounded bans only
	Moderator  string            `json:"moderator"`
	CreatedAt  time.Time         `json:"created_at"`
	ReportID   *int              `json:"report_id,omitempty"`
}

// ModerationHistory couples a user's log with their current flags.
type ModerationHistory struct {
	User    TargetUser               `json:"user"`
	Entries []ModerationHistoryEntry `json:"entries"`
}

// CurrentUser is the authenticated identity returned by /auth/me.
type CurrentUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Forum is a browsable forum summary.
type Forum struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	MemberCount int    `json:"member_count"`
}

// PinnedForum is a locally persisted forum pin. Pins never leave the
// machine; the server has no notion of them.
type PinnedForum struct {
	gorm.Model
	ForumID int `gorm:"uniqueIndex"`
	Title   string
}

// NoteDraft is a locally persisted draft of investigation notes for a
// report, kept until the submit succeeds so a failed request loses nothing.
type NoteDraft struct {
	ID        string `gorm:"primaryKey"` // uuid
	ReportID  int    `gorm:"uniqueIndex"`
	Body      string
	UpdatedAt time.Time
}
