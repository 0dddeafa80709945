package moderation

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezeqja22/sciencepioneers-cli/internal/models"
)

func moderator(username string) models.CurrentUser {
	return models.CurrentUser{ID: 1, Username: username, Role: models.RoleModerator}
}

func testReport(status models.ReportStatus, assignedTo string) *models.Report {
	return &models.Report{
		ID:         7,
		ReportType: models.ReportTypeUser,
		Status:     status,
		Reason:     "spam",
		Reporter:   models.UserRef{ID: 3, Username: "reporter"},
		AssignedTo: assignedTo,
		TargetUser: &models.TargetUser{ID: 42, Username: "offender", IsActive: true},
	}
}

func TestTakeOnlyForUnassignedPending(t *testing.T) {
	me := moderator("mod")

	assert.NoError(t, Allowed(ActionTake, testReport(models.StatusPending, ""), me))

	err := Allowed(ActionTake, testReport(models.StatusPending, "someone"), me)
	assert.ErrorIs(t, err, ErrNotPermitted)

	err = Allowed(ActionTake, testReport(models.StatusUnderReview, ""), me)
	assert.ErrorIs(t, err, ErrNotPermitted)
}

func TestTakeRequiresModeratorRole(t *testing.T) {
	user := models.CurrentUser{ID: 2, Username: "civilian", Role: models.RoleUser}
	err := Allowed(ActionTake, testReport(models.StatusPending, ""), user)
	assert.ErrorIs(t, err, ErrNotPermitted)

	admin := models.CurrentUser{ID: 3, Username: "root", Role: models.RoleAdmin}
	assert.NoError(t, Allowed(ActionTake, testReport(models.StatusPending, ""), admin))
}

func TestTakeOverOnlyForReportsHeldByOthers(t *testing.T) {
	me := moderator("mod")

	assert.NoError(t, Allowed(ActionTakeOver, testReport(models.StatusUnderReview, "colleague"), me))

	err := Allowed(ActionTakeOver, testReport(models.StatusUnderReview, "mod"), me)
	assert.ErrorIs(t, err, ErrNotPermitted, "cannot take over own report")

	err = Allowed(ActionTakeOver, testReport(models.StatusUnderReview, ""), me)
	assert.ErrorIs(t, err, ErrNotPermitted, "unassigned reports are taken, not taken over")
}

func TestWorkflowActionsRequireAssignment(t *testing.T) {
	me := moderator("mod")
	mine := testReport(models.StatusUnderReview, "mod")
	theirs := testReport(models.StatusUnderReview, "colleague")

	for _, a := range []Action{ActionNotes, ActionResolve, ActionDismiss, ActionWarn, ActionBan, ActionDeactivate} {
		assert.NoError(t, Allowed(a, mine, me), "%s on own report", a)
		assert.ErrorIs(t, Allowed(a, theirs, me), ErrNotPermitted, "%s on someone else's report", a)
	}
}

func TestResolveAndDismissNeedUnderReview(t *testing.T) {
	me := moderator("mod")
	for _, status := range []models.ReportStatus{models.StatusPending, models.StatusResolved, models.StatusDismissed} {
		r := testReport(status, "mod")
		assert.ErrorIs(t, Allowed(ActionResolve, r, me), ErrNotPermitted, "resolve on %s", status)
		assert.ErrorIs(t, Allowed(ActionDismiss, r, me), ErrNotPermitted, "dismiss on %s", status)
	}
}

func TestSendEmailOnlyOnceAfterResolve(t *testing.T) {
	me := moderator("mod")

	r := testReport(models.StatusResolved, "mod")
	assert.NoError(t, Allowed(ActionEmail, r, me))

	r.EmailSent = true
	assert.ErrorIs(t, Allowed(ActionEmail, r, me), ErrNotPermitted)

	assert.ErrorIs(t, Allowed(ActionEmail, testReport(models.StatusUnderReview, "mod"), me), ErrNotPermitted)
}

func TestUnbanIgnoresReportStatus(t *testing.T) {
	me := moderator("mod")

	r := testReport(models.StatusResolved, "mod")
	r.TargetUser.IsBanned = true
	assert.NoError(t, Allowed(ActionUnban, r, me), "unban works after the report is closed")

	r.TargetUser.IsBanned = false
	assert.ErrorIs(t, Allowed(ActionUnban, r, me), ErrNotPermitted, "cannot unban an unbanned user")
}

func TestActivateRequiresDeactivatedTarget(t *testing.T) {
	me := moderator("mod")

	r := testReport(models.StatusResolved, "mod")
	assert.ErrorIs(t, Allowed(ActionActivate, r, me), ErrNotPermitted)

	r.TargetUser.IsActive = false
	assert.NoError(t, Allowed(ActionActivate, r, me))
}

func TestUserActionsNeedATargetUser(t *testing.T) {
	me := moderator("mod")
	r := testReport(models.StatusUnderReview, "mod")
	r.TargetUser = nil

	for _, a := range UserActions {
		assert.ErrorIs(t, Allowed(a, r, me), ErrNotPermitted, "%s without target user", a)
	}
}

func TestAvailableForFreshPendingReport(t *testing.T) {
	me := moderator("mod")
	actions := Available(testReport(models.StatusPending, ""), me)
	assert.Equal(t, []Action{ActionTake}, actions)
}

func TestAvailableForOwnUnderReviewReport(t *testing.T) {
	me := moderator("mod")
	actions := Available(testReport(models.StatusUnderReview, "mod"), me)
	assert.Equal(t, []Action{
		ActionNotes, ActionWarn, ActionBan, ActionDeactivate,
		ActionResolve, ActionDismiss,
	}, actions)
}

func TestAvailableForNonAssignee(t *testing.T) {
	me := moderator("mod")
	actions := Available(testReport(models.StatusUnderReview, "colleague"), me)
	assert.Equal(t, []Action{ActionTakeOver}, actions)
}

func TestAvailableEmptyForRegularUser(t *testing.T) {
	user := models.CurrentUser{ID: 2, Username: "civilian", Role: models.RoleUser}
	assert.Empty(t, Available(testReport(models.StatusPending, ""), user))
}

func TestParsePolicyRejectsUnknownAssignment(t *testing.T) {
	_, err := ParsePolicy([]byte("take:\n  assignment: stranger\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown assignment")
}

func TestParseBanDuration(t *testing.T) {
	for _, days := range BanDurations {
		d, err := ParseBanDuration(strconv.Itoa(days))
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, days, *d)
	}

	d, err := ParseBanDuration("permanent")
	require.NoError(t, err)
	assert.Nil(t, d, "permanent bans carry no duration")

	_, err = ParseBanDuration("3")
	assert.Error(t, err)
	_, err = ParseBanDuration("forever")
	assert.Error(t, err)
}
