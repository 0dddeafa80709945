package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezeqja22/sciencepioneers-cli/internal/api"
	"github.com/ezeqja22/sciencepioneers-cli/internal/client/events"
	"github.com/ezeqja22/sciencepioneers-cli/internal/models"
	"github.com/ezeqja22/sciencepioneers-cli/internal/moderation"
)

func testModel() Model {
	return NewModel(nil, models.CurrentUser{ID: 1, Username: "mod", Role: models.RoleModerator}, nil, nil)
}

func pageMsg(page, totalPages int, reports ...models.Report) reportsLoadedMsg {
	return reportsLoadedMsg{page: &models.ReportPage{
		Reports:    reports,
		Page:       page,
		TotalPages: totalPages,
		Total:      totalPages * 20,
	}}
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLoadedPageClampsCursorAndPager(t *testing.T) {
	m := testModel()
	m.cursor = 5

	updated, _ := m.Update(pageMsg(9, 3))
	model := updated.(Model)

	assert.Equal(t, 3, model.pager.Page, "page beyond the end clamps")
	assert.Equal(t, 0, model.cursor)
	assert.False(t, model.loading)
}

func TestFilterCycleResetsPage(t *testing.T) {
	m := testModel()
	m.filter = moderation.ListFilter{Page: 4}
	m.loading = false

	updated, cmd := m.Update(keyMsg("f"))
	model := updated.(Model)

	require.NotNil(t, model.filter.Status)
	assert.Equal(t, models.StatusPending, *model.filter.Status)
	assert.Equal(t, 1, model.filter.Page, "changing the filter restarts from page 1")
	assert.NotNil(t, cmd, "a fresh fetch is issued")
}

func TestFilterCyclesBackToAll(t *testing.T) {
	dismissed := models.StatusDismissed
	m := testModel()
	m.filter = moderation.ListFilter{Status: &dismissed, Page: 1}

	updated, _ := m.Update(keyMsg("f"))
	model := updated.(Model)
	assert.Nil(t, model.filter.Status)
}

func TestPaginationGatedByPager(t *testing.T) {
	m := testModel()
	updated, _ := m.Update(pageMsg(1, 1))
	m = updated.(Model)

	_, cmd := m.Update(keyMsg("n"))
	assert.Nil(t, cmd, "no next page to fetch")
	_, cmd = m.Update(keyMsg("p"))
	assert.Nil(t, cmd, "no previous page to fetch")
}

func TestActionSuccessTriggersRefetch(t *testing.T) {
	m := testModel()
	m.screen = screenDetail

	updated, cmd := m.Update(actionDoneMsg{action: moderation.ActionResolve, reportID: 7})
	model := updated.(Model)

	assert.True(t, model.loading, "every mutation is followed by a fresh fetch")
	assert.NotNil(t, cmd)
	assert.Contains(t, model.notice, "Resolve")
}

func TestActionFailureShowsDetail(t *testing.T) {
	m := testModel()

	updated, cmd := m.Update(actionDoneMsg{action: moderation.ActionResolve, reportID: 7, err: assert.AnError})
	model := updated.(Model)

	assert.Nil(t, cmd)
	assert.NotEmpty(t, model.errMsg)
}

func TestEmptyInputRejectedBeforeSubmit(t *testing.T) {
	m := testModel()
	m.screen = screenDetail
	m.report = &models.Report{ID: 7, Status: models.StatusUnderReview, AssignedTo: "mod"}
	m.input = &inputState{action: moderation.ActionResolve, prompt: "Resolution", value: "   "}

	updated, cmd := m.Update(keyMsg("enter"))
	model := updated.(Model)

	assert.Nil(t, cmd, "no request may leave with empty text")
	assert.NotNil(t, model.input, "prompt stays open")
	assert.NotEmpty(t, model.errMsg)
}

func TestBanCollectsReasonThenDuration(t *testing.T) {
	m := testModel()
	m.screen = screenDetail
	m.report = &models.Report{
		ID:         7,
		Status:     models.StatusUnderReview,
		AssignedTo: "mod",
		TargetUser: &models.TargetUser{ID: 42, Username: "offender", IsActive: true},
	}
	m.input = &inputState{action: moderation.ActionBan, prompt: "Ban reason", value: "spam"}

	updated, cmd := m.Update(keyMsg("enter"))
	model := updated.(Model)

	assert.Nil(t, cmd, "no request until the duration is chosen")
	require.NotNil(t, model.input)
	assert.Equal(t, 1, model.input.step)
	assert.Equal(t, "spam", model.input.reason)
	assert.Empty(t, model.input.value)
}

func TestBanRejectsUnsupportedDuration(t *testing.T) {
	m := testModel()
	m.report = &models.Report{
		ID:         7,
		Status:     models.StatusUnderReview,
		AssignedTo: "mod",
		TargetUser: &models.TargetUser{ID: 42, IsActive: true},
	}
	m.input = &inputState{action: moderation.ActionBan, step: 1, reason: "spam", value: "3"}

	updated, cmd := m.Update(keyMsg("enter"))
	model := updated.(Model)

	assert.Nil(t, cmd)
	require.NotNil(t, model.input)
	assert.NotEmpty(t, model.errMsg)
}

func TestFailedFetchClearsPreviousPage(t *testing.T) {
	m := testModel()
	updated, _ := m.Update(pageMsg(4, 6, models.Report{
		ID:         31,
		ReportType: models.ReportTypeUser,
		Status:     models.StatusResolved,
		Reason:     "row carried over from the old filter",
	}))
	m = updated.(Model)

	updated, _ = m.Update(keyMsg("f"))
	m = updated.(Model)

	updated, _ = m.Update(reportsLoadedMsg{err: assert.AnError})
	model := updated.(Model)

	assert.Empty(t, model.reports, "results from the old filter must not survive a failed fetch")
	assert.Equal(t, 0, model.total)
	assert.Equal(t, 1, model.pager.Page)
	assert.Equal(t, 1, model.filter.Page)
	assert.Equal(t, 0, model.cursor)
	assert.NotEmpty(t, model.errMsg)
	assert.NotContains(t, model.View(), "row carried over from the old filter")
}

func TestUserActionRefreshesTargetSnapshot(t *testing.T) {
	userFetched := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/reports/7":
			json.NewEncoder(w).Encode(models.Report{
				ID:     7,
				Status: models.StatusUnderReview,
				TargetUser: &models.TargetUser{
					ID: 42, Username: "offender", IsBanned: false, IsActive: true,
				},
			})
		case "/admin/users/42":
			userFetched = true
			json.NewEncoder(w).Encode(models.TargetUser{
				ID: 42, Username: "offender", IsBanned: true, IsActive: true,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL, api.NewStaticSession("tok"))
	m := NewModel(client, models.CurrentUser{ID: 1, Username: "mod", Role: models.RoleModerator}, nil, nil)

	_, cmd := m.Update(actionDoneMsg{action: moderation.ActionBan, reportID: 7, targetID: 42})
	require.NotNil(t, cmd)

	loaded, ok := cmd().(reportLoadedMsg)
	require.True(t, ok)
	require.NoError(t, loaded.err)

	assert.True(t, userFetched, "a ban re-reads the target user's flags")
	require.NotNil(t, loaded.report.TargetUser)
	assert.True(t, loaded.report.TargetUser.IsBanned, "the detail view sees the updated snapshot")
}

func drainEventTypes(sub <-chan events.Event) []events.EventType {
	var types []events.EventType
	for len(sub) > 0 {
		types = append(types, (<-sub).Type)
	}
	return types
}

func TestCommandsPublishLifecycleEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			w.WriteHeader(http.StatusOK)
			return
		}
		json.NewEncoder(w).Encode(models.ReportPage{Page: 1, TotalPages: 1})
	}))
	defer srv.Close()

	bus := events.NewBus()
	defer bus.Close()
	sub := bus.Subscribe()

	client := api.NewClient(srv.URL, api.NewStaticSession("tok"))
	m := NewModel(client, models.CurrentUser{ID: 1, Username: "mod", Role: models.RoleModerator}, nil, bus)

	_, ok := m.loadReportsCmd()().(reportsLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, []events.EventType{events.EventFetchStart, events.EventFetchComplete}, drainEventTypes(sub))

	done, ok := m.assignCmd(moderation.ActionTake, 7)().(actionDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	assert.Equal(t, []events.EventType{events.EventActionStart, events.EventActionComplete}, drainEventTypes(sub))
}

func TestSessionExpiryPublishesAndQuits(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()
	sub := bus.Subscribe()

	m := NewModel(nil, models.CurrentUser{ID: 1, Username: "mod", Role: models.RoleModerator}, nil, bus)

	updated, cmd := m.Update(reportsLoadedMsg{err: api.ErrSessionExpired})
	model := updated.(Model)

	assert.Contains(t, model.errMsg, "session expired")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd(), "an expired session ends the program")
	assert.Contains(t, drainEventTypes(sub), events.EventSessionExpired)
}

func TestInputEditingKeys(t *testing.T) {
	m := testModel()
	m.input = &inputState{action: moderation.ActionDismiss, prompt: "Dismissal reason"}

	updated, _ := m.Update(keyMsg("dup"))
	m = updated.(Model)
	assert.Equal(t, "dup", m.input.value)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = updated.(Model)
	assert.Equal(t, "du", m.input.value)

	updated, _ = m.Update(keyMsg("esc"))
	m = updated.(Model)
	assert.Nil(t, m.input, "esc abandons the prompt")
}
