package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezeqja22/sciencepioneers-cli/internal/models"
	"github.com/ezeqja22/sciencepioneers-cli/internal/moderation"
)

// recordedRequest captures what the test server saw for one call.
type recordedRequest struct {
	method string
	path   string
	query  string
	auth   string
	body   map[string]any
}

// newTestClient wires a Client to a stub server that replies with the
// given status and payload, capturing each request for assertions.
func newTestClient(t *testing.T, status int, payload string) (*Client, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.auth = r.Header.Get("Authorization")
		rec.body = nil
		_ = json.NewDecoder(r.Body).Decode(&rec.body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)

	return NewClient(srv.URL, NewStaticSession("test-token")), rec
}

func TestRequestsCarryBearerToken(t *testing.T) {
	client, rec := newTestClient(t, http.StatusOK, `{"id":1,"report_type":"user","status":"pending","reason":"spam","reporter":{"id":2,"username":"r"}}`)

	_, err := client.GetReport(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", rec.auth)
}

func TestListReportsQuery(t *testing.T) {
	client, rec := newTestClient(t, http.StatusOK, `{"reports":[],"page":3,"total_pages":5,"total":90}`)

	status := models.StatusUnderReview
	page, err := client.ListReports(context.Background(), moderation.ListFilter{Status: &status, Page: 3})
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/admin/reports", rec.path)
	assert.Contains(t, rec.query, "page=3")
	assert.Contains(t, rec.query, "limit=20")
	assert.Contains(t, rec.query, "status=under_review")
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 5, page.TotalPages)
	assert.Equal(t, 90, page.Total)
}

func TestListReportsOmitsEmptyStatus(t *testing.T) {
	client, rec := newTestClient(t, http.StatusOK, `{"reports":[],"page":1,"total_pages":1,"total":0}`)

	_, err := client.ListReports(context.Background(), moderation.ListFilter{Page: 0})
	require.NoError(t, err)

	assert.NotContains(t, rec.query, "status=")
	assert.Contains(t, rec.query, "page=1", "page below 1 is normalized before the request")
}

func TestAssignReport(t *testing.T) {
	client, rec := newTestClient(t, http.StatusOK, `{}`)

	require.NoError(t, client.AssignReport(context.Background(), 7))
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/admin/reports/7/assign", rec.path)
}

func TestResolveReportBody(t *testing.T) {
	client, rec := newTestClient(t, http.StatusOK, `{}`)

	require.NoError(t, client.ResolveReport(context.Background(), 7, "banned the account"))
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/admin/reports/7/resolve", rec.path)
	assert.Equal(t, "banned the account", rec.body["resolution"])
}

func TestDismissReportBody(t *testing.T) {
	client, rec := newTestClient(t, http.StatusOK, `{}`)

	require.NoError(t, client.DismissReport(context.Background(), 7, "duplicate"))
	assert.Equal(t, "/admin/reports/7/dismiss", rec.path)
	assert.Equal(t, "duplicate", rec.body["reason"])
}

func TestUpdateNotesBody(t *testing.T) {
	client, rec := newTestClient(t, http.StatusOK, `{}`)

	require.NoError(t, client.UpdateNotes(context.Background(), 7, "checked profile"))
	assert.Equal(t, "/admin/reports/7/investigation-notes", rec.path)
	assert.Equal(t, "checked profile", rec.body["investigation_notes"])
}

func TestSendReportEmailBody(t *testing.T) {
	client, rec := newTestClient(t, http.StatusOK, `{}`)

	require.NoError(t, client.SendReportEmail(context.Background(), 7, "Hello reporter"))
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/admin/reports/7/send-email", rec.path)
	assert.Equal(t, "Hello reporter", rec.body["email_content"])
}

func TestTimeBoundedBanRequest(t *testing.T) {
	client, rec := newTestClient(t, http.StatusOK, `{}`)

	days := 1
	req := UserActionRequest{Reason: "spam", ReportID: 5, Duration: &days}
	require.NoError(t, client.UserAction(context.Background(), 42, moderation.ActionBan, req))

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/admin/users/42/ban", rec.path)
	assert.Equal(t, "spam", rec.body["reason"])
	assert.Equal(t, float64(5), rec.body["report_id"])
	assert.Equal(t, float64(1), rec.body["duration"])
}

func TestPermanentBanOmitsDuration(t *testing.T) {
	client, rec := newTestClient(t, http.StatusOK, `{}`)

	req := UserActionRequest{Reason: "repeat offender", ReportID: 5}
	require.NoError(t, client.UserAction(context.Background(), 42, moderation.ActionBan, req))

	_, present := rec.body["duration"]
	assert.False(t, present, "a permanent ban must not send a duration field")
}

func TestUserActionRejectsReportActions(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, `{}`)

	err := client.UserAction(context.Background(), 42, moderation.ActionResolve, UserActionRequest{Reason: "x"})
	assert.Error(t, err)
}

func TestUnauthorizedInvalidatesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	}))
	defer srv.Close()

	session := NewStaticSession("stale-token")
	client := NewClient(srv.URL, session)

	_, err := client.GetReport(context.Background(), 1)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Empty(t, session.Token(), "401 must clear the stored token")
}

func TestForbiddenAndNotFoundSentinels(t *testing.T) {
	client, _ := newTestClient(t, http.StatusForbidden, `{"detail":"Not enough permissions"}`)
	_, err := client.GetReport(context.Background(), 1)
	assert.ErrorIs(t, err, ErrForbidden)

	client, _ = newTestClient(t, http.StatusNotFound, `{"detail":"Report not found"}`)
	_, err = client.GetReport(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServerDetailSurfacesInError(t *testing.T) {
	client, _ := newTestClient(t, http.StatusBadRequest, `{"detail":"Report is not under review"}`)

	err := client.ResolveReport(context.Background(), 7, "done")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Report is not under review", apiErr.Detail)
	assert.Equal(t, "Report is not under review", Detail(err))
}

func TestNonEnvelopeErrorBodyUsedVerbatim(t *testing.T) {
	client, _ := newTestClient(t, http.StatusBadGateway, `upstream unavailable`)

	err := client.AssignReport(context.Background(), 7)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "upstream unavailable", apiErr.Detail)
}

func TestLogin(t *testing.T) {
	var seen map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		_ = json.NewDecoder(r.Body).Decode(&seen)
		_, _ = w.Write([]byte(`{"access_token":"fresh-token","token_type":"bearer"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, NewStaticSession(""))
	token, err := client.Login(context.Background(), "mod", "secret")
	require.NoError(t, err)

	assert.Equal(t, "fresh-token", token)
	assert.Equal(t, "mod", seen["username"])
	assert.Equal(t, "secret", seen["password"])
}

func TestModerationHistoryDecodes(t *testing.T) {
	payload := `{
		"user": {"id": 42, "username": "offender", "is_banned": true, "is_active": true},
		"entries": [
			{"action_type": "time_ban", "reason": "spam", "duration": 7, "moderator": "mod", "created_at": "2026-08-01T10:00:00Z", "report_id": 5},
			{"action_type": "warn", "reason": "first offense", "moderator": "mod", "created_at": "2026-07-01T10:00:00Z"}
		]
	}`
	client, rec := newTestClient(t, http.StatusOK, payload)

	history, err := client.ModerationHistory(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, "/admin/users/42/moderation-history", rec.path)
	assert.True(t, history.User.IsBanned)
	require.Len(t, history.Entries, 2)
	assert.Equal(t, models.HistoryTimeBan, history.Entries[0].ActionType)
	require.NotNil(t, history.Entries[0].Duration)
	assert.Equal(t, 7, *history.Entries[0].Duration)
	assert.Nil(t, history.Entries[1].Duration)
}
