package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ezeqja22/sciencepioneers-cli/internal/api"
	"github.com/ezeqja22/sciencepioneers-cli/internal/client/events"
	"github.com/ezeqja22/sciencepioneers-cli/internal/models"
	"github.com/ezeqja22/sciencepioneers-cli/internal/moderation"
	"github.com/ezeqja22/sciencepioneers-cli/internal/storage"
)

const requestTimeout = 30 * time.Second

// screen identifies which view the model is currently rendering.
type screen int

const (
	screenList screen = iota
	screenDetail
	screenHistory
)

// Model holds the state for the interactive review session.
type Model struct {
	client *api.Client
	me     models.CurrentUser
	store  storage.Store

	eventBus *events.Bus
	eventSub <-chan events.Event

	screen  screen
	loading bool
	errMsg  string
	notice  string

	// list state
	filter  moderation.ListFilter
	pager   moderation.Pager
	reports []models.Report
	total   int
	cursor  int

	// detail state
	report  *models.Report
	history *models.ModerationHistory

	input *inputState

	logs []string

	width  int
	height int
}

// inputState is the inline text prompt used for actions that need a
// reason, resolution, note body or email content.
type inputState struct {
	action moderation.Action
	prompt string
	value  string

	// ban collects a reason first, then a duration.
	step   int
	reason string
}

func NewModel(client *api.Client, me models.CurrentUser, store storage.Store, eventBus *events.Bus) Model {
	m := Model{
		client:   client,
		me:       me,
		store:    store,
		eventBus: eventBus,
		screen:   screenList,
		filter:   moderation.ListFilter{Page: 1},
		loading:  true,
	}
	if eventBus != nil {
		m.eventSub = eventBus.Subscribe()
	}
	return m
}

type eventMsg events.Event

type reportsLoadedMsg struct {
	page *models.ReportPage
	err  error
}

type reportLoadedMsg struct {
	report *models.Report
	err    error
}

type historyLoadedMsg struct {
	history *models.ModerationHistory
	err     error
}

type actionDoneMsg struct {
	action   moderation.Action
	reportID int
	targetID int // set for user actions; triggers a snapshot refresh
	err      error
}

type draftLoadedMsg struct {
	body string
}

func waitForEvent(sub <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-sub
		if !ok {
			return nil
		}
		return eventMsg(event)
	}
}

// publishFetchStart and publishFetchDone mirror every request onto the
// event bus so the log pane (and anything else subscribed) sees the
// fetch lifecycle. Both are no-ops without a bus.
func publishFetchStart(bus *events.Bus, resource string, reportID int) {
	if bus == nil {
		return
	}
	bus.Publish(events.Event{
		Type: events.EventFetchStart,
		Data: events.FetchData{Resource: resource, ReportID: reportID},
	})
}

func publishFetchDone(bus *events.Bus, resource string, reportID int, start time.Time, err error) {
	if bus == nil {
		return
	}
	bus.Publish(events.Event{
		Type: events.EventFetchComplete,
		Data: events.FetchData{Resource: resource, ReportID: reportID, Duration: time.Since(start), Err: err},
	})
	if err != nil {
		bus.PublishError(err, "fetching "+resource)
	}
}

func (m Model) loadReportsCmd() tea.Cmd {
	filter := m.filter
	client := m.client
	bus := m.eventBus
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		publishFetchStart(bus, "reports", 0)
		start := time.Now()
		page, err := client.ListReports(ctx, filter)
		publishFetchDone(bus, "reports", 0, start, err)
		return reportsLoadedMsg{page: page, err: err}
	}
}

func (m Model) loadReportCmd(id int) tea.Cmd {
	return m.refreshReportCmd(id, 0)
}

// refreshReportCmd re-reads a report. With a target user id set it also
// refreshes the denormalized target snapshot, so flags changed by a
// ban, unban, deactivate or activate show without reopening the report.
// The snapshot refresh is best effort.
func (m Model) refreshReportCmd(reportID, targetID int) tea.Cmd {
	client := m.client
	bus := m.eventBus
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		publishFetchStart(bus, "report", reportID)
		start := time.Now()
		report, err := client.GetReport(ctx, reportID)
		publishFetchDone(bus, "report", reportID, start, err)
		if err == nil && targetID != 0 {
			if user, uerr := client.GetUser(ctx, targetID); uerr == nil {
				report.TargetUser = user
			}
		}
		return reportLoadedMsg{report: report, err: err}
	}
}

func (m Model) loadHistoryCmd(userID int) tea.Cmd {
	client := m.client
	bus := m.eventBus
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		publishFetchStart(bus, "history", 0)
		start := time.Now()
		history, err := client.ModerationHistory(ctx, userID)
		publishFetchDone(bus, "history", 0, start, err)
		return historyLoadedMsg{history: history, err: err}
	}
}

func (m Model) loadDraftCmd(reportID int) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		if store == nil {
			return draftLoadedMsg{}
		}
		draft, err := store.GetDraft(reportID)
		if err != nil {
			return draftLoadedMsg{}
		}
		return draftLoadedMsg{body: draft.Body}
	}
}

func publishActionStart(bus *events.Bus, action moderation.Action, reportID int) {
	if bus == nil {
		return
	}
	bus.Publish(events.Event{
		Type: events.EventActionStart,
		Data: events.ActionData{Action: action, ReportID: reportID},
	})
}

func publishActionDone(bus *events.Bus, action moderation.Action, reportID int, err error) {
	if bus == nil {
		return
	}
	bus.PublishAction(action, reportID, err)
}

func (m Model) assignCmd(action moderation.Action, reportID int) tea.Cmd {
	client := m.client
	bus := m.eventBus
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		publishActionStart(bus, action, reportID)
		err := client.AssignReport(ctx, reportID)
		publishActionDone(bus, action, reportID, err)
		return actionDoneMsg{action: action, reportID: reportID, err: err}
	}
}

func (m Model) reportActionCmd(action moderation.Action, reportID int, text string) tea.Cmd {
	client := m.client
	store := m.store
	bus := m.eventBus
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		publishActionStart(bus, action, reportID)
		var err error
		switch action {
		case moderation.ActionNotes:
			err = client.UpdateNotes(ctx, reportID, text)
			if err == nil && store != nil {
				_ = store.DeleteDraft(reportID)
			}
		case moderation.ActionResolve:
			err = client.ResolveReport(ctx, reportID, text)
		case moderation.ActionDismiss:
			err = client.DismissReport(ctx, reportID, text)
		case moderation.ActionEmail:
			err = client.SendReportEmail(ctx, reportID, text)
		default:
			err = fmt.Errorf("unexpected report action %q", action)
		}
		publishActionDone(bus, action, reportID, err)
		return actionDoneMsg{action: action, reportID: reportID, err: err}
	}
}

func (m Model) userActionCmd(action moderation.Action, reportID, userID int, reason string, duration *int) tea.Cmd {
	client := m.client
	bus := m.eventBus
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		publishActionStart(bus, action, reportID)
		req := api.UserActionRequest{Reason: reason, ReportID: reportID, Duration: duration}
		err := client.UserAction(ctx, userID, action, req)
		publishActionDone(bus, action, reportID, err)
		return actionDoneMsg{action: action, reportID: reportID, targetID: userID, err: err}
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadReportsCmd()}
	if m.eventSub != nil {
		cmds = append(cmds, waitForEvent(m.eventSub))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case eventMsg:
		m = m.handleEvent(events.Event(msg))
		return m, waitForEvent(m.eventSub)

	case reportsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			// The previous page must not render under the new filter;
			// a failed fetch leaves an error state, not stale results.
			m.reports = nil
			m.total = 0
			m.pager = moderation.NewPager(1, 1)
			m.filter.Page = 1
			m.cursor = 0
			return m.fail(msg.err)
		}
		m.errMsg = ""
		m.reports = msg.page.Reports
		m.pager = moderation.NewPager(msg.page.Page, msg.page.TotalPages)
		m.total = msg.page.Total
		m.filter.Page = m.pager.Page
		if m.cursor >= len(m.reports) {
			m.cursor = 0
		}
		return m, nil

	case reportLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.errMsg = ""
		m.report = msg.report
		m.screen = screenDetail
		return m, nil

	case historyLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.errMsg = ""
		m.history = msg.history
		m.screen = screenHistory
		return m, nil

	case draftLoadedMsg:
		if m.input != nil && m.input.action == moderation.ActionNotes && m.input.value == "" {
			m.input.value = msg.body
		}
		return m, nil

	case actionDoneMsg:
		m.loading = false
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.errMsg = ""
		m.notice = fmt.Sprintf("%s: done", msg.action.Label())
		// Every mutation is followed by a fresh fetch of the report.
		m.loading = true
		return m, m.refreshReportCmd(msg.reportID, msg.targetID)
	}

	return m, nil
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, api.ErrSessionExpired) {
		if m.eventBus != nil {
			m.eventBus.PublishType(events.EventSessionExpired)
		}
		m.errMsg = "session expired, please log in again"
		return m, tea.Quit
	}
	m.errMsg = api.Detail(err)
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.input != nil {
		return m.handleInputKey(msg)
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.screen {
	case screenList:
		return m.handleListKey(msg)
	case screenDetail:
		return m.handleDetailKey(msg)
	case screenHistory:
		return m.handleHistoryKey(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.reports)-1 {
			m.cursor++
		}
	case "left", "p":
		if m.pager.HasPrev() {
			m.filter.Page = m.pager.Prev()
			m.loading = true
			return m, m.loadReportsCmd()
		}
	case "right", "n":
		if m.pager.HasNext() {
			m.filter.Page = m.pager.Next()
			m.loading = true
			return m, m.loadReportsCmd()
		}
	case "f":
		m.filter = m.filter.WithStatus(nextStatusFilter(m.filter.Status))
		m.cursor = 0
		m.loading = true
		return m, m.loadReportsCmd()
	case "enter":
		if m.cursor < len(m.reports) {
			m.notice = ""
			m.loading = true
			return m, m.loadReportCmd(m.reports[m.cursor].ID)
		}
	}
	return m, nil
}

// nextStatusFilter cycles all -> pending -> under_review -> resolved -> dismissed -> all.
func nextStatusFilter(current *models.ReportStatus) *models.ReportStatus {
	order := []models.ReportStatus{
		models.StatusPending,
		models.StatusUnderReview,
		models.StatusResolved,
		models.StatusDismissed,
	}
	if current == nil {
		return &order[0]
	}
	for i, s := range order {
		if s == *current {
			if i == len(order)-1 {
				return nil
			}
			return &order[i+1]
		}
	}
	return nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.report == nil {
		m.screen = screenList
		return m, nil
	}
	available := moderation.Available(m.report, m.me)

	switch msg.String() {
	case "q", "esc":
		m.screen = screenList
		m.report = nil
		m.notice = ""
		m.loading = true
		return m, m.loadReportsCmd()

	case "h":
		if m.report.TargetUser != nil {
			m.loading = true
			return m, m.loadHistoryCmd(m.report.TargetUser.ID)
		}

	case "t":
		if hasAction(available, moderation.ActionTake) {
			m.loading = true
			return m, m.assignCmd(moderation.ActionTake, m.report.ID)
		}
		if hasAction(available, moderation.ActionTakeOver) {
			m.loading = true
			return m, m.assignCmd(moderation.ActionTakeOver, m.report.ID)
		}

	case "n":
		if hasAction(available, moderation.ActionNotes) {
			m.input = &inputState{
				action: moderation.ActionNotes,
				prompt: "Investigation notes",
				value:  m.report.InvestigationNotes,
			}
			if m.input.value == "" {
				return m, m.loadDraftCmd(m.report.ID)
			}
		}

	case "r":
		if hasAction(available, moderation.ActionResolve) {
			m.input = &inputState{action: moderation.ActionResolve, prompt: "Resolution"}
		}

	case "x":
		if hasAction(available, moderation.ActionDismiss) {
			m.input = &inputState{action: moderation.ActionDismiss, prompt: "Dismissal reason"}
		}

	case "e":
		if hasAction(available, moderation.ActionEmail) {
			m.input = &inputState{
				action: moderation.ActionEmail,
				prompt: "Email content",
				value:  moderation.EmailTemplate(m.report, m.me.Username),
			}
		}

	case "w":
		return m.startUserAction(available, moderation.ActionWarn, "Warning reason")
	case "b":
		return m.startUserAction(available, moderation.ActionBan, "Ban reason")
	case "u":
		return m.startUserAction(available, moderation.ActionUnban, "Unban reason")
	case "d":
		return m.startUserAction(available, moderation.ActionDeactivate, "Deactivation reason")
	case "a":
		return m.startUserAction(available, moderation.ActionActivate, "Activation reason")
	}
	return m, nil
}

func (m Model) startUserAction(available []moderation.Action, action moderation.Action, prompt string) (tea.Model, tea.Cmd) {
	if hasAction(available, action) {
		m.input = &inputState{action: action, prompt: prompt}
	}
	return m, nil
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.screen = screenDetail
		m.history = nil
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// An abandoned notes prompt keeps its text as a local draft.
		if m.input.action == moderation.ActionNotes && m.store != nil && strings.TrimSpace(m.input.value) != "" {
			_, _ = m.store.SaveDraft(m.report.ID, m.input.value)
			m.notice = "draft saved"
		}
		m.input = nil
		return m, nil

	case tea.KeyEnter:
		return m.submitInput()

	case tea.KeyBackspace:
		if len(m.input.value) > 0 {
			runes := []rune(m.input.value)
			m.input.value = string(runes[:len(runes)-1])
		}
		return m, nil

	case tea.KeySpace:
		m.input.value += " "
		return m, nil

	case tea.KeyRunes:
		m.input.value += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	in := m.input
	value := strings.TrimSpace(in.value)

	if in.action == moderation.ActionBan && in.step == 1 {
		duration, err := moderation.ParseBanDuration(value)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.input = nil
		m.errMsg = ""
		m.loading = true
		return m, m.userActionCmd(moderation.ActionBan, m.report.ID, m.report.TargetUser.ID, in.reason, duration)
	}

	if value == "" {
		m.errMsg = fmt.Sprintf("%s requires text", in.action.Label())
		return m, nil
	}
	m.errMsg = ""

	if in.action == moderation.ActionBan {
		in.reason = value
		in.value = ""
		in.step = 1
		in.prompt = fmt.Sprintf("Duration in days (%s) or %q", banDurationList(), moderation.PermanentBan)
		return m, nil
	}

	m.input = nil
	m.loading = true
	switch in.action {
	case moderation.ActionNotes, moderation.ActionResolve, moderation.ActionDismiss, moderation.ActionEmail:
		return m, m.reportActionCmd(in.action, m.report.ID, value)
	default:
		return m, m.userActionCmd(in.action, m.report.ID, m.report.TargetUser.ID, value, nil)
	}
}

func banDurationList() string {
	parts := make([]string, len(moderation.BanDurations))
	for i, d := range moderation.BanDurations {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return strings.Join(parts, "/")
}

func hasAction(actions []moderation.Action, a moderation.Action) bool {
	for _, x := range actions {
		if x == a {
			return true
		}
	}
	return false
}

func (m Model) handleEvent(event events.Event) Model {
	switch event.Type {
	case events.EventLog:
		if data, ok := event.Data.(events.LogData); ok {
			m.logs = append(m.logs, fmt.Sprintf("[%s] %s", data.Level, data.Message))
		}
	case events.EventError:
		if data, ok := event.Data.(events.ErrorData); ok {
			m.logs = append(m.logs, fmt.Sprintf("[error] %s: %v", data.Context, data.Error))
		}
	case events.EventSessionExpired:
		m.errMsg = "session expired, please log in again"
	}
	if len(m.logs) > 5 {
		m.logs = m.logs[len(m.logs)-5:]
	}
	return m
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("SciencePioneers · report review"))
	b.WriteString("  ")
	b.WriteString(hintStyle.Render(fmt.Sprintf("%s (%s)", m.me.Username, m.me.Role)))
	b.WriteString("\n\n")

	switch m.screen {
	case screenList:
		b.WriteString(m.renderList())
	case screenDetail:
		b.WriteString(m.renderDetail())
	case screenHistory:
		b.WriteString(m.renderHistory())
	}

	if m.input != nil {
		b.WriteString("\n")
		b.WriteString(promptStyle.Render(m.input.prompt+": ") + m.input.value + "█")
		b.WriteString("\n" + hintStyle.Render("enter to submit · esc to cancel"))
	}

	if m.notice != "" {
		b.WriteString("\n" + successStyle.Render(m.notice))
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg))
	}
	if m.loading {
		b.WriteString("\n" + hintStyle.Render("loading..."))
	}
	if len(m.logs) > 0 {
		b.WriteString("\n\n" + dimStyle.Render(strings.Join(m.logs, "\n")))
	}

	return b.String()
}

func (m Model) renderList() string {
	var b strings.Builder

	filterLabel := "all"
	if m.filter.Status != nil {
		filterLabel = string(*m.filter.Status)
	}
	b.WriteString(labelStyle.Render("Filter") + valueStyle.Render(filterLabel) + hintStyle.Render("  (f to cycle)"))
	b.WriteString("\n\n")

	if len(m.reports) == 0 && !m.loading {
		b.WriteString(dimStyle.Render("no reports"))
		b.WriteString("\n")
	}

	for i, r := range m.reports {
		line := fmt.Sprintf("#%-5d %-12s %-14s %s", r.ID, r.ReportType, r.Status, r.Reason)
		if len(line) > 76 {
			line = line[:73] + "..."
		}
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	prev, next := "·", "·"
	if m.pager.HasPrev() {
		prev = "←"
	}
	if m.pager.HasNext() {
		next = "→"
	}
	b.WriteString(hintStyle.Render(fmt.Sprintf("%s page %d/%d (%d reports) %s", prev, m.pager.Page, m.pager.TotalPages, m.total, next)))
	b.WriteString("\n" + hintStyle.Render("↑/↓ select · enter open · ←/→ page · f filter · q quit"))
	return b.String()
}

func (m Model) renderDetail() string {
	if m.report == nil {
		return dimStyle.Render("no report loaded")
	}
	r := m.report
	var b strings.Builder

	b.WriteString(m.renderField("Report", fmt.Sprintf("#%d", r.ID)))
	b.WriteString(m.renderField("Type", string(r.ReportType)))
	b.WriteString(labelStyle.Render("Status") + StatusText(r.Status) + "\n")
	b.WriteString(m.renderField("Reporter", r.Reporter.Username))
	b.WriteString(m.renderField("Reason", r.Reason))
	if r.Description != "" {
		b.WriteString(m.renderField("Description", r.Description))
	}
	assigned := "unassigned"
	if r.Assigned() {
		assigned = r.AssignedTo
	}
	b.WriteString(m.renderField("Assigned to", assigned))
	if r.InvestigationNotes != "" {
		b.WriteString(m.renderField("Notes", r.InvestigationNotes))
	}
	if r.Resolution != "" {
		b.WriteString(m.renderField("Resolution", r.Resolution))
	}
	if r.EmailSent {
		b.WriteString(m.renderField("Email", "sent"))
	}
	if r.TargetUser != nil {
		flags := ""
		if r.TargetUser.IsBanned {
			flags += " " + bannedStyle.Render("[banned]")
		}
		if !r.TargetUser.IsActive {
			flags += " " + bannedStyle.Render("[deactivated]")
		}
		b.WriteString(m.renderField("Target user", r.TargetUser.Username+flags))
	}

	b.WriteString("\n")
	available := moderation.Available(r, m.me)
	if len(available) > 0 {
		keys := map[moderation.Action]string{
			moderation.ActionTake:       "t",
			moderation.ActionTakeOver:   "t",
			moderation.ActionNotes:      "n",
			moderation.ActionResolve:    "r",
			moderation.ActionDismiss:    "x",
			moderation.ActionEmail:      "e",
			moderation.ActionWarn:       "w",
			moderation.ActionBan:        "b",
			moderation.ActionUnban:      "u",
			moderation.ActionDeactivate: "d",
			moderation.ActionActivate:   "a",
		}
		parts := make([]string, 0, len(available))
		for _, a := range available {
			parts = append(parts, actionStyle.Render(fmt.Sprintf("[%s] %s", keys[a], a.Label())))
		}
		b.WriteString(strings.Join(parts, "  "))
		b.WriteString("\n")
	}
	if r.TargetUser != nil {
		b.WriteString(hintStyle.Render("h history · esc back"))
	} else {
		b.WriteString(hintStyle.Render("esc back"))
	}
	return b.String()
}

func (m Model) renderField(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

func (m Model) renderHistory() string {
	if m.history == nil {
		return dimStyle.Render("no history loaded")
	}
	var b strings.Builder
	b.WriteString(m.renderField("History for", m.history.User.Username))
	b.WriteString("\n")
	if len(m.history.Entries) == 0 {
		b.WriteString(dimStyle.Render("no moderation history"))
		b.WriteString("\n")
	}
	for _, e := range m.history.Entries {
		line := fmt.Sprintf("%-12s %-10s by %-14s %s",
			e.CreatedAt.Format("2006-01-02"), e.ActionType, e.Moderator, e.Reason)
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n" + hintStyle.Render("esc back"))
	return b.String()
}

// Run starts the review UI and blocks until the user quits.
func Run(client *api.Client, me models.CurrentUser, store storage.Store, eventBus *events.Bus) error {
	model := NewModel(client, me, store, eventBus)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
