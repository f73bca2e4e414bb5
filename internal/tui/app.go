package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/playtally/internal/dashboard"
	"github.com/sadopc/playtally/internal/entry"
	"github.com/sadopc/playtally/internal/export"
	"github.com/sadopc/playtally/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	opts   dashboard.Options
	width  int
	height int

	// base is the full entry set; state is derived from it for the current filter.
	base    []entry.Entry
	loadErr error
	loaded  bool
	state   dashboard.State

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int
	exportDir     string

	picking     bool
	picker      *huh.Form
	pickerValue *string

	overview    overviewModel
	calendar    calendarModel
	daily       dailyModel
	leaderboard leaderboardModel
	settings    settingsModel

	help   help.Model
	status string
}

func NewApp(s *store.Store, opts dashboard.Options) App {
	h := help.New()
	h.ShowAll = false

	home, _ := os.UserHomeDir()
	pv := ""
	return App{
		store:       s,
		opts:        opts,
		activeView:  viewOverview,
		exportDir:   home,
		pickerValue: &pv,
		state:       dashboard.State{Participant: dashboard.AllParticipants},
		daily:       newDailyModel(),
		settings:    newSettingsModel(s),
		help:        h,
	}
}

func (a App) Init() tea.Cmd {
	return a.loadEntries()
}

func (a App) loadEntries() tea.Cmd {
	return func() tea.Msg {
		entries, err := a.store.ListEntries(store.EntryFilter{})
		latest, lerr := a.store.LatestImport()
		if err == nil {
			err = lerr
		}
		padding, perr := strconv.ParseFloat(a.store.SettingOr(store.SettingBandPadding, ""), 64)
		if perr != nil {
			padding = a.opts.BandPadding
		}
		return entriesLoadedMsg{
			entries:     entries,
			participant: a.store.Participant(),
			prefs: chartPrefs{
				heatLow:     a.store.SettingOr(store.SettingHeatLow, a.opts.HeatLow),
				heatHigh:    a.store.SettingOr(store.SettingHeatHigh, a.opts.HeatHigh),
				bandPadding: padding,
			},
			latest: latest,
			err:    err,
		}
	}
}

func (a *App) applyPrefs(p chartPrefs) {
	a.opts.HeatLow = p.heatLow
	a.opts.HeatHigh = p.heatHigh
	a.opts.BandPadding = p.bandPadding
}

// recompute rebuilds the derived state for participant from the base entries.
func (a *App) recompute(participant string) error {
	var st dashboard.State
	if a.loadErr != nil {
		st = dashboard.Failed(a.loadErr, a.opts)
	} else {
		var err error
		st, err = dashboard.Recompute(a.base, participant, a.opts)
		if err != nil {
			return err
		}
	}
	a.state = st
	a.daily = a.daily.reset(st)
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.overview.setSize(a.width, contentHeight)
		a.calendar.setSize(a.width, contentHeight)
		a.daily.setSize(a.width, contentHeight)
		a.leaderboard.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		a.daily.build(a.state)
		return a, nil

	case entriesLoadedMsg:
		a.loaded = true
		a.base = msg.entries
		a.loadErr = msg.err
		a.applyPrefs(msg.prefs)
		a.overview.latest = msg.latest
		participant := msg.participant
		if !slices.Contains(dashboard.ParticipantOptions(a.base), participant) {
			participant = dashboard.AllParticipants
		}
		if err := a.recompute(participant); err != nil {
			a.status = fmt.Sprintf("Error: %v", err)
		}
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}
		if a.picking {
			return a.updatePicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Filter):
			return a.showPicker()
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewOverview
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewCalendar
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewDaily
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewLeaderboard
			return a, nil
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, a.refreshCurrentView()
		}

	case statusMsg:
		a.status = msg.text
		return a, nil

	case participantSavedMsg:
		a.status = "Showing " + msg.participant
		return a, nil

	case settingsSavedMsg:
		a.applyPrefs(msg.prefs)
		if err := a.recompute(a.state.Participant); err != nil {
			a.status = fmt.Sprintf("Error: %v", err)
			return a, nil
		}
		a.status = "Settings saved"
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	if a.picking {
		return a.updatePicker(msg)
	}
	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDaily:
		a.daily, cmd = a.daily.update(msg, a.state)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	return a.activeView == viewSettings && a.settings.formActive
}

func (a App) refreshCurrentView() tea.Cmd {
	if a.activeView == viewSettings {
		return a.settings.refresh()
	}
	return nil
}

// --- Participant picker ---

func (a App) showPicker() (tea.Model, tea.Cmd) {
	if !a.loaded || len(a.state.Participants) == 0 {
		return a, func() tea.Msg {
			return statusMsg{text: "No data loaded. Run playtally import first.", isError: true}
		}
	}
	*a.pickerValue = a.state.Participant
	a.picker = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Participant").
				Options(huh.NewOptions(a.state.Participants...)...).
				Value(a.pickerValue),
		),
	).WithShowHelp(true)
	a.picking = true
	return a, a.picker.Init()
}

func (a App) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		a.picking = false
		a.picker = nil
		return a, nil
	}

	form, cmd := a.picker.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.picker = f
	}
	if a.picker.State != huh.StateCompleted {
		return a, cmd
	}

	a.picking = false
	a.picker = nil
	participant := *a.pickerValue
	if err := a.recompute(participant); err != nil {
		a.status = fmt.Sprintf("Error: %v", err)
		return a, nil
	}
	return a, a.saveParticipant(participant)
}

func (a App) saveParticipant(p string) tea.Cmd {
	return func() tea.Msg {
		if err := a.store.SetSetting(store.SettingParticipant, p); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return participantSavedMsg{participant: p}
	}
}

func (a App) View() string {
	if a.width == 0 || !a.loaded {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewOverview:
		content = a.overview.view(a.state)
	case viewCalendar:
		content = a.calendar.view(a.state)
	case viewDaily:
		content = a.daily.view(a.state)
	case viewLeaderboard:
		content = a.leaderboard.view(a.state)
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(a.height-headerHeight-footerHeight, 1)

	switch {
	case a.exportPicking:
		content = a.renderExportPicker()
	case a.picking && a.picker != nil:
		content = activePanelStyle.Width(a.width - 4).Render(a.picker.View())
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("playtally")
	gap := max(a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	filter := successStyle.Render(" ● " + a.state.Participant)
	if a.state.Participant == dashboard.AllParticipants {
		filter = mutedStyle.Render(" ○ " + a.state.Participant)
	}

	left := footerStyle.Render(helpView)
	right := filter + status

	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

// --- Export picker ---

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("%d entries for %s", a.state.Total(), a.state.Participant)))
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport writes the currently filtered entries to the export directory.
func (a App) doExport(format int) tea.Cmd {
	entries, participant, dir := a.state.Entries, a.state.Participant, a.exportDir
	return func() tea.Msg {
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(dir, fmt.Sprintf("playtally-export-%s.csv", dateStr))
			if err := export.ToCSV(entries, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(dir, fmt.Sprintf("playtally-export-%s.json", dateStr))
			if err := export.ToJSON(entries, participant, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
