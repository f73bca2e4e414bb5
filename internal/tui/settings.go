package tui

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/sadopc/playtally/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	heatLow     *string
	heatHigh    *string
	bandPadding *string
}

func newSettingsModel(s *store.Store) settingsModel {
	hl, hh, bp := "", "", ""
	return settingsModel{
		store:       s,
		heatLow:     &hl,
		heatHigh:    &hh,
		bandPadding: &bp,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Enter) {
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	// Load current values
	*s.heatLow = s.store.SettingOr(store.SettingHeatLow, "#ebedf0")
	*s.heatHigh = s.store.SettingOr(store.SettingHeatHigh, "#216e39")
	*s.bandPadding = s.store.SettingOr(store.SettingBandPadding, "0.2")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Calendar colour, empty day").Value(s.heatLow).Validate(validateHex),
			huh.NewInput().Title("Calendar colour, busiest day").Value(s.heatHigh).Validate(validateHex),
		).Title("Calendar"),
		huh.NewGroup(
			huh.NewInput().Title("Bar padding (0 to 0.9)").Value(s.bandPadding).Validate(validatePadding),
		).Title("Daily chart"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s, tea.Batch(s.saveSettings(), s.refresh())
	}

	return s, cmd
}

func (s settingsModel) saveSettings() tea.Cmd {
	low, high := *s.heatLow, *s.heatHigh
	padding, _ := strconv.ParseFloat(*s.bandPadding, 64)
	return func() tea.Msg {
		for k, v := range map[string]string{
			store.SettingHeatLow:     low,
			store.SettingHeatHigh:    high,
			store.SettingBandPadding: strconv.FormatFloat(padding, 'f', -1, 64),
		} {
			if err := s.store.SetSetting(k, v); err != nil {
				return statusMsg{text: fmt.Sprintf("Settings error: %v", err), isError: true}
			}
		}
		return settingsSavedMsg{prefs: chartPrefs{heatLow: low, heatHigh: high, bandPadding: padding}}
	}
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(setting.Key)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// formatSettingValue shows colours as a swatch next to the hex value.
func formatSettingValue(k, v string) string {
	switch k {
	case store.SettingHeatLow, store.SettingHeatHigh:
		if _, err := colorful.Hex(v); err == nil {
			return lipgloss.NewStyle().Background(lipgloss.Color(v)).Render("  ") + " " + v
		}
	case store.SettingSource:
		if v == "" {
			return "(none)"
		}
	}
	return v
}

func validateHex(s string) error {
	if _, err := colorful.Hex(s); err != nil {
		return errors.New("use a #rrggbb colour")
	}
	return nil
}

func validatePadding(s string) error {
	p, err := strconv.ParseFloat(s, 64)
	if err != nil || p < 0 || p > 0.9 {
		return errors.New("enter a number between 0 and 0.9")
	}
	return nil
}
