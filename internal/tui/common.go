package tui

import (
	"fmt"
	"strings"

	"github.com/sadopc/playtally/internal/entry"
	"github.com/sadopc/playtally/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewOverview viewState = iota
	viewCalendar
	viewDaily
	viewLeaderboard
	viewSettings
)

var viewNames = []string{"Overview", "Calendar", "Daily", "Leaderboard", "Settings"}

// --- Messages ---

// entriesLoadedMsg carries the base entry set and saved preferences read from the store.
type entriesLoadedMsg struct {
	entries     []entry.Entry
	participant string
	prefs       chartPrefs
	latest      *store.Import
	err         error
}

// chartPrefs are the chart settings editable from the Settings view.
type chartPrefs struct {
	heatLow     string
	heatHigh    string
	bandPadding float64
}

type participantSavedMsg struct {
	participant string
}

type settingsSavedMsg struct {
	prefs chartPrefs
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// bar renders a horizontal bar of width cells for value out of max.
func bar(value, max, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	n := value * width / max
	if value > 0 && n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func percent(share float64) string {
	return fmt.Sprintf("%.1f%%", share*100)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
