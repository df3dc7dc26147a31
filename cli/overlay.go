package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"landsquire.in/estatemap/geo"
	"landsquire.in/estatemap/session"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2DD4BF"))
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")).Bold(true)
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FDE047"))
)

func (m uiModel) renderHeader() string {
	snap := m.snap

	left := titleStyle.Render("estatemap") + "  " + snap.LocationName
	if snap.Loading {
		left += "  " + m.spin.View() + "loading"
	}

	parts := []string{
		fmt.Sprintf("%s/%s", snap.PropertyMode, snap.DisplayMode),
		fmt.Sprintf("map:%s", snap.MapType),
		fmt.Sprintf("%d of %d in view", len(snap.VisibleItems), snap.FilteredCount),
	}
	if snap.MedianVisiblePrice > 0 {
		parts = append(parts, "median "+geo.FormatINR(snap.MedianVisiblePrice))
	}
	if label := selectedCategoryLabel(snap); label != "" {
		parts = append(parts, "category:"+label)
	}
	if snap.HasMore {
		parts = append(parts, activeStyle.Render("more (m)"))
	}

	lines := []string{left, faintStyle.Render(strings.Join(parts, "  |  "))}
	if m.searchFocused {
		lines = append(lines, m.search.View())
	}
	return strings.Join(lines, "\n")
}

func (m uiModel) renderSuggestions() string {
	snap := m.snap
	if !snap.ShowSuggestions || len(snap.Suggestions) == 0 {
		return faintStyle.Render("(type a city name)")
	}
	var b strings.Builder
	for i, s := range snap.Suggestions {
		line := "  " + s.Description
		if i == m.suggestion {
			line = activeStyle.Render("> " + s.Description)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m uiModel) renderFooter() string {
	snap := m.snap

	var lines []string
	if snap.RedirectSignIn {
		lines = append(lines, errorStyle.Render("Run `estatemap login` to store an API token."))
	}
	if snap.Error != "" {
		lines = append(lines, errorStyle.Render(snap.Error))
	}
	if m.status != "" {
		lines = append(lines, activeStyle.Render(m.status))
	}

	help := "←↑↓→ pan  +/- zoom  tab marker  enter detail  / search  f filters  p sell/rent  d layers  t map  l locate  m more  r reset  q quit"
	if m.state == showDetail {
		help = "enter/v open route  esc close"
	}
	lines = append(lines, faintStyle.Render(help))
	return strings.Join(lines, "\n")
}

func selectedCategoryLabel(snap session.Snapshot) string {
	if snap.SelectedCategory == "" {
		return ""
	}
	for _, c := range snap.Categories {
		if strconv.FormatInt(c.ID, 10) == snap.SelectedCategory {
			return c.Label
		}
	}
	return snap.SelectedCategory
}
