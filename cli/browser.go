package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"landsquire.in/estatemap/geo"
	"landsquire.in/estatemap/session"
)

type viewState int

const (
	showMap viewState = iota
	showFilter
	showDetail
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)

type TickMsg time.Time

func tickEvery() tea.Cmd {
	return tea.Every(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// command wraps a blocking controller call in a tea.Cmd so the Update
// loop never blocks on the network.
func command(f func()) tea.Cmd {
	return func() tea.Msg {
		f()
		return nil
	}
}

type uiModel struct {
	ctrl *session.Controller
	snap session.Snapshot

	state         viewState
	filter        filterModel
	search        textinput.Model
	searchFocused bool
	suggestion    int
	cursor        int
	spin          spinner.Model
	status        string
	width         int
	height        int
}

func initialModel(ctrl *session.Controller) uiModel {
	search := textinput.New()
	search.Placeholder = "Search city"
	search.CharLimit = 64

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := uiModel{
		ctrl:   ctrl,
		filter: getFilterModel(),
		search: search,
		spin:   spin,
	}
	m.snap = ctrl.Snapshot()
	return m
}

func (m uiModel) Init() tea.Cmd {
	return tea.Batch(
		tickEvery(),
		m.spin.Tick,
		command(m.ctrl.Initialize),
	)
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.searchFocused {
			return m.updateSearch(msg)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filter, _ = m.filter.Update(msg, &m)
		return m, nil
	case TickMsg:
		m.snap = m.ctrl.Snapshot()
		if m.cursor >= len(m.snap.VisibleItems) {
			m.cursor = 0
		}
		if m.suggestion >= len(m.snap.Suggestions) {
			m.suggestion = 0
		}
		return m, tickEvery()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.state {
	case showFilter:
		m.filter, cmd = m.filter.Update(msg, &m)
	case showDetail:
		return m.updateDetail(msg)
	default:
		return m.updateMap(msg)
	}
	return m, cmd
}

func (m uiModel) updateMap(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searchFocused = true
		m.search.Focus()
		return m, textinput.Blink
	case "f":
		m.state = showFilter
	case "t":
		m.ctrl.ToggleMapType()
	case "d":
		m.ctrl.SetDisplayMode(nextDisplayMode(m.snap.DisplayMode))
	case "p":
		mode := session.ModeRent
		if m.snap.PropertyMode == session.ModeRent {
			mode = session.ModeSell
		}
		return m, command(func() { m.ctrl.ApplyPropertyMode(mode) })
	case "r":
		return m, command(m.ctrl.Reset)
	case "l":
		return m, command(m.ctrl.GetCurrentLocation)
	case "m":
		m.ctrl.LoadMore()
	case "tab":
		if n := len(m.snap.VisibleItems); n > 0 {
			m.cursor = (m.cursor + 1) % n
		}
	case "shift+tab":
		if n := len(m.snap.VisibleItems); n > 0 {
			m.cursor = (m.cursor - 1 + n) % n
		}
	case "enter":
		if m.cursor < len(m.snap.VisibleItems) {
			item := m.snap.VisibleItems[m.cursor]
			m.state = showDetail
			m.ctrl.HandleMarkerPress(item)
		}
	case "up", "down", "left", "right":
		m.ctrl.HandleRegionChange(panRegion(m.snap.Region, key.String()))
	case "+", "=":
		m.ctrl.HandleRegionChange(zoomRegion(m.snap.Region, 0.5))
	case "-":
		m.ctrl.HandleRegionChange(zoomRegion(m.snap.Region, 2))
	}
	return m, nil
}

func (m uiModel) updateSearch(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.searchFocused = false
		m.search.Blur()
		m.search.SetValue("")
		m.ctrl.HandleSearch("")
		return m, nil
	case "up":
		if m.suggestion > 0 {
			m.suggestion--
		}
		return m, nil
	case "down":
		if m.suggestion < len(m.snap.Suggestions)-1 {
			m.suggestion++
		}
		return m, nil
	case "enter":
		if m.suggestion < len(m.snap.Suggestions) {
			picked := m.snap.Suggestions[m.suggestion]
			m.searchFocused = false
			m.search.Blur()
			m.search.SetValue("")
			m.suggestion = 0
			return m, command(func() { m.ctrl.HandleSuggestionPress(picked) })
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(key)
	m.ctrl.HandleSearch(m.search.Value())
	return m, cmd
}

func (m uiModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "esc", "q":
		m.state = showMap
		m.ctrl.CloseDetail()
	case "enter", "v":
		if route, ok := m.ctrl.ViewSelected(); ok {
			m.status = "open " + route
		}
	}
	return m, nil
}

func (m uiModel) View() string {
	if m.state == showFilter {
		return m.filter.View()
	}

	body := m.renderMapBody()
	if m.state == showDetail {
		body = renderDetail(m.snap)
	}
	return docStyle.Render(fmt.Sprintf(
		"%s\n%s\n%s",
		m.renderHeader(),
		body,
		m.renderFooter(),
	))
}

func (m uiModel) renderMapBody() string {
	w := m.width - 6
	h := m.height - 12
	if w < 20 {
		w = 60
	}
	if h < 8 {
		h = 18
	}
	view := renderMap(m.snap, m.cursor, w, h)
	if m.searchFocused {
		view = m.renderSuggestions() + "\n" + view
	}
	return view
}

func nextDisplayMode(mode session.DisplayMode) session.DisplayMode {
	switch mode {
	case session.DisplayBoth:
		return session.DisplayProperties
	case session.DisplayProperties:
		return session.DisplayProjects
	default:
		return session.DisplayBoth
	}
}

func panRegion(r geo.Region, direction string) geo.Region {
	step := 0.25
	switch direction {
	case "up":
		r.Latitude += r.LatitudeDelta * step
	case "down":
		r.Latitude -= r.LatitudeDelta * step
	case "left":
		r.Longitude -= r.LongitudeDelta * step
	case "right":
		r.Longitude += r.LongitudeDelta * step
	}
	return r
}

func zoomRegion(r geo.Region, factor float64) geo.Region {
	const minDelta, maxDelta = 0.0025, 1.6
	r.LatitudeDelta *= factor
	r.LongitudeDelta *= factor
	if r.LatitudeDelta < minDelta {
		r.LatitudeDelta = minDelta
	}
	if r.LongitudeDelta < minDelta {
		r.LongitudeDelta = minDelta
	}
	if r.LatitudeDelta > maxDelta {
		r.LatitudeDelta = maxDelta
	}
	if r.LongitudeDelta > maxDelta {
		r.LongitudeDelta = maxDelta
	}
	return r
}

// Browse runs the map browser until the user quits.
func Browse(ctrl *session.Controller) {
	p := tea.NewProgram(initialModel(ctrl), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
