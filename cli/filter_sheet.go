package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"landsquire.in/estatemap/session"
)

type filterState int

const (
	showFilterMenu filterState = iota
	filterInput
	filterCategory
	filterMode
	filterApply
	filterReset
	filterExit
)

type filterField int

const (
	fieldSubCategory filterField = iota
	fieldMinPrice
	fieldMaxPrice
	fieldSqftFrom
	fieldSqftTo
)

type filterItem struct {
	title, desc string
	state       filterState
	field       filterField
}

func (i filterItem) Title() string       { return i.title }
func (i filterItem) Description() string { return i.desc }
func (i filterItem) FilterValue() string { return i.title }

type filterModel struct {
	list         list.Model
	state        filterState
	textInput    textinput.Model
	selectedItem filterItem
	prompt       string
}

func getFilterModel() filterModel {
	items := []list.Item{
		filterItem{
			title: "Listing Type",
			desc:  "Toggle between properties for sale and for rent; refetches immediately",
			state: filterMode,
		},
		filterItem{
			title: "Category",
			desc:  "Cycle through the listing categories reported by the server",
			state: filterCategory,
		},
		filterItem{
			title: "Subcategory",
			desc:  "Narrow the selected category, e.g. flat or plot",
			state: filterInput,
			field: fieldSubCategory,
		},
		filterItem{
			title: "Minimum Price",
			desc:  "Lowest asking price to include, in rupees",
			state: filterInput,
			field: fieldMinPrice,
		},
		filterItem{
			title: "Maximum Price",
			desc:  "Highest asking price to include, in rupees",
			state: filterInput,
			field: fieldMaxPrice,
		},
		filterItem{
			title: "Area From",
			desc:  "Smallest area to include, in square feet",
			state: filterInput,
			field: fieldSqftFrom,
		},
		filterItem{
			title: "Area To",
			desc:  "Largest area to include, in square feet",
			state: filterInput,
			field: fieldSqftTo,
		},
		filterItem{
			title: "Apply Filters",
			desc:  "Refetch listings for the selected city with these filters",
			state: filterApply,
		},
		filterItem{
			title: "Reset All",
			desc:  "Clear every filter and return to the default city",
			state: filterReset,
		},
		filterItem{
			title: "Back to Map",
			desc:  "Close the filter sheet without refetching",
			state: filterExit,
		},
	}

	listDelegate := list.NewDefaultDelegate()
	m := filterModel{list: list.New(items, listDelegate, 0, 0), textInput: textinput.New()}
	m.list.Title = "Listing Filters"
	return m
}

func (m filterModel) Update(msg tea.Msg, mm *uiModel) (filterModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter && m.state == showFilterMenu && m.list.FilterState() != list.Filtering {
			it := m.list.SelectedItem().(filterItem)
			m.selectedItem = it
			m.state = it.state
			switch m.state {
			case filterExit:
				m.state = showFilterMenu
				mm.state = showMap
			case filterApply:
				m.state = showFilterMenu
				mm.state = showMap
				return m, command(mm.ctrl.Apply)
			case filterReset:
				m.state = showFilterMenu
				mm.state = showMap
				return m, command(mm.ctrl.Reset)
			case filterMode:
				m.state = showFilterMenu
				mode := session.ModeRent
				if mm.snap.PropertyMode == session.ModeRent {
					mode = session.ModeSell
				}
				return m, command(func() { mm.ctrl.ApplyPropertyMode(mode) })
			case filterCategory:
				m.state = showFilterMenu
				mm.ctrl.SetCategory(nextCategory(mm.snap))
			case filterInput:
				m.prompt = m.selectedItem.Title()
				m.textInput.SetValue(currentFieldValue(mm.snap, it.field))
				m.textInput.Focus()
				return m, textinput.Blink
			}
			return m, nil
		}
		if m.state == filterInput {
			switch msg.Type {
			case tea.KeyEnter:
				m.state = showFilterMenu
				m.textInput.Blur()
				applyFieldValue(mm, m.selectedItem.field, m.textInput.Value())
				return m, nil
			case tea.KeyEsc:
				m.state = showFilterMenu
				m.textInput.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.textInput, cmd = m.textInput.Update(msg)
			return m, cmd
		}
		if msg.Type == tea.KeyEsc && m.state == showFilterMenu {
			mm.state = showMap
			return m, nil
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m filterModel) View() string {
	switch m.state {
	case filterInput:
		return docStyle.Render(fmt.Sprintf(
			"%s\n\n%s\n\n%s",
			m.prompt,
			m.textInput.View(),
			"(enter to set, esc to cancel)",
		) + "\n")
	default:
		return docStyle.Render(m.list.View())
	}
}

// nextCategory returns the category id after the selected one, cycling
// through "" (no filter) and every server-reported category.
func nextCategory(snap session.Snapshot) string {
	if len(snap.Categories) == 0 {
		return ""
	}
	if snap.SelectedCategory == "" {
		return strconv.FormatInt(snap.Categories[0].ID, 10)
	}
	for i, c := range snap.Categories {
		if strconv.FormatInt(c.ID, 10) == snap.SelectedCategory {
			if i+1 < len(snap.Categories) {
				return strconv.FormatInt(snap.Categories[i+1].ID, 10)
			}
			return ""
		}
	}
	return ""
}

func currentFieldValue(snap session.Snapshot, field filterField) string {
	switch field {
	case fieldSubCategory:
		return snap.SelectedSubCategory
	case fieldMinPrice:
		return snap.MinPrice
	case fieldMaxPrice:
		return snap.MaxPrice
	case fieldSqftFrom:
		return snap.SqftFrom
	default:
		return snap.SqftTo
	}
}

func applyFieldValue(mm *uiModel, field filterField, value string) {
	switch field {
	case fieldSubCategory:
		mm.ctrl.SetSubCategory(value)
	case fieldMinPrice:
		mm.ctrl.SetMinPrice(value)
	case fieldMaxPrice:
		mm.ctrl.SetMaxPrice(value)
	case fieldSqftFrom:
		mm.ctrl.SetSqftFrom(value)
	case fieldSqftTo:
		mm.ctrl.SetSqftTo(value)
	}
}
