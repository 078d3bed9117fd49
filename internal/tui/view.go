package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	_, _, mapWidth, mapHeight := m.mapRect()
	contentWidth := max(10, m.width)
	contentHeight := mapHeight

	// Header
	header := titleStyle.Render(" geoedit ─ terminal shape editor ")
	header = lipgloss.NewStyle().Width(contentWidth).Padding(0).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.showAttrs:
		// infer a reasonable width from columns
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, contentWidth-6)
		}
		maxW := min(mapWidth, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(mapHeight-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, attrsBox)
	case m.pasteMode:
		m.ta.SetWidth(mapWidth)
		m.ta.SetHeight(min(mapHeight, 12))
		mapView = lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).Render(m.ta.View())
	default:
		// plain map canvas: no border, no background highlight
		mapView = lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).Render(m.renderMap(mapWidth, mapHeight))
	}

	// Popups replace the map column while shown
	popup := m.inspectPopup
	if m.help.ShowAll {
		popup = m.help.FullHelpView(m.keys.FullHelp())
	}
	if popup != "" && !m.showAttrs && !m.pasteMode {
		box := boxStyle.MaxWidth(mapWidth).Render(popup)
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, box)
	}

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}
	body = lipgloss.NewStyle().Height(contentHeight).Render(body)

	// Footer: tool state and status, then the key help
	state := toolStyle.Render(" " + m.ed.state() + " ")
	status := dimStyle.Render(fmt.Sprintf(" %s  shapes=%d ", m.status, m.ed.store.Len()))
	coords := ""
	if m.hoverHasGeo {
		coords = dimStyle.Render(fmt.Sprintf("  x=%.5f y=%.5f  ", m.hoverLon, m.hoverLat))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, state, status)
	spacerW := max(0, contentWidth-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	statusLine := lipgloss.NewStyle().Width(contentWidth).MaxHeight(1).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))
	helpLine := lipgloss.NewStyle().Width(contentWidth).MaxHeight(1).Render(" " + m.help.ShortHelpView(m.keys.ShortHelp()))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, statusLine, helpLine)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}
