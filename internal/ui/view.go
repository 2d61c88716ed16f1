package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/MazeSolve/internal/emoji"
	"github.com/yildizm/MazeSolve/internal/workflow"
)

const (
	defaultWidth = 72
	maxWidth     = 100
	minWidth     = 30
)

// View renders the screen from the controller's view state
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	v := m.controller.View()
	width := m.contentWidth()

	sections := []string{
		m.styles.Title.Render(m.icon("maze") + " Maze Solver"),
		m.renderDropRegion(v, width),
	}
	if m.picker != nil {
		sections = append(sections, m.renderPicker(width))
	}
	if v.PreviewVisible && v.Preview != nil {
		sections = append(sections, m.renderPreview(v, width))
	}
	if status := m.renderStatus(v); status != "" {
		sections = append(sections, status)
	}
	if v.AnimationVisible || v.DownloadVisible {
		sections = append(sections, m.renderResult(v, width))
	}
	if m.notice != "" {
		style := m.styles.Muted
		if m.noticeErr {
			style = m.styles.Warning
		}
		sections = append(sections, style.Render(m.notice))
	}
	sections = append(sections, m.renderHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return defaultWidth
	}
	return max(minWidth, min(m.width-4, maxWidth))
}

func (m *Model) icon(key string) string {
	return emoji.Lookup(key, m.emoji)
}

// renderDropRegion draws the drop target, highlighted while a drag hovers it
func (m *Model) renderDropRegion(v workflow.View, width int) string {
	style := m.styles.DropIdle
	headline := m.icon("drop") + " Drop a maze image here"
	if v.DropHighlight {
		style = m.styles.DropHover
		headline = m.icon("drop") + " Release to select"
	}

	lines := []string{m.styles.Subheader.Render(headline)}
	hint := "Drag a file onto this window or paste its path"
	if m.dropDir != "" {
		hint += ", or copy it into " + m.dropDir
	}
	lines = append(lines, m.styles.Muted.Render(hint))
	if v.CandidateName != "" {
		lines = append(lines, m.styles.Body.Render(m.icon("image")+" "+v.CandidateName))
	}

	return style.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) renderPicker(width int) string {
	panel := m.picker.Render(m.styles, width)
	if !m.picker.Focused {
		return panel
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.search.View(), panel)
}

func (m *Model) renderPreview(v workflow.View, width int) string {
	img := v.Preview
	lines := []string{
		m.styles.Subheader.Render(fmt.Sprintf("%s Preview  %s", m.icon("image"), img.Name)),
		m.styles.Muted.Render(fmt.Sprintf("%s %s", strings.ToUpper(img.Format), img.Dimensions())),
	}
	if len(img.Thumbnail) > 0 {
		lines = append(lines, strings.Join(img.Thumbnail, "\n"))
	}
	lines = append(lines, m.styles.Button.Render("[ Solve Maze ]")+" "+m.styles.Muted.Render("ctrl+s"))

	return m.styles.Panel.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) renderStatus(v workflow.View) string {
	if v.Status.Text == "" && !v.Processing {
		return ""
	}

	var line string
	switch v.Status.Kind {
	case workflow.StatusProcessing:
		line = m.styles.Processing.Render(m.spinner.View() + " " + v.Status.Text)
	case workflow.StatusSuccess:
		line = m.styles.Success.Render(m.icon("success") + " " + v.Status.Text)
	case workflow.StatusError:
		line = m.styles.Error.Render(m.icon("error") + " " + v.Status.Text)
	default:
		line = m.styles.Info.Render(v.Status.Text)
	}

	lines := []string{line}
	for _, stat := range v.Status.Stats {
		lines = append(lines, m.styles.Body.Render("  "+stat))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderResult(v workflow.View, width int) string {
	var lines []string
	if v.AnimationVisible {
		lines = append(lines,
			m.styles.Subheader.Render(m.icon("path")+" Solution animation"),
			m.styles.Link.Render(m.resolve(v.AnimationRef)),
		)
	}
	if v.DownloadVisible {
		lines = append(lines, m.styles.Button.Render("[ Download Solution ]")+" "+m.styles.Muted.Render("ctrl+d"))
	}
	return m.styles.Panel.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) resolve(ref string) string {
	if m.downloader == nil {
		return ref
	}
	return m.downloader.Resolve(ref)
}

func (m *Model) renderHelp() string {
	keys := []string{"ctrl+s solve", "ctrl+d download", "ctrl+c quit"}
	if m.picker != nil {
		if m.picker.Focused {
			keys = []string{"↑↓ move", "enter select", "esc back", "ctrl+r rescan", "ctrl+c quit"}
		} else {
			keys = append([]string{"tab files"}, keys...)
		}
	}
	return m.styles.Muted.Render(strings.Join(keys, " • "))
}
