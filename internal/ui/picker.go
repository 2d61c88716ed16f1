package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/lipgloss"
)

// minSimilarity is the fuzzy match cutoff for names that do not contain the query
const minSimilarity = 0.4

// Picker is a filterable list of files in one directory
type Picker struct {
	Dir      string
	Items    []string
	Selected int
	Focused  bool
	Height   int

	query    string
	filtered []int
}

// NewPicker lists the regular, non-hidden files in dir
func NewPicker(dir string, height int) (*Picker, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	p := &Picker{Dir: dir, Height: height}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		p.Items = append(p.Items, entry.Name())
	}
	sort.Strings(p.Items)
	p.updateFilter()

	return p, nil
}

// SetItems replaces the listed names
func (p *Picker) SetItems(items []string) {
	p.Items = items
	p.Selected = 0
	p.updateFilter()
}

// SetSearch sets the query and re-ranks the items
func (p *Picker) SetSearch(query string) {
	p.query = strings.TrimSpace(query)
	p.Selected = 0
	p.updateFilter()
}

// Visible returns the ranked names matching the query
func (p *Picker) Visible() []string {
	names := make([]string, 0, len(p.filtered))
	for _, i := range p.filtered {
		names = append(names, p.Items[i])
	}
	return names
}

// SelectedPath returns the path of the highlighted item
func (p *Picker) SelectedPath() (string, bool) {
	if p.Selected >= len(p.filtered) {
		return "", false
	}
	return filepath.Join(p.Dir, p.Items[p.filtered[p.Selected]]), true
}

// MoveUp moves selection up
func (p *Picker) MoveUp() {
	if p.Selected > 0 {
		p.Selected--
	}
}

// MoveDown moves selection down
func (p *Picker) MoveDown() {
	if p.Selected < len(p.filtered)-1 {
		p.Selected++
	}
}

// updateFilter ranks items against the query. Substring matches come first,
// ordered by match position; the rest are kept only when their edit distance
// is close enough, most similar first.
func (p *Picker) updateFilter() {
	p.filtered = p.filtered[:0]
	if p.query == "" {
		for i := range p.Items {
			p.filtered = append(p.filtered, i)
		}
		return
	}

	type ranked struct {
		index int
		score float64
	}
	query := strings.ToLower(p.query)
	var matches []ranked

	for i, item := range p.Items {
		name := strings.ToLower(item)
		if pos := strings.Index(name, query); pos >= 0 {
			matches = append(matches, ranked{index: i, score: 2 - float64(pos)/float64(len(name)+1)})
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if sim := similarity(stem, query); sim >= minSimilarity {
			matches = append(matches, ranked{index: i, score: sim})
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].score > matches[b].score
	})
	for _, m := range matches {
		p.filtered = append(p.filtered, m.index)
	}
}

// similarity is one minus the normalised edit distance
func similarity(a, b string) float64 {
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// Render renders the list
func (p *Picker) Render(styles *Styles, width int) string {
	var content []string

	title := styles.Subheader.Render("Files in " + p.Dir)
	content = append(content, title)
	if p.query != "" {
		content = append(content, styles.Muted.Render(fmt.Sprintf("Search: %s (%d results)", p.query, len(p.filtered))))
	}

	maxVisible := p.Height
	if maxVisible < 1 {
		maxVisible = 1
	}

	startIndex := 0
	if p.Selected >= maxVisible {
		startIndex = p.Selected - maxVisible + 1
	}
	endIndex := startIndex + maxVisible
	if endIndex > len(p.filtered) {
		endIndex = len(p.filtered)
	}

	if len(p.filtered) == 0 {
		content = append(content, styles.Muted.Render("No matching files"))
	}
	for i := startIndex; i < endIndex; i++ {
		name := p.Items[p.filtered[i]]
		if i == p.Selected && p.Focused {
			content = append(content, styles.ListSelected.Render("> "+name))
		} else {
			content = append(content, styles.ListItem.Render("  "+name))
		}
	}

	if len(p.filtered) > maxVisible {
		content = append(content, styles.Muted.Render(fmt.Sprintf("(%d-%d of %d)", startIndex+1, endIndex, len(p.filtered))))
	}

	panel := styles.Panel
	if p.Focused {
		panel = styles.Focused
	}
	return panel.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}
