package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/repolist/internal/api"
)

const (
	titleColumnWidth = 32
	urlColumnWidth   = 40
	maxChips         = 4
)

// renderList renders the repository rows, scrolled so the selection is visible.
func (m Model) renderList(width, height int) string {
	styles := m.theme.Styles()
	items := m.snapshot.Items

	if items.Len() == 0 {
		msg := "No repositories yet. Press a to add one."
		if !m.snapshot.Loaded {
			msg = "Waiting for the first load..."
		}
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render(msg))
	}

	start, end := visibleWindow(items.Len(), m.selectedRow, height)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		repo := items.At(i)
		selected := i == m.selectedRow
		bgColor := m.theme.SurfaceAlt
		if selected {
			bgColor = m.theme.SelectionBg
		}
		lines = append(lines, NewBgStyle(bgColor).FillLine(m.formatRow(repo, width, bgColor, selected), width))
	}
	return strings.Join(lines, "\n")
}

// visibleWindow returns the [start, end) row range that fits height and
// contains selected.
func visibleWindow(total, selected, height int) (int, int) {
	if height <= 0 || total <= height {
		return 0, total
	}
	start := 0
	if selected >= height {
		start = selected - height + 1
	}
	return start, start + height
}

// formatRow formats a repository row.
// Format: "> Title  url  [tech] [tech]  3 likes"
func (m Model) formatRow(repo api.Repository, width int, bgColor string, selected bool) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	textStyle := styles.Text
	mutedStyle := styles.MutedText
	if selected {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		textStyle = sel.Bold(true)
		mutedStyle = sel
	}

	marker := "  "
	if selected {
		marker = "> "
	}

	compact := width < compactWidth
	titleWidth := titleColumnWidth
	if compact {
		titleWidth = max(width/3, 12)
	}

	title := padRight(truncate(repo.Title, titleWidth), titleWidth)
	parts := []string{bg.Render(marker+title, textStyle)}

	if !compact {
		url := padRight(truncate(repo.URL, urlColumnWidth), urlColumnWidth)
		parts = append(parts, bg.Render(url, mutedStyle))
	}

	if chips := m.techChips(repo.Techs, bg, styles); chips != "" {
		parts = append(parts, chips)
	}

	parts = append(parts, bg.Render(LikesLabel(repo.Likes, m.locale), styles.SuccessText))
	return bg.Join(parts, "  ")
}

func (m Model) techChips(techs []string, bg BgStyle, styles Styles) string {
	if len(techs) == 0 {
		return ""
	}
	shown := techs
	if len(shown) > maxChips {
		shown = shown[:maxChips]
	}
	chips := make([]string, 0, len(shown)+1)
	for _, tech := range shown {
		if strings.TrimSpace(tech) == "" {
			continue
		}
		chips = append(chips, styles.ChipStyle(tech).Render(truncate(tech, 14)))
	}
	if extra := len(techs) - len(shown); extra > 0 {
		chips = append(chips, bg.Render("+"+strconv.Itoa(extra), styles.FaintText))
	}
	return bg.Join(chips, " ")
}
