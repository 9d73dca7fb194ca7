package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// compactWidth is the terminal width below which the header drops labels.
const compactWidth = 100

// renderHeader renders the status bar: counts, activity and the last error.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < compactWidth
	sep := bg.Spaces(2)

	parts := []string{bg.Render("repolist", styles.Logo)}

	if !m.snapshot.Loaded {
		if m.pending > 0 {
			parts = append(parts, bg.Render(m.spinner.View(), styles.AccentText)+bg.Space()+
				bg.Render("Loading repositories...", styles.WarningText.Bold(true)))
		} else {
			parts = append(parts, bg.Render("Not loaded", styles.MutedText))
		}
	} else {
		items := m.snapshot.Items
		label := "Repos:"
		if compact {
			label = "R:"
		}
		parts = append(parts,
			bg.Render(label, styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", items.Len()), styles.Text),
			bg.Render(LikesLabel(items.TotalLikes(), m.locale), styles.SuccessText),
		)
		if m.pending > 0 {
			parts = append(parts, bg.Render(m.spinner.View(), styles.AccentText))
		}
		if !m.snapshot.UpdatedAt.IsZero() {
			parts = append(parts, bg.Render(m.snapshot.UpdatedAt.Format("15:04:05"), styles.MutedText))
		}
	}

	if m.source != "" && !compact {
		parts = append(parts, bg.Render(truncate(m.source, 40), styles.FaintText))
	}

	switch {
	case m.lastErr != nil:
		maxErr := 80
		if compact {
			maxErr = 40
		}
		parts = append(parts,
			bg.Render("ERROR", styles.DangerText)+bg.Space()+
				bg.Render(truncate(m.lastErr.Error(), maxErr), styles.DangerText))
	case m.notice != "":
		parts = append(parts, bg.Render(truncate(m.notice, 60), styles.InfoText))
	}

	return styles.Header.Width(m.width).Render(joinParts(parts, sep))
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	colon := bg.Sep(":")
	bindings := m.keys.ShortHelp()
	segments := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		segments = append(segments, bg.Render(h.Key, styles.AccentText)+colon+bg.Render(h.Desc, styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(joinParts(segments, bg.Spaces(2)))
}

// renderPrompt renders the add-repository prompt in place of the command bar.
func (m Model) renderPrompt() string {
	bg := m.theme.FocusBg
	hints := m.help.ShortHelpView(m.keys.promptHelp())
	line := m.prompt.View() + "  " + hints
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Padding(0, 1).
		Width(m.width).
		Render(line)
}

func joinParts(parts []string, sep string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
