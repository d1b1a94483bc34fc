package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/salonadmin/pkg/domain"
)

// Shimmer animation for the header wordmark.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// The wordmark sits in the default brand color. A highlight crosses it
// once per sweep, then rests off the word for sweepRest steps.
const (
	logoText  = "SALONPRO"
	sweepRest = 14
)

var (
	logoBase  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(domain.DefaultBrandColor))
	logoHalo  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F2C27A"))
	logoGlint = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFF4DC"))
)

// renderShimmerLogo renders the wordmark with the highlight at its position
// for frame.
func renderShimmerLogo(frame int) string {
	pos := sweepPos(frame)
	var b strings.Builder
	for i, r := range logoText {
		style := logoBase
		switch d := i - pos; {
		case d == 0:
			style = logoGlint
		case d == -1 || d == 1:
			style = logoHalo
		}
		b.WriteString(style.Render(string(r)))
	}
	return b.String() + " " + metaStyle.Render("admin")
}

// sweepPos is the highlighted letter index for frame. It advances every
// other tick and runs past both ends so the halo enters and leaves cleanly.
func sweepPos(frame int) int {
	period := len(logoText) + 2 + sweepRest
	step := (frame / 2) % period
	if step < 0 {
		step += period
	}
	return step - 1
}

var (
	// Base styles, slate palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1f5f9")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cbd5e1"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748b"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true)

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748b"))

	// Brand accent
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(domain.DefaultBrandColor))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fb7185"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2dd4bf"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#64748b")).
				Bold(true)

	// Selected row background
	selectedRowBg = lipgloss.NewStyle().Background(lipgloss.Color("#1e293b"))

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(domain.DefaultBrandColor)).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#334155"))

	premiumBadgeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#34d399")).Bold(true)
	basicBadgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#cbd5e1")).Bold(true)
	activeBadgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2dd4bf")).Bold(true)
	disabledBadgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fb7185")).Bold(true)
)

// planBadge renders "[Premium]" or "[Basic]". Unknown plans show as Basic.
func planBadge(p domain.PlanType) string {
	if p == domain.PlanPremium {
		return premiumBadgeStyle.Render("[" + p.Label() + "]")
	}
	return basicBadgeStyle.Render("[" + p.Label() + "]")
}

// statusBadge renders "[Active]" or "[Disabled]".
func statusBadge(active bool) string {
	if active {
		return activeBadgeStyle.Render("[Active]")
	}
	return disabledBadgeStyle.Render("[Disabled]")
}

// brandSwatch renders a color block in the salon's brand color, falling back
// to the default brand color for empty or malformed values.
func brandSwatch(hex string) string {
	if !validHex(hex) {
		hex = domain.DefaultBrandColor
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■ " + hex)
}

func validHex(hex string) bool {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 || len(hex) != 7 {
		return false
	}
	var r, g, b int
	n, err := fmt.Sscanf(h, "%02x%02x%02x", &r, &g, &b)
	return err == nil && n == 3
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpBar joins help entries given as key, label pairs.
func helpBar(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, helpEntry(pairs[i], pairs[i+1]))
	}
	return " " + strings.Join(parts, "  ")
}
