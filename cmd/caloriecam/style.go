package caloriecam

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/saadjs/caloriecam/internal/i18n"
	"github.com/saadjs/caloriecam/internal/model"
	"github.com/saadjs/caloriecam/internal/service"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("35"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dangerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	overBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	cellStyle    = lipgloss.NewStyle().Width(5).Align(lipgloss.Right)
)

const barWidth = 30

func title(s string) string {
	return titleStyle.Render(s)
}

func statusDot(status string) string {
	switch status {
	case service.StatusSuccess:
		return successStyle.Render("●")
	case service.StatusWarning:
		return warningStyle.Render("●")
	case service.StatusDanger:
		return dangerStyle.Render("●")
	default:
		return mutedStyle.Render("·")
	}
}

func ratingBadge(lang model.Language, r model.HealthRating) string {
	label := i18n.RatingLabel(lang, r)
	switch r {
	case model.RatingHealthy:
		return successStyle.Render(label)
	case model.RatingModerate:
		return warningStyle.Render(label)
	case model.RatingUnhealthy:
		return dangerStyle.Render(label)
	default:
		return label
	}
}

// bar renders value against top as a fixed-width block bar. Values above
// goal are drawn in the warning color.
func bar(value, top float64, goal int) string {
	if top <= 0 || value <= 0 {
		return ""
	}
	n := int(math.Round(value / top * barWidth))
	if n < 1 {
		n = 1
	}
	if n > barWidth {
		n = barWidth
	}
	s := strings.Repeat("█", n)
	if goal > 0 && value > float64(goal) {
		return overBarStyle.Render(s)
	}
	return barStyle.Render(s)
}

func calendarGrid(view service.CalendarView) string {
	var b strings.Builder
	header := []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}
	for _, h := range header {
		b.WriteString(cellStyle.Render(mutedStyle.Render(h)))
	}
	b.WriteString("\n")
	col := 0
	for i := 0; i < view.LeadingBlank; i++ {
		b.WriteString(cellStyle.Render(""))
		col++
	}
	for _, d := range view.Days {
		b.WriteString(cellStyle.Render(fmt.Sprintf("%d%s", d.Day, statusDot(d.Status))))
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}
	return b.String()
}
