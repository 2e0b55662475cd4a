package tui

import (
	"fmt"
	"strings"

	"github.com/Ebi50/training28-sub000/internal/load"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

// PlanHeader is the one-line summary shown above a week.
func PlanHeader(p models.WeeklyPlan) string {
	parts := []string{
		headerStyle.Render(fmt.Sprintf("%s (from %s)", p.ID, p.WeekStartDate)),
		string(p.Phase),
		fmt.Sprintf("rev %d", p.Revision),
		fmt.Sprintf("%.1fh", p.TotalHours),
		fmt.Sprintf("%d TSS", p.TotalTSS),
		fmt.Sprintf("%d HIT", p.HitSessions),
		fmt.Sprintf("LIT %.0f%%", p.LitRatio*100),
	}
	header := strings.Join(parts, mutedStyle.Render(" · "))

	var notes []string
	c := p.Constraints
	if c.RecoveryWeek {
		notes = append(notes, "recovery week")
	}
	if c.CampActive != "" {
		notes = append(notes, "camp: "+c.CampActive)
	}
	if c.GoalApproaching != "" {
		notes = append(notes, "taper for "+c.GoalApproaching)
	}
	if len(notes) > 0 {
		header += "\n" + warningStyle.Render(strings.Join(notes, ", "))
	}
	return header
}

// SessionLine renders one session on a single line.
func SessionLine(s models.TrainingSession) string {
	date, err := utils.ParseDate(s.Date)
	day := s.Date
	if err == nil {
		day = date.Weekday().String()[:3] + " " + s.Date[5:]
	}
	window := "--:--"
	if s.TimeSlot != nil {
		window = s.TimeSlot.StartTime + "-" + s.TimeSlot.EndTime
	}
	where := "outdoor"
	if s.Indoor {
		where = "indoor"
	}
	return fmt.Sprintf("%s  %s  %s %3d min %3d TSS  %s",
		mutedStyle.Render(day),
		mutedStyle.Render(window),
		sessionStyle(s.Type).Render(fmt.Sprintf("%-3s", s.Type)),
		s.DurationMin,
		s.TargetTSS,
		mutedStyle.Render(where),
	)
}

// RenderPlan renders a whole week for non-interactive output.
func RenderPlan(p models.WeeklyPlan) string {
	var b strings.Builder
	b.WriteString(PlanHeader(p))
	b.WriteString("\n\n")
	if len(p.Sessions) == 0 {
		b.WriteString(mutedStyle.Render("  No sessions planned"))
		b.WriteString("\n")
	}
	for _, s := range p.Sessions {
		b.WriteString("  " + SessionLine(s) + "\n")
		if s.Description != "" {
			b.WriteString("      " + s.Description + "\n")
		}
		if s.Notes != "" {
			b.WriteString("      " + warningStyle.Render(s.Notes) + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(RenderQuality(p.Quality))
	return b.String()
}

// RenderQuality lists the score, factors and warnings of a plan.
func RenderQuality(q models.PlanQuality) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Quality %.2f", q.Score)))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  (slots %.2f, distribution %.2f, recovery %.2f)",
		q.Factors.TimeSlotMatch, q.Factors.TrainingDistribution, q.Factors.RecoveryAdequacy)))
	b.WriteString("\n")
	if a := q.Adjustments; a.SplitSessions > 0 || a.TssReduced > 0 {
		b.WriteString(fmt.Sprintf("  %d split, %d reduced, %d TSS lost\n", a.SplitSessions, a.TssReduced, a.TotalTssLost))
	}
	for _, w := range q.Warnings {
		b.WriteString("  " + severityStyle(w.Severity).Render(fmt.Sprintf("[%s] %s", w.Severity, w.Message)) + "\n")
	}
	return b.String()
}

// RenderLoad lists CTL, ATL and TSB per day with the latest form reading.
func RenderLoad(history []models.DailyLoad) string {
	if len(history) == 0 {
		return mutedStyle.Render("No training load recorded yet")
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-10s %6s %6s %6s %7s", "Date", "TSS", "CTL", "ATL", "TSB")))
	b.WriteString("\n")
	for _, d := range history {
		tsb := fmt.Sprintf("%7.1f", d.TSB())
		if d.TSB() < 0 {
			tsb = warningStyle.Render(tsb)
		}
		b.WriteString(fmt.Sprintf("%-10s %6.0f %6.1f %6.1f %s\n", d.Date, d.TSS, d.CTL, d.ATL, tsb))
	}
	reading := load.InterpretTSB(load.Current(history).TSB())
	b.WriteString("\n" + headerStyle.Render(string(reading.Form)) + "  " + reading.Message + "\n")
	return b.String()
}
