package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shiftclock/internal/app"
	"github.com/alexanderramin/shiftclock/internal/domain"
)

// FormatCallReport renders one row per agent with a column per outcome.
func FormatCallReport(resp *app.CallReportResponse) string {
	var b strings.Builder

	period := resp.From.String()
	if resp.To != resp.From {
		period += " to " + resp.To.String()
	}
	b.WriteString(Dim(period) + "\n\n")

	if len(resp.Agents) == 0 {
		b.WriteString(Dim("No agents to report.") + "\n")
		return RenderBox("Calls", b.String())
	}

	headers := []string{"AGENT", "TOTAL"}
	for _, o := range domain.AllCallOutcomes {
		headers = append(headers, strings.ToUpper(o.Label()))
	}
	headers = append(headers, "CONVERSION")

	numeric := make([]int, 0, len(headers)-1)
	for i := 1; i < len(headers); i++ {
		numeric = append(numeric, i)
	}

	rows := make([][]string, 0, len(resp.Agents))
	for _, a := range resp.Agents {
		row := []string{Bold(a.AgentName), fmt.Sprintf("%d", a.Total)}
		for _, o := range domain.AllCallOutcomes {
			n := a.ByOutcome[o]
			cell := fmt.Sprintf("%d", n)
			if n == 0 {
				cell = Dim(cell)
			}
			row = append(row, cell)
		}
		row = append(row, FormatPct(a.ConversionPct))
		rows = append(rows, row)
	}
	b.WriteString(RenderTable(headers, rows, numeric...))

	b.WriteString(fmt.Sprintf("\n%s calls, %s converted (%s)\n",
		Bold(fmt.Sprintf("%d", resp.Total)),
		StyleGreen.Render(fmt.Sprintf("%d", resp.Converted)),
		strings.TrimSpace(FormatPct(resp.ConversionPct)),
	))
	return RenderBox("Calls", b.String())
}

// FormatCallList renders logged calls, newest last.
func FormatCallList(calls []*domain.CallFeedback, names map[string]string, loc *time.Location) string {
	if len(calls) == 0 {
		return Dim("No calls found.") + "\n"
	}
	headers := []string{"ID", "AGENT", "CALLED", "CONTACT", "OUTCOME", "NOTE"}
	rows := make([][]string, 0, len(calls))
	for _, c := range calls {
		rows = append(rows, []string{
			TruncID(c.ID),
			agentName(names, c.AgentID),
			Stamp(c.CalledAt, loc),
			c.Contact,
			OutcomeBadge(c.Outcome),
			Dim(Preview(c.Note, 40)),
		})
	}
	return RenderBox("Calls", RenderTable(headers, rows))
}

func agentName(names map[string]string, id string) string {
	if n, ok := names[id]; ok {
		return n
	}
	return TruncID(id)
}
