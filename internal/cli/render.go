package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"garage/internal/core"
	"garage/internal/prefs"
	"garage/internal/records"
	"garage/internal/services"
)

// palette maps recency tags and column roles to colours for one theme. A nil
// colour prints plain text.
type palette struct {
	style   table.Style
	recency map[records.RecencyTag]*color.Color
	roles   map[records.ColumnRole]*color.Color
	overdue *color.Color
}

func paletteFor(theme prefs.Theme) palette {
	switch theme {
	case prefs.ThemeDarkMode:
		return palette{
			style: table.StyleRounded,
			recency: map[records.RecencyTag]*color.Color{
				records.New:    color.New(color.FgHiGreen),
				records.Recent: color.New(color.FgHiYellow),
				records.Old:    color.New(color.FgHiRed),
			},
			roles: map[records.ColumnRole]*color.Color{
				records.RoleDate:   color.New(color.FgHiBlue, color.Bold),
				records.RoleCost:   color.New(color.FgHiCyan, color.Bold),
				records.RoleStatus: color.New(color.FgHiMagenta, color.Bold),
			},
			overdue: color.New(color.FgHiRed, color.Bold),
		}
	case prefs.ThemeForest:
		return palette{
			style: table.StyleDouble,
			recency: map[records.RecencyTag]*color.Color{
				records.New:    color.New(color.FgGreen, color.Bold),
				records.Recent: color.New(color.FgGreen),
				records.Old:    color.New(color.FgYellow),
			},
			roles: map[records.ColumnRole]*color.Color{
				records.RoleDate:   color.New(color.FgGreen, color.Underline),
				records.RoleCost:   color.New(color.FgYellow, color.Underline),
				records.RoleStatus: color.New(color.FgCyan, color.Underline),
			},
			overdue: color.New(color.FgYellow, color.Bold),
		}
	case prefs.ThemeProfessional:
		return palette{
			style: table.StyleBold,
			recency: map[records.RecencyTag]*color.Color{
				records.Old: color.New(color.Faint),
			},
			roles: map[records.ColumnRole]*color.Color{
				records.RoleDate:   color.New(color.Bold),
				records.RoleCost:   color.New(color.Bold),
				records.RoleStatus: color.New(color.Bold),
			},
			overdue: color.New(color.Bold),
		}
	default:
		return palette{
			style: table.StyleLight,
			recency: map[records.RecencyTag]*color.Color{
				records.New:    color.New(color.FgGreen),
				records.Recent: color.New(color.FgYellow),
				records.Old:    color.New(color.FgRed),
			},
			roles: map[records.ColumnRole]*color.Color{
				records.RoleDate:   color.New(color.FgBlue),
				records.RoleCost:   color.New(color.FgCyan),
				records.RoleStatus: color.New(color.FgMagenta),
			},
			overdue: color.New(color.FgRed, color.Bold),
		}
	}
}

func paint(c *color.Color, s string) string {
	if c == nil || s == "" {
		return s
	}
	return c.Sprint(s)
}

func newTable(w io.Writer, p palette) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(p.style)
	return t
}

// renderSheet prints rows under role-coloured headers, each row in its
// recency colour, followed by the totals line.
func renderSheet(w io.Writer, headers []string, cls records.Classification, rows []services.ViewRow, sum records.Summary, p palette) {
	if len(headers) == 0 {
		_, _ = fmt.Fprintln(w, "(empty sheet)")
		return
	}

	t := newTable(w, p)
	head := make(table.Row, 0, len(headers)+1)
	head = append(head, "#")
	for i, h := range headers {
		head = append(head, paint(p.roles[cls.Role(i)], h))
	}
	t.AppendHeader(head)

	for _, r := range rows {
		c := p.recency[r.Recency]
		row := make(table.Row, 0, len(r.Cells)+1)
		row = append(row, strconv.Itoa(r.Index+1))
		for _, cell := range r.Cells {
			row = append(row, paint(c, cell.String()))
		}
		t.AppendRow(row)
	}
	t.Render()

	_, _ = fmt.Fprintln(w, summaryLine(sum))
}

func summaryLine(sum records.Summary) string {
	rows := fmt.Sprintf("%d of %d rows", sum.ShownRows, sum.TotalRows)
	if !sum.HasCost {
		return rows
	}
	return fmt.Sprintf("Total: %s | Filtered: %s | %s", sum.Total, sum.Filtered, rows)
}

func renderColumns(w io.Writer, headers []string, cls records.Classification, p palette) {
	t := newTable(w, p)
	t.AppendHeader(table.Row{"#", "Header", "Role"})
	for i, h := range headers {
		role := cls.Role(i)
		t.AppendRow(table.Row{i + 1, h, paint(p.roles[role], role.String())})
	}
	t.Render()
}

func renderVehicles(w io.Writer, vehicles []core.Vehicle, p palette) {
	if len(vehicles) == 0 {
		_, _ = fmt.Fprintln(w, "(no vehicles)")
		return
	}
	t := newTable(w, p)
	t.AppendHeader(table.Row{"ID", "Vehicle", "VIN"})
	for _, v := range vehicles {
		t.AppendRow(table.Row{v.ID, v.Label(), v.VIN})
	}
	t.Render()
}

func renderUpcoming(w io.Writer, vehicle core.Vehicle, ups []core.UpcomingService, now time.Time, p palette) {
	_, _ = fmt.Fprintf(w, "%s (#%d)\n", vehicle.Label(), vehicle.ID)
	t := newTable(w, p)
	t.AppendHeader(table.Row{"Service", "Interval", "Last Service", "Last Mileage", "Next Due", "Next Mileage", "Status"})
	for _, u := range ups {
		status := "no history"
		if u.HasHistory() {
			status = "ok"
			if u.Overdue(now) {
				status = paint(p.overdue, "overdue")
			}
		}
		t.AppendRow(table.Row{
			u.TypeName,
			interval(u.IntervalMonths, u.IntervalDistance),
			u.LastServiceDate.String(),
			distance(u.LastDistance),
			u.NextDueDate.String(),
			distance(u.NextDueDistance),
			status,
		})
	}
	t.Render()
}

func interval(months, dist int) string {
	return fmt.Sprintf("%d mo / %s mi", months, humanize.Comma(int64(dist)))
}

func distance(d *int64) string {
	if d == nil {
		return ""
	}
	return humanize.Comma(*d)
}
