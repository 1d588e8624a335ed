// Package views renders the record viewer's HTML as templ components.
package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Banner is one diagnostic rendered above the table.
type Banner struct {
	Message string
	Action  string
	Code    string
	Warning bool
}

// RecordsPage carries everything the records page renders.
type RecordsPage struct {
	Title      string
	Banners    []Banner
	Columns    []string
	Rows       [][]string
	ExportPath string
}

const pageStyle = `body{font-family:sans-serif;margin:2rem;color:#1f2937}
h1{font-size:1.4rem}
table{border-collapse:collapse;width:100%;font-size:.9rem}
th,td{border:1px solid #d1d5db;padding:.4rem .6rem;text-align:left}
th{background:#f3f4f6}
tr:nth-child(even){background:#fafafa}
.banner{padding:.6rem .8rem;border-radius:4px;margin-bottom:.5rem}
.banner.warning{background:#fef3c7;border:1px solid #f59e0b}
.banner.error{background:#fee2e2;border:1px solid #ef4444}
.banner .code{color:#6b7280;font-size:.8rem}
.empty{color:#6b7280;padding:1rem 0}
.export{display:inline-block;margin:.8rem 0;padding:.4rem .8rem;border:1px solid #2563eb;border-radius:4px;color:#2563eb;text-decoration:none}`

// Records renders the match-record table page: diagnostic banners, the
// export link, and the sorted rows (or an empty state).
func Records(p RecordsPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			"<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"><title>%s</title><style>%s</style></head><body>",
			templ.EscapeString(p.Title), pageStyle); err != nil {
			return err
		}

		fmt.Fprintf(w, "<h1>%s</h1>", templ.EscapeString(p.Title))

		for _, b := range p.Banners {
			if err := banner(b).Render(ctx, w); err != nil {
				return err
			}
		}

		if len(p.Rows) == 0 {
			fmt.Fprint(w, `<p class="empty">No match records yet.</p>`)
		} else {
			fmt.Fprintf(w, `<a class="export" href="%s">Download CSV</a>`, templ.EscapeString(p.ExportPath))
			if err := table(p.Columns, p.Rows).Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := fmt.Fprint(w, "</body></html>")
		return err
	})
}

// banner renders one diagnostic alert.
func banner(b Banner) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		class := "error"
		if b.Warning {
			class = "warning"
		}
		_, err := fmt.Fprintf(w,
			`<div class="banner %s">%s %s <span class="code">(Code: %s)</span></div>`,
			class,
			templ.EscapeString(b.Message),
			templ.EscapeString(b.Action),
			templ.EscapeString(b.Code),
		)
		return err
	})
}

// table renders the record grid.
func table(columns []string, rows [][]string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprint(w, "<table><thead><tr>"); err != nil {
			return err
		}
		for _, c := range columns {
			fmt.Fprintf(w, "<th>%s</th>", templ.EscapeString(c))
		}
		fmt.Fprint(w, "</tr></thead><tbody>")
		for _, row := range rows {
			fmt.Fprint(w, "<tr>")
			for _, cell := range row {
				fmt.Fprintf(w, "<td>%s</td>", templ.EscapeString(cell))
			}
			fmt.Fprint(w, "</tr>")
		}
		_, err := fmt.Fprint(w, "</tbody></table>")
		return err
	})
}
