package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/waic/matchlog/internal/config"
	"github.com/waic/matchlog/internal/logging"
	"github.com/waic/matchlog/internal/record"
	"github.com/waic/matchlog/internal/schema"
	"github.com/waic/matchlog/internal/web/views"
)

// load runs the pipeline for the configured locator. Content is never
// cached: every view fetches fresh rows. When the spreadsheet ID came
// from the documented fallback, the warning is prepended so it always
// renders above pipeline diagnostics.
func (s *Server) load(r *http.Request) record.Result {
	loc := record.Locator{
		StoreID: s.cfg.Sheets.SpreadsheetID,
		Table:   s.cfg.Sheets.WorksheetName,
	}

	result := s.loader.Load(r.Context(), loc)

	if s.cfg.Sheets.SpreadsheetIDFromFallback {
		fallback := record.Diagnostic{
			Kind:     record.KindConfigFallback,
			Severity: record.SeverityWarning,
			Message:  fmt.Sprintf("SPREADSHEET_ID is not configured; using the fallback spreadsheet %s", config.DefaultSpreadsheetID),
		}
		result.Diagnostics = append([]record.Diagnostic{fallback}, result.Diagnostics...)
	}

	return result
}

// handleRecordsPage renders the match-record table, sorted for display.
func (s *Server) handleRecordsPage(w http.ResponseWriter, r *http.Request) {
	result := s.load(r)

	page := views.RecordsPage{
		Title:      "Match Records",
		Banners:    banners(result.Diagnostics),
		Columns:    columnLabels(),
		ExportPath: "/api/export",
	}

	sorted := record.SortForDisplay(result.Set.Records)
	for _, rec := range sorted {
		row := make([]string, len(result.Set.Fields))
		for i, name := range result.Set.Fields {
			row[i] = rec.Field(name)
		}
		page.Rows = append(page.Rows, row)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.Records(page).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render records page", "error", err)
	}
}

// apiRecord is the JSON shape of one normalized record. Absent dates and
// finish turns serialize as null, never as sentinel strings.
type apiRecord struct {
	Season           string  `json:"season"`
	Date             *string `json:"date"`
	Environment      string  `json:"environment"`
	MyDeck           string  `json:"my_deck"`
	MyDeckType       string  `json:"my_deck_type"`
	OpponentDeck     string  `json:"opponent_deck"`
	OpponentDeckType string  `json:"opponent_deck_type"`
	FirstSecond      string  `json:"first_second"`
	Result           string  `json:"result"`
	FinishTurn       *int64  `json:"finish_turn"`
	Memo             string  `json:"memo"`
}

type recordsResponse struct {
	Fields      []string     `json:"fields"`
	Records     []apiRecord  `json:"records"`
	Diagnostics []apiMessage `json:"diagnostics,omitempty"`
}

type apiMessage struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Action   string `json:"action,omitempty"`
	Code     string `json:"code"`
}

// handleRecordsJSON returns the normalized records in display order.
func (s *Server) handleRecordsJSON(w http.ResponseWriter, r *http.Request) {
	result := s.load(r)

	resp := recordsResponse{
		Fields:  result.Set.Fields,
		Records: make([]apiRecord, 0, result.Set.Len()),
	}

	for _, rec := range record.SortForDisplay(result.Set.Records) {
		ar := apiRecord{
			Season:           rec.Season,
			Environment:      rec.Environment,
			MyDeck:           rec.MyDeck,
			MyDeckType:       rec.MyDeckType,
			OpponentDeck:     rec.OpponentDeck,
			OpponentDeckType: rec.OpponentDeckType,
			FirstSecond:      rec.FirstSecond,
			Result:           rec.Result,
			Memo:             rec.Memo,
		}
		if rec.Date.Valid {
			d := rec.Date.String()
			ar.Date = &d
		}
		if rec.FinishTurn.Valid {
			n := rec.FinishTurn.Int64
			ar.FinishTurn = &n
		}
		resp.Records = append(resp.Records, ar)
	}

	for _, d := range result.Diagnostics {
		um := d.User()
		resp.Diagnostics = append(resp.Diagnostics, apiMessage{
			Severity: severityLabel(d.Severity),
			Message:  um.Message,
			Action:   um.Action,
			Code:     um.Code,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.FromContext(r.Context()).Error("encode records response", "error", err)
	}
}

// handleExport downloads the records as CSV with a UTF-8 BOM, in the
// order they were loaded.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	result := s.load(r)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="game_records_download.csv"`)

	if err := record.WriteCSV(w, result.Set); err != nil {
		// Headers are already sent; log and stop.
		logging.FromContext(r.Context()).Error("csv export", "error", err)
	}
}

// handleHealthz reports process liveness. It does not touch the remote
// store: a broken spreadsheet must not make the service look dead.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func banners(diags []record.Diagnostic) []views.Banner {
	out := make([]views.Banner, 0, len(diags))
	for _, d := range diags {
		um := d.User()
		out = append(out, views.Banner{
			Message: um.Message,
			Action:  um.Action,
			Code:    um.Code,
			Warning: d.Severity == record.SeverityWarning,
		})
	}
	return out
}

func columnLabels() []string {
	labels := make([]string, len(schema.Match))
	for i, spec := range schema.Match {
		labels[i] = spec.Label
	}
	return labels
}

func severityLabel(s record.Severity) string {
	if s == record.SeverityWarning {
		return "warning"
	}
	return "error"
}
