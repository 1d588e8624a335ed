package record

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/waic/matchlog/internal/schema"
)

// fakeSource serves a fixed grid or error, standing in for the remote
// worksheet.
type fakeSource struct {
	rows  [][]string
	err   error
	calls int
}

func (f *fakeSource) Rows(_ context.Context, _, _ string) ([][]string, error) {
	f.calls++
	return f.rows, f.err
}

var testLocator = Locator{StoreID: "sheet-123", Table: "records"}

func canonicalHeader() []string {
	return schema.MatchNames()
}

func dataRow(date, result, turn string) []string {
	return []string{"s25", date, "ranked", "control", "blue", "aggro", "red", "first", result, turn, "gg"}
}

func TestLoad_ExactHeader(t *testing.T) {
	src := &fakeSource{rows: [][]string{
		canonicalHeader(),
		dataRow("2025-05-01", "win", "7"),
		dataRow("not-a-date", "loss", "9"),
		dataRow("2025-05-03", "win", "6"),
	}}

	result := NewLoader(src).Load(context.Background(), testLocator)

	if len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", result.Diagnostics)
	}
	if got := result.Set.Len(); got != 3 {
		t.Fatalf("rows = %d, want 3", got)
	}

	recs := result.Set.Records
	if !recs[0].Date.Valid || recs[0].Date.String() != "2025-05-01" {
		t.Errorf("row 0 date = %q, want 2025-05-01", recs[0].Date.String())
	}
	if recs[1].Date.Valid {
		t.Error("invalid date string should coerce to absent, not a raw value")
	}
	if recs[1].Result != "loss" {
		t.Errorf("row 1 result = %q, want loss", recs[1].Result)
	}
	if !recs[2].FinishTurn.Valid || recs[2].FinishTurn.Int64 != 6 {
		t.Errorf("row 2 finish_turn = %+v, want 6", recs[2].FinishTurn)
	}
}

func TestLoad_AlwaysCanonicalSchema(t *testing.T) {
	sources := map[string]*fakeSource{
		"empty grid":     {rows: nil},
		"header only":    {rows: [][]string{canonicalHeader()}},
		"odd header":     {rows: [][]string{{"foo", "bar"}, {"1", "2"}}},
		"source failure": {err: &StoreNotFoundError{StoreID: "sheet-123"}},
	}

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			result := NewLoader(src).Load(context.Background(), testLocator)
			if !reflect.DeepEqual(result.Set.Fields, schema.MatchNames()) {
				t.Errorf("fields = %v, want canonical schema", result.Set.Fields)
			}
		})
	}
}

func TestLoad_HeaderOnly(t *testing.T) {
	// Scenario: a worksheet with a header row but zero data rows still
	// goes through the schema check and returns an empty set.
	src := &fakeSource{rows: [][]string{canonicalHeader()}}

	result := NewLoader(src).Load(context.Background(), testLocator)

	if result.Set.Len() != 0 {
		t.Errorf("rows = %d, want 0", result.Set.Len())
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("canonical header should not warn: %+v", result.Diagnostics)
	}
}

func TestLoad_HeaderOnlyMismatchStillWarns(t *testing.T) {
	src := &fakeSource{rows: [][]string{{"totally", "different"}}}

	result := NewLoader(src).Load(context.Background(), testLocator)

	if result.Set.Len() != 0 {
		t.Errorf("rows = %d, want 0", result.Set.Len())
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Kind != KindSchemaMismatch {
		t.Fatalf("diagnostics = %+v, want one schema mismatch", result.Diagnostics)
	}
	if result.Diagnostics[0].Severity != SeverityWarning {
		t.Error("schema mismatch should be warning severity")
	}
}

func TestLoad_SubsetHeader(t *testing.T) {
	// Scenario: header is [date,result] only. The mismatch warning fires
	// but both present columns are populated and the rest synthesized.
	src := &fakeSource{rows: [][]string{
		{"date", "result"},
		{"2025-04-10", "win"},
		{"", "loss"},
	}}

	result := NewLoader(src).Load(context.Background(), testLocator)

	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Kind != KindSchemaMismatch {
		t.Fatalf("diagnostics = %+v, want one schema mismatch", result.Diagnostics)
	}
	if result.Set.Len() != 2 {
		t.Fatalf("rows = %d, want 2", result.Set.Len())
	}

	first := result.Set.Records[0]
	if first.Date.String() != "2025-04-10" || first.Result != "win" {
		t.Errorf("present columns not populated: %+v", first)
	}
	if first.Season != "" || first.Memo != "" || first.FinishTurn.Valid {
		t.Errorf("missing columns should be typed-empty: %+v", first)
	}

	second := result.Set.Records[1]
	if second.Date.Valid {
		t.Error("empty date cell should be absent")
	}
}

func TestLoad_SupersetHeaderAccepted(t *testing.T) {
	header := append(canonicalHeader(), "extra_notes")
	row := append(dataRow("2025-01-15", "win", "5"), "dropped")
	src := &fakeSource{rows: [][]string{header, row}}

	result := NewLoader(src).Load(context.Background(), testLocator)

	if len(result.Diagnostics) != 0 {
		t.Fatalf("superset header should not warn: %+v", result.Diagnostics)
	}
	if !reflect.DeepEqual(result.Set.Fields, schema.MatchNames()) {
		t.Errorf("extra source columns must be dropped, fields = %v", result.Set.Fields)
	}
	if result.Set.Records[0].Memo != "gg" {
		t.Errorf("memo = %q, want gg", result.Set.Records[0].Memo)
	}
}

func TestLoad_ReorderedSupersetHeader(t *testing.T) {
	// All canonical columns present but shuffled: accepted without a
	// warning, values land in the right fields by name.
	header := []string{"memo", "result", "date", "season", "environment",
		"my_deck", "my_deck_type", "opponent_deck", "opponent_deck_type",
		"first_second", "finish_turn"}
	src := &fakeSource{rows: [][]string{
		header,
		{"note", "win", "2025-02-02", "s25", "casual", "a", "b", "c", "d", "second", "4"},
	}}

	result := NewLoader(src).Load(context.Background(), testLocator)

	if len(result.Diagnostics) != 0 {
		t.Fatalf("reordered full header should not warn: %+v", result.Diagnostics)
	}
	rec := result.Set.Records[0]
	if rec.Memo != "note" || rec.Result != "win" || rec.Date.String() != "2025-02-02" {
		t.Errorf("columns mapped by position instead of name: %+v", rec)
	}
}

func TestLoad_StoreNotFound(t *testing.T) {
	src := &fakeSource{err: &StoreNotFoundError{StoreID: "sheet-123"}}

	result := NewLoader(src).Load(context.Background(), testLocator)

	if result.Set.Len() != 0 {
		t.Errorf("rows = %d, want 0", result.Set.Len())
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Kind != KindStoreNotFound {
		t.Fatalf("diagnostics = %+v, want one store-not-found", result.Diagnostics)
	}
	if !strings.Contains(result.Diagnostics[0].Message, "sheet-123") {
		t.Errorf("diagnostic should name the store id: %q", result.Diagnostics[0].Message)
	}
}

func TestLoad_TableNotFound(t *testing.T) {
	src := &fakeSource{err: &TableNotFoundError{StoreID: "sheet-123", Table: "records"}}

	result := NewLoader(src).Load(context.Background(), testLocator)

	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Kind != KindTableNotFound {
		t.Fatalf("diagnostics = %+v, want one table-not-found", result.Diagnostics)
	}
	msg := result.Diagnostics[0].Message
	if !strings.Contains(msg, "records") || !strings.Contains(msg, "sheet-123") {
		t.Errorf("diagnostic should name worksheet and store: %q", msg)
	}
}

func TestLoad_CredentialFailure(t *testing.T) {
	// Scenario: no credential source works. The user sees both which
	// source failed and that the store is unreachable.
	src := &fakeSource{err: &CredentialError{Source: "none", Err: errors.New("no credential source is configured")}}

	result := NewLoader(src).Load(context.Background(), testLocator)

	if result.Set.Len() != 0 {
		t.Errorf("rows = %d, want 0", result.Set.Len())
	}
	if len(result.Diagnostics) != 2 {
		t.Fatalf("diagnostics = %+v, want credential + connectivity", result.Diagnostics)
	}
	if result.Diagnostics[0].Kind != KindCredential || result.Diagnostics[1].Kind != KindConnectivity {
		t.Errorf("kinds = %v, %v", result.Diagnostics[0].Kind, result.Diagnostics[1].Kind)
	}
}

func TestLoad_UnexpectedError(t *testing.T) {
	src := &fakeSource{err: errors.New("tls handshake exploded")}

	result := NewLoader(src).Load(context.Background(), testLocator)

	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Kind != KindUnexpected {
		t.Fatalf("diagnostics = %+v, want one unexpected", result.Diagnostics)
	}
	if !strings.Contains(result.Diagnostics[0].Message, "tls handshake exploded") {
		t.Errorf("diagnostic should carry the origin message: %q", result.Diagnostics[0].Message)
	}
}

func TestLoad_SkipsEmptyRows(t *testing.T) {
	src := &fakeSource{rows: [][]string{
		canonicalHeader(),
		dataRow("2025-05-01", "win", "7"),
		{"", "", "", "", "", "", "", "", "", "", ""},
		{"  ", ""},
		dataRow("2025-05-02", "loss", "8"),
	}}

	result := NewLoader(src).Load(context.Background(), testLocator)

	if got := result.Set.Len(); got != 2 {
		t.Errorf("rows = %d, want 2 (blank grid rows skipped)", got)
	}
}

func TestLoad_ShortRow(t *testing.T) {
	// A data row shorter than the header: trailing fields are absent,
	// not an index panic.
	src := &fakeSource{rows: [][]string{
		canonicalHeader(),
		{"s25", "2025-05-01", "ranked"},
	}}

	result := NewLoader(src).Load(context.Background(), testLocator)

	if result.Set.Len() != 1 {
		t.Fatalf("rows = %d, want 1", result.Set.Len())
	}
	rec := result.Set.Records[0]
	if rec.Environment != "ranked" || rec.Memo != "" || rec.FinishTurn.Valid {
		t.Errorf("short row mis-reconciled: %+v", rec)
	}
}

func TestLoad_Idempotent(t *testing.T) {
	grid := [][]string{
		canonicalHeader(),
		dataRow("2025-05-01", "win", "7"),
		dataRow("", "loss", "abc"),
	}

	first := NewLoader(&fakeSource{rows: grid}).Load(context.Background(), testLocator)
	second := NewLoader(&fakeSource{rows: grid}).Load(context.Background(), testLocator)

	if !reflect.DeepEqual(first.Set, second.Set) {
		t.Error("loading unchanged content twice should yield identical sets")
	}
}

func TestLoad_RecoversPanic(t *testing.T) {
	src := panickySource{}

	result := NewLoader(src).Load(context.Background(), testLocator)

	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Kind != KindUnexpected {
		t.Fatalf("diagnostics = %+v, want one unexpected", result.Diagnostics)
	}
	if !reflect.DeepEqual(result.Set.Fields, schema.MatchNames()) {
		t.Error("panic path must still return the canonical schema")
	}
}

type panickySource struct{}

func (panickySource) Rows(context.Context, string, string) ([][]string, error) {
	panic("boom")
}
