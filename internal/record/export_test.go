package record

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/waic/matchlog/internal/schema"
)

func TestWriteCSV(t *testing.T) {
	set := NewRecordSet()
	set.Records = []Record{
		{
			Season: "s25", Date: ToDate("2025-05-01"), Environment: "ranked",
			MyDeck: "control", Result: "win", FinishTurn: ToInt("7"), Memo: "gg",
		},
		{
			Season: "s25", Result: "loss", Memo: "comma, quoted",
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, set); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	out := buf.Bytes()
	if !bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("export must start with a UTF-8 BOM")
	}

	rows, err := csv.NewReader(bytes.NewReader(out[3:])).ReadAll()
	if err != nil {
		t.Fatalf("re-parsing export: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(schema.MatchNames(), ",") {
		t.Errorf("header = %v, want canonical field list", rows[0])
	}

	first := rows[1]
	if first[1] != "2025-05-01" {
		t.Errorf("date cell = %q, want 2025-05-01", first[1])
	}
	if first[9] != "7" {
		t.Errorf("finish_turn cell = %q, want bare 7", first[9])
	}

	second := rows[2]
	if second[1] != "" || second[9] != "" {
		t.Errorf("absent date/turn must export empty, got %q / %q", second[1], second[9])
	}
	if second[10] != "comma, quoted" {
		t.Errorf("memo round-trip = %q", second[10])
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	// Re-parsing the exported date and turn columns recovers the same
	// values; originally-absent entries stay absent.
	set := NewRecordSet()
	set.Records = []Record{
		{Date: ToDate("2024-11-30"), FinishTurn: ToInt("12")},
		{Date: ToDate("garbage"), FinishTurn: ToInt("abc")},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, set); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes()[3:])).ReadAll()
	if err != nil {
		t.Fatalf("re-parsing export: %v", err)
	}

	reDate := ToDate(rows[1][1])
	if !reDate.Valid || reDate.String() != "2024-11-30" {
		t.Errorf("date did not round-trip: %+v", reDate)
	}
	reTurn := ToInt(rows[1][9])
	if !reTurn.Valid || reTurn.Int64 != 12 {
		t.Errorf("finish_turn did not round-trip: %+v", reTurn)
	}

	if ToDate(rows[2][1]).Valid || ToInt(rows[2][9]).Valid {
		t.Error("absent values must stay absent after a round trip")
	}
}

func TestWriteCSV_EmptySet(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, NewRecordSet()); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes()[3:])).ReadAll()
	if err != nil {
		t.Fatalf("re-parsing export: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want header only", len(rows))
	}
	if len(rows[0]) != len(schema.Match) {
		t.Errorf("header width = %d, want %d", len(rows[0]), len(schema.Match))
	}
}
