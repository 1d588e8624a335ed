// Package record implements the match-record ingestion pipeline: fetching
// raw worksheet rows, reconciling them against the canonical schema,
// coercing types, and producing a normalized record set. It has no UI
// dependencies and can be used by any frontend.
package record

import (
	"strconv"
	"time"

	"github.com/waic/matchlog/internal/schema"
)

// DateLayout is the rendering format for dates in exports and displays.
const DateLayout = "2006-01-02"

// Date is an optional calendar date. Valid is false when the source value
// was absent or unparseable; a raw string never leaks through.
type Date struct {
	Time  time.Time
	Valid bool
}

// String renders the date as YYYY-MM-DD, or "" when absent.
func (d Date) String() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(DateLayout)
}

// Int is an optional non-negative integer. Valid is false when the source
// value was absent, unparseable, or negative.
type Int struct {
	Int64 int64
	Valid bool
}

// String renders the integer as a bare number, or "" when absent.
func (n Int) String() string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatInt(n.Int64, 10)
}

// Record is one logical match result, shaped to the canonical schema.
// Text fields hold "" for absent source values; Date and Int carry their
// own absent state.
type Record struct {
	Season           string
	Date             Date
	Environment      string
	MyDeck           string
	MyDeckType       string
	OpponentDeck     string
	OpponentDeckType string
	FirstSecond      string
	Result           string
	FinishTurn       Int
	Memo             string
}

// setField assigns a raw source cell to the named canonical field,
// coercing it to the field's type. Unknown names are ignored, which is
// how extra source columns get dropped.
func (r *Record) setField(name, raw string) {
	switch name {
	case "season":
		r.Season = CleanCell(raw)
	case "date":
		r.Date = ToDate(raw)
	case "environment":
		r.Environment = CleanCell(raw)
	case "my_deck":
		r.MyDeck = CleanCell(raw)
	case "my_deck_type":
		r.MyDeckType = CleanCell(raw)
	case "opponent_deck":
		r.OpponentDeck = CleanCell(raw)
	case "opponent_deck_type":
		r.OpponentDeckType = CleanCell(raw)
	case "first_second":
		r.FirstSecond = CleanCell(raw)
	case "result":
		r.Result = CleanCell(raw)
	case "finish_turn":
		r.FinishTurn = ToInt(raw)
	case "memo":
		r.Memo = CleanCell(raw)
	}
}

// Field returns the record's value for a canonical column name, rendered
// for display and export. Absent dates and turns render as "".
func (r Record) Field(name string) string {
	switch name {
	case "season":
		return r.Season
	case "date":
		return r.Date.String()
	case "environment":
		return r.Environment
	case "my_deck":
		return r.MyDeck
	case "my_deck_type":
		return r.MyDeckType
	case "opponent_deck":
		return r.OpponentDeck
	case "opponent_deck_type":
		return r.OpponentDeckType
	case "first_second":
		return r.FirstSecond
	case "result":
		return r.Result
	case "finish_turn":
		return r.FinishTurn.String()
	case "memo":
		return r.Memo
	}
	return ""
}

// RecordSet is an ordered sequence of records. Fields is always the full
// canonical schema in canonical order, even when the set is empty or the
// source was missing columns. A RecordSet is never mutated after Load
// returns it.
type RecordSet struct {
	Fields  []string
	Records []Record
}

// NewRecordSet returns an empty set typed to the canonical schema.
func NewRecordSet() RecordSet {
	return RecordSet{Fields: schema.MatchNames()}
}

// Len returns the number of records in the set.
func (s RecordSet) Len() int {
	return len(s.Records)
}

// Locator identifies what to load: a spreadsheet by ID and a worksheet
// within it by name.
type Locator struct {
	StoreID string
	Table   string
}

// Result is what Load hands back: the normalized set plus every
// diagnostic recovered along the way. Load never raises; callers decide
// how to surface Diagnostics.
type Result struct {
	Set         RecordSet
	Diagnostics []Diagnostic
}
