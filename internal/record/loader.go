package record

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/waic/matchlog/internal/logging"
	"github.com/waic/matchlog/internal/schema"
)

// RowSource fetches the raw value grid for a worksheet. The first row of
// the grid is the header as found in the source, not assumed to match
// canonical names. Implementations return the typed errors from errors.go
// so the loader can classify failures.
type RowSource interface {
	Rows(ctx context.Context, storeID, table string) ([][]string, error)
}

// Loader turns raw worksheet grids into normalized record sets. It never
// returns an error: every failure mode degrades to an empty canonical
// RecordSet plus diagnostics.
type Loader struct {
	source RowSource
	fields []schema.FieldSpec
}

// NewLoader creates a Loader reading from the given source.
func NewLoader(source RowSource) *Loader {
	return &Loader{
		source: source,
		fields: schema.Match,
	}
}

// Load fetches and normalizes the records identified by loc.
//
// The returned set always exposes the full canonical schema: missing
// source columns are synthesized as typed-empty, extra source columns are
// dropped, and a header that matches the canonical schema neither exactly
// nor as a positional prefix nor as a superset produces a warning
// diagnostic without aborting the load. No fault raised by the source or
// by normalization escapes to the caller.
func (l *Loader) Load(ctx context.Context, loc Locator) (result Result) {
	log := logging.WithFields(ctx,
		"load_id", uuid.NewString(),
		"store_id", loc.StoreID,
		"table", loc.Table,
	)

	result = Result{Set: NewRecordSet()}

	// The caller must never see a fault escape this boundary.
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic during record load", "panic", r)
			result = Result{
				Set: NewRecordSet(),
				Diagnostics: []Diagnostic{{
					Kind:     KindUnexpected,
					Severity: SeverityError,
					Message:  fmt.Sprintf("unexpected error while loading records: %v", r),
				}},
			}
		}
	}()

	rows, err := l.source.Rows(ctx, loc.StoreID, loc.Table)
	if err != nil {
		diags := classify(err, loc)
		for _, d := range diags {
			log.Error("record load failed", "kind", d.Kind.String(), "error", err)
		}
		result.Diagnostics = diags
		return result
	}

	if len(rows) == 0 {
		log.Info("worksheet is empty", "rows", 0)
		return result
	}

	// Even a header-only worksheet goes through the schema check, so a
	// drifted header is reported before any data ever lands in it.
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = CleanHeader(h)
	}

	if d, ok := checkHeader(header, schema.Names(l.fields)); !ok {
		log.Warn("header does not match canonical schema", "header", strings.Join(header, ","))
		result.Diagnostics = append(result.Diagnostics, d)
	}

	idx := headerIndex(header)

	for _, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}
		var rec Record
		for _, spec := range l.fields {
			pos, ok := idx[spec.Name]
			if !ok || pos >= len(row) {
				continue // synthesized as typed-empty by the zero value
			}
			rec.setField(spec.Name, row[pos])
		}
		result.Set.Records = append(result.Set.Records, rec)
	}

	log.Info("records loaded", "rows", len(result.Set.Records))
	return result
}

// headerIndex maps cleaned column names to their first position in the
// header row. On duplicate names the leftmost column wins.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if _, seen := idx[h]; !seen {
			idx[h] = i
		}
	}
	return idx
}

// checkHeader compares the source header to the canonical schema. A
// header is acceptable when it matches exactly, starts with the canonical
// columns in order, or contains every canonical column in any order.
// Anything else is tolerated with a warning: the load still proceeds and
// missing columns are synthesized.
func checkHeader(header, canonical []string) (Diagnostic, bool) {
	if headerAcceptable(header, canonical) {
		return Diagnostic{}, true
	}

	shown := header
	if len(shown) > len(canonical) {
		shown = shown[:len(canonical)]
	}
	return Diagnostic{
		Kind:     KindSchemaMismatch,
		Severity: SeverityWarning,
		Message: fmt.Sprintf("worksheet header differs from the expected schema; expected %v, found %v",
			canonical, shown),
	}, false
}

func headerAcceptable(header, canonical []string) bool {
	if equalStrings(header, canonical) {
		return true
	}
	if len(header) > len(canonical) && equalStrings(header[:len(canonical)], canonical) {
		return true
	}
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	for _, c := range canonical {
		if !present[c] {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// emptyRow reports whether every cell in the row is blank. Spreadsheet
// APIs pad trailing grid rows; those must not become records.
func emptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
