// Package schema declares the canonical column layout for match records.
// Every loaded record set exposes exactly these fields, in this order,
// regardless of what the source worksheet actually contained.
package schema

// FieldType represents the expected data type for a source column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldDate
	FieldInt
)

// FieldSpec describes a single canonical column.
type FieldSpec struct {
	Name  string    // Column header name as it appears in the worksheet
	Type  FieldType // Expected data type after coercion
	Label string    // Display name for table headers
}

// Match defines the canonical match-record columns in display/export order.
// Missing source columns are synthesized as typed-empty; extra source
// columns are dropped.
var Match = []FieldSpec{
	{Name: "season", Type: FieldText, Label: "Season"},
	{Name: "date", Type: FieldDate, Label: "Date"},
	{Name: "environment", Type: FieldText, Label: "Environment"},
	{Name: "my_deck", Type: FieldText, Label: "My Deck"},
	{Name: "my_deck_type", Type: FieldText, Label: "My Deck Type"},
	{Name: "opponent_deck", Type: FieldText, Label: "Opponent Deck"},
	{Name: "opponent_deck_type", Type: FieldText, Label: "Opponent Deck Type"},
	{Name: "first_second", Type: FieldText, Label: "First/Second"},
	{Name: "result", Type: FieldText, Label: "Result"},
	{Name: "finish_turn", Type: FieldInt, Label: "Finish Turn"},
	{Name: "memo", Type: FieldText, Label: "Memo"},
}

// Names returns the ordered column names for a spec list.
func Names(specs []FieldSpec) []string {
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Name
	}
	return names
}

// MatchNames returns the canonical column names in canonical order.
func MatchNames() []string {
	return Names(Match)
}
