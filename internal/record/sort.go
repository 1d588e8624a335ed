package record

import "sort"

// SortForDisplay returns records in the display order: rows with a parsed
// date sort descending by date, rows without one are appended after all
// dated rows in their original relative order. The input is not modified.
func SortForDisplay(records []Record) []Record {
	dated := make([]Record, 0, len(records))
	undated := make([]Record, 0)

	for _, r := range records {
		if r.Date.Valid {
			dated = append(dated, r)
		} else {
			undated = append(undated, r)
		}
	}

	// Stable so that same-day records keep their source order.
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].Date.Time.After(dated[j].Date.Time)
	})

	return append(dated, undated...)
}
