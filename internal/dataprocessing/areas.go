package dataprocessing

import "strings"

// DetectAreas returns the area column and the distinct area values mentioned in query.
// A value matches when its lowercased text is a substring of the lowercased query.
// Values keep their first-appearance order in the dataset. Only text cells are candidates.
func DetectAreas(query string, ds *Dataset) (string, []string) {
	areaColumn, ok := ResolveAreaColumn(ds.Columns())
	if !ok {
		return "", nil
	}

	q := strings.ToLower(query)
	seen := make(map[string]struct{})
	var matched []string
	for i := 0; i < ds.Len(); i++ {
		s, isText := ds.Value(i, areaColumn).(string)
		if !isText || strings.TrimSpace(s) == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if strings.Contains(q, strings.ToLower(s)) {
			matched = append(matched, s)
		}
	}
	return areaColumn, matched
}

// matchesArea compares a cell with an area name case-insensitively.
func matchesArea(v any, area string) bool {
	return strings.ToLower(CellText(v)) == strings.ToLower(area)
}
