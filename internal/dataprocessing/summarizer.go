package dataprocessing

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PercentChange returns the relative change from old to current in percent.
// It reports false when either value is absent or old is zero.
func PercentChange(current, old *float64) (float64, bool) {
	if current == nil || old == nil || *old == 0 {
		return 0, false
	}
	return (*current - *old) / *old * 100, true
}

// BuildSummary writes one sentence per detected area comparing its latest year
// with the year before, joined by single spaces.
func BuildSummary(areas []string, ds *Dataset, areaColumn string) string {
	if len(areas) == 0 {
		return fmt.Sprintf("No specific area detected. Dataset contains %d records.", ds.Len())
	}

	roles := ResolveRoles(ds.Columns())
	printer := message.NewPrinter(language.English)

	sentences := make([]string, 0, len(areas))
	for _, area := range areas {
		var rows []int
		if areaColumn != "" {
			rows = ds.Where(areaColumn, func(v any) bool { return matchesArea(v, area) })
		}
		if len(rows) == 0 {
			sentences = append(sentences, fmt.Sprintf("No data found for %s.", area))
			continue
		}
		sentences = append(sentences, areaSentence(printer, area, ds, rows, roles))
	}
	return strings.Join(sentences, " ")
}

// latestTwo sorts the parsed year of every row and returns the last and
// second-to-last entries. Repeated years are kept, so both may be equal.
func latestTwo(ds *Dataset, rows []int, yearColumn string) (latest, previous *int) {
	if yearColumn == "" {
		return nil, nil
	}
	var years []int
	for _, i := range rows {
		if y, ok := ParseYear(ds.Value(i, yearColumn)); ok {
			years = append(years, y)
		}
	}
	sort.Ints(years)
	if n := len(years); n > 0 {
		latest = &years[n-1]
		if n > 1 {
			previous = &years[n-2]
		}
	}
	return latest, previous
}

// yearMean averages column over rows whose year equals year exactly.
func yearMean(ds *Dataset, rows []int, yearColumn, column string, year *int) *float64 {
	if column == "" || year == nil {
		return nil
	}
	var matched []int
	for _, i := range rows {
		if f, ok := yearNumber(ds.Value(i, yearColumn)); ok && f == float64(*year) {
			matched = append(matched, i)
		}
	}
	return Mean(ds, matched, column)
}

func areaSentence(p *message.Printer, area string, ds *Dataset, rows []int, roles ColumnRoles) string {
	latest, previous := latestTwo(ds, rows, roles.Year)

	var clauses []string
	if cur := yearMean(ds, rows, roles.Year, roles.Price, latest); cur != nil {
		prev := yearMean(ds, rows, roles.Year, roles.Price, previous)
		clauses = append(clauses, " Avg flat price = "+p.Sprintf("%.2f", *cur)+changeNote(cur, prev, previous)+".")
	}
	if cur := yearMean(ds, rows, roles.Year, roles.Demand, latest); cur != nil {
		prev := yearMean(ds, rows, roles.Year, roles.Demand, previous)
		clauses = append(clauses, " Avg total sold = "+p.Sprintf("%.0f", *cur)+changeNote(cur, prev, previous)+".")
	}

	var b strings.Builder
	b.WriteString("Analysis for ")
	b.WriteString(area)
	b.WriteString(":")
	if latest != nil {
		fmt.Fprintf(&b, " (%d)", *latest)
	}
	for _, c := range clauses {
		b.WriteString(c)
	}
	return b.String()
}

// changeNote renders " (up X% vs YEAR)" or " (down X% vs YEAR)" when a change is computable.
func changeNote(current, old *float64, previousYear *int) string {
	change, ok := PercentChange(current, old)
	if !ok || previousYear == nil {
		return ""
	}
	direction := "down"
	if change > 0 {
		direction = "up"
	}
	return fmt.Sprintf(" (%s %.1f%% vs %d)", direction, math.Abs(change), *previousYear)
}
