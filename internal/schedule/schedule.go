// Package schedule loads the fixed multi-day study sheet — one row per day with a
// focus topic and up to three practice problems. The sheet is the read-only
// reference axis for the whole system: progress is tracked against it, never
// written into it.
package schedule

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
)

// Entry is one schedule row. Problems holds the non-empty problem names in
// sheet order, at most three.
type Entry struct {
	Day      int
	Focus    string
	Problems []string
}

// csvRow mirrors the sheet header exactly. Problem cells may be blank when a day
// has fewer than three problems.
type csvRow struct {
	Day      string `csv:"Day"`
	Focus    string `csv:"Focus"`
	Problem1 string `csv:"Problem 1"`
	Problem2 string `csv:"Problem 2"`
	Problem3 string `csv:"Problem 3"`
}

// Catalog is the loaded schedule. Immutable after Load; the backing sheet does
// not change during process lifetime, so loading once and caching is safe.
type Catalog struct {
	entries []Entry     // ascending day order
	byDay   map[int]Entry
}

// Load parses the schedule sheet at csvPath.
//
// Expectations:
//   - Rows are returned in ascending day order regardless of sheet order
//   - Blank or "nan" focus/problem cells normalize to empty string, never an error
//   - Blank problem cells are omitted from Problems
//   - Rows whose Day cell is not a positive integer are skipped
func Load(csvPath string) (*Catalog, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("schedule: open sheet: %w", err)
	}
	defer f.Close()

	var rows []*csvRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("schedule: parse sheet: %w", err)
	}

	c := &Catalog{byDay: make(map[int]Entry)}
	for _, r := range rows {
		var day int
		if _, err := fmt.Sscanf(strings.TrimSpace(r.Day), "%d", &day); err != nil || day <= 0 {
			continue
		}
		e := Entry{Day: day, Focus: normalizeCell(r.Focus)}
		for _, p := range []string{r.Problem1, r.Problem2, r.Problem3} {
			if p = normalizeCell(p); p != "" {
				e.Problems = append(e.Problems, p)
			}
		}
		c.byDay[day] = e
	}
	for _, e := range c.byDay {
		c.entries = append(c.entries, e)
	}
	sort.Slice(c.entries, func(i, j int) bool { return c.entries[i].Day < c.entries[j].Day })
	return c, nil
}

// normalizeCell trims a sheet cell and maps pandas-exported "nan" markers to "".
func normalizeCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return s
}

// Day returns the entry for day n by exact integer match.
func (c *Catalog) Day(n int) (Entry, bool) {
	e, ok := c.byDay[n]
	return e, ok
}

// Days returns all entries in ascending day order. Callers must not mutate the
// returned slice.
func (c *Catalog) Days() []Entry {
	return c.entries
}

// TotalDays returns the number of days in the schedule.
func (c *Catalog) TotalDays() int {
	return len(c.entries)
}
