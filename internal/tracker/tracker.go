// Package tracker derives read-only views from the schedule catalog plus the
// completed-day set. Every view is recomputed on demand; nothing here mutates
// state, so a failed read can always be retried by asking again.
package tracker

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"dsacoach/internal/schedule"
	"dsacoach/internal/store"
)

// missingTopicMarker is the sheet's sentinel for days without a real focus.
// Such days never contribute to the completed-topics summary.
const missingTopicMarker = "(missing topic)"

// AllDaysDone is the celebration sentinel returned when every schedule day has
// been completed. Stable across calls; callers may compare against it.
const AllDaysDone = "🎉 You've completed all days in your study schedule!"

// NoTopicsYet is the distinguished empty-state message for the topics summary.
const NoTopicsYet = "❗ You haven't completed any valid topics yet. Let's start solving!"

// Tracker computes derived progress views.
type Tracker struct {
	catalog *schedule.Catalog
	store   *store.Store
}

// New creates a Tracker over the loaded catalog and the progress store.
func New(catalog *schedule.Catalog, s *store.Store) *Tracker {
	return &Tracker{catalog: catalog, store: s}
}

// DayPlan formats the plan for one day: focus line plus up to three problems,
// rendered as markdown links when the problem is in the link map. Unknown days
// get a user-facing not-found message, never an error, and nothing is mutated.
func (t *Tracker) DayPlan(day int) string {
	e, ok := t.catalog.Day(day)
	if !ok {
		return fmt.Sprintf("⚠️ Day %d not found in the schedule.", day)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📅 Day %d — Focus: %s\n", e.Day, e.Focus)
	for i, p := range e.Problems {
		if url, ok := schedule.ResolveLink(p); ok {
			fmt.Fprintf(&b, "- Problem %d: [%s](%s)\n", i+1, p, url)
		} else {
			fmt.Fprintf(&b, "- Problem %d: %s\n", i+1, p)
		}
	}
	return b.String()
}

// NextIncompletePlan returns the plan for the first schedule day absent from
// the completed set, in ascending day order. All days done → AllDaysDone.
func (t *Tracker) NextIncompletePlan() (string, error) {
	completed, err := t.store.CompletedDays()
	if err != nil {
		return "", fmt.Errorf("tracker: next incomplete day: %w", err)
	}
	for _, e := range t.catalog.Days() {
		if _, done := completed[strconv.Itoa(e.Day)]; !done {
			return t.DayPlan(e.Day), nil
		}
	}
	return AllDaysDone, nil
}

// CompletedTopicsSummary returns the rendered summary plus the sorted topic
// list. Topics are the deduplicated non-empty focuses of completed days,
// skipping the missing-topic marker, sorted lexicographically.
func (t *Tracker) CompletedTopicsSummary() (string, []string, error) {
	completed, err := t.store.CompletedDays()
	if err != nil {
		return "", nil, fmt.Errorf("tracker: topics summary: %w", err)
	}
	seen := make(map[string]bool)
	for _, e := range t.catalog.Days() {
		topic := strings.TrimSpace(e.Focus)
		if _, done := completed[strconv.Itoa(e.Day)]; !done {
			continue
		}
		if topic == "" || strings.EqualFold(topic, missingTopicMarker) {
			continue
		}
		seen[topic] = true
	}
	if len(seen) == 0 {
		return NoTopicsYet, nil, nil
	}
	topics := make([]string, 0, len(seen))
	for topic := range seen {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	var b strings.Builder
	fmt.Fprintf(&b, "You've completed %d topics so far. Keep going! 🚀\n\n", len(topics))
	b.WriteString("Here are your completed topics:\n\n")
	for _, topic := range topics {
		fmt.Fprintf(&b, "- %s\n", topic)
	}
	return strings.TrimRight(b.String(), "\n"), topics, nil
}

// CompletedDaysTable renders the completed days ascending, each joined with its
// schedule row. The count lets callers detect the empty state.
func (t *Tracker) CompletedDaysTable() (string, int, error) {
	completed, err := t.store.CompletedDays()
	if err != nil {
		return "", 0, fmt.Errorf("tracker: completed days table: %w", err)
	}
	var days []int
	for key := range completed {
		if d, err := strconv.Atoi(key); err == nil {
			days = append(days, d)
		}
	}
	sort.Ints(days)

	var b strings.Builder
	count := 0
	for _, d := range days {
		e, ok := t.catalog.Day(d)
		if !ok {
			continue // stale record for a day no longer on the sheet
		}
		count++
		fmt.Fprintf(&b, "✅ Day %d — %s", e.Day, e.Focus)
		if len(e.Problems) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(e.Problems, ", "))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n"), count, nil
}

// RemainingCount returns how many schedule days are not yet completed, along
// with the schedule total. Rendering belongs to the caller.
func (t *Tracker) RemainingCount() (remaining, total int, err error) {
	completed, err := t.store.CompletedDays()
	if err != nil {
		return 0, 0, fmt.Errorf("tracker: remaining count: %w", err)
	}
	total = t.catalog.TotalDays()
	done := 0
	for _, e := range t.catalog.Days() {
		if _, ok := completed[strconv.Itoa(e.Day)]; ok {
			done++
		}
	}
	return total - done, total, nil
}
