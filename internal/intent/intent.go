// Package intent is the deterministic dispatcher: an ordered rule list over the
// lower-cased message text. First match wins and evaluation stops — this is not
// a scoring system. Matching is whole-string substring containment, so
// "unmarkable" matches "mark"; coarse by design and kept for behavioral
// compatibility with the rule set users already rely on.
//
// The package is pure: no store, no network, no clock. Executing a matched
// intent against real state belongs to the agent package.
package intent

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies which rule matched.
type Kind int

const (
	// NextPlan asks for the first not-yet-completed day's plan.
	NextPlan Kind = iota
	// Unmark reverts completion for the extracted days.
	Unmark
	// Mark records completion for the extracted days.
	Mark
	// DayPlan asks for one specific day's plan (first extracted day).
	DayPlan
	// CompletedTable lists completed days joined with their schedule rows.
	CompletedTable
	// Remaining asks how many days are left.
	Remaining
	// TopicsSummary asks for the completed-topics summary.
	TopicsSummary
	// ClearProgress wipes the completed set.
	ClearProgress
)

// Intent is one structured interpretation. Days holds every extracted day
// number in first-seen order, duplicates kept; rules that need none leave it
// empty, rules that need one use the first.
type Intent struct {
	Kind Kind
	Days []int
}

var dayNumberRe = regexp.MustCompile(`day\s*(\d+)`)
var digitRunRe = regexp.MustCompile(`\d+`)

// ExtractDays pulls day numbers out of the lower-cased text. Primary pattern is
// "day" followed by digits; bare digit runs are the fallback so phrasings like
// "mark day 2 and 3" still yield both numbers. First-seen order, duplicates
// kept. Known quirk, kept deliberately: the bare-digit fallback can pick up a
// stray number from unrelated prose.
func ExtractDays(text string) []int {
	text = strings.ToLower(text)

	// Positions of digit runs already claimed by the "day N" pattern.
	type hit struct{ pos, n int }
	var hits []hit
	claimed := make(map[int]bool)
	for _, m := range dayNumberRe.FindAllStringSubmatchIndex(text, -1) {
		start := m[2] // first capture group: the digits
		n, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		hits = append(hits, hit{pos: start, n: n})
		claimed[start] = true
	}
	for _, m := range digitRunRe.FindAllStringIndex(text, -1) {
		if claimed[m[0]] {
			continue
		}
		n, err := strconv.Atoi(text[m[0]:m[1]])
		if err != nil {
			continue
		}
		hits = append(hits, hit{pos: m[0], n: n})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	out := make([]int, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.n)
	}
	return out
}

// Match evaluates the ordered rule list against text and returns the first
// matching interpretation. ok=false means no rule matched and the caller
// should fall through to the LLM.
func Match(text string) (Intent, bool) {
	lower := strings.ToLower(text)
	has := func(s string) bool { return strings.Contains(lower, s) }
	hasAny := func(ss ...string) bool {
		for _, s := range ss {
			if has(s) {
				return true
			}
		}
		return false
	}

	switch {
	case hasAny("today", "next"):
		return Intent{Kind: NextPlan}, true

	case has("day") && ((has("mark") && has("not")) || hasAny("unmark", "uncompleted", "incomplete")):
		return Intent{Kind: Unmark, Days: ExtractDays(lower)}, true

	case has("day") && has("mark"):
		return Intent{Kind: Mark, Days: ExtractDays(lower)}, true

	case has("day") && hasAny("problem", "plan", "focus"):
		return Intent{Kind: DayPlan, Days: ExtractDays(lower)}, true

	case has("what") && has("plan"):
		return Intent{Kind: NextPlan}, true

	case hasAny("show", "what", "list", "which") && has("completed") && has("day"):
		return Intent{Kind: CompletedTable}, true

	case hasAny("how many", "what", "show") && hasAny("left", "remaining", "pending"):
		return Intent{Kind: Remaining}, true

	case hasAny("completed", "topics", "done"):
		return Intent{Kind: TopicsSummary}, true

	case has("clear"):
		return Intent{Kind: ClearProgress}, true
	}
	return Intent{}, false
}
