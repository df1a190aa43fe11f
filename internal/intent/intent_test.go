package intent

import (
	"reflect"
	"testing"
)

// --- ExtractDays ---

func TestExtractDays_DayPrefixedNumbers(t *testing.T) {
	// "day N" is the primary pattern, with or without a space
	if got := ExtractDays("show me day 4 please"); !reflect.DeepEqual(got, []int{4}) {
		t.Errorf("expected [4], got %v", got)
	}
	if got := ExtractDays("show me day12"); !reflect.DeepEqual(got, []int{12}) {
		t.Errorf("expected [12], got %v", got)
	}
}

func TestExtractDays_BareDigitFallback(t *testing.T) {
	// Bare digit runs supplement the day-prefixed matches in first-seen order
	got := ExtractDays("mark day 2 and 3 as done")
	if !reflect.DeepEqual(got, []int{2, 3}) {
		t.Errorf("expected [2 3], got %v", got)
	}
}

func TestExtractDays_DuplicatesKept(t *testing.T) {
	// Duplicates are not deduplicated
	got := ExtractDays("day 2 and also 2")
	if !reflect.DeepEqual(got, []int{2, 2}) {
		t.Errorf("expected [2 2], got %v", got)
	}
}

func TestExtractDays_NoNumbers(t *testing.T) {
	// No digits → empty result
	if got := ExtractDays("mark today as done"); len(got) != 0 {
		t.Errorf("expected no days, got %v", got)
	}
}

func TestExtractDays_StrayNumberQuirk(t *testing.T) {
	// Documented quirk: a stray number in unrelated prose is still extracted
	got := ExtractDays("mark the day i told you about 2 weeks ago")
	if !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("expected quirk extraction [2], got %v", got)
	}
}

// --- Match rule order ---

func TestMatch_TodayRoutesToNextPlan(t *testing.T) {
	// Rule 1: "today" or "next" wins before anything else
	it, ok := Match("what's my plan for today")
	if !ok || it.Kind != NextPlan {
		t.Errorf("expected NextPlan, got %+v ok=%v", it, ok)
	}
}

func TestMatch_UnmarkBeforeMark(t *testing.T) {
	// "mark day 2 as not done" must route to the unmark branch, never mark,
	// because the unmark rule is checked first
	it, ok := Match("mark day 2 as not done")
	if !ok || it.Kind != Unmark {
		t.Fatalf("expected Unmark, got %+v ok=%v", it, ok)
	}
	if !reflect.DeepEqual(it.Days, []int{2}) {
		t.Errorf("expected days [2], got %v", it.Days)
	}
}

func TestMatch_UnmarkKeywordVariants(t *testing.T) {
	// "unmark", "uncompleted" and "incomplete" all select the unmark branch
	for _, text := range []string{
		"unmark day 3",
		"set day 3 as uncompleted",
		"day 3 is incomplete",
	} {
		it, ok := Match(text)
		if !ok || it.Kind != Unmark {
			t.Errorf("%q: expected Unmark, got %+v ok=%v", text, it, ok)
		}
	}
}

func TestMatch_MarkMultipleDays(t *testing.T) {
	// "Mark Day 2 and 3 as done" extracts both days into the mark branch
	it, ok := Match("Mark Day 2 and 3 as done")
	if !ok || it.Kind != Mark {
		t.Fatalf("expected Mark, got %+v ok=%v", it, ok)
	}
	if !reflect.DeepEqual(it.Days, []int{2, 3}) {
		t.Errorf("expected days [2 3], got %v", it.Days)
	}
}

func TestMatch_DayPlanRule(t *testing.T) {
	// "day" plus problem/plan/focus asks for that specific day's plan
	it, ok := Match("show day 4's plan")
	if !ok || it.Kind != DayPlan {
		t.Fatalf("expected DayPlan, got %+v ok=%v", it, ok)
	}
	if len(it.Days) == 0 || it.Days[0] != 4 {
		t.Errorf("expected first day 4, got %v", it.Days)
	}
}

func TestMatch_WhatPlanRoutesToNextPlan(t *testing.T) {
	// Rule 5: "what" + "plan" without a day falls to the next-plan view
	it, ok := Match("what is the plan")
	if !ok || it.Kind != NextPlan {
		t.Errorf("expected NextPlan, got %+v ok=%v", it, ok)
	}
}

func TestMatch_CompletedDaysTable(t *testing.T) {
	// show/what/list/which + "completed" + "day" selects the table view
	it, ok := Match("list my completed days")
	if !ok || it.Kind != CompletedTable {
		t.Errorf("expected CompletedTable, got %+v ok=%v", it, ok)
	}
}

func TestMatch_RemainingCount(t *testing.T) {
	// "how many ... left" selects the remaining-count view
	it, ok := Match("how many days are left")
	if !ok || it.Kind != Remaining {
		t.Errorf("expected Remaining, got %+v ok=%v", it, ok)
	}
}

func TestMatch_TopicsSummary(t *testing.T) {
	// Bare "completed"/"topics"/"done" (no day keyword) selects the summary
	it, ok := Match("which topics have i finished, show completed topics")
	if !ok || it.Kind != TopicsSummary {
		t.Errorf("expected TopicsSummary, got %+v ok=%v", it, ok)
	}
}

func TestMatch_Clear(t *testing.T) {
	// "clear" wipes progress
	it, ok := Match("clear my progress please")
	if !ok || it.Kind != ClearProgress {
		t.Errorf("expected ClearProgress, got %+v ok=%v", it, ok)
	}
}

func TestMatch_NoMatchSignals(t *testing.T) {
	// Unrecognizable input signals no structured interpretation
	if it, ok := Match("tell me a joke"); ok {
		t.Errorf("expected no match, got %+v", it)
	}
}

func TestMatch_SubstringQuirk(t *testing.T) {
	// Matching is substring containment on the whole string, not tokenized:
	// "remarkable day" contains "mark" and "day"
	it, ok := Match("what a remarkable day 1")
	if !ok || it.Kind != Mark {
		t.Errorf("expected coarse-match Mark, got %+v ok=%v", it, ok)
	}
}
