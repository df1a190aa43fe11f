// Package agent composes the deterministic dispatcher with the LLM fallback.
// Every call produces a well-formed response envelope; no internal fault ever
// propagates past this boundary.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"dsacoach/internal/intent"
	"dsacoach/internal/llm"
	"dsacoach/internal/schedule"
	"dsacoach/internal/sessionlog"
	"dsacoach/internal/store"
	"dsacoach/internal/tracker"
)

// Response is the envelope every call returns. Snackbar carries a UI hint on
// the error path only.
type Response struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Snackbar string `json:"snackbar,omitempty"`
}

// Completer is the LLM capability the fallback path consumes.
type Completer interface {
	Chat(ctx context.Context, system, user, model string) (string, error)
}

// Agent routes each message: structured interpretation first, LLM second.
type Agent struct {
	catalog *schedule.Catalog
	store   *store.Store
	tracker *tracker.Tracker
	llm     Completer
	logs    *sessionlog.Log
}

// New wires an Agent from its collaborators.
func New(catalog *schedule.Catalog, s *store.Store, tr *tracker.Tracker, c Completer, logs *sessionlog.Log) *Agent {
	return &Agent{catalog: catalog, store: s, tracker: tr, llm: c, logs: logs}
}

// HandleMessage processes one user message. Structured rules are tried first;
// only when none matches is the LLM invoked, seeded with the completed-topics
// summary as grounding context. Every terminal outcome is appended to the
// session log when sessionID is non-empty.
func (a *Agent) HandleMessage(ctx context.Context, input, sessionID, model, level string) Response {
	var resp Response
	if it, ok := intent.Match(input); ok {
		msg, err := a.execute(it)
		if err != nil {
			slog.Error("structured rule failed", "input", input, "error", err)
			resp = Response{
				Status:   "error",
				Message:  "❌ Something went wrong handling that. Please try again.",
				Snackbar: "A progress update failed. Please retry.",
			}
		} else {
			resp = Response{Status: "ok", Message: msg}
		}
	} else {
		resp = a.fallback(ctx, input, model, level)
	}

	if sessionID != "" {
		a.logs.Append(sessionID, input, resp.Message)
	}
	return resp
}

// execute runs one matched intent against the tracker and store.
func (a *Agent) execute(it intent.Intent) (string, error) {
	switch it.Kind {
	case intent.NextPlan:
		return a.tracker.NextIncompletePlan()

	case intent.Unmark:
		if len(it.Days) == 0 {
			return "❓ Couldn't extract which day to unmark. Try 'Mark Day 3 as not done'.", nil
		}
		for _, d := range it.Days {
			if err := a.store.UnmarkCompleted(d); err != nil {
				return "", err
			}
		}
		return fmt.Sprintf("↩️ Day(s) %s marked as not completed.", joinDays(it.Days)), nil

	case intent.Mark:
		if len(it.Days) == 0 {
			return "❓ Couldn't extract which day to mark. Try 'Mark Day 3 as done'.", nil
		}
		var marked, unknown []int
		for _, d := range it.Days {
			e, ok := a.catalog.Day(d)
			if !ok {
				unknown = append(unknown, d)
				continue
			}
			if err := a.store.MarkCompleted(d, e.Focus); err != nil {
				return "", err
			}
			marked = append(marked, d)
		}
		var b strings.Builder
		if len(marked) > 0 {
			fmt.Fprintf(&b, "✅ Day(s) %s marked as completed.", joinDays(marked))
		}
		if len(unknown) > 0 {
			if b.Len() > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "⚠️ Day(s) %s not found in the schedule.", joinDays(unknown))
		}
		return b.String(), nil

	case intent.DayPlan:
		if len(it.Days) == 0 {
			return "❓ Couldn't find which day you want. Try 'Show Day 4's plan'.", nil
		}
		return a.tracker.DayPlan(it.Days[0]), nil

	case intent.CompletedTable:
		table, count, err := a.tracker.CompletedDaysTable()
		if err != nil {
			return "", err
		}
		if count == 0 {
			return "You haven't completed any days yet. Let's get started!", nil
		}
		return table, nil

	case intent.Remaining:
		remaining, total, err := a.tracker.RemainingCount()
		if err != nil {
			return "", err
		}
		if remaining == 0 {
			return tracker.AllDaysDone, nil
		}
		return fmt.Sprintf("%d day(s) left out of %d. Keep at it! 💪", remaining, total), nil

	case intent.TopicsSummary:
		summary, _, err := a.tracker.CompletedTopicsSummary()
		if err != nil {
			return "", err
		}
		return summary, nil

	case intent.ClearProgress:
		if err := a.store.Clear(); err != nil {
			return "", err
		}
		return "🧹 Progress has been cleared. Start again soon.", nil
	}
	return "", fmt.Errorf("agent: unhandled intent kind %d", it.Kind)
}

// fallback sends the message to the LLM with the level persona plus the
// completed-topics summary as grounding, so the model doesn't invent progress.
func (a *Agent) fallback(ctx context.Context, input, model, level string) Response {
	system := personaForLevel(level)
	if summary, topics, err := a.tracker.CompletedTopicsSummary(); err == nil && len(topics) > 0 {
		system += "\n\nThe candidate's progress so far:\n" + summary
	}

	reply, err := a.llm.Chat(ctx, system, input, model)
	if err == nil {
		return Response{Status: "ok", Message: reply}
	}

	var httpErr *llm.HTTPError
	switch {
	case errors.Is(err, llm.ErrNoAPIKey):
		slog.Error("llm call skipped", "error", err)
		return Response{
			Status:   "error",
			Message:  "❌ Missing OPENAI_API_KEY in environment variables.",
			Snackbar: "Internal configuration error. Please check environment setup.",
		}
	case errors.As(err, &httpErr):
		// Raw provider body stays in server logs; callers get the status only.
		slog.Error("llm http error", "status", httpErr.Status)
		return Response{
			Status:   "error",
			Message:  fmt.Sprintf("❌ API call failed: %d", httpErr.Status),
			Snackbar: "LLM backend failed. Please try again later.",
		}
	default:
		slog.Error("llm call failed", "error", err)
		return Response{
			Status:   "error",
			Message:  "❌ Something went wrong. Please try again.",
			Snackbar: "An unexpected error occurred.",
		}
	}
}

// Logs returns the session history for sessionID.
func (a *Agent) Logs(sessionID string) []sessionlog.Entry {
	return a.logs.Logs(sessionID)
}

// ClearSession persists then empties the in-memory log for sessionID.
func (a *Agent) ClearSession(sessionID string) {
	a.logs.Clear(sessionID)
}

func joinDays(days []int) string {
	sorted := append([]int(nil), days...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, d := range sorted {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ", ")
}
