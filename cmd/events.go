package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/algebrix/algebrix/internal/llm"
	"github.com/algebrix/algebrix/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect the learner and LLM event logs",
}

var eventsTutorCmd = &cobra.Command{
	Use:   "tutor <name>",
	Short: "List a learner's attempts, hints, completions and quizzes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		typ, _ := cmd.Flags().GetString("type")

		_, s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryTutorEvents(context.Background(), strings.TrimSpace(args[0]), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		writeTutorEvents(cmd.OutOrStdout(), filterTutor(events, store.TutorEventType(typ), limit))
		return nil
	},
}

var eventsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		_, s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		writeLLMEvents(cmd.OutOrStdout(), filterLLM(events, purpose, limit))
		return nil
	},
}

var eventsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the prompt and response of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid event id %q", args[0])
		}

		_, s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(context.Background(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}
		writeLLMEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

var eventsUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Summarize LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		writeUsage(cmd.OutOrStdout(), byPurpose, byModel)
		return nil
	},
}

// filterTutor keeps events of the given type (all when empty) and then the
// newest limit of them. Events arrive oldest first.
func filterTutor(events []store.TutorEvent, typ store.TutorEventType, limit int) []store.TutorEvent {
	var out []store.TutorEvent
	for _, e := range events {
		if typ == "" || e.Type == typ {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// filterLLM applies the purpose filter before the limit so a rare purpose
// is not crowded out by newer calls.
func filterLLM(events []store.LLMEvent, purpose string, limit int) []store.LLMEvent {
	var out []store.LLMEvent
	for _, e := range events {
		if purpose != "" && e.Purpose != purpose {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func writeTutorEvents(w io.Writer, events []store.TutorEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events recorded.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tTIME\tTYPE\tEQUATION\tSTEP\tRESULT\tDETAIL")
	for _, e := range events {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Sequence,
			e.Timestamp.Local().Format(timeLayout),
			e.Type,
			tutorEquation(e),
			tutorStep(e),
			tutorResult(e),
			truncate(e.Detail, 40),
		)
	}
	tw.Flush()
}

func tutorEquation(e store.TutorEvent) string {
	if e.Kind == "" {
		return "-"
	}
	return fmt.Sprintf("%s #%d", e.Kind, e.Index+1)
}

func tutorStep(e store.TutorEvent) string {
	if e.Step == 0 {
		return "-"
	}
	return strconv.Itoa(e.Step)
}

func tutorResult(e store.TutorEvent) string {
	switch e.Type {
	case store.EventAttempt:
		if e.Correct {
			return "correct"
		}
		return "wrong"
	case store.EventCompletion:
		return fmt.Sprintf("%.1fs", e.Value)
	case store.EventQuiz:
		return fmt.Sprintf("%.0f%% %s", e.Value, e.Level)
	}
	return "-"
}

func writeLLMEvents(w io.Writer, events []store.LLMEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No LLM events recorded.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tPURPOSE\tMODEL\tIN\tOUT\tMS\tOK")
	for _, e := range events {
		ok := "yes"
		if !e.Success {
			ok = "no"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			e.ID,
			e.Timestamp.Local().Format(timeLayout),
			e.Purpose,
			truncate(e.Model, 28),
			e.InputTokens,
			e.OutputTokens,
			e.LatencyMs,
			ok,
		)
	}
	tw.Flush()
}

func writeLLMEvent(w io.Writer, e *store.LLMEvent) {
	fmt.Fprintf(w, "Event %d (%s via %s, purpose %s)\n", e.ID, e.Model, e.Provider, e.Purpose)
	fmt.Fprintf(w, "At %s, %dms, %d tokens in, %d out\n",
		e.Timestamp.Local().Format(timeLayout), e.LatencyMs, e.InputTokens, e.OutputTokens)
	if e.ErrorMessage != "" {
		fmt.Fprintf(w, "Failed: %s\n", e.ErrorMessage)
	}
	writeSection(w, "Prompt", e.RequestBody)
	writeSection(w, "Response", e.ResponseBody)
}

func writeSection(w io.Writer, title, body string) {
	fmt.Fprintf(w, "\n== %s ==\n", title)
	if body == "" {
		fmt.Fprintln(w, "(empty)")
		return
	}
	fmt.Fprintln(w, strings.TrimRight(body, "\n"))
}

func writeUsage(w io.Writer, byPurpose, byModel []store.LLMUsage) {
	if len(byPurpose) == 0 {
		fmt.Fprintln(w, "No LLM usage recorded.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "PURPOSE\tCALLS\tIN\tOUT\tAVG MS\t")
	var calls, in, out int
	for _, u := range byPurpose {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t\n", u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
		calls += u.Calls
		in += u.InputTokens
		out += u.OutputTokens
	}
	fmt.Fprintf(tw, "total\t%d\t%d\t%d\t\t\n", calls, in, out)
	tw.Flush()

	if len(byModel) == 0 {
		return
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "MODEL\tCALLS\tCOST\t")
	var total float64
	var unpriced []string
	for _, u := range byModel {
		cost := llm.LookupCost(u.Model)
		if cost == nil {
			unpriced = append(unpriced, u.Model)
			fmt.Fprintf(tw, "%s\t%d\t?\t\n", truncate(u.Model, 32), u.Calls)
			continue
		}
		c := cost.Cost(u.InputTokens, u.OutputTokens)
		total += c
		fmt.Fprintf(tw, "%s\t%d\t%s\t\n", truncate(u.Model, 32), u.Calls, formatCost(c))
	}
	fmt.Fprintf(tw, "estimated total\t\t%s\t\n", formatCost(total))
	tw.Flush()
	if len(unpriced) > 0 {
		fmt.Fprintf(w, "No pricing for: %s\n", strings.Join(unpriced, ", "))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	eventsTutorCmd.Flags().IntP("limit", "n", 50, "Number of most recent events to show")
	eventsTutorCmd.Flags().StringP("type", "t", "", "Only show one event type (attempt, hint, completion, quiz)")
	eventsLLMCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	eventsLLMCmd.Flags().StringP("purpose", "p", "", "Only show calls with this purpose (e.g. explain)")

	eventsCmd.AddCommand(eventsTutorCmd)
	eventsCmd.AddCommand(eventsLLMCmd)
	eventsCmd.AddCommand(eventsShowCmd)
	eventsCmd.AddCommand(eventsUsageCmd)
}
