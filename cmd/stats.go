package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/algebrix/algebrix/internal/equation"
	"github.com/algebrix/algebrix/internal/progress"
	"github.com/algebrix/algebrix/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats [name]",
	Short: "Show a learner's progress report, or list learners",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		if len(args) == 0 {
			names, err := s.SnapshotRepo().Learners(ctx)
			if err != nil {
				return fmt.Errorf("list learners: %w", err)
			}
			if len(names) == 0 {
				fmt.Println("No learners yet.")
				return nil
			}
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		}

		name := strings.TrimSpace(args[0])
		snap, err := s.SnapshotRepo().Latest(ctx, name)
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		if snap == nil {
			return fmt.Errorf("no saved progress for %q", name)
		}

		catalog, err := loadCatalog(cfg)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		rep, err := reportFromSnapshot(catalog, name, snap.Data)
		if err != nil {
			return err
		}

		events, err := s.EventRepo().QueryTutorEvents(ctx, name, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		printReport(rep, snap, len(events))
		return nil
	},
}

// reportFromSnapshot rebuilds both ledgers from saved data. A kind missing
// from the snapshot counts as untouched.
func reportFromSnapshot(catalog *equation.Catalog, name string, data store.SnapshotData) (progress.Report, error) {
	sums := make(map[equation.Kind]progress.Summary, len(equation.Kinds))
	for _, kind := range equation.Kinds {
		entries, ok := data.Progress[string(kind)]
		if !ok {
			sums[kind] = progress.New(catalog.Len(kind)).Summary()
			continue
		}
		t, err := progress.Restore(entries)
		if err != nil {
			return progress.Report{}, fmt.Errorf("restore %s progress: %w", kind, err)
		}
		sums[kind] = t.Summary()
	}
	return progress.BuildReport(name, sums[equation.KindLinear], sums[equation.KindQuadratic]), nil
}

func printReport(rep progress.Report, snap *store.Snapshot, events int) {
	sep := strings.Repeat("─", 50)
	st := rep.Stats

	fmt.Printf("Learner:   %s\n", rep.StudentName)
	fmt.Printf("Level:     %s (quiz %.0f%%)\n", snap.Data.Level, snap.Data.QuizScore)
	fmt.Printf("Saved:     %s\n", snap.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Events:    %d\n", events)
	fmt.Println(sep)
	fmt.Printf("Linear:    %d / %d\n", st.LinearCompleted, st.LinearTotal)
	fmt.Printf("Quadratic: %d / %d\n", st.QuadraticCompleted, st.QuadraticTotal)
	fmt.Printf("Accuracy:  %d%%\n", st.Accuracy)
	fmt.Printf("Attempts:  %d total, %.1f avg\n", st.TotalAttempts, st.AvgAttempts)
	fmt.Printf("Time:      %.1fs total, %.1fs avg\n", st.TotalTime, st.AvgTime)

	if len(rep.Achievements) > 0 {
		fmt.Println(sep)
		for _, a := range rep.Achievements {
			fmt.Printf("%s %s: %s\n", a.Icon, a.Name, a.Description)
		}
	}
	if len(rep.Insights) > 0 {
		fmt.Println(sep)
		for _, in := range rep.Insights {
			fmt.Println("• " + in)
		}
	}
}
