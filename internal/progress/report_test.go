package progress

import (
	"strings"
	"testing"
)

func names(as []Achievement) []string {
	var out []string
	for _, a := range as {
		out = append(out, a.Name)
	}
	return out
}

func TestBuildReportEmpty(t *testing.T) {
	r := BuildReport("Ada", New(3).Summary(), New(2).Summary())
	if r.StudentName != "Ada" {
		t.Errorf("name = %q", r.StudentName)
	}
	if r.Stats.Total != 5 || r.Stats.Completed != 0 || r.Stats.Accuracy != 0 {
		t.Errorf("stats = %+v", r.Stats)
	}
	if r.Stats.AvgAttempts != 0 || r.Stats.AvgTime != 0 {
		t.Errorf("averages should be zero without completions: %+v", r.Stats)
	}
	if len(r.Achievements) != 0 || len(r.Insights) != 0 {
		t.Errorf("achievements/insights = %v / %v, want none", r.Achievements, r.Insights)
	}
	if len(r.Charts["linear"].Names) != 0 {
		t.Errorf("linear chart = %+v, want empty", r.Charts["linear"])
	}
}

func TestBuildReportStatsAndCharts(t *testing.T) {
	lin := New(2)
	_ = lin.RecordCompletion(0, 40)
	quad := New(2)
	_ = quad.RecordCompletion(0, 95.5)

	r := BuildReport("Ada", lin.Summary(), quad.Summary())
	st := r.Stats
	if st.Completed != 2 || st.Total != 4 || st.TotalAttempts != 2 {
		t.Errorf("stats = %+v", st)
	}
	if st.TotalTime != 135.5 {
		t.Errorf("total time = %v, want 135.5", st.TotalTime)
	}
	if st.AvgAttempts != 1 || st.AvgTime != 67.8 {
		t.Errorf("averages = %v/%v, want 1/67.8", st.AvgAttempts, st.AvgTime)
	}
	if st.Accuracy != 50 {
		t.Errorf("accuracy = %d, want 50", st.Accuracy)
	}

	lc := r.Charts["linear"]
	if len(lc.Names) != 1 || lc.Names[0] != "L1" || lc.Times[0] != 40 {
		t.Errorf("linear chart = %+v", lc)
	}
	qc := r.Charts["quadratic"]
	if len(qc.Names) != 1 || qc.Names[0] != "Q1" {
		t.Errorf("quadratic chart = %+v", qc)
	}
}

func TestAchievements(t *testing.T) {
	lin := New(1)
	_ = lin.RecordCompletion(0, 12)
	quad := New(1)
	_ = quad.RecordCompletion(0, 50)

	got := names(BuildReport("", lin.Summary(), quad.Summary()).Achievements)
	want := []string{"Speed Solver", "Perfect Score", "Linear Master", "Quadratic Champion", "Algebra Expert"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("achievements = %v, want %v", got, want)
	}
}

func TestAchievementsPartial(t *testing.T) {
	lin := New(2)
	_ = lin.RecordCompletion(0, 45)

	got := names(BuildReport("", lin.Summary(), New(1).Summary()).Achievements)
	if strings.Join(got, ",") != "Perfect Score" {
		t.Errorf("achievements = %v, want [Perfect Score]", got)
	}
}

func TestInsights(t *testing.T) {
	lin := New(2)
	_ = lin.RecordCompletion(0, 100)
	_ = lin.RecordCompletion(1, 50)
	quad := New(1)
	_ = quad.RecordCompletion(0, 200)

	ins := BuildReport("", lin.Summary(), quad.Summary()).Insights
	// times [100, 50, 200]: first half avg 100, second half avg 125, so no speed insight.
	if len(ins) != 2 || !strings.Contains(ins[0], "Linear equations are your strength") {
		t.Fatalf("insights = %v", ins)
	}

	quad2 := New(1)
	_ = quad2.RecordCompletion(0, 20)
	ins = BuildReport("", lin.Summary(), quad2.Summary()).Insights
	// times [100, 50, 20]: first 100, second 35.
	if len(ins) != 3 {
		t.Fatalf("insights = %v, want 3", ins)
	}
	if !strings.Contains(ins[0], "improved by 65%") {
		t.Errorf("speed insight = %q", ins[0])
	}
	if !strings.Contains(ins[1], "quadratic") {
		t.Errorf("strength insight = %q, want quadratic strength", ins[1])
	}
	if !strings.Contains(ins[2], "completed 3 out of 3") {
		t.Errorf("progress insight = %q", ins[2])
	}
}
