package qc

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nextstrain/nextclade-core/internal/coord"
	"github.com/nextstrain/nextclade-core/internal/mutation"
)

func TestRuleMixedSitesLiteralScenario(t *testing.T) {
	// spec scenario: 3 N plus 2 W with threshold 10 -> mixed count = 2, score = 20 (good: below 30).
	result := ruleMixedSites(2, MixedSitesConfig{Enabled: true, MixedSitesThreshold: 10})
	if result.Score != 20 {
		t.Fatalf("Score = %v, want 20", result.Score)
	}
	if result.Status != StatusGood {
		t.Errorf("Status = %v, want good", result.Status)
	}
}

func TestRuleMissingDataDisabledReturnsNil(t *testing.T) {
	if ruleMissingData(1000, MissingDataConfig{Enabled: false}) != nil {
		t.Error("expected nil result for a disabled rule")
	}
}

func TestStatusFromScoreBanding(t *testing.T) {
	cases := []struct {
		score float64
		want  Status
	}{
		{0, StatusGood}, {29.9, StatusGood}, {30, StatusMediocre}, {99.9, StatusMediocre}, {100, StatusBad},
	}
	for _, c := range cases {
		if got := StatusFromScore(c.score); got != c.want {
			t.Errorf("StatusFromScore(%v) = %v, want %v", c.score, got, c.want)
		}
	}
}

func TestRuleSnpClustersDetectsDenseRun(t *testing.T) {
	subs := []mutation.NucSub{
		{Pos: coord.NewNucRefGlobalPosition(10)},
		{Pos: coord.NewNucRefGlobalPosition(12)},
		{Pos: coord.NewNucRefGlobalPosition(14)},
		{Pos: coord.NewNucRefGlobalPosition(500)},
	}
	result := ruleSnpClusters(subs, SnpClustersConfig{Enabled: true, WindowSize: 10, ClusterCutOff: 1, ScoreWeight: 50})
	want := []ClusteredSnp{{Start: 10, End: 14, NumberOfSnps: 3}}
	if diff := cmp.Diff(want, result.ClusteredSNPs); diff != "" {
		t.Fatalf("ClusteredSNPs mismatch (-want +got):\n%s", diff)
	}
	if result.Score != 50 {
		t.Errorf("Score = %v, want 50", result.Score)
	}
}

func TestCombineAggregatesOverallScore(t *testing.T) {
	config := Config{
		MissingData: MissingDataConfig{Enabled: true, MissingDataThreshold: 100, ScoreBias: 0},
		MixedSites:  MixedSitesConfig{Enabled: true, MixedSitesThreshold: 10},
	}
	inputs := Inputs{TotalMissing: 0, TotalNonACGTN: 2}
	result := Combine(inputs, config)
	if result.MixedSites.Score != 20 {
		t.Fatalf("MixedSites.Score = %v, want 20", result.MixedSites.Score)
	}
	want := 20.0 * 20.0 * 0.01
	if result.OverallScore != want {
		t.Errorf("OverallScore = %v, want %v", result.OverallScore, want)
	}
	if result.OverallStatus != StatusGood {
		t.Errorf("OverallStatus = %v, want good", result.OverallStatus)
	}
}
