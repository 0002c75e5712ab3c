package qc

import "github.com/nextstrain/nextclade-core/internal/mutation"

// ClusteredSnp is one detected dense run of private substitutions.
type ClusteredSnp struct {
	Start         int
	End           int
	NumberOfSnps  int
}

// SnpClustersResult is the SnpClusters rule's outcome: penalizes
// queries whose private substitutions bunch up in dense runs, a
// pattern associated with sequencing/assembly artifacts rather than
// real evolution. Grounded on
// original_source/packages/nextclade/src/qc/qc_rule_snp_clusters.rs's
// rule_snp_clusters/find_snp_clusters sliding-window algorithm.
type SnpClustersResult struct {
	Score         float64
	Status        Status
	TotalSNPs     int
	ClusteredSNPs []ClusteredSnp
}

func (r *SnpClustersResult) RuleScore() float64 { return r.Score }

func ruleSnpClusters(substitutions []mutation.NucSub, config SnpClustersConfig) *SnpClustersResult {
	if !config.Enabled {
		return nil
	}

	var clusters [][]int
	var current []int
	previousPos := -1
	for _, s := range substitutions {
		pos := s.Pos.Int()
		current = append(current, pos)
		for len(current) > 0 && current[0] < pos-config.WindowSize {
			current = current[1:]
		}
		if len(current) > config.ClusterCutOff {
			extended := false
			if len(clusters) > 0 && len(current) > 1 {
				last := clusters[len(clusters)-1]
				if last[len(last)-1] == previousPos {
					clusters[len(clusters)-1] = append(last, pos)
					extended = true
				}
			}
			if !extended {
				clusters = append(clusters, append([]int(nil), current...))
			}
		}
		previousPos = pos
	}

	clusteredSNPs := make([]ClusteredSnp, 0, len(clusters))
	totalSNPs := 0
	for _, c := range clusters {
		clusteredSNPs = append(clusteredSNPs, ClusteredSnp{Start: c[0], End: c[len(c)-1], NumberOfSnps: len(c)})
		totalSNPs += len(c)
	}

	score := float64(len(clusters)) * config.ScoreWeight
	if score < 0 {
		score = 0
	}
	return &SnpClustersResult{Score: score, Status: StatusFromScore(score), TotalSNPs: totalSNPs, ClusteredSNPs: clusteredSNPs}
}
