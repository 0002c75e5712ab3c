package qc

import "github.com/nextstrain/nextclade-core/internal/coord"

// Config is the dataset-provided QC configuration, one sub-config per
// rule, grounded field-for-field on
// original_source/packages_rs/nextclade/src/qc/qc_config.rs's
// QcRulesConfig* structs (renamed from Rust's snake_case to Go's
// CamelCase, JSON tags preserved for dataset-file compatibility).
type Config struct {
	SchemaVersion    string                     `json:"schemaVersion,omitempty"`
	MissingData      MissingDataConfig          `json:"missingData"`
	MixedSites       MixedSitesConfig           `json:"mixedSites"`
	PrivateMutations PrivateMutationsConfig     `json:"privateMutations"`
	SnpClusters      SnpClustersConfig          `json:"snpClusters"`
	FrameShifts      FrameShiftsConfig          `json:"frameShifts"`
	StopCodons       StopCodonsConfig           `json:"stopCodons"`
}

type MissingDataConfig struct {
	Enabled             bool    `json:"enabled"`
	MissingDataThreshold float64 `json:"missingDataThreshold"`
	ScoreBias            float64 `json:"scoreBias"`
}

type MixedSitesConfig struct {
	Enabled            bool `json:"enabled"`
	MixedSitesThreshold int  `json:"mixedSitesThreshold"`
}

type PrivateMutationsConfig struct {
	Enabled                        bool    `json:"enabled"`
	WeightReversionSubstitutions   float64 `json:"weightReversionSubstitutions"`
	WeightLabeledSubstitutions     float64 `json:"weightLabeledSubstitutions"`
	WeightUnlabeledSubstitutions   float64 `json:"weightUnlabeledSubstitutions"`
	Typical                        float64 `json:"typical"`
	Cutoff                         float64 `json:"cutoff"`
}

type SnpClustersConfig struct {
	Enabled       bool    `json:"enabled"`
	WindowSize    int     `json:"windowSize"`
	ClusterCutOff int     `json:"clusterCutOff"`
	ScoreWeight   float64 `json:"scoreWeight"`
}

// FrameShiftLocation names a CDS and a codon range whose frame shift
// is a known, dataset-expected artifact and should not incur a QC
// penalty.
type FrameShiftLocation struct {
	GeneName   string           `json:"geneName"`
	CodonRange coord.AaRefRange `json:"codonRange"`
}

type FrameShiftsConfig struct {
	Enabled             bool                 `json:"enabled"`
	IgnoredFrameShifts  []FrameShiftLocation `json:"ignoredFrameShifts"`
	ScoreWeight         float64              `json:"scoreWeight"`
}

// StopCodonLocation names a CDS and a codon index whose premature
// stop is dataset-expected (e.g. a known stop-codon readthrough site)
// and should not incur a QC penalty.
type StopCodonLocation struct {
	GeneName string `json:"geneName"`
	Codon    int    `json:"codon"`
}

type StopCodonsConfig struct {
	Enabled            bool                `json:"enabled"`
	IgnoredStopCodons  []StopCodonLocation `json:"ignoredStopCodons"`
	ScoreWeight        float64             `json:"scoreWeight"`
}

// DefaultConfig mirrors the Rust defaults for the two rules that ship
// disabled-by-default with a nonzero weight
// (QcRulesConfigFrameShifts/StopCodons's Default impls).
func DefaultConfig() Config {
	return Config{
		FrameShifts: FrameShiftsConfig{Enabled: false, ScoreWeight: 75},
		StopCodons:  StopCodonsConfig{Enabled: false, ScoreWeight: 75},
	}
}
