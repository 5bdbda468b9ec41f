package models

type (
	// ScoreBreakdown holds the six dimension sub-scores, each in [0,100].
	ScoreBreakdown struct {
		CodeQuality   int `json:"codeQuality" yaml:"code_quality"`
		TestCoverage  int `json:"testCoverage" yaml:"test_coverage"`
		Documentation int `json:"documentation" yaml:"documentation"`
		PRDescription int `json:"prDescription" yaml:"pr_description"`
		CodeStyle     int `json:"codeStyle" yaml:"code_style"`
		Impact        int `json:"impact" yaml:"impact"`
	}

	ScoreMetadata struct {
		FilesChanged int  `json:"filesChanged" yaml:"files_changed"`
		Additions    int  `json:"additions" yaml:"additions"`
		Deletions    int  `json:"deletions" yaml:"deletions"`
		TestsPassed  bool `json:"testsPassed" yaml:"tests_passed"`
		HasTests     bool `json:"hasTests" yaml:"has_tests"`
	}

	// ScoreResult is the outcome of scoring one pull request. Metadata is nil
	// when the result comes from fallback scoring.
	ScoreResult struct {
		Score     int            `json:"score" yaml:"score"`
		Feedback  string         `json:"feedback" yaml:"feedback"`
		Breakdown ScoreBreakdown `json:"breakdown" yaml:"breakdown"`
		Metadata  *ScoreMetadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
		Fallback  bool           `json:"fallback" yaml:"fallback"`
	}
)
