package domain

// SweepResult summarises one reminder sweep.
type SweepResult struct {
	Cards   int `json:"cards"`
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

const (
	MinDaysAhead = 1
	MaxDaysAhead = 30
)
