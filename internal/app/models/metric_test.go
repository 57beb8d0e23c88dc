package models

import "testing"

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		name    string
		average float64
		want    RiskLevel
	}{
		{"zero", 0.0, RiskHigh},
		{"high upper bound", 1.0, RiskHigh},
		{"inside range gap", 1.05, RiskLow},
		{"medium lower bound", 1.1, RiskMedium},
		{"medium mid", 2.0, RiskMedium},
		{"medium upper bound", 2.9, RiskMedium},
		{"just above medium", 2.91, RiskLow},
		{"passing average", 3.5, RiskLow},
		{"top of scale", 5.0, RiskLow},
		{"negative", -0.5, RiskLow},
		{"above scale", 5.5, RiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyRisk(tt.average); got != tt.want {
				t.Errorf("ClassifyRisk(%v) = %v, want %v", tt.average, got, tt.want)
			}
		})
	}
}
