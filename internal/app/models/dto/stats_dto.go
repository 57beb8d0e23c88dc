package dto

// StatisticType selects the grouping dimension for a statistics query.
type StatisticType string

const (
	StatisticAverage      StatisticType = "average"
	StatisticSchool       StatisticType = "school"
	StatisticMunicipality StatisticType = "municipality"
	StatisticSemester     StatisticType = "semester"
	StatisticRiskLevel    StatisticType = "risk_level"
)

// Valid reports whether the statistic type is one of the supported modes.
func (t StatisticType) Valid() bool {
	switch t {
	case StatisticAverage, StatisticSchool, StatisticMunicipality, StatisticSemester, StatisticRiskLevel:
		return true
	}
	return false
}

// StatisticItem is one group of a breakdown: its label, count and share of
// the total as a percentage rounded to two decimals.
type StatisticItem struct {
	Label      string  `json:"label" example:"MEDIUM"`
	Count      int64   `json:"count" example:"12"`
	Percentage float64 `json:"percentage" example:"32.43"`
}

// AverageStatistics is the payload of the AVERAGE mode: the overall mean,
// the risk-tier distribution and a fixed five-bucket histogram of raw
// averages.
type AverageStatistics struct {
	OverallAverage   float64          `json:"overallAverage" example:"3.12"`
	RiskDistribution []StatisticItem  `json:"riskDistribution"`
	AverageRanges    map[string]int64 `json:"averageRanges"` // keys "0-1".."4-5"
}

// GroupedStatistics is the payload of the SCHOOL, MUNICIPALITY, SEMESTER
// and RISK_LEVEL modes.
type GroupedStatistics struct {
	TotalStudents int64           `json:"totalStudents"`
	Items         []StatisticItem `json:"items"`
}

// StatisticsResponse is the mode-discriminated statistics result. Exactly
// one of Average and Grouped is set, matching Type.
type StatisticsResponse struct {
	Type    StatisticType      `json:"type"`
	Average *AverageStatistics `json:"average,omitempty"`
	Grouped *GroupedStatistics `json:"grouped,omitempty"`
}

// ChartType selects the rendering style for the chart endpoint.
type ChartType string

const (
	ChartBar  ChartType = "bar"
	ChartPie  ChartType = "pie"
	ChartLine ChartType = "line"
)

// Valid reports whether the chart type is supported.
func (t ChartType) Valid() bool {
	switch t {
	case ChartBar, ChartPie, ChartLine:
		return true
	}
	return false
}

// ChartResponse carries a rendered chart as a base64 PNG plus an echo of
// the requested parameters.
type ChartResponse struct {
	StatisticType StatisticType `json:"statisticType"`
	ChartType     ChartType     `json:"chartType"`
	ImageBase64   string        `json:"imageBase64"`
}
