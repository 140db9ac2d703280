package models

// Backend-computed dashboard metrics. The client renders these as-is and
// never recomputes them locally.

type DashboardStats struct {
	ActiveJobs        int     `json:"activeJobs"`
	TotalApplications int     `json:"totalApplications"`
	ShortlistedCount  int     `json:"shortlistedCount"`
	HiredCount        int     `json:"hiredCount"`
	AvgMatchScore     float64 `json:"avgMatchScore"`
}

type FunnelStage struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

type HiringFunnel struct {
	CompanyID string        `json:"companyId"`
	Stages    []FunnelStage `json:"stages"`
}

type JobStats struct {
	JobID            string  `json:"jobId"`
	Title            string  `json:"title"`
	Applications     int     `json:"applications"`
	Shortlisted      int     `json:"shortlisted"`
	AvgMatchScore    float64 `json:"avgMatchScore"`
	ViewsLast30Days  int     `json:"viewsLast30Days"`
	ConversionRate   float64 `json:"conversionRate"`
}
