package models

// Stats holds the admin dashboard counters.
// MonthlyDownloads is the lifetime download total across all documents;
// the name is kept for compatibility with the dashboard.
type Stats struct {
	TotalDocuments   int `json:"totalDocuments"`
	ActiveGrievances int `json:"activeGrievances"`
	MonthlyDownloads int `json:"monthlyDownloads"`
	TotalPolicies    int `json:"totalPolicies"`
}
