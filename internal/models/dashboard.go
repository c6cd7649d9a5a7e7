package models

// DashboardStats are the headline numbers on the dashboard page.
type DashboardStats struct {
	TotalCalculations     int `json:"totalCalculations"`
	ThisMonthCalculations int `json:"thisMonthCalculations"`
}

// DashboardActivity is one row of recent activity on the dashboard.
type DashboardActivity struct {
	Exam   string `json:"exam"`
	Date   string `json:"date"`
	Rank   string `json:"rank"`
	Score  int    `json:"score"`
	Status string `json:"status"`
}

// DashboardAchievement is a badge the dashboard service may report.
type DashboardAchievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
}

// DashboardData is the response shape of the external dashboard service.
type DashboardData struct {
	Stats          DashboardStats         `json:"stats"`
	RecentActivity []DashboardActivity    `json:"recentActivity"`
	Achievements   []DashboardAchievement `json:"achievements"`
}
