package models

// DashboardStats is the full aggregate structure returned by the admin
// dashboard endpoint. Everything here is recomputed from the raw payment and
// user collections on every request.
type DashboardStats struct {
	Timeframe        string          `json:"timeframe"`
	TotalUsers       int64           `json:"totalUsers"`
	TotalPayments    int64           `json:"totalPayments"`
	PendingPayments  int64           `json:"pendingPayments"`
	ApprovedPayments int64           `json:"approvedPayments"`
	RejectedPayments int64           `json:"rejectedPayments"`
	TotalRevenue     int64           `json:"totalRevenue"`
	ApprovalRate     float64         `json:"approvalRate"`
	ConversionRate   float64         `json:"conversionRate"`
	RevenueGrowth    float64         `json:"revenueGrowth"`
	PaymentGrowth    float64         `json:"paymentGrowth"`
	UserGrowth       float64         `json:"userGrowth"`
	DailyRevenue     []RevenuePoint  `json:"dailyRevenue"`
	WeeklyComparison []RevenuePoint  `json:"weeklyComparison"`
	MonthlyTrend     []RevenuePoint  `json:"monthlyTrend"`
	TopSpenders      []SpenderTotal  `json:"topSpenders"`
}

// RevenuePoint is one bucket of a time-bucketed revenue series
type RevenuePoint struct {
	Label    string `json:"label"`
	Revenue  int64  `json:"revenue"`
	Payments int64  `json:"payments"`
}

// SpenderTotal is one row of the top-spenders ranking, grouped over
// approved payments only.
type SpenderTotal struct {
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	UserEmail  string `json:"userEmail"`
	TotalSpent int64  `json:"totalSpent"`
	Payments   int64  `json:"payments"`
}
