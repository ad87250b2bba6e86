package dashboard

// Stats is the summary block on the dashboard. Profit windows all run from
// the start of the period through now, in the server's local time zone.
type Stats struct {
	RevenueToday          float64 `json:"revenue_today"`
	TransactionCountToday int     `json:"transaction_count_today"`
	TotalActiveProducts   int     `json:"total_active_products"`
	LowStockCount         int     `json:"low_stock_count"`
	ProfitToday           float64 `json:"profit_today"`
	ProfitMonth           float64 `json:"profit_month"`
	ProfitYear            float64 `json:"profit_year"`
}

// ChartPoint is one day on the trailing revenue chart.
type ChartPoint struct {
	Date    string  `json:"date"`
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
}
