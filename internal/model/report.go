package model

import "github.com/google/uuid"

// DailyReport summarises the non-cancelled orders created on one day.
type DailyReport struct {
	Date         string       `json:"date"`
	TotalOrders  int          `json:"total_orders"`
	TotalRevenue int64        `json:"total_revenue"`
	Orders       []ReportLine `json:"orders"`
}

// ReportLine is one order in a daily report.
type ReportLine struct {
	ID           uuid.UUID   `json:"id"`
	TotalPrice   int64       `json:"total_price"`
	Status       OrderStatus `json:"status"`
	CreatedAt    string      `json:"created_at"`
	CustomerName string      `json:"customer_name"`
}
