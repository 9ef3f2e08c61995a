package entities

import "github.com/google/uuid"

// StatusCounts partitions meetings by case status.
type StatusCounts struct {
	Total      int64 `json:"total"`
	Success    int64 `json:"success"`
	Failed     int64 `json:"failed"`
	InProgress int64 `json:"in_progress"`
}

// SalespersonCounts is the raw per-salesperson aggregate read from storage.
type SalespersonCounts struct {
	SalespersonID   uuid.UUID `json:"salesperson_id"`
	SalespersonName string    `json:"salesperson_name"`
	StatusCounts
	AvgScore float64 `json:"avg_score"`
}

// ClientTypeCount is one bucket of the client-type distribution. Count
// includes fallback analyses; FallbackCount is the share of them.
type ClientTypeCount struct {
	ClientType    ClientType `json:"client_type"`
	Count         int64      `json:"count"`
	FallbackCount int64      `json:"fallback_count"`
}

// MonthlyCount is one month of the meeting trend. Month is "YYYY-MM".
type MonthlyCount struct {
	Month        string `json:"month"`
	Count        int64  `json:"count"`
	SuccessCount int64  `json:"success_count"`
}
