package dto

import "time"

type PromotionRequestDTO struct {
	Name        string  `json:"name" example:"Welcome back week"`
	Description string  `json:"description"`
	Type        string  `json:"type" example:"AUTOMATIC"`
	StartTime   string  `json:"startTime" example:"2025-01-06T00:00:00Z"`
	EndTime     string  `json:"endTime" example:"2025-01-13T00:00:00Z"`
	MinSpend    float64 `json:"minSpending,omitempty"`
	Rate        float64 `json:"rate,omitempty" example:"0.1"`
	Points      int     `json:"points,omitempty"`
}

type PromotionResponseDTO struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	MinSpend  float64   `json:"minSpending,omitempty"`
	Rate      float64   `json:"rate,omitempty"`
	Points    int       `json:"points,omitempty"`
}
