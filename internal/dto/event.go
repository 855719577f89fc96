package dto

import "time"

type EventRequestDTO struct {
	Name        string `json:"name" example:"Frosh social"`
	Location    string `json:"location" example:"BA 2250"`
	StartTime   string `json:"startTime" example:"2025-09-02T18:00:00Z"`
	EndTime     string `json:"endTime" example:"2025-09-02T21:00:00Z"`
	Capacity    *int   `json:"capacity,omitempty"`
	TotalPoints int    `json:"points" example:"500"`
}

type EventResponseDTO struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Location      string    `json:"location"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Capacity      *int      `json:"capacity,omitempty"`
	TotalPoints   int       `json:"totalPoints"`
	PointsRemain  int       `json:"pointsRemain"`
	PointsAwarded int       `json:"pointsAwarded"`
}

type EventAwardRequestDTO struct {
	Amount int    `json:"amount" example:"30"`
	Utorid string `json:"utorid,omitempty"`
}

type EventAwardResponseDTO struct {
	TransactionIDs []int `json:"transactionIds"`
}

type EventGuestRequestDTO struct {
	Utorid string `json:"utorid" example:"clive123"`
}
