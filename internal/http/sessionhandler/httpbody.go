package sessionhandler

import "time"

type CreateSessionBody struct {
	Topic        string    `json:"topic"       binding:"required" example:"Goroutines 101"`
	Description  string    `json:"description"`
	StartTime    time.Time `json:"start_time"  binding:"required" example:"2026-09-01T16:00:00Z"`
	DurationMins int       `json:"duration_mins" binding:"required,gt=0,lte=480"`
} // @name CreateSessionRequest

type ErrorResponse struct {
	Error string `json:"error"`
} // @name ErrorResponse
