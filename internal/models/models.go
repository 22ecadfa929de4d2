package models

import "time"

type User struct {
	ID        int64
	ChatID    int64
	Username  string
	CreatedAt time.Time
}

type Video struct {
	ID           int64
	UserChatID   int64
	FileID       string
	FileName     string
	Duration     int
	FlightDate   int64  // unix seconds, midnight of the flight day
	TimeSlot     string // "HH:MM", bucketed to 30 minutes
	FlightNumber string
	CameraName   string
	CreatedAt    time.Time
}

type SessionStatus string

const (
	SessionPending SessionStatus = "pending"
	SessionActive  SessionStatus = "active"
	SessionExpired SessionStatus = "expired"
)

// Session binds uploads made in the shared iFLY chat to a member for a
// bounded time window.
type Session struct {
	ID           string
	IFLYChatID   int64
	TargetChatID int64
	Username     string
	Status       SessionStatus
	ExpiresAt    int64
	CreatedAt    time.Time
}

type UserStats struct {
	TotalFlightSeconds int
	FirstFlightDate    int64 // unix seconds, zero when no videos exist
}
