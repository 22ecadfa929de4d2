package database

import (
	"database/sql"
	"fmt"

	"ifly-videos-bot/internal/models"
)

// VideoRepository persists parsed clip records.
type VideoRepository struct {
	db *sql.DB
}

func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Save inserts a video record. It reports false when the same file was
// already saved for the user (INSERT OR IGNORE on file_id + user).
func (r *VideoRepository) Save(v models.Video) (bool, error) {
	result, err := r.db.Exec(`
		INSERT OR IGNORE INTO videos
			(user_chat_id, file_id, file_name, duration, flight_date, time_slot, flight_number, camera_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		v.UserChatID, v.FileID, v.FileName, v.Duration,
		v.FlightDate, v.TimeSlot, v.FlightNumber, v.CameraName)
	if err != nil {
		return false, fmt.Errorf("save video: %v", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("save video: %v", err)
	}
	return n > 0, nil
}

// ByUser returns all of a member's videos ordered for the library view:
// by day, session slot, flight, then the fixed camera order.
func (r *VideoRepository) ByUser(chatID int64) ([]models.Video, error) {
	rows, err := r.db.Query(`
		SELECT id, user_chat_id, file_id, file_name, duration, flight_date, time_slot, flight_number, camera_name, created_at
		FROM videos
		WHERE user_chat_id = ?
		ORDER BY flight_date, time_slot, flight_number,
			CASE camera_name
				WHEN 'Door' THEN 1
				WHEN 'Centerline' THEN 2
				WHEN 'Firsttimer' THEN 3
				WHEN 'Sideline' THEN 4
				ELSE 5
			END`, chatID)
	if err != nil {
		return nil, fmt.Errorf("query videos: %v", err)
	}
	defer rows.Close()

	var videos []models.Video
	for rows.Next() {
		var v models.Video
		if err := rows.Scan(
			&v.ID, &v.UserChatID, &v.FileID, &v.FileName, &v.Duration,
			&v.FlightDate, &v.TimeSlot, &v.FlightNumber, &v.CameraName, &v.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan video: %v", err)
		}
		videos = append(videos, v)
	}

	return videos, rows.Err()
}

// Delete removes one of the member's own videos.
func (r *VideoRepository) Delete(chatID, videoID int64) (bool, error) {
	result, err := r.db.Exec(
		"DELETE FROM videos WHERE user_chat_id = ? AND id = ?",
		chatID, videoID)
	if err != nil {
		return false, fmt.Errorf("delete video: %v", err)
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// DeleteAllForUser wipes the member's library and reports how many
// records were removed.
func (r *VideoRepository) DeleteAllForUser(chatID int64) (int64, error) {
	result, err := r.db.Exec("DELETE FROM videos WHERE user_chat_id = ?", chatID)
	if err != nil {
		return 0, fmt.Errorf("clear videos: %v", err)
	}
	return result.RowsAffected()
}

// Stats returns the member's accumulated tunnel time and first flight day.
func (r *VideoRepository) Stats(chatID int64) (models.UserStats, error) {
	var stats models.UserStats
	var total, first sql.NullInt64
	err := r.db.QueryRow(
		"SELECT SUM(duration), MIN(flight_date) FROM videos WHERE user_chat_id = ?",
		chatID,
	).Scan(&total, &first)
	if err != nil {
		return stats, fmt.Errorf("query stats: %v", err)
	}
	stats.TotalFlightSeconds = int(total.Int64)
	stats.FirstFlightDate = first.Int64
	return stats, nil
}
