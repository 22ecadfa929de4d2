// Package library arranges a member's flat video rows into the
// day → session slot → flight → camera tree the browser navigates.
package library

import (
	"sort"

	"ifly-videos-bot/internal/models"
)

type Video struct {
	ID         int64
	CameraName string
	FileID     string
	FileName   string
}

type Flight struct {
	FlightNumber string
	Length       int // seconds, taken from the flight's clips
	Videos       []Video
}

// Slot is one 30-minute tunnel session within a day. The chat UI calls
// these "sessions"; the name Slot keeps them apart from upload sessions.
type Slot struct {
	TimeSlot string
	Flights  []Flight
}

type Day struct {
	Date  int64 // unix seconds, midnight of the day
	Slots []Slot
}

// cameraRank fixes the display order of cameras within a flight.
func cameraRank(camera string) int {
	switch camera {
	case "Door":
		return 1
	case "Centerline":
		return 2
	case "Firsttimer":
		return 3
	case "Sideline":
		return 4
	default:
		return 5
	}
}

// Organize groups videos by day, session slot and flight, sorted
// chronologically with cameras in their fixed order.
func Organize(videos []models.Video) []Day {
	type slotKey struct {
		date int64
		slot string
	}

	days := make(map[int64]*Day)
	slotIndex := make(map[slotKey]int)

	for _, v := range videos {
		day, ok := days[v.FlightDate]
		if !ok {
			day = &Day{Date: v.FlightDate}
			days[v.FlightDate] = day
		}

		key := slotKey{v.FlightDate, v.TimeSlot}
		idx, ok := slotIndex[key]
		if !ok {
			idx = len(day.Slots)
			day.Slots = append(day.Slots, Slot{TimeSlot: v.TimeSlot})
			slotIndex[key] = idx
		}
		slot := &day.Slots[idx]

		var flight *Flight
		for i := range slot.Flights {
			if slot.Flights[i].FlightNumber == v.FlightNumber {
				flight = &slot.Flights[i]
				break
			}
		}
		if flight == nil {
			slot.Flights = append(slot.Flights, Flight{FlightNumber: v.FlightNumber, Length: v.Duration})
			flight = &slot.Flights[len(slot.Flights)-1]
		}

		flight.Videos = append(flight.Videos, Video{
			ID:         v.ID,
			CameraName: v.CameraName,
			FileID:     v.FileID,
			FileName:   v.FileName,
		})
	}

	out := make([]Day, 0, len(days))
	for _, day := range days {
		for i := range day.Slots {
			slot := &day.Slots[i]
			sort.Slice(slot.Flights, func(a, b int) bool {
				return slot.Flights[a].FlightNumber < slot.Flights[b].FlightNumber
			})
			for j := range slot.Flights {
				vids := slot.Flights[j].Videos
				sort.Slice(vids, func(a, b int) bool {
					return cameraRank(vids[a].CameraName) < cameraRank(vids[b].CameraName)
				})
			}
		}
		sort.Slice(day.Slots, func(a, b int) bool {
			return day.Slots[a].TimeSlot < day.Slots[b].TimeSlot
		})
		out = append(out, *day)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Date < out[b].Date })

	return out
}
