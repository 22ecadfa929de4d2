// Package parser extracts flight metadata from clip filenames.
//
// Recording rigs name clips prefix_camera_flight_YYYY_MM_DD_HH_MM_suffix.mp4,
// e.g. ifly_Door_F001_2025_08_21_14_30_001.mp4. Some rigs use hyphens or pad
// extra tokens, so parsing is tolerant: hyphens count as underscores and the
// date block is located by its year token when the segment count is unusual.
package parser

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Clip is the metadata carried by a well-formed clip filename.
type Clip struct {
	FlightDate   int64  // unix seconds, midnight UTC of the flight day
	TimeSlot     string // "HH:MM", bucketed to the half hour
	FlightNumber string
	CameraName   string
}

var yearToken = regexp.MustCompile(`^20\d{2}$`)

// ParseFilename extracts camera, flight and timestamp fields from a clip
// filename. It returns a descriptive error for wrong extensions, missing
// segments and non-numeric or out-of-range date parts.
func ParseFilename(name string) (Clip, error) {
	ext := filepath.Ext(name)
	if !strings.EqualFold(ext, ".mp4") {
		return Clip{}, fmt.Errorf("parse %q: expected .mp4 extension, got %q", name, ext)
	}

	normalized := strings.ReplaceAll(strings.TrimSuffix(name, ext), "-", "_")
	parts := strings.Split(normalized, "_")
	if len(parts) < 4 {
		return Clip{}, fmt.Errorf("parse %q: not enough segments", name)
	}

	var year, month, day, hour, minute string
	if len(parts) == 9 && yearToken.MatchString(parts[4]) {
		year, month, day = parts[4], parts[5], parts[6]
		hour, minute = parts[7], parts[8]
	} else {
		// Locate the date block by its year token.
		yearIndex := -1
		for i, p := range parts {
			if yearToken.MatchString(p) {
				yearIndex = i
				break
			}
		}
		if yearIndex < 0 || yearIndex+4 >= len(parts) {
			return Clip{}, fmt.Errorf("parse %q: could not locate date components", name)
		}
		year, month, day = parts[yearIndex], parts[yearIndex+1], parts[yearIndex+2]
		hour, minute = parts[yearIndex+3], parts[yearIndex+4]
	}

	camera := parts[1]
	flight := parts[2]
	if !strings.HasPrefix(flight, "F") {
		flight = parts[3]
	}

	date, err := time.Parse("2006_01_02", year+"_"+month+"_"+day)
	if err != nil {
		return Clip{}, fmt.Errorf("parse %q: invalid date: %v", name, err)
	}

	slot, err := timeSlot(hour, minute)
	if err != nil {
		return Clip{}, fmt.Errorf("parse %q: %v", name, err)
	}

	return Clip{
		FlightDate:   date.Unix(),
		TimeSlot:     slot,
		FlightNumber: flight,
		CameraName:   camera,
	}, nil
}

// timeSlot buckets a clock time into the 30-minute session slot it falls in.
func timeSlot(hour, minute string) (string, error) {
	h, err := strconv.Atoi(hour)
	if err != nil || h < 0 || h > 23 {
		return "", fmt.Errorf("invalid hour %q", hour)
	}
	m, err := strconv.Atoi(minute)
	if err != nil || m < 0 || m > 59 {
		return "", fmt.Errorf("invalid minute %q", minute)
	}
	if m < 30 {
		m = 0
	} else {
		m = 30
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}
