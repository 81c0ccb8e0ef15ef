package model

import (
	"fmt"
	"time"
)

// Capture times arrive from several surfaces (query parameters, CLI flags,
// archive filenames) and users rarely type full RFC 3339 strings, so scene
// time parsing is lenient about seconds and zone suffixes.

var sceneTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z",
	"2006-01-02T15:04",
}

// ParseSceneTime is a drop-in replacement for time.Parse, but matching
// against multiple accepted capture-time formats (always UTC)
func ParseSceneTime(sceneTime string) (time.Time, error) {
	for _, layout := range sceneTimeLayouts {
		if output, err := time.Parse(layout, sceneTime); err == nil {
			return output.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("Date could not be parsed by any expected time format: `%s`", sceneTime)
}
