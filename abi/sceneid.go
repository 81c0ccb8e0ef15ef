// Copyright 2019, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package abi addresses scene files in the GOES ABI cloud archive.
package abi

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SceneID holds the fields encoded in an ABI L1b filename, e.g.
// OR_ABI-L1b-RadF-M6C14_G16_s20192600000344_e20192600010063_c20192600010101.nc
type SceneID struct {
	Name      string // full filename
	Product   string // e.g. "ABI-L1b-RadF"
	Mode      int
	Channel   int
	Satellite string // e.g. "G16"
	Start     time.Time
	End       time.Time
	Created   time.Time
}

var modeChannelPattern = regexp.MustCompile(`^M(\d)C(\d{2})$`)
var captureIDPattern = regexp.MustCompile(`^(G\d{2})_s(\d{14})$`)

// ParseSceneID parses an ABI L1b filename (or archive key ending in one)
func ParseSceneID(name string) (*SceneID, error) {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	base := strings.TrimSuffix(name, ".nc")
	if base == name {
		return nil, fmt.Errorf("Not a NetCDF scene file: %s", name)
	}

	parts := strings.Split(base, "_")
	if len(parts) != 6 || parts[0] != "OR" {
		return nil, fmt.Errorf("Invalid ABI scene name: %s", name)
	}

	productParts := strings.Split(parts[1], "-")
	if len(productParts) != 4 {
		return nil, fmt.Errorf("Invalid ABI product segment in scene name: %s", name)
	}
	mc := modeChannelPattern.FindStringSubmatch(productParts[3])
	if mc == nil {
		return nil, fmt.Errorf("Invalid mode/channel segment in scene name: %s", name)
	}
	mode, _ := strconv.Atoi(mc[1])
	channel, _ := strconv.Atoi(mc[2])
	if channel < 1 || channel > 16 {
		return nil, fmt.Errorf("ABI channel out of range in scene name: %s", name)
	}

	id := SceneID{
		Name:      name,
		Product:   strings.Join(productParts[:3], "-"),
		Mode:      mode,
		Channel:   channel,
		Satellite: parts[2],
	}

	var err error
	if id.Start, err = parseStampSegment(parts[3], "s"); err != nil {
		return nil, fmt.Errorf("Invalid start time in scene name %s: %v", name, err)
	}
	if id.End, err = parseStampSegment(parts[4], "e"); err != nil {
		return nil, fmt.Errorf("Invalid end time in scene name %s: %v", name, err)
	}
	if id.Created, err = parseStampSegment(parts[5], "c"); err != nil {
		return nil, fmt.Errorf("Invalid creation time in scene name %s: %v", name, err)
	}

	return &id, nil
}

func parseStampSegment(segment, prefix string) (time.Time, error) {
	if !strings.HasPrefix(segment, prefix) {
		return time.Time{}, fmt.Errorf("expected %q prefix in %q", prefix, segment)
	}
	return ParseTimestamp(segment[len(prefix):])
}

// ParseTimestamp parses an ABI timestamp: year, day of year, hour, minute,
// second and tenths of a second ("20192600000344")
func ParseTimestamp(stamp string) (time.Time, error) {
	if len(stamp) != 14 {
		return time.Time{}, fmt.Errorf("timestamp %q is not 14 digits", stamp)
	}
	fields := make([]int, 6)
	widths := []int{4, 3, 2, 2, 2, 1}
	pos := 0
	for i, w := range widths {
		v, err := strconv.Atoi(stamp[pos : pos+w])
		if err != nil {
			return time.Time{}, fmt.Errorf("bad timestamp %q: %v", stamp, err)
		}
		fields[i] = v
		pos += w
	}
	year, doy, hh, mm, ss, tenth := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]
	if doy < 1 || doy > 366 {
		return time.Time{}, fmt.Errorf("day of year %d out of range in %q", doy, stamp)
	}
	t := time.Date(year, 1, 1, hh, mm, ss, tenth*int(100*time.Millisecond), time.UTC)
	return t.AddDate(0, 0, doy-1), nil
}

// FormatTimestamp renders a time in the ABI filename timestamp format
func FormatTimestamp(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%04d%03d%02d%02d%02d%1d",
		t.Year(), t.YearDay(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/int(100*time.Millisecond))
}

// CaptureID is the capture identity shared by the files of one scan:
// satellite plus start timestamp, e.g. "G16_s20192600000344"
func (id *SceneID) CaptureID() string {
	return fmt.Sprintf("%s_s%s", id.Satellite, FormatTimestamp(id.Start))
}

// ParseCaptureID splits a capture ID back into satellite and start time
func ParseCaptureID(captureID string) (satellite string, start time.Time, err error) {
	m := captureIDPattern.FindStringSubmatch(captureID)
	if m == nil {
		return "", time.Time{}, fmt.Errorf("Invalid capture ID: %s", captureID)
	}
	start, err = ParseTimestamp(m[2])
	if err != nil {
		return "", time.Time{}, err
	}
	return m[1], start, nil
}

// HourPrefix returns the archive key prefix for the hour containing t,
// e.g. "ABI-L1b-RadF/2019/260/00/"
func HourPrefix(product string, t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s/%04d/%03d/%02d/", product, t.Year(), t.YearDay(), t.Hour())
}
