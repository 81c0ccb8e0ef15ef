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

package abi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const sampleSceneName = "OR_ABI-L1b-RadF-M6C14_G16_s20192600000344_e20192600010063_c20192600010123.nc"

func TestParseSceneID(t *testing.T) {
	id, err := ParseSceneID(sampleSceneName)
	assert.Nil(t, err)

	assert.Equal(t, sampleSceneName, id.Name)
	assert.Equal(t, "ABI-L1b-RadF", id.Product)
	assert.Equal(t, 6, id.Mode)
	assert.Equal(t, 14, id.Channel)
	assert.Equal(t, "G16", id.Satellite)

	// 2019 day 260 is September 17th.
	assert.Equal(t, time.Date(2019, 9, 17, 0, 0, 34, 400000000, time.UTC), id.Start)
	assert.Equal(t, time.Date(2019, 9, 17, 0, 10, 6, 300000000, time.UTC), id.End)
	assert.Equal(t, time.Date(2019, 9, 17, 0, 10, 12, 300000000, time.UTC), id.Created)
}

func TestParseSceneID_StripsArchivePrefix(t *testing.T) {
	id, err := ParseSceneID("ABI-L1b-RadF/2019/260/00/" + sampleSceneName)
	assert.Nil(t, err)
	assert.Equal(t, sampleSceneName, id.Name)
}

func TestParseSceneID_Invalid(t *testing.T) {
	for _, name := range []string{
		"",
		"not-a-scene.nc",
		"OR_ABI-L1b-RadF-M6C14_G16_s20192600000344.nc",
		"XX_ABI-L1b-RadF-M6C14_G16_s20192600000344_e20192600010063_c20192600010123.nc",
		"OR_ABI-L1b-RadF-M6C99_G16_s20192600000344_e20192600010063_c20192600010123.nc",
		"OR_ABI-L1b-RadF-M6C14_G16_s2019260000034_e20192600010063_c20192600010123.nc",
		"OR_ABI-L1b-RadF-M6C14_G16_s20192600000344_e20192600010063_c20192600010123.txt",
	} {
		_, err := ParseSceneID(name)
		assert.NotNil(t, err, "expected error for %q", name)
	}
}

func TestParseTimestamp_RoundTrip(t *testing.T) {
	stamp := "20192600000344"
	parsed, err := ParseTimestamp(stamp)
	assert.Nil(t, err)
	assert.Equal(t, stamp, FormatTimestamp(parsed))
}

func TestParseTimestamp_DayOfYearOutOfRange(t *testing.T) {
	_, err := ParseTimestamp("20190000000344")
	assert.NotNil(t, err)

	_, err = ParseTimestamp("20193670000344")
	assert.NotNil(t, err)
}

func TestCaptureID_RoundTrip(t *testing.T) {
	id, err := ParseSceneID(sampleSceneName)
	assert.Nil(t, err)
	assert.Equal(t, "G16_s20192600000344", id.CaptureID())

	satellite, start, err := ParseCaptureID(id.CaptureID())
	assert.Nil(t, err)
	assert.Equal(t, "G16", satellite)
	assert.Equal(t, id.Start, start)
}

func TestParseCaptureID_Invalid(t *testing.T) {
	for _, captureID := range []string{"", "G16", "G16_20192600000344", "X16_s20192600000344"} {
		_, _, err := ParseCaptureID(captureID)
		assert.NotNil(t, err, "expected error for %q", captureID)
	}
}

func TestHourPrefix(t *testing.T) {
	capture := time.Date(2019, 9, 17, 0, 0, 34, 0, time.UTC)
	assert.Equal(t, "ABI-L1b-RadF/2019/260/00/", HourPrefix("ABI-L1b-RadF", capture))
}

func TestHourPrefixesAround(t *testing.T) {
	capture := time.Date(2019, 9, 17, 0, 5, 0, 0, time.UTC)

	// Mid-hour capture with a small tolerance stays in one prefix.
	prefixes := HourPrefixesAround("ABI-L1b-RadF", capture, time.Minute)
	assert.Equal(t, []string{"ABI-L1b-RadF/2019/260/00/"}, prefixes)

	// A tolerance spanning the previous hour (and day) adds prefixes.
	prefixes = HourPrefixesAround("ABI-L1b-RadF", capture, 10*time.Minute)
	assert.Equal(t, []string{
		"ABI-L1b-RadF/2019/259/23/",
		"ABI-L1b-RadF/2019/260/00/",
	}, prefixes)
}

func TestHourPrefixesAround_WideToleranceCoversEveryHour(t *testing.T) {
	capture := time.Date(2019, 9, 17, 12, 0, 0, 0, time.UTC)

	prefixes := HourPrefixesAround("ABI-L1b-RadF", capture, 3*time.Hour)
	assert.Equal(t, []string{
		"ABI-L1b-RadF/2019/260/09/",
		"ABI-L1b-RadF/2019/260/10/",
		"ABI-L1b-RadF/2019/260/11/",
		"ABI-L1b-RadF/2019/260/12/",
		"ABI-L1b-RadF/2019/260/13/",
		"ABI-L1b-RadF/2019/260/14/",
		"ABI-L1b-RadF/2019/260/15/",
	}, prefixes)
}
