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

package util

import (
	"os"
	"time"
)

// Environment variables
const (
	GOES_ARCHIVE_HOST        = "GOES_ARCHIVE_HOST"
	GOES_INDEX_SCENES_PREFIX = "GOES_INDEX_SCENES_PREFIX"
	GOES_INGEST_FREQUENCY    = "GOES_INGEST_FREQUENCY"
	GOES_ASH_TOLERANCE       = "GOES_ASH_TOLERANCE"
)

const defaultArchiveHost = "https://noaa-goes16.s3.amazonaws.com"
const defaultScenesPrefix = "ABI-L1b-RadF"
const defaultAshTolerance = 10 * time.Minute

// GetArchiveHost returns a string for the GOES_ARCHIVE_HOST environment
// variable or the public NOAA bucket if none is set
func GetArchiveHost() string {
	archiveHost, ok := os.LookupEnv(GOES_ARCHIVE_HOST)
	if !ok {
		LogInfo(&BasicLogContext{}, "Did not get GOES archive host from the environment. Using default NOAA archive: "+defaultArchiveHost)
		archiveHost = defaultArchiveHost
	}
	return archiveHost
}

// GetScenesPrefix returns the archive key prefix under which scene files
// are indexed, from the GOES_INDEX_SCENES_PREFIX environment variable
func GetScenesPrefix() string {
	prefix, ok := os.LookupEnv(GOES_INDEX_SCENES_PREFIX)
	if !ok {
		prefix = defaultScenesPrefix
	}
	return prefix
}

// GetAshTolerance returns the maximum distance between a requested capture
// time and a band file's start time for the file to still be usable in a
// composite, from the GOES_ASH_TOLERANCE environment variable
func GetAshTolerance() time.Duration {
	tolerance, err := time.ParseDuration(os.Getenv(GOES_ASH_TOLERANCE))
	if err != nil || tolerance <= 0 {
		return defaultAshTolerance
	}
	return tolerance
}
