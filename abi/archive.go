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
	"encoding/xml"
	"fmt"
	"io"
	"io/ioutil"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/venicegeo/goes-ash-broker/util"
)

// ListEntry is one object from an archive bucket listing
type ListEntry struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// listBucketResult is the ListObjectsV2 XML page shape the archive speaks
type listBucketResult struct {
	XMLName               xml.Name `xml:"ListBucketResult"`
	IsTruncated           bool     `xml:"IsTruncated"`
	NextContinuationToken string   `xml:"NextContinuationToken"`
	Contents              []struct {
		Key          string    `xml:"Key"`
		Size         int64     `xml:"Size"`
		LastModified time.Time `xml:"LastModified"`
	} `xml:"Contents"`
}

// ListPrefix enumerates all archive objects under the given key prefix,
// following continuation tokens across pages
func (a *Archive) ListPrefix(ctx util.LogContext, prefix string) ([]ListEntry, error) {
	entries := []ListEntry{}
	token := ""

	for {
		listURL := fmt.Sprintf("%s/?list-type=2&prefix=%s", a.Host, url.QueryEscape(prefix))
		if token != "" {
			listURL += "&continuation-token=" + url.QueryEscape(token)
		}

		util.LogAudit(ctx, util.LogAuditInput{Actor: "anon user", Action: "GET", Actee: listURL, Message: "Listing archive prefix", Severity: util.INFO})
		response, err := util.HTTPClient().Get(listURL)
		if err != nil {
			return nil, err
		}
		if response.StatusCode != 200 {
			response.Body.Close()
			return nil, fmt.Errorf("Non-200 response code from archive listing: %d", response.StatusCode)
		}

		var page listBucketResult
		err = xml.NewDecoder(response.Body).Decode(&page)
		response.Body.Close()
		if err != nil {
			return nil, err
		}

		for _, c := range page.Contents {
			entries = append(entries, ListEntry{Key: c.Key, Size: c.Size, LastModified: c.LastModified})
		}

		if !page.IsTruncated || page.NextContinuationToken == "" {
			return entries, nil
		}
		token = page.NextContinuationToken
	}
}

// Archive is a handle on an HTTP-reachable GOES archive bucket
type Archive struct {
	Host string
}

// NewArchive builds an Archive, normalizing the host URL
func NewArchive(host string) *Archive {
	return &Archive{Host: strings.TrimRight(host, "/")}
}

// SceneURL is the full fetch URL for an archive key
func (a *Archive) SceneURL(key string) string {
	return a.Host + "/" + strings.TrimLeft(key, "/")
}

// FetchToTempFile downloads a scene file to a temporary local path. The
// caller is responsible for removing the file.
func (a *Archive) FetchToTempFile(ctx util.LogContext, sceneURL string) (string, error) {
	util.LogAudit(ctx, util.LogAuditInput{Actor: "anon user", Action: "GET", Actee: sceneURL, Message: "Fetching scene file", Severity: util.INFO})
	start := time.Now()

	response, err := util.HTTPClient().Get(sceneURL)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()
	if response.StatusCode != 200 {
		return "", util.HTTPErr{Status: response.StatusCode, Message: fmt.Sprintf("Non-200 response code fetching scene: %d", response.StatusCode)}
	}

	file, err := ioutil.TempFile("", "goes-scene-*.nc")
	if err != nil {
		return "", err
	}
	if _, err = io.Copy(file, response.Body); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", err
	}
	if err = file.Close(); err != nil {
		os.Remove(file.Name())
		return "", err
	}

	util.LogInfo(ctx, fmt.Sprintf("Fetched %s; duration: %fs", sceneURL, time.Since(start).Seconds()))
	return file.Name(), nil
}

// NearestBandFiles picks, for each requested channel, the listed scene file
// whose start time is closest to the capture time and within the tolerance
func NearestBandFiles(entries []ListEntry, channels []int, capture time.Time, tolerance time.Duration) (map[int]*SceneID, error) {
	wanted := map[int]bool{}
	for _, ch := range channels {
		wanted[ch] = true
	}

	best := map[int]*SceneID{}
	for i := range entries {
		id, err := ParseSceneID(entries[i].Key)
		if err != nil {
			continue // non-scene keys are expected in listings
		}
		if !wanted[id.Channel] {
			continue
		}
		distance := id.Start.Sub(capture)
		if distance < 0 {
			distance = -distance
		}
		if distance > tolerance {
			continue
		}
		if current, ok := best[id.Channel]; ok {
			currentDistance := current.Start.Sub(capture)
			if currentDistance < 0 {
				currentDistance = -currentDistance
			}
			if distance >= currentDistance {
				continue
			}
		}
		best[id.Channel] = id
	}

	for _, ch := range channels {
		if _, ok := best[ch]; !ok {
			return nil, fmt.Errorf("No file for ABI channel %02d within %v of %v", ch, tolerance, capture.Format(time.RFC3339))
		}
	}
	return best, nil
}

// HourPrefixesAround returns the archive hour prefixes that can contain
// files whose start time is within the tolerance of the capture time,
// stepping hourly so wide tolerances cover every intermediate hour
func HourPrefixesAround(product string, capture time.Time, tolerance time.Duration) []string {
	prefixes := []string{}
	seen := map[string]bool{}
	end := capture.Add(tolerance)
	for t := capture.Add(-tolerance); !t.After(end); t = t.Add(time.Hour) {
		p := HourPrefix(product, t)
		if !seen[p] {
			seen[p] = true
			prefixes = append(prefixes, p)
		}
	}
	final := HourPrefix(product, end)
	if !seen[final] {
		prefixes = append(prefixes, final)
	}
	return prefixes
}
