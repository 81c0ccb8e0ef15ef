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
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/venicegeo/goes-ash-broker/util"
)

const listPageTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
	<Name>noaa-goes16</Name>
	<Prefix>ABI-L1b-RadF/2019/260/00/</Prefix>
	<IsTruncated>%t</IsTruncated>
	%s
	<Contents>
		<Key>%s</Key>
		<LastModified>2019-09-17T00:15:21.000Z</LastModified>
		<Size>10000</Size>
	</Contents>
</ListBucketResult>`

func sceneKey(channel int, stamp string) string {
	return fmt.Sprintf("ABI-L1b-RadF/2019/260/00/OR_ABI-L1b-RadF-M6C%02d_G16_s%s_e20192600010063_c20192600010123.nc",
		channel, stamp)
}

func TestListPrefix_FollowsContinuationTokens(t *testing.T) {
	// Mock: two pages joined by a continuation token.
	requests := []string{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.RawQuery)
		if r.URL.Query().Get("continuation-token") == "" {
			fmt.Fprintf(w, listPageTemplate, true,
				"<NextContinuationToken>page-2</NextContinuationToken>", sceneKey(11, "20192600000344"))
			return
		}
		fmt.Fprintf(w, listPageTemplate, false, "", sceneKey(14, "20192600000344"))
	}))
	defer server.Close()

	// Tested code
	archive := NewArchive(server.URL)
	entries, err := archive.ListPrefix(&util.BasicLogContext{}, "ABI-L1b-RadF/2019/260/00/")

	// Asserts
	assert.Nil(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, sceneKey(11, "20192600000344"), entries[0].Key)
	assert.Equal(t, sceneKey(14, "20192600000344"), entries[1].Key)
	assert.Equal(t, int64(10000), entries[0].Size)
	assert.Len(t, requests, 2)
	assert.Contains(t, requests[1], "continuation-token=page-2")
}

func TestListPrefix_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	archive := NewArchive(server.URL)
	_, err := archive.ListPrefix(&util.BasicLogContext{}, "ABI-L1b-RadF/")
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestSceneURL(t *testing.T) {
	archive := NewArchive("https://archive.localdomain/")
	assert.Equal(t, "https://archive.localdomain/a/b/c.nc", archive.SceneURL("a/b/c.nc"))
	assert.Equal(t, "https://archive.localdomain/a/b/c.nc", archive.SceneURL("/a/b/c.nc"))
}

func TestFetchToTempFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("netcdf-bytes"))
	}))
	defer server.Close()

	archive := NewArchive(server.URL)
	path, err := archive.FetchToTempFile(&util.BasicLogContext{}, server.URL+"/scene.nc")
	assert.Nil(t, err)
	defer os.Remove(path)

	content, err := ioutil.ReadFile(path)
	assert.Nil(t, err)
	assert.Equal(t, "netcdf-bytes", string(content))
}

func TestFetchToTempFile_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	archive := NewArchive(server.URL)
	_, err := archive.FetchToTempFile(&util.BasicLogContext{}, server.URL+"/missing.nc")
	assert.NotNil(t, err)
}

func TestNearestBandFiles(t *testing.T) {
	capture, _ := ParseTimestamp("20192600000344")

	entries := []ListEntry{
		{Key: sceneKey(11, "20192600000344")},
		{Key: sceneKey(14, "20192600000344")},
		{Key: sceneKey(14, "20192600008344")}, // several minutes later, not nearest
		{Key: sceneKey(15, "20192600000344")},
		{Key: "ABI-L1b-RadF/2019/260/00/index.html"}, // ignored
	}

	best, err := NearestBandFiles(entries, []int{11, 14, 15}, capture, 10*time.Minute)
	assert.Nil(t, err)
	assert.Equal(t, 3, len(best))
	assert.Equal(t, capture, best[14].Start)
}

func TestNearestBandFiles_MissingChannel(t *testing.T) {
	capture, _ := ParseTimestamp("20192600000344")

	entries := []ListEntry{
		{Key: sceneKey(11, "20192600000344")},
		{Key: sceneKey(14, "20192600000344")},
	}

	_, err := NearestBandFiles(entries, []int{11, 14, 15}, capture, 10*time.Minute)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "channel 15")
}

func TestNearestBandFiles_OutsideTolerance(t *testing.T) {
	capture, _ := ParseTimestamp("20192600000344")

	entries := []ListEntry{
		{Key: sceneKey(14, "20192601000344")}, // an hour away
	}

	_, err := NearestBandFiles(entries, []int{14}, capture, 10*time.Minute)
	assert.NotNil(t, err)
}
