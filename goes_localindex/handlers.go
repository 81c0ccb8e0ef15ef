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

// Package goeslocalindex serves GOES scene discovery, metadata, ash
// composites, and projection lookups out of the local scene index.
package goeslocalindex

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/venicegeo/goes-ash-broker/abi"
	"github.com/venicegeo/goes-ash-broker/ash"
	"github.com/venicegeo/goes-ash-broker/geos"
	"github.com/venicegeo/goes-ash-broker/goes_localindex/db"
	"github.com/venicegeo/goes-ash-broker/render"
	"github.com/venicegeo/goes-ash-broker/util"
)

// NewContext builds a handler context from the environment and given DB provider
func NewContext(connectionProvider db.ConnectionProvider) (*Context, error) {
	database, err := connectionProvider(&util.BasicLogContext{})
	if err != nil {
		return nil, err
	}
	return &Context{
		DB:        database,
		Archive:   abi.NewArchive(util.GetArchiveHost()),
		Tolerance: util.GetAshTolerance(),
	}, nil
}

// DiscoverHandler is a handler for /localindex/discover/goes
// @Title localIndexDiscoverHandler
// @Description discovers indexed ABI band files
// @Accept  plain
// @Param   band            query   string  false        "The ABI channel number (default 14)"
// @Param   acquiredDate    query   string  false        "The minimum (earliest) acquired date, as RFC 3339"
// @Param   maxAcquiredDate query   string  false        "The maximum acquired date, as RFC 3339"
// @Success 200 {object}  geojson.FeatureCollection
// @Failure 400 {object}  string
// @Router /localindex/discover/goes [get]
type DiscoverHandler struct {
	Context *Context
}

// NewDiscoverHandler creates a new handler using configuration
// from environment variables
func NewDiscoverHandler(connectionProvider db.ConnectionProvider) (*DiscoverHandler, error) {
	context, err := NewContext(connectionProvider)
	if err != nil {
		return nil, err
	}
	return &DiscoverHandler{Context: context}, nil
}

// ServeHTTP implements the http.Handler interface for the DiscoverHandler type
func (h DiscoverHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tx, err := h.Context.DB.Begin()
	if err != nil {
		message := fmt.Sprintf("Could not begin DB transaction: %v", err)
		util.LogSimpleErr(h.Context, message, err)
		util.HTTPError(r, w, h.Context, message, http.StatusInternalServerError)
		return
	}
	defer tx.Commit()

	band := 14
	if r.FormValue("band") != "" {
		if band, err = strconv.Atoi(r.FormValue("band")); err != nil || band < 1 || band > 16 {
			message := fmt.Sprintf("The band value of %v is invalid", r.FormValue("band"))
			util.LogAlert(h.Context, message)
			util.HTTPError(r, w, h.Context, message, http.StatusBadRequest)
			tx.Rollback()
			return
		}
	}
	minAcquiredDate := time.Unix(0, 0)
	if r.FormValue("acquiredDate") != "" {
		if minAcquiredDate, err = time.Parse(time.RFC3339, r.FormValue("acquiredDate")); err != nil {
			message := fmt.Sprintf("Acquired date value of %v is invalid.", r.FormValue("acquiredDate"))
			util.LogSimpleErr(h.Context, message, err)
			util.HTTPError(r, w, h.Context, message, http.StatusBadRequest)
			tx.Rollback()
			return
		}
	}
	maxAcquiredDate := time.Now()
	if r.FormValue("maxAcquiredDate") != "" {
		if maxAcquiredDate, err = time.Parse(time.RFC3339, r.FormValue("maxAcquiredDate")); err != nil {
			message := fmt.Sprintf("Acquired date value of %v is invalid.", r.FormValue("maxAcquiredDate"))
			util.LogSimpleErr(h.Context, message, err)
			util.HTTPError(r, w, h.Context, message, http.StatusBadRequest)
			tx.Rollback()
			return
		}
	}

	multiResult, err := discoverScenes(tx, h.Context, band, minAcquiredDate, maxAcquiredDate)
	if err != nil {
		message := fmt.Sprintf("Error searching for scenes: %v", err)
		util.LogSimpleErr(h.Context, message, err)
		util.HTTPError(r, w, h.Context, message, http.StatusInternalServerError)
		tx.Rollback()
		return
	}

	featureCollection, err := multiResult.GeoJSONFeatureCollection()
	if err != nil {
		message := fmt.Sprintf("Error converting to feature collection: %v", err)
		util.LogSimpleErr(h.Context, message, err)
		util.HTTPError(r, w, h.Context, message, http.StatusInternalServerError)
		return
	}
	w.Write([]byte(featureCollection.String()))
}

// MetadataHandler is a handler for /localindex/goes/{id}
// @Title localIndexMetadataHandler
// @Description returns metadata for one indexed ABI band file
// @Accept  plain
// @Param   id            path   string  false        "The product ID of the requested scene"
// @Success 200 {object}  geojson.Feature
// @Failure 404 {object}  string
// @Router /localindex/goes/{id} [get]
type MetadataHandler struct {
	Context *Context
}

// NewMetadataHandler creates a new handler using the environment and given DB
func NewMetadataHandler(connectionProvider db.ConnectionProvider) (*MetadataHandler, error) {
	context, err := NewContext(connectionProvider)
	if err != nil {
		return nil, err
	}
	return &MetadataHandler{Context: context}, nil
}

func (h MetadataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sceneID, ok := mux.Vars(r)["id"]
	if !ok {
		message := "No scene ID found in URL"
		util.LogAlert(h.Context, message)
		util.HTTPError(r, w, h.Context, message, http.StatusNotFound)
		return
	}

	tx, err := h.Context.DB.Begin()
	if err != nil {
		message := fmt.Sprintf("Could not begin DB transaction: %v", err)
		util.LogSimpleErr(h.Context, message, err)
		util.HTTPError(r, w, h.Context, message, http.StatusInternalServerError)
		return
	}
	defer tx.Commit()

	metadata, err := getMetadata(tx, h.Context, sceneID)
	if err == sql.ErrNoRows {
		message := fmt.Sprintf("Scene not found: %s", sceneID)
		util.LogInfo(h.Context, message)
		util.HTTPError(r, w, h.Context, message, http.StatusNotFound)
		tx.Rollback()
		return
	}
	if err != nil {
		message := fmt.Sprintf("Server error searching for scene: %v", err)
		util.LogSimpleErr(h.Context, message, err)
		util.HTTPError(r, w, h.Context, message, http.StatusInternalServerError)
		tx.Rollback()
		return
	}

	feature, err := metadata.GeoJSONFeature()
	if err != nil {
		message := fmt.Sprintf("Error converting metadata to geojson: %v", err)
		util.LogSimpleErr(h.Context, message, err)
		util.HTTPError(r, w, h.Context, message, http.StatusInternalServerError)
		tx.Rollback()
		return
	}
	w.Write([]byte(feature.String()))
}

// AshImageHandler is a handler for /localindex/ash/{id}.png and
// /localindex/ash/{id}.jpg
// @Title localIndexAshImageHandler
// @Description composites the ash false-color image for a capture
// @Accept  plain
// @Param   id   path   string  false  "The capture ID, e.g. G16_s20192600000344"
// @Param   lat  query  string  false  "Optional marker latitude"
// @Param   lon  query  string  false  "Optional marker longitude"
// @Success 200 image/png or image/jpeg
// @Failure 404 {object}  string
// @Router /localindex/ash/{id}.png [get]
type AshImageHandler struct {
	Context *Context
}

// NewAshImageHandler creates a new handler using the environment and given DB
func NewAshImageHandler(connectionProvider db.ConnectionProvider) (*AshImageHandler, error) {
	context, err := NewContext(connectionProvider)
	if err != nil {
		return nil, err
	}
	return &AshImageHandler{Context: context}, nil
}

func (h AshImageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	captureID := mux.Vars(r)["id"]
	satellite, capture, err := abi.ParseCaptureID(captureID)
	if err != nil {
		message := fmt.Sprintf("The capture ID %s is invalid", captureID)
		util.LogAlert(h.Context, message)
		util.HTTPError(r, w, h.Context, message, http.StatusBadRequest)
		return
	}

	tx, err := h.Context.DB.Begin()
	if err != nil {
		message := fmt.Sprintf("Could not begin DB transaction: %v", err)
		util.LogSimpleErr(h.Context, message, err)
		util.HTTPError(r, w, h.Context, message, http.StatusInternalServerError)
		return
	}
	defer tx.Commit()

	img, nav, err := composeAsh(tx, h.Context, satellite, capture)
	if err == sql.ErrNoRows {
		message := fmt.Sprintf("No complete ash band set indexed for capture: %s", captureID)
		util.LogInfo(h.Context, message)
		util.HTTPError(r, w, h.Context, message, http.StatusNotFound)
		tx.Rollback()
		return
	}
	if err != nil {
		message := fmt.Sprintf("Error compositing capture %s: %v", captureID, err)
		util.LogSimpleErr(h.Context, message, err)
		util.HTTPError(r, w, h.Context, message, http.StatusInternalServerError)
		tx.Rollback()
		return
	}

	marks, err := markFromQuery(r, nav)
	if err == geos.ErrNotVisible {
		message := "The requested marker coordinate is not visible from the satellite"
		util.LogAlert(h.Context, message)
		util.HTTPError(r, w, h.Context, message, http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		message := fmt.Sprintf("Invalid marker coordinate: %v", err)
		util.LogAlert(h.Context, message)
		util.HTTPError(r, w, h.Context, message, http.StatusBadRequest)
		return
	}

	contentType, encode := encoderForPath(r.URL.Path)
	w.Header().Set("Content-Type", contentType)
	if err = encode(w, img, marks); err != nil {
		util.LogSimpleErr(h.Context, fmt.Sprintf("Error encoding capture %s: %v", captureID, err), err)
	}
}

// encoderForPath selects the image encoder from the request path
// extension. Anything that is not a .jpg request encodes as PNG.
func encoderForPath(path string) (string, func(io.Writer, *ash.Image, []render.Mark) error) {
	if strings.HasSuffix(path, ".jpg") {
		return "image/jpeg", render.JPEG
	}
	return "image/png", render.PNG
}

// markFromQuery parses the optional lat/lon marker query parameters and
// projects them onto the grid.
func markFromQuery(r *http.Request, nav geos.Grid) ([]render.Mark, error) {
	latStr, lonStr := r.FormValue("lat"), r.FormValue("lon")
	if latStr == "" && lonStr == "" {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, fmt.Errorf("lat value %q is invalid", latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, fmt.Errorf("lon value %q is invalid", lonStr)
	}

	col, row, err := nav.LatLonToGrid(lat, lon)
	if err != nil {
		return nil, err
	}
	return []render.Mark{{Row: row, Col: col}}, nil
}

// LocateHandler is a handler for /localindex/locate/{id}
// @Title localIndexLocateHandler
// @Description projects a lat/lon into the fixed grid of an indexed band file
// @Accept  plain
// @Param   id   path   string  false  "The product ID of the scene"
// @Param   lat  query  string  true   "Latitude, degrees north"
// @Param   lon  query  string  true   "Longitude, degrees east"
// @Success 200 {object}  geojson.Feature
// @Failure 422 {object}  string
// @Router /localindex/locate/{id} [get]
type LocateHandler struct {
	Context *Context
}

// NewLocateHandler creates a new handler using the environment and given DB
func NewLocateHandler(connectionProvider db.ConnectionProvider) (*LocateHandler, error) {
	context, err := NewContext(connectionProvider)
	if err != nil {
		return nil, err
	}
	return &LocateHandler{Context: context}, nil
}

func (h LocateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sceneID := mux.Vars(r)["id"]

	lat, latErr := strconv.ParseFloat(r.FormValue("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.FormValue("lon"), 64)
	if latErr != nil || lonErr != nil || lat < -90 || lat > 90 {
		message := fmt.Sprintf("The lat/lon values %q/%q are invalid", r.FormValue("lat"), r.FormValue("lon"))
		util.LogAlert(h.Context, message)
		util.HTTPError(r, w, h.Context, message, http.StatusBadRequest)
		return
	}

	tx, err := h.Context.DB.Begin()
	if err != nil {
		message := fmt.Sprintf("Could not begin DB transaction: %v", err)
		util.LogSimpleErr(h.Context, message, err)
		util.HTTPError(r, w, h.Context, message, http.StatusInternalServerError)
		return
	}
	defer tx.Commit()

	located, err := locateInScene(tx, h.Context, sceneID, lat, lon)
	if err == sql.ErrNoRows {
		message := fmt.Sprintf("Scene not found: %s", sceneID)
		util.LogInfo(h.Context, message)
		util.HTTPError(r, w, h.Context, message, http.StatusNotFound)
		tx.Rollback()
		return
	}
	if err == geos.ErrNotVisible {
		message := fmt.Sprintf("Coordinate %f,%f is not visible from the satellite", lat, lon)
		util.LogInfo(h.Context, message)
		util.HTTPError(r, w, h.Context, message, http.StatusUnprocessableEntity)
		tx.Rollback()
		return
	}
	if err != nil {
		message := fmt.Sprintf("Server error locating in scene: %v", err)
		util.LogSimpleErr(h.Context, message, err)
		util.HTTPError(r, w, h.Context, message, http.StatusInternalServerError)
		tx.Rollback()
		return
	}

	feature, err := located.GeoJSONFeature()
	if err != nil {
		message := fmt.Sprintf("Error converting location to geojson: %v", err)
		util.LogSimpleErr(h.Context, message, err)
		util.HTTPError(r, w, h.Context, message, http.StatusInternalServerError)
		tx.Rollback()
		return
	}
	w.Write([]byte(feature.String()))
}
