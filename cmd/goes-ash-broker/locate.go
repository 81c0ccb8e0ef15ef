package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/venicegeo/geojson-go/geojson"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/venicegeo/goes-ash-broker/abi"
	"github.com/venicegeo/goes-ash-broker/l1b"
	"github.com/venicegeo/goes-ash-broker/model"
	"github.com/venicegeo/goes-ash-broker/records"
)

//locateAction projects a lat/lon point into the fixed grid of a local
//scene file and prints the resulting GeoJSON feature. NetCDF band files
//and tensor record files are both accepted.
func locateAction(c *cli.Context) {
	path := c.String("file")
	if path == "" {
		log.Fatal("No scene file given. Use --file.")
	}

	lat := c.Float64("lat")
	lon := c.Float64("lon")

	var result model.LocatedPointBrokerResult
	var err error
	if strings.HasSuffix(strings.ToLower(path), ".nc") {
		result, err = locateInBandFile(path, lat, lon)
	} else {
		result, err = locateInRecordFile(path, c.Int("index"), lat, lon)
	}
	if err != nil {
		log.Fatal("Could not locate point: " + err.Error())
	}

	feature, err := result.GeoJSONFeature()
	if err != nil {
		log.Fatal("Error building feature: " + err.Error())
	}
	fmt.Println(feature.String())
}

func locateInBandFile(path string, lat, lon float64) (model.LocatedPointBrokerResult, error) {
	scene, err := l1b.ReadSceneFile(path)
	if err != nil {
		return model.LocatedPointBrokerResult{}, err
	}

	col, row, err := scene.Nav.LatLonToGrid(lat, lon)
	if err != nil {
		return model.LocatedPointBrokerResult{}, err
	}

	result := model.LocatedPointBrokerResult{
		BasicSceneResult: model.BasicSceneResult{
			ID:         filepath.Base(path),
			Geometry:   geojson.NewPoint([]float64{lon, lat}),
			FileFormat: model.NetCDF,
		},
		GridLocation: model.GridLocation{Row: row, Col: col, Lat: lat, Lon: lon},
	}
	if scene.Band != nil {
		result.BasicSceneResult.Band = scene.Band.Band
	}
	if id, idErr := abi.ParseSceneID(path); idErr == nil {
		result.BasicSceneResult.ID = id.Name
		result.BasicSceneResult.Satellite = id.Satellite
		result.BasicSceneResult.AcquiredDate = id.Start
	}
	return result, nil
}

func locateInRecordFile(path string, index int, lat, lon float64) (model.LocatedPointBrokerResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return model.LocatedPointBrokerResult{}, err
	}
	defer file.Close()

	record, err := records.NewReader(file).ReadAt(index)
	if err != nil {
		return model.LocatedPointBrokerResult{}, err
	}
	kase, err := records.AshCase(record)
	if err != nil {
		return model.LocatedPointBrokerResult{}, err
	}

	col, row, err := kase.Nav.LatLonToGrid(lat, lon)
	if err != nil {
		return model.LocatedPointBrokerResult{}, err
	}

	return model.LocatedPointBrokerResult{
		BasicSceneResult: model.BasicSceneResult{
			ID:         fmt.Sprintf("%s#%d", filepath.Base(path), index),
			Geometry:   geojson.NewPoint([]float64{lon, lat}),
			FileFormat: model.TensorRecord,
		},
		GridLocation: model.GridLocation{Row: row, Col: col, Lat: lat, Lon: lon},
	}, nil
}
