package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/geojson-go/geojson"
)

// General test mocks and utils

var mockPolygon = geojson.NewPolygon([][][]float64{[][]float64{
	[]float64{30, 10}, []float64{40, 40}, []float64{20, 40}, []float64{10, 20}, []float64{30, 10},
}})

var mockBasicSceneResult = BasicSceneResult{
	ID:           "OR_ABI-L1b-RadF-M6C14_G16_s20192600000344_e20192600010063_c20192600010123.nc",
	Geometry:     mockPolygon,
	AcquiredDate: time.Unix(123, 0).UTC(),
	Satellite:    "G16",
	Band:         14,
	FileFormat:   NetCDF,
}

func assertFeatureContainsBasicSceneResult(t *testing.T, feature *geojson.Feature, result BasicSceneResult) {
	assert.Equal(t, result.ID, feature.IDStr())
	assert.Equal(t, result.AcquiredDate.Format(SceneTimeFormat), feature.PropertyString("acquiredDate"))
	assert.Equal(t, result.Satellite, feature.PropertyString("satellite"))
	assert.Equal(t, result.Band, feature.PropertyInt("band"))
	assert.Equal(t, string(result.FileFormat), feature.PropertyString("fileFormat"))
}

func TestBasicSceneResult_GeoJSONFeature(t *testing.T) {
	// Tested code
	feature, err := mockBasicSceneResult.GeoJSONFeature()

	// Asserts
	assert.Nil(t, err)
	assertFeatureContainsBasicSceneResult(t, feature, mockBasicSceneResult)
	assert.NotEmpty(t, feature.Bbox)
}

func TestIndexedSceneBrokerResult_GeoJSONFeature(t *testing.T) {
	// Mock
	result := IndexedSceneBrokerResult{
		BasicSceneResult: mockBasicSceneResult,
		AshBandFiles: AshBandFiles{
			C11: "https://archive.localdomain/c11.nc",
			C14: "https://archive.localdomain/c14.nc",
			C15: "https://archive.localdomain/c15.nc",
		},
	}

	// Tested code
	feature, err := result.GeoJSONFeature()

	// Asserts
	assert.Nil(t, err)
	assertFeatureContainsBasicSceneResult(t, feature, mockBasicSceneResult)
	bands, ok := feature.Properties["bands"].(map[string]string)
	if assert.True(t, ok, "bands property missing") {
		assert.Equal(t, "https://archive.localdomain/c11.nc", bands["C11"])
		assert.Equal(t, "https://archive.localdomain/c14.nc", bands["C14"])
		assert.Equal(t, "https://archive.localdomain/c15.nc", bands["C15"])
	}
}

func TestLocatedPointBrokerResult_GeoJSONFeature(t *testing.T) {
	// Mock
	result := LocatedPointBrokerResult{
		BasicSceneResult: mockBasicSceneResult,
		GridLocation: GridLocation{
			Row: 1234.5,
			Col: 2345.6,
			Lat: 14.8,
			Lon: -70.2,
		},
	}

	// Tested code
	feature, err := result.GeoJSONFeature()

	// Asserts
	assert.Nil(t, err)
	assertFeatureContainsBasicSceneResult(t, feature, mockBasicSceneResult)
	assert.Equal(t, 1234.5, feature.PropertyFloat("row"))
	assert.Equal(t, 2345.6, feature.PropertyFloat("col"))
	assert.Equal(t, 14.8, feature.PropertyFloat("lat"))
	assert.Equal(t, -70.2, feature.PropertyFloat("lon"))
}

func TestMultiBrokerResult_GeoJSONFeatureCollection(t *testing.T) {
	// Mock
	result := MultiBrokerResult{
		FeatureCreators: []GeoJSONFeatureCreator{mockBasicSceneResult, mockBasicSceneResult},
	}

	// Tested code
	collection, err := result.GeoJSONFeatureCollection()

	// Asserts
	assert.Nil(t, err)
	assert.Len(t, collection.Features, 2)
	for _, feature := range collection.Features {
		assertFeatureContainsBasicSceneResult(t, feature, mockBasicSceneResult)
	}
}
