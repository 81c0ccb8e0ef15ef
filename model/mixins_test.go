package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/geojson-go/geojson"
)

func TestNewAshBandFiles(t *testing.T) {
	// Mock
	urls := map[int]string{
		11: "https://archive.localdomain/c11.nc",
		14: "https://archive.localdomain/c14.nc",
		15: "https://archive.localdomain/c15.nc",
	}

	// Tested code
	files, err := NewAshBandFiles(urls)

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, urls[11], files.C11)
	assert.Equal(t, urls[14], files.C14)
	assert.Equal(t, urls[15], files.C15)
}

func TestNewAshBandFiles_MissingChannel(t *testing.T) {
	// Mock
	urls := map[int]string{
		11: "https://archive.localdomain/c11.nc",
		14: "https://archive.localdomain/c14.nc",
	}

	// Tested code
	_, err := NewAshBandFiles(urls)

	// Asserts
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "15")
}

func TestAshBandFiles_Apply(t *testing.T) {
	// Mock
	feature := geojson.NewFeature(nil, "test-id", nil)
	files := AshBandFiles{
		C11: "https://archive.localdomain/c11.nc",
		C14: "https://archive.localdomain/c14.nc",
		C15: "https://archive.localdomain/c15.nc",
	}

	// Tested code
	err := files.Apply(feature)

	// Asserts
	assert.Nil(t, err)
	bands, ok := feature.Properties["bands"].(map[string]string)
	if assert.True(t, ok, "bands property missing") {
		assert.Equal(t, files.C11, bands["C11"])
		assert.Equal(t, files.C14, bands["C14"])
		assert.Equal(t, files.C15, bands["C15"])
	}
}

func TestGridLocation_Apply(t *testing.T) {
	// Mock
	feature := geojson.NewFeature(nil, "test-id", nil)
	location := GridLocation{Row: 100.25, Col: 200.75, Lat: -33.1, Lon: -70.5}

	// Tested code
	err := location.Apply(feature)

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, 100.25, feature.PropertyFloat("row"))
	assert.Equal(t, 200.75, feature.PropertyFloat("col"))
	assert.Equal(t, -33.1, feature.PropertyFloat("lat"))
	assert.Equal(t, -70.5, feature.PropertyFloat("lon"))
}
