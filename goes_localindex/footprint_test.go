package goeslocalindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNominalProjection(t *testing.T) {
	east := NominalProjection("G16")
	assert.Equal(t, -75.0, east.LonOrigin)
	assert.Equal(t, "x", east.SweepAxis)

	west := NominalProjection("G17")
	assert.Equal(t, -137.0, west.LonOrigin)

	// Unknown satellites fall back to the GOES-East slot.
	unknown := NominalProjection("G99")
	assert.Equal(t, -75.0, unknown.LonOrigin)
}

func TestFootprintPolygon(t *testing.T) {
	polygon, err := footprintPolygon("G16")
	assert.Nil(t, err)
	if assert.Len(t, polygon.Coordinates, 1) {
		ring := polygon.Coordinates[0]
		assert.Len(t, ring, 73)
		assert.Equal(t, ring[0], ring[len(ring)-1])

		// Every vertex of the GOES-East disk stays within the horizon
		// around the -75 sub-satellite longitude.
		for _, vertex := range ring {
			assert.True(t, vertex[1] >= -90 && vertex[1] <= 90, "latitude %f out of range", vertex[1])
			assert.True(t, vertex[0] >= -160 && vertex[0] <= 10, "longitude %f outside the visible disk", vertex[0])
		}
	}
}
