package model

import (
	"time"

	"github.com/venicegeo/geojson-go/geojson"
)

// BasicSceneResult holds the fields common to all goes-ash-broker single results
type BasicSceneResult struct {
	ID           string
	Geometry     interface{}
	AcquiredDate time.Time
	Satellite    string
	Band         int
	FileFormat   BrokerFileFormat
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (sr BasicSceneResult) GeoJSONFeature() (*geojson.Feature, error) {
	f := geojson.NewFeature(sr.Geometry, sr.ID, map[string]interface{}{
		"acquiredDate": sr.AcquiredDate.Format(SceneTimeFormat),
		"satellite":    sr.Satellite,
		"band":         sr.Band,
		"fileFormat":   string(sr.FileFormat),
	})
	f.Bbox = f.ForceBbox()
	return f, nil
}

// IndexedSceneBrokerResult represents a local-index result containing an
// ABI band file plus the band file URLs for its capture
type IndexedSceneBrokerResult struct {
	BasicSceneResult
	AshBandFiles
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (result IndexedSceneBrokerResult) GeoJSONFeature() (*geojson.Feature, error) {
	feature, err := result.BasicSceneResult.GeoJSONFeature()
	if err != nil {
		return nil, err
	}

	if err = result.AshBandFiles.Apply(feature); err != nil {
		return nil, err
	}

	return feature, nil
}

// LocatedPointBrokerResult represents a lat/lon located inside a scene's
// fixed grid
type LocatedPointBrokerResult struct {
	BasicSceneResult
	GridLocation
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (result LocatedPointBrokerResult) GeoJSONFeature() (*geojson.Feature, error) {
	feature, err := result.BasicSceneResult.GeoJSONFeature()
	if err != nil {
		return nil, err
	}

	if err = result.GridLocation.Apply(feature); err != nil {
		return nil, err
	}

	return feature, nil
}

// MultiBrokerResult is a container type for bundling multiple results together,
// e.g. as results from a search endpoint
type MultiBrokerResult struct {
	FeatureCreators []GeoJSONFeatureCreator
}

// GeoJSONFeatureCollection implements the GeoJSONFeatureCollectionCreator interface
func (result MultiBrokerResult) GeoJSONFeatureCollection() (*geojson.FeatureCollection, error) {
	var err error
	features := make([]*geojson.Feature, len(result.FeatureCreators))
	for i, creator := range result.FeatureCreators {
		features[i], err = creator.GeoJSONFeature()
		if err != nil {
			return nil, err
		}
	}

	return geojson.NewFeatureCollection(features), nil
}
