package goeslocalindex

import (
	"database/sql"
	"time"

	"github.com/venicegeo/goes-ash-broker/goes_localindex/db"
	"github.com/venicegeo/goes-ash-broker/model"
)

func discoverScenes(tx *sql.Tx, ctx *Context, band int, minAcquiredDate time.Time, maxAcquiredDate time.Time) (model.GeoJSONFeatureCollectionCreator, error) {
	scenes, err := db.SearchScenes(tx, band, minAcquiredDate, maxAcquiredDate)
	if err != nil {
		return nil, err
	}

	multiResult := model.MultiBrokerResult{
		FeatureCreators: make([]model.GeoJSONFeatureCreator, len(scenes)),
	}

	for i, scene := range scenes {
		result, err := brokerResultFromScene(scene)
		if err != nil {
			return nil, err
		}
		multiResult.FeatureCreators[i] = result
	}

	return multiResult, nil
}

func brokerResultFromScene(scene db.GoesLocalIndexScene) (model.BasicSceneResult, error) {
	footprint, err := footprintPolygon(scene.Satellite)
	if err != nil {
		return model.BasicSceneResult{}, err
	}
	return model.BasicSceneResult{
		ID:           scene.ProductID,
		Geometry:     footprint,
		AcquiredDate: scene.AcquisitionDate,
		Satellite:    scene.Satellite,
		Band:         scene.Band,
		FileFormat:   model.NetCDF,
	}, nil
}
