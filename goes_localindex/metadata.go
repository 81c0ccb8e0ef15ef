package goeslocalindex

import (
	"database/sql"

	"github.com/venicegeo/goes-ash-broker/goes_localindex/db"
	"github.com/venicegeo/goes-ash-broker/model"
	"github.com/venicegeo/goes-ash-broker/util"
)

func getMetadata(tx *sql.Tx, ctx *Context, sceneID string) (model.GeoJSONFeatureCreator, error) {
	scene, err := db.GetSceneByID(tx, sceneID)
	if err != nil {
		return nil, err
	}

	basicResult, err := brokerResultFromScene(*scene)
	if err != nil {
		return nil, err
	}

	// The band file URLs are a best-effort enrichment: a scene whose
	// sibling channels have not been indexed yet still has metadata.
	bandScenes, err := db.GetAshBandScenes(tx, scene.Satellite, scene.AcquisitionDate, ctx.Tolerance)
	if err != nil {
		if err != sql.ErrNoRows {
			return nil, err
		}
		util.LogInfo(ctx, "Ash band set incomplete for scene "+sceneID)
		return basicResult, nil
	}

	urls := map[int]string{}
	for band, bandScene := range bandScenes {
		urls[band] = bandScene.SceneURLString
	}
	bandFiles, err := model.NewAshBandFiles(urls)
	if err != nil {
		return nil, err
	}

	return model.IndexedSceneBrokerResult{
		BasicSceneResult: basicResult,
		AshBandFiles:     *bandFiles,
	}, nil
}
