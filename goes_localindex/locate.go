package goeslocalindex

import (
	"database/sql"
	"os"

	"github.com/venicegeo/geojson-go/geojson"

	"github.com/venicegeo/goes-ash-broker/goes_localindex/db"
	"github.com/venicegeo/goes-ash-broker/l1b"
	"github.com/venicegeo/goes-ash-broker/model"
)

// locateInScene projects a lat/lon into the fixed grid of the given indexed
// band file. geos.ErrNotVisible passes through for coordinates beyond the limb.
func locateInScene(tx *sql.Tx, ctx *Context, sceneID string, lat, lon float64) (model.GeoJSONFeatureCreator, error) {
	scene, err := db.GetSceneByID(tx, sceneID)
	if err != nil {
		return nil, err
	}

	path, err := ctx.Archive.FetchToTempFile(ctx, scene.SceneURLString)
	if err != nil {
		return nil, err
	}
	defer os.Remove(path)

	calibrated, err := l1b.ReadSceneFile(path)
	if err != nil {
		return nil, err
	}

	col, row, err := calibrated.Nav.LatLonToGrid(lat, lon)
	if err != nil {
		return nil, err
	}

	return model.LocatedPointBrokerResult{
		BasicSceneResult: model.BasicSceneResult{
			ID:           scene.ProductID,
			Geometry:     geojson.NewPoint([]float64{lon, lat}),
			AcquiredDate: scene.AcquisitionDate,
			Satellite:    scene.Satellite,
			Band:         scene.Band,
			FileFormat:   model.NetCDF,
		},
		GridLocation: model.GridLocation{Row: row, Col: col, Lat: lat, Lon: lon},
	}, nil
}
