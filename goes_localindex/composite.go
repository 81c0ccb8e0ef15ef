package goeslocalindex

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/venicegeo/goes-ash-broker/ash"
	"github.com/venicegeo/goes-ash-broker/geos"
	"github.com/venicegeo/goes-ash-broker/goes_localindex/db"
	"github.com/venicegeo/goes-ash-broker/l1b"
	"github.com/venicegeo/goes-ash-broker/model"
)

// composeAsh resolves the ash band triplet for a capture, fetches and
// calibrates the band files, and composites them. The returned navigation
// is the 11.2 µm channel's grid, which sets the composite's pixel geometry.
func composeAsh(tx *sql.Tx, ctx *Context, satellite string, capture time.Time) (*ash.Image, geos.Grid, error) {
	var nav geos.Grid

	scenes, err := db.GetAshBandScenes(tx, satellite, capture, ctx.Tolerance)
	if err != nil {
		return nil, nav, err
	}

	grids := map[int]*model.BTGrid{}
	for band, scene := range scenes {
		grid, bandNav, err := fetchBandGrid(ctx, scene)
		if err != nil {
			return nil, nav, fmt.Errorf("band C%02d (%s): %w", band, scene.ProductID, err)
		}
		grids[band] = grid
		if band == 14 {
			nav = bandNav
		}
	}

	img, err := ash.Composite(grids[11], grids[14], grids[15])
	if err != nil {
		return nil, nav, err
	}
	return img, nav, nil
}

func fetchBandGrid(ctx *Context, scene db.GoesLocalIndexScene) (*model.BTGrid, geos.Grid, error) {
	path, err := ctx.Archive.FetchToTempFile(ctx, scene.SceneURLString)
	if err != nil {
		return nil, geos.Grid{}, err
	}
	defer os.Remove(path)

	calibrated, err := l1b.ReadSceneFile(path)
	if err != nil {
		return nil, geos.Grid{}, err
	}
	return calibrated.Band, calibrated.Nav, nil
}
