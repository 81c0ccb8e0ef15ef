package db

import (
	"database/sql"
	"time"

	"github.com/venicegeo/goes-ash-broker/model"
)

const sceneColumns = "product_id, satellite, band, acquisition_date, scene_url"

// GetSceneByID looks up a single indexed band file by its product ID.
func GetSceneByID(tx *sql.Tx, productID string) (*GoesLocalIndexScene, error) {
	scene := GoesLocalIndexScene{}

	rows, err := tx.Query(`
		SELECT `+sceneColumns+`
		FROM public.scenes
		WHERE product_id=$1
		LIMIT 1`,
		productID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, sql.ErrNoRows
	}

	err = rows.Scan(&scene.ProductID, &scene.Satellite, &scene.Band, &scene.AcquisitionDate, &scene.SceneURLString)
	if err != nil {
		return nil, err
	}

	return &scene, nil
}

// SearchScenes finds indexed band files for one channel in a time range,
// newest first.
func SearchScenes(tx *sql.Tx, band int, minAcquired, maxAcquired time.Time) ([]GoesLocalIndexScene, error) {
	rows, err := tx.Query(`
		SELECT `+sceneColumns+`
		FROM public.scenes
		WHERE band=$1
		  AND acquisition_date >= $2
		  AND acquisition_date <= $3
		ORDER BY acquisition_date DESC
		LIMIT 1000`,
		band, minAcquired, maxAcquired,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scenes := []GoesLocalIndexScene{}
	for rows.Next() {
		scene := GoesLocalIndexScene{}
		if err = rows.Scan(&scene.ProductID, &scene.Satellite, &scene.Band, &scene.AcquisitionDate, &scene.SceneURLString); err != nil {
			return nil, err
		}
		scenes = append(scenes, scene)
	}
	return scenes, rows.Err()
}

// GetAshBandScenes resolves, for each ash channel, the indexed band file
// whose acquisition time is nearest the capture time and within the
// tolerance. A missing channel returns sql.ErrNoRows.
func GetAshBandScenes(tx *sql.Tx, satellite string, capture time.Time, tolerance time.Duration) (map[int]GoesLocalIndexScene, error) {
	scenes := map[int]GoesLocalIndexScene{}

	for _, band := range model.AshBands {
		rows, err := tx.Query(`
			SELECT `+sceneColumns+`
			FROM public.scenes
			WHERE satellite=$1 AND band=$2
			  AND acquisition_date >= $3
			  AND acquisition_date <= $4
			ORDER BY ABS(EXTRACT(EPOCH FROM (acquisition_date - $5::timestamptz)))
			LIMIT 1`,
			satellite, band, capture.Add(-tolerance), capture.Add(tolerance), capture,
		)
		if err != nil {
			return nil, err
		}

		if !rows.Next() {
			rows.Close()
			return nil, sql.ErrNoRows
		}
		scene := GoesLocalIndexScene{}
		err = rows.Scan(&scene.ProductID, &scene.Satellite, &scene.Band, &scene.AcquisitionDate, &scene.SceneURLString)
		rows.Close()
		if err != nil {
			return nil, err
		}
		scenes[band] = scene
	}

	return scenes, nil
}
