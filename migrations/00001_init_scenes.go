package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up00001, Down00001)
}

// Up00001 creates the scene index table
func Up00001(tx *sql.Tx) error {
	// This code is executed when the migration is applied.
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS public.scenes
		(
			product_id       text NOT NULL,
			satellite        text NOT NULL,
			band             integer NOT NULL,
			acquisition_date timestamp with time zone NOT NULL,
			scene_url        text NOT NULL,
			CONSTRAINT scenes_primary_product_id PRIMARY KEY (product_id)
		);

		CREATE INDEX IF NOT EXISTS idx_scenes_band_acquisition
		ON public.scenes (satellite, band, acquisition_date);
		`)
	return err
}

// Down00001 undoes the db changes.
func Down00001(tx *sql.Tx) error {
	// This code is executed when the migration is rolled back.
	_, err := tx.Exec(`
		DROP INDEX IF EXISTS idx_scenes_band_acquisition;
		DROP TABLE IF EXISTS public.scenes;
		`)
	return err
}
