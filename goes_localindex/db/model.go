package db

import (
	"database/sql"
	"time"

	"github.com/venicegeo/goes-ash-broker/util"
)

// ConnectionProvider is a function that can provide a database connection.
type ConnectionProvider func(util.LogContext) (*sql.DB, error)

// GoesLocalIndexScene is one indexed ABI band file.
type GoesLocalIndexScene struct {
	ProductID       string
	Satellite       string
	Band            int
	AcquisitionDate time.Time
	SceneURLString  string
}
