package goeslocalindex

import (
	"database/sql"
	"time"

	"github.com/venicegeo/goes-ash-broker/abi"
	"github.com/venicegeo/goes-ash-broker/util"
)

// Context is the context for this operation
type Context struct {
	DB        *sql.DB
	Archive   *abi.Archive
	Tolerance time.Duration
	sessionID string
}

// AppName returns the application name
func (c *Context) AppName() string {
	return "goes-ash-broker"
}

// SessionID returns a Session ID, creating one if needed
func (c *Context) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = util.PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *Context) LogRootDir() string {
	return ""
}
