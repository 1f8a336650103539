package store

import (
	"path/filepath"
	"strings"
)

// Drivers understood by Open.
const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Open connects to the backend named by driver. dataDir holds the
// database file; name is its base name without extension.
func Open(driver, dataDir, name string) (DB, error) {
	switch strings.ToLower(driver) {
	case "", DriverBolt:
		c, err := NewClient(filepath.Join(dataDir, name+".db"))
		if err != nil {
			return nil, err
		}

		return c, nil
	case DriverSQLite:
		s, err := NewSQLite(filepath.Join(dataDir, name+".sqlite"))
		if err != nil {
			return nil, err
		}

		return s, nil
	case DriverMemory:
		return NewMemory(), nil
	}

	return nil, errUnknownDriver.Fmt(driver)
}
