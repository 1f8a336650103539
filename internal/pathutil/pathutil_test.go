package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPathsEnvSuffix(t *testing.T) {
	testCases := []struct {
		name   string
		env    string
		config string
		db     string
		status string
		log    string
	}{
		{
			name:   "no suffix",
			config: "config.yml",
			db:     "studyfocus",
			status: "status.json",
			log:    "studyfocus.log",
		},
		{
			name:   "dev suffix",
			env:    " dev ",
			config: "config_dev.yml",
			db:     "studyfocus_dev",
			status: "status_dev.json",
			log:    "studyfocus_dev.log",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := newPaths(tc.env)

			assert.Equal(t, "studyfocus", p.appDir)
			assert.Equal(t, tc.config, p.configFileName)
			assert.Equal(t, tc.db, p.dbName)
			assert.Equal(t, tc.status, p.statusFileName)
			assert.Equal(t, tc.log, p.logFileName)
		})
	}
}
