// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
)

// EnvSuffix names the environment variable that keeps separate config and
// data files side by side (e.g. STUDYFOCUS_ENV=dev).
const EnvSuffix = "STUDYFOCUS_ENV"

// Paths holds all application path configurations.
type Paths struct {
	appDir         string
	configFileName string
	dbName         string
	statusFileName string
	logFileName    string

	// Computed absolute paths
	configFilePath string
	dataDir        string
	statusFilePath string
	logFilePath    string
}

var (
	paths *Paths
	once  sync.Once
)

// Initialize must be called once at program startup.
func Initialize() error {
	var initErr error

	once.Do(func() {
		paths = newPaths(os.Getenv(EnvSuffix))
		initErr = paths.computePaths()
	})

	return initErr
}

func newPaths(env string) *Paths {
	p := &Paths{
		appDir:         "studyfocus",
		configFileName: "config.yml",
		dbName:         "studyfocus",
		statusFileName: "status.json",
		logFileName:    "studyfocus.log",
	}

	env = strings.TrimSpace(env)
	if env != "" {
		p.configFileName = fmt.Sprintf("config_%s.yml", env)
		p.dbName = fmt.Sprintf("studyfocus_%s", env)
		p.statusFileName = fmt.Sprintf("status_%s.json", env)
		p.logFileName = fmt.Sprintf("studyfocus_%s.log", env)
	}

	return p
}

// Dir is the application directory name under the XDG base directories.
func Dir() string {
	return paths.appDir
}

func ConfigFilePath() string {
	return paths.configFilePath
}

// DataDir holds the database, status and log files.
func DataDir() string {
	return paths.dataDir
}

// DBName is the database base name; the storage driver adds the extension.
func DBName() string {
	return paths.dbName
}

func StatusFilePath() string {
	return paths.statusFilePath
}

func LogFilePath() string {
	return paths.logFilePath
}

func (p *Paths) computePaths() error {
	var err error

	relPath := filepath.Join(p.appDir, p.configFileName)

	p.configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		return err
	}

	p.dataDir, err = xdg.DataFile(p.appDir)
	if err != nil {
		return err
	}

	p.statusFilePath = filepath.Join(p.dataDir, p.statusFileName)

	p.logFilePath = filepath.Join(p.dataDir, "log", p.logFileName)

	return nil
}
