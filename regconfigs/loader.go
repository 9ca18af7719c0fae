package regconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/regvm/configs"
	"github.com/reusee/regvm/logs"
)

//go:embed schema.cue
var schema string

var filenames = []string{
	"regvm.cue",
	".regvm.cue",
	"regvm.yaml",
	"regvm.toml",
}

// ConfigPaths lists the configuration files to load, most specific first.
type ConfigPaths []string

func (Module) ConfigPaths() ConfigPaths {
	var paths []string
	collect := func(dir string) {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	// working directory
	if workingDir, err := os.Getwd(); err == nil {
		collect(workingDir)
	}

	// user config dir
	if configDir, err := os.UserConfigDir(); err == nil {
		collect(configDir)
	}

	// system wide dir
	collect("/etc")

	return paths
}

func (Module) ConfigsLoader(
	paths ConfigPaths,
	logger logs.Logger,
) configs.Loader {
	if len(paths) > 0 {
		logger.Info("config file",
			"paths", []string(paths),
		)
	}
	return configs.NewLoader(paths, schema)
}
