package events

import (
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads dispatcher YAML from path, falling back to the
// WINGCFG_EVENTS_CONFIG env var. An empty path returns the zero config,
// which dispatches to no sinks.
func LoadConfig(path string) (Config, error) {
	var c Config
	if path == "" {
		path = os.Getenv("WINGCFG_EVENTS_CONFIG")
	}
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	err = yaml.Unmarshal(data, &c)
	return c, err
}
