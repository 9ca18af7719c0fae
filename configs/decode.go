package configs

import (
	"bytes"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

func decodeYAML(content []byte) (map[string]any, error) {
	ret := make(map[string]any)
	if len(bytes.TrimSpace(content)) == 0 {
		return ret, nil
	}
	if err := yaml.Unmarshal(content, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func decodeTOML(content []byte) (map[string]any, error) {
	ret := make(map[string]any)
	if _, err := toml.Decode(string(content), &ret); err != nil {
		return nil, err
	}
	return ret, nil
}
