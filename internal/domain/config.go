package domain

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the content of beyx_config.yaml. Every field is optional.
type Config struct {
	CollectionFile string        `yaml:"collection_file"`
	DatabaseFile   string        `yaml:"database_file"`
	SaveInterval   time.Duration `yaml:"save_interval"`
	ExportDir      string        `yaml:"export_dir"`
	LogLevel       string        `yaml:"log_level"`
}

func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	if value != nil && value.Kind == yaml.MappingNode {
		allowed := map[string]struct{}{
			"collection_file": {},
			"database_file":   {},
			"save_interval":   {},
			"export_dir":      {},
			"log_level":       {},
		}

		for i := 0; i+1 < len(value.Content); i += 2 {
			k := value.Content[i]
			if k.Kind != yaml.ScalarNode {
				continue
			}
			if _, ok := allowed[k.Value]; !ok {
				return fmt.Errorf("config: unsupported key %q", k.Value)
			}
		}
	}

	type raw Config
	var tmp raw
	if err := value.Decode(&tmp); err != nil {
		return err
	}
	*c = Config(tmp)
	return nil
}
