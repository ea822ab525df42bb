package config

import (
	"os"

	"github.com/hashicorp/hcl"
	"github.com/imdario/mergo"

	"github.com/michalbiesek/lsmem/util"
)

type Config struct {
	LogLevel string   `hcl:"log_level"`
	Sysroot  string   `hcl:"sysroot"`
	Columns  []string `hcl:"columns"`
}

func Default() *Config {
	return &Config{
		LogLevel: "warn",
		Sysroot:  "/",
	}
}

// Parse loads an optional configuration file. A missing file is not
// an error, the defaults apply.
func Parse(filename string) (*Config, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, util.NewError(err, "cannot read configuration file")
	}
	config := &Config{}
	if err := hcl.Unmarshal(content, config); err != nil {
		return nil, util.NewError(err, "invalid configuration format")
	}
	if err := mergo.Merge(config, Default()); err != nil {
		return nil, util.NewError(err, "cannot apply default configuration value")
	}
	return config, nil
}
