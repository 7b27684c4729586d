// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// fileConfig is the optional --config FILE document, grounded on the
// teacher's use of gopkg.in/yaml.v2 for small settings documents. Ignore
// patterns are added to those given with -i. Base64 (JSON destination
// mode) and Split (hyphen grouping of fp output) have no command-line flag;
// this file is the only way to set them.
type fileConfig struct {
	Ignore []string `yaml:"ignore"`
	Base64 bool     `yaml:"base64"`
	Split  int      `yaml:"split"`
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("obj-tool: reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("obj-tool: parsing config %s: %w", path, err)
	}
	return cfg, nil
}
