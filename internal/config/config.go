// Copyright 2026 Assetforge Contributors
// Licensed under the AGPLv3, see LICENCE file for details.

// Package config holds the exporter configuration: where output goes
// and the options individual exporters read through the pipeline's
// opaque settings pass-through.
package config

import (
	"os"

	"github.com/juju/errors"
	"github.com/juju/schema"
	"gopkg.in/juju/environschema.v1"
	"gopkg.in/yaml.v2"
)

const (
	outputRootKey     = "output-root"
	resourcePrefixKey = "resource-prefix"
	recordPrefixKey   = "record-prefix"
	optionsKey        = "options"
)

var configSchema = environschema.Fields{
	outputRootKey: {
		Description: "Directory the export run writes into.",
		Type:        environschema.Tstring,
		Mandatory:   true,
	},
	resourcePrefixKey: {
		Description: "Subdirectory for exported resource payloads.",
		Type:        environschema.Tstring,
	},
	recordPrefixKey: {
		Description: "Subdirectory for exported record documents.",
		Type:        environschema.Tstring,
	},
	optionsKey: {
		Description: "Free-form exporter options, passed through opaquely.",
		Type:        environschema.Tattrs,
	},
}

var configDefaults = schema.Defaults{
	resourcePrefixKey: "resources",
	recordPrefixKey:   "records",
	optionsKey:        schema.Omit,
}

var configChecker = func() schema.Checker {
	fields, _, err := configSchema.ValidationSchema()
	if err != nil {
		panic(err)
	}
	return schema.FieldMap(fields, configDefaults)
}()

// Config is a validated exporter configuration. It implements the
// export package's Settings interface.
type Config struct {
	attrs map[string]interface{}
}

// Load reads a YAML configuration from the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotate(err, "reading configuration")
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Annotatef(err, "parsing configuration %q", path)
	}
	return cfg, nil
}

// Parse validates YAML configuration content.
func Parse(data []byte) (*Config, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Trace(err)
	}
	return New(raw)
}

// New validates the given attributes into a Config.
func New(raw interface{}) (*Config, error) {
	coerced, err := configChecker.Coerce(raw, nil)
	if err != nil {
		return nil, errors.NewNotValid(err, "invalid configuration")
	}
	return &Config{attrs: coerced.(map[string]interface{})}, nil
}

// OutputRoot returns the directory the export run writes into.
func (c *Config) OutputRoot() string {
	return c.attrs[outputRootKey].(string)
}

// ResourcePrefix returns the subdirectory resource payloads go under.
func (c *Config) ResourcePrefix() string {
	v, _ := c.attrs[resourcePrefixKey].(string)
	return v
}

// RecordPrefix returns the subdirectory record documents go under.
func (c *Config) RecordPrefix() string {
	v, _ := c.attrs[recordPrefixKey].(string)
	return v
}

// Option implements the export Settings interface: it returns the
// named free-form exporter option.
func (c *Config) Option(name string) (string, bool) {
	options, ok := c.attrs[optionsKey].(map[string]string)
	if !ok {
		return "", false
	}
	v, ok := options[name]
	return v, ok
}
