// Copyright 2026 Assetforge Contributors
// Licensed under the AGPLv3, see LICENCE file for details.

package store

import (
	"os"

	"github.com/juju/errors"
	"github.com/juju/schema"
	"gopkg.in/yaml.v2"

	"github.com/assetforge/assetforge/core/asset"
)

var manifestFields = schema.FieldMap(
	schema.Fields{
		"assets": schema.List(assetFields),
	},
	schema.Defaults{},
)

var assetFields = schema.FieldMap(
	schema.Fields{
		"id":             schema.NonEmptyString("id"),
		"kind":           schema.NonEmptyString("kind"),
		"classification": schema.String(),
		"payload":        schema.String(),
		"attributes":     schema.StringMap(schema.Any()),
		"related":        schema.List(schema.String()),
	},
	schema.Defaults{
		"classification": "",
		"payload":        schema.Omit,
		"attributes":     schema.Omit,
		"related":        schema.Omit,
	},
)

// Load reads a YAML asset manifest from the given path and builds a
// store from it.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotate(err, "reading asset manifest")
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Annotatef(err, "parsing asset manifest %q", path)
	}
	return s, nil
}

// Parse builds a store from YAML manifest content. The manifest lists
// assets in export order; related references may point forwards, so
// relations are wired only after every asset has been added.
func Parse(data []byte) (*Store, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Trace(err)
	}
	coerced, err := manifestFields.Coerce(raw, nil)
	if err != nil {
		return nil, errors.Annotate(err, "invalid manifest")
	}
	manifest := coerced.(map[string]interface{})

	s := NewStore()
	type relation struct {
		id  string
		ids []string
	}
	var relations []relation
	for _, item := range manifest["assets"].([]interface{}) {
		attrs := item.(map[string]interface{})
		id := attrs["id"].(string)
		kindName := attrs["kind"].(string)
		kind, ok := asset.KindNamed(kindName)
		if !ok {
			return nil, errors.NotValidf("asset %q: kind %q", id, kindName)
		}
		e := NewEntry(id, kind, attrs["classification"].(string))
		if payload, ok := attrs["payload"].(string); ok && payload != "" {
			e.WithPayload([]byte(payload))
		}
		if attributes, ok := attrs["attributes"].(map[string]interface{}); ok {
			e.WithAttributes(attributes)
		}
		if err := s.Add(e); err != nil {
			return nil, errors.Trace(err)
		}
		if related, ok := attrs["related"].([]interface{}); ok {
			ids := make([]string, len(related))
			for i, r := range related {
				ids[i] = r.(string)
			}
			relations = append(relations, relation{id: id, ids: ids})
		}
	}
	for _, rel := range relations {
		if err := s.Relate(rel.id, rel.ids...); err != nil {
			return nil, errors.Trace(err)
		}
	}
	return s, nil
}
