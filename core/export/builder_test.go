// Copyright 2026 Assetforge Contributors
// Licensed under the AGPLv3, see LICENCE file for details.

package export_test

import (
	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	"github.com/kr/pretty"
	gc "gopkg.in/check.v1"

	"github.com/assetforge/assetforge/core/asset"
	"github.com/assetforge/assetforge/core/export"
)

type BuilderSuite struct {
	testing.IsolationSuite
	registry *export.Registry
	builder  *export.CollectionBuilder
}

var _ = gc.Suite(&BuilderSuite{})

func (s *BuilderSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	s.registry = export.NewRegistry()
	s.builder = export.NewCollectionBuilder(s.registry)
}

func (s *BuilderSuite) TestPartitionOnePerAsset(c *gc.C) {
	s.registry.Register(asset.Object, &stubExporter{name: "universal"}, true)
	assets := []asset.Asset{
		&stubAsset{id: "a", kind: asset.Texture},
		&stubAsset{id: "b", kind: asset.Script},
		&stubAsset{id: "c", kind: asset.Audio},
	}

	collections, err := s.builder.Partition(assets)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(collections, gc.HasLen, 3, gc.Commentf("collections: %# v", pretty.Formatter(collections)))
	c.Check(collectionNames(collections), gc.DeepEquals, []string{"a", "b", "c"})
}

func (s *BuilderSuite) TestPartitionPullsRelatedAssets(c *gc.C) {
	a := &stubAsset{id: "a", kind: asset.Texture}
	b := &stubAsset{id: "b", kind: asset.Texture}
	d := &stubAsset{id: "d", kind: asset.Texture}
	// The exporter groups "a" and "b" into a single collection, so the
	// later occurrence of "b" in the input must be skipped.
	grouping := &stubExporter{
		name: "grouping",
		newCollection: func(seed asset.Asset, _ export.Claimed) (export.Collection, error) {
			members := []asset.Asset{seed}
			if seed.ID() == "a" {
				members = append(members, b)
			}
			return &stubCollection{name: seed.ID(), exportable: true, assets: members}, nil
		},
	}
	s.registry.Register(asset.Resource, grouping, true)

	collections, err := s.builder.Partition([]asset.Asset{a, b, d})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(collectionNames(collections), gc.DeepEquals, []string{"a", "d"})

	// Disjoint membership covering every input asset.
	seen := set.NewStrings()
	for _, coll := range collections {
		for _, member := range coll.Assets() {
			c.Check(seen.Contains(member.ID()), jc.IsFalse)
			seen.Add(member.ID())
		}
	}
	c.Check(seen.SortedValues(), gc.DeepEquals, []string{"a", "b", "d"})
}

func (s *BuilderSuite) TestPartitionSharedRelatedAssetClaimedOnce(c *gc.C) {
	a := &stubAsset{id: "a", kind: asset.Texture}
	shared := &stubAsset{id: "shared", kind: asset.Texture}
	b := &stubAsset{id: "b", kind: asset.Texture}
	// Both seeds want to pull "shared" in; the claimed predicate lets
	// only the first one have it.
	grouping := &stubExporter{
		name: "grouping",
		newCollection: func(seed asset.Asset, claimed export.Claimed) (export.Collection, error) {
			members := []asset.Asset{seed}
			if !claimed(shared.ID()) && seed.ID() != shared.ID() {
				members = append(members, shared)
			}
			return &stubCollection{name: seed.ID(), exportable: true, assets: members}, nil
		},
	}
	s.registry.Register(asset.Resource, grouping, true)

	collections, err := s.builder.Partition([]asset.Asset{a, shared, b})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(collectionNames(collections), gc.DeepEquals, []string{"a", "b"})

	c.Check(memberIDs(collections[0]), gc.DeepEquals, []string{"a", "shared"})
	c.Check(memberIDs(collections[1]), gc.DeepEquals, []string{"b"})
}

func (s *BuilderSuite) TestPartitionRejectsDoubleClaim(c *gc.C) {
	shared := &stubAsset{id: "shared", kind: asset.Texture}
	// A misbehaving exporter that ignores the claimed predicate and
	// pulls "shared" into every collection it builds.
	greedy := &stubExporter{
		name: "greedy",
		newCollection: func(seed asset.Asset, _ export.Claimed) (export.Collection, error) {
			members := []asset.Asset{seed}
			if seed.ID() != shared.ID() {
				members = append(members, shared)
			}
			return &stubCollection{name: seed.ID(), exportable: true, assets: members}, nil
		},
	}
	s.registry.Register(asset.Resource, greedy, true)

	assets := []asset.Asset{
		&stubAsset{id: "a", kind: asset.Texture},
		shared,
		&stubAsset{id: "b", kind: asset.Texture},
	}
	_, err := s.builder.Partition(assets)
	c.Assert(err, gc.ErrorMatches, `collection "b" claims already-assigned asset "shared"`)
}

func (s *BuilderSuite) TestPartitionUnresolvableKindIsFatal(c *gc.C) {
	s.registry.Register(asset.Resource, &stubExporter{name: "resources"}, true)
	assets := []asset.Asset{
		&stubAsset{id: "a", kind: asset.Texture},
		&stubAsset{id: "b", kind: asset.Table},
	}

	collections, err := s.builder.Partition(assets)
	c.Assert(err, jc.Satisfies, errors.IsNotFound)
	c.Assert(err, gc.ErrorMatches,
		`partitioning asset "b" of kind "table": exporter for kind "table" not found`)
	c.Check(collections, gc.IsNil)
}

func (s *BuilderSuite) TestPartitionOrderIsStable(c *gc.C) {
	s.registry.Register(asset.Object, &stubExporter{name: "universal"}, true)
	assets := []asset.Asset{
		&stubAsset{id: "z", kind: asset.Audio},
		&stubAsset{id: "m", kind: asset.Script},
		&stubAsset{id: "a", kind: asset.Texture},
	}

	first, err := s.builder.Partition(assets)
	c.Assert(err, jc.ErrorIsNil)
	second, err := s.builder.Partition(assets)
	c.Assert(err, jc.ErrorIsNil)

	// First-encounter order of the seed assets, both times.
	c.Check(collectionNames(first), gc.DeepEquals, []string{"z", "m", "a"})
	c.Check(collectionNames(second), gc.DeepEquals, collectionNames(first))
}

func (s *BuilderSuite) TestPartitionRejectsCollectionWithoutSeed(c *gc.C) {
	other := &stubAsset{id: "other", kind: asset.Texture}
	rogue := &stubExporter{
		name: "rogue",
		newCollection: func(seed asset.Asset, _ export.Claimed) (export.Collection, error) {
			return &stubCollection{name: "rogue", exportable: true, assets: []asset.Asset{other}}, nil
		},
	}
	s.registry.Register(asset.Resource, rogue, true)

	_, err := s.builder.Partition([]asset.Asset{&stubAsset{id: "seed", kind: asset.Texture}})
	c.Assert(err, gc.ErrorMatches, `collection "rogue" built for asset "seed" does not contain it`)
}

func collectionNames(collections []export.Collection) []string {
	names := make([]string, len(collections))
	for i, coll := range collections {
		names[i] = coll.Name()
	}
	return names
}

func memberIDs(coll export.Collection) []string {
	ids := make([]string, 0, len(coll.Assets()))
	for _, member := range coll.Assets() {
		ids = append(ids, member.ID())
	}
	return ids
}
