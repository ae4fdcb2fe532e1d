// Copyright 2026 Assetforge Contributors
// Licensed under the AGPLv3, see LICENCE file for details.

package store_test

import (
	"os"
	"path/filepath"

	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/assetforge/assetforge/core/asset"
	"github.com/assetforge/assetforge/internal/store"
)

type ManifestSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&ManifestSuite{})

const sampleManifest = `
assets:
  - id: door-tx
    kind: texture
    classification: TX_DIFFUSE
    payload: "not really pixels"
    related: [door-bump]
  - id: door-bump
    kind: texture
    classification: TX_BUMP
    payload: "bump data"
  - id: open-door
    kind: script
    attributes:
      source: "begin open_door\nend"
  - id: loot
    kind: table
    attributes:
      rows: 4
`

func (s *ManifestSuite) TestParse(c *gc.C) {
	st, err := store.Parse([]byte(sampleManifest))
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(st.Len(), gc.Equals, 4)

	a, ok := st.Lookup("door-tx")
	c.Assert(ok, jc.IsTrue)
	c.Check(a.Kind(), gc.Equals, asset.Texture)
	c.Check(a.Classification(), gc.Equals, "TX_DIFFUSE")
	entry := a.(*store.Entry)
	c.Check(entry.Payload(), gc.DeepEquals, []byte("not really pixels"))

	var related []string
	for _, r := range st.Related("door-tx") {
		related = append(related, r.ID())
	}
	c.Check(related, gc.DeepEquals, []string{"door-bump"})

	script, ok := st.Lookup("open-door")
	c.Assert(ok, jc.IsTrue)
	c.Check(script.(*store.Entry).Attributes()["source"], gc.Equals, "begin open_door\nend")
}

func (s *ManifestSuite) TestParseForwardRelation(c *gc.C) {
	st, err := store.Parse([]byte(`
assets:
  - id: first
    kind: record
    related: [second]
  - id: second
    kind: record
`))
	c.Assert(err, jc.ErrorIsNil)
	c.Check(st.Related("first"), gc.HasLen, 1)
}

func (s *ManifestSuite) TestParseUnknownKind(c *gc.C) {
	_, err := store.Parse([]byte(`
assets:
  - id: thing
    kind: hologram
`))
	c.Assert(err, gc.ErrorMatches, `asset "thing": kind "hologram" not valid`)
}

func (s *ManifestSuite) TestParseDanglingRelation(c *gc.C) {
	_, err := store.Parse([]byte(`
assets:
  - id: thing
    kind: record
    related: [ghost]
`))
	c.Assert(err, gc.ErrorMatches, `related asset "ghost" of "thing" not found`)
}

func (s *ManifestSuite) TestParseMissingID(c *gc.C) {
	_, err := store.Parse([]byte(`
assets:
  - kind: record
`))
	c.Assert(err, gc.ErrorMatches, `invalid manifest: .*`)
}

func (s *ManifestSuite) TestLoad(c *gc.C) {
	path := filepath.Join(c.MkDir(), "assets.yaml")
	c.Assert(os.WriteFile(path, []byte(sampleManifest), 0644), jc.ErrorIsNil)

	st, err := store.Load(path)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(st.Len(), gc.Equals, 4)
}

func (s *ManifestSuite) TestLoadMissingFile(c *gc.C) {
	_, err := store.Load(filepath.Join(c.MkDir(), "nope.yaml"))
	c.Assert(err, gc.ErrorMatches, "reading asset manifest: .*")
}
