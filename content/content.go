// Package content embeds the entity archetype documents. The kernel does
// not care where documents come from; game wiring points a config.Loader at
// Files, and tests substitute their own fstest.MapFS.
package content

import "embed"

//go:embed *.yaml enemies bullets messages
var Files embed.FS
