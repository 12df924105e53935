package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogList(t *testing.T) {
	dir := t.TempDir()
	writeDefinitions(t, dir, map[string]string{
		"hello-world.tool.yaml": helloWorldTool,
		"web-search.tool.yaml":  webSearchTool,
		"broken.tool.yaml":      "kind: BMadTool\nschemaVersion: 1.0.0\ntool:\n  id: broken\n",
	})

	registryDir := t.TempDir()
	writeDefinitions(t, registryDir, map[string]string{
		"data-query.tool.yaml": dataQueryTool,
	})
	registryPath := filepath.Join(registryDir, "registry.yaml")
	registry := `
kind: BMadToolRegistry
schemaVersion: 1.0.0
version: "1"
tools:
  - id: data-query
    file: data-query.tool.yaml
  - id: hello-world
    file: hello-world.tool.yaml
`
	require.NoError(t, os.WriteFile(registryPath, []byte(registry), 0o644))

	c := NewCatalog(dir, registryPath, nil)

	defs, err := c.List()
	require.NoError(t, err)

	ids := make([]string, 0, len(defs))
	for _, def := range defs {
		ids = append(ids, def.ID)
	}

	// The broken definition is skipped; hello-world appears once even though
	// the registry also indexes it.
	assert.ElementsMatch(t, []string{"hello-world", "web-search", "data-query"}, ids)
}
