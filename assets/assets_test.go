package assets

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedAssets(t *testing.T) {
	for _, name := range []string{"css/app.css", "js/app.js"} {
		data, err := fs.ReadFile(Assets, name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}
}

func TestClientScriptListensForMarkerEvents(t *testing.T) {
	data, err := fs.ReadFile(Assets, "js/app.js")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"map:markers"`)
	assert.Contains(t, string(data), "data-dismiss-after")
}
