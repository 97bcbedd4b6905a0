package generated

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSwagger(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)
	require.NoError(t, doc.Validate(context.Background()))

	for _, path := range []string{"/", "/api/hello", "/api/info", "/health", "/static/{filepath}"} {
		item := doc.Paths.Find(path)
		if assert.NotNil(t, item, path) {
			assert.NotNil(t, item.Get, path)
		}
	}

	for _, name := range []string{"HelloResponse", "InfoResponse", "HealthResponse", "ErrorResponse"} {
		assert.Contains(t, doc.Components.Schemas, name)
	}
}
