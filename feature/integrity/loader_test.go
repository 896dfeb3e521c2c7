package integrity

import (
	"net/http/httptest"
	"testing"

	"github.com/hanneshbsrt/fehlmengen/core/loader"
	"github.com/hanneshbsrt/fehlmengen/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "fehlmengen").Return(false, nil)

	feature := NewFeature(Options{Client: mockClient, Bucket: "fehlmengen"}, zap.NewNop())
	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	mgr := loader.NewManager()
	mgr.Register(feature)
	require.NoError(t, mgr.LoadAll(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/storage", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	mockClient.AssertCalled(t, "BucketExists", mock.Anything, "fehlmengen")
}
