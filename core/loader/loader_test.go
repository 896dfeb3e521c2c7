package loader_test

import (
	"errors"
	"testing"

	"github.com/hanneshbsrt/fehlmengen/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type fakeFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (f *fakeFeature) Name() string    { return f.name }
func (f *fakeFeature) IsEnabled() bool { return f.enabled }
func (f *fakeFeature) Load(app fiber.Router) error {
	f.loaded = true
	return f.err
}

func TestManager_LoadAll(t *testing.T) {
	t.Run("SkipsDisabled", func(t *testing.T) {
		a := &fakeFeature{name: "a", enabled: true}
		b := &fakeFeature{name: "b"}

		mgr := loader.NewManager()
		mgr.Register(a)
		mgr.Register(b)

		assert.NoError(t, mgr.LoadAll(fiber.New()))
		assert.True(t, a.loaded)
		assert.False(t, b.loaded)
		assert.Len(t, mgr.Features(), 2)
	})

	t.Run("StopsOnError", func(t *testing.T) {
		a := &fakeFeature{name: "a", enabled: true, err: errors.New("boom")}
		b := &fakeFeature{name: "b", enabled: true}

		mgr := loader.NewManager()
		mgr.Register(a)
		mgr.Register(b)

		err := mgr.LoadAll(fiber.New())
		assert.ErrorContains(t, err, "failed to load feature a: boom")
		assert.False(t, b.loaded)
	})
}
