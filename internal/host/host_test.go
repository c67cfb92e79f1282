package host

import (
	"errors"
	"testing"

	"github.com/bagtoad/visionml/internal/bootstrap"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLibrary struct{}

func (stubLibrary) Call(string) error { return nil }
func (stubLibrary) Close() error      { return nil }

type stubBootstrapper struct {
	lib   bootstrap.Library
	err   error
	calls int
}

func (s *stubBootstrapper) Bootstrap() (bootstrap.Library, error) {
	s.calls++
	return s.lib, s.err
}

type recordingExtension struct {
	NopExtension
	name   string
	events *[]string
}

func (e *recordingExtension) Setup()    { *e.events = append(*e.events, e.name+":setup") }
func (e *recordingExtension) Shutdown() { *e.events = append(*e.events, e.name+":shutdown") }
func (e *recordingExtension) CreateActions(w Window) {
	*e.events = append(*e.events, e.name+":actions:"+w.(string))
}

func TestNopExtensionSatisfiesInterface(t *testing.T) {
	var ext Extension = NopExtension{}
	ext.Setup()
	ext.CreateActions(nil)
	ext.Shutdown()
}

func TestRegister(t *testing.T) {
	logger, _ := test.NewNullLogger()
	reg := NewRegistry(logger)
	b := &stubBootstrapper{lib: stubLibrary{}}

	ext, err := Register(reg, b)
	require.NoError(t, err)

	assert.Equal(t, 1, b.calls)
	assert.Equal(t, stubLibrary{}, ext.Library())
	require.Len(t, reg.Extensions(), 1)
	assert.Same(t, ext, reg.Extensions()[0])

	// Hooks are no-ops.
	reg.Activate("main")
	reg.Close()
}

func TestRegisterFailure(t *testing.T) {
	reg := NewRegistry(nil)
	b := &stubBootstrapper{err: errors.New("Failed to load VisionML library")}

	ext, err := Register(reg, b)
	assert.Error(t, err)
	assert.Nil(t, ext)
	assert.Empty(t, reg.Extensions())
}

func TestRegistryLifecycleOrder(t *testing.T) {
	var events []string
	reg := NewRegistry(nil)

	reg.AddExtension(&recordingExtension{name: "a", events: &events})
	reg.AddExtension(&recordingExtension{name: "b", events: &events})
	reg.Activate("main")
	reg.Close()
	reg.Close()

	assert.Equal(t, []string{
		"a:setup", "b:setup",
		"a:actions:main", "b:actions:main",
		"b:shutdown", "a:shutdown",
	}, events)
}
