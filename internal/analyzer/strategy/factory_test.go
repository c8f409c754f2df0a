package strategy

import (
	"errors"
	"testing"

	"golang-stock-sentiment/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelFactoryCachesOneInstancePerModel(t *testing.T) {
	f := NewModelFactory(DeviceProbe{})
	calls := 0
	f.Register("test/model", func(device Device) (SentimentModelStrategy, error) {
		calls++
		return NewLexiconStrategy(device), nil
	})

	first, err := f.GetStrategy("test/model", DeviceCPU)
	require.NoError(t, err)
	second, err := f.GetStrategy("test/model", DeviceCUDA)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)

	f.ClearCache()
	third, err := f.GetStrategy("test/model", DeviceCPU)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, calls)
}

func TestModelFactoryUnsupported(t *testing.T) {
	f := NewModelFactory(DeviceProbe{})
	_, err := f.GetStrategy("nope/model", DeviceCPU)
	require.Error(t, err)
	assert.Contains(t, err.Error(), string(ModelLexicon))
}

func TestModelFactoryConstructorError(t *testing.T) {
	f := NewModelFactory(DeviceProbe{})
	f.Register("broken", func(Device) (SentimentModelStrategy, error) { return nil, errors.New("no weights") })

	_, err := f.GetStrategy("broken", DeviceCPU)
	assert.ErrorContains(t, err, "no weights")

	_, err = f.GetStrategy("broken", DeviceCPU)
	assert.Error(t, err)
}

func TestModelFactoryDetectsDevice(t *testing.T) {
	f := NewModelFactory(DeviceProbe{GOOS: "darwin", GOARCH: "arm64"})
	s, err := f.GetStrategy(ModelLexicon, "")
	require.NoError(t, err)
	assert.Equal(t, DeviceMPS, s.Device())
}

func TestRegisterInferenceModels(t *testing.T) {
	f := NewModelFactory(DeviceProbe{})
	RegisterInferenceModels(f, new(mockHuggingFaceRepository), logger.NewNop())

	assert.ElementsMatch(t, []string{
		string(ModelDistilRobertaFinancial),
		string(ModelDistilRobertaNews),
		string(ModelFinBERT),
		string(ModelLexicon),
	}, f.Supported())

	s, err := f.GetStrategy(ModelDistilRobertaNews, DeviceCPU)
	require.NoError(t, err)
	assert.Equal(t, string(ModelDistilRobertaNews), s.ModelName())

	empty := NewModelFactory(DeviceProbe{})
	RegisterInferenceModels(empty, nil, logger.NewNop())
	_, err = empty.GetStrategy(DefaultModelType, DeviceCPU)
	assert.Error(t, err)
}

func TestDetectDevice(t *testing.T) {
	assert.Equal(t, DeviceMPS, DetectDevice(DeviceProbe{GOOS: "darwin", GOARCH: "arm64"}))
	assert.Equal(t, DeviceCPU, DetectDevice(DeviceProbe{GOOS: "darwin", GOARCH: "amd64"}))

	cudaNode := DeviceProbe{GOOS: "linux", FileExists: func(p string) bool { return p == "/dev/nvidia0" }}
	assert.Equal(t, DeviceCUDA, DetectDevice(cudaNode))

	cudaTool := DeviceProbe{
		GOOS:       "linux",
		FileExists: func(string) bool { return false },
		LookPath:   func(string) (string, error) { return "/usr/bin/nvidia-smi", nil },
	}
	assert.Equal(t, DeviceCUDA, DetectDevice(cudaTool))

	none := DeviceProbe{
		GOOS:       "linux",
		FileExists: func(string) bool { return false },
		LookPath:   func(string) (string, error) { return "", errors.New("not found") },
	}
	assert.Equal(t, DeviceCPU, DetectDevice(none))
}

func TestParseDevice(t *testing.T) {
	d, auto, err := ParseDevice(" CUDA ")
	require.NoError(t, err)
	assert.Equal(t, DeviceCUDA, d)
	assert.False(t, auto)

	_, auto, err = ParseDevice("auto")
	require.NoError(t, err)
	assert.True(t, auto)

	_, _, err = ParseDevice("tpu")
	assert.Error(t, err)
}
