package strategy

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Constructor builds a strategy for a device. It runs at most once per model type
// between cache clears.
type Constructor func(device Device) (SentimentModelStrategy, error)

// ModelFactory resolves model types to strategies and caches one instance per type.
type ModelFactory struct {
	mu           sync.Mutex
	constructors map[ModelType]Constructor
	cache        map[ModelType]SentimentModelStrategy
	probe        DeviceProbe
}

// NewModelFactory creates a factory with the offline lexicon model registered.
func NewModelFactory(probe DeviceProbe) *ModelFactory {
	f := &ModelFactory{
		constructors: make(map[ModelType]Constructor),
		cache:        make(map[ModelType]SentimentModelStrategy),
		probe:        probe,
	}
	f.Register(ModelLexicon, func(device Device) (SentimentModelStrategy, error) {
		return NewLexiconStrategy(device), nil
	})
	return f
}

// Register adds or replaces the constructor for modelType.
func (f *ModelFactory) Register(modelType ModelType, c Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.constructors[modelType] = c
}

// GetStrategy returns the cached strategy for modelType, constructing it on first use.
// An empty device is resolved through device detection.
func (f *ModelFactory) GetStrategy(modelType ModelType, device Device) (SentimentModelStrategy, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if s, ok := f.cache[modelType]; ok {
		return s, nil
	}

	c, ok := f.constructors[modelType]
	if !ok {
		return nil, fmt.Errorf("unsupported model type %q, supported: %s", modelType, strings.Join(f.supportedLocked(), ", "))
	}

	if device == "" {
		device = DetectDevice(f.probe)
	}

	s, err := c(device)
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", modelType, err)
	}
	f.cache[modelType] = s
	return s, nil
}

// ClearCache drops every cached strategy.
func (f *ModelFactory) ClearCache() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cache = make(map[ModelType]SentimentModelStrategy)
}

// Supported lists the registered model types.
func (f *ModelFactory) Supported() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.supportedLocked()
}

func (f *ModelFactory) supportedLocked() []string {
	out := make([]string, 0, len(f.constructors))
	for m := range f.constructors {
		out = append(out, string(m))
	}
	sort.Strings(out)
	return out
}
