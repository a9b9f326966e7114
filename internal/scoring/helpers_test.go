package scoring

import (
	"context"
	"errors"
	"sync"
)

const sampleResume = "JavaScript, React, 5 years experience, Bachelor's degree in Computer Science, skills: Node.js, communication"

var errProviderDown = errors.New("provider down")

// fakeEmbedder returns vectorFor(text) and counts calls.
type fakeEmbedder struct {
	mu        sync.Mutex
	calls     []string
	vectorFor func(text string) ([]float32, error)
}

func constantEmbedder(vec ...float32) *fakeEmbedder {
	return &fakeEmbedder{vectorFor: func(string) ([]float32, error) { return vec, nil }}
}

func failingEmbedder(err error) *fakeEmbedder {
	return &fakeEmbedder{vectorFor: func(string) ([]float32, error) { return nil, err }}
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	f.mu.Unlock()
	return f.vectorFor(text)
}

func (f *fakeEmbedder) Provider() string { return "fake" }
func (f *fakeEmbedder) Model() string    { return "fake-model" }

func (f *fakeEmbedder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
