package testsupport

import (
	"context"
	"sync"
)

// FakeProvider is a scripted classify.Provider. Each Complete call
// returns the next scripted response, or the last one when the script
// runs out.
type FakeProvider struct {
	mu        sync.Mutex
	name      string
	responses []string
	err       error

	Prompts []string
}

// NewFakeProvider builds a provider returning the given responses in order.
func NewFakeProvider(name string, responses ...string) *FakeProvider {
	return &FakeProvider{name: name, responses: responses}
}

// Fail scripts every Complete call to return err.
func (p *FakeProvider) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *FakeProvider) Name() string { return p.name }

func (p *FakeProvider) Complete(ctx context.Context, prompt string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Prompts = append(p.Prompts, prompt)
	if p.err != nil {
		return "", p.err
	}
	if len(p.responses) == 0 {
		return "", context.Canceled
	}
	response := p.responses[0]
	if len(p.responses) > 1 {
		p.responses = p.responses[1:]
	}
	return response, nil
}
