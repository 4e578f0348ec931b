// Package router resolves which provider adapter and model serve a
// classification, keyed by purpose. Classification never fails from
// the caller's point of view: any resolution, transport, or parse
// error yields the trivial fallback result.
package router

import (
	"context"
	"fmt"
	"log/slog"

	"tabtidy/internal/classify"
	"tabtidy/internal/classify/anthropic"
	"tabtidy/internal/classify/gemini"
	"tabtidy/internal/classify/openai"
	"tabtidy/internal/config"
	"tabtidy/internal/logging"
)

// ProviderFactory builds an adapter for one resolved route.
type ProviderFactory func(provider string, creds config.ProviderCredentials, model string) (classify.Provider, error)

// Router dispatches classification requests per purpose.
type Router struct {
	cfg     *config.Config
	logger  *slog.Logger
	factory ProviderFactory
}

// Option customizes the router.
type Option func(*Router)

// WithProviderFactory overrides adapter construction (useful for tests).
func WithProviderFactory(factory ProviderFactory) Option {
	return func(r *Router) {
		if factory != nil {
			r.factory = factory
		}
	}
}

// New builds a router over the configured routes.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Router {
	if logger == nil {
		logger = logging.NewNop()
	}
	router := &Router{
		cfg:     cfg,
		logger:  logger,
		factory: defaultFactory,
	}
	for _, opt := range opts {
		opt(router)
	}
	return router
}

func defaultFactory(provider string, creds config.ProviderCredentials, model string) (classify.Provider, error) {
	switch provider {
	case "openai":
		return openai.NewClient(creds, model), nil
	case "gemini":
		return gemini.NewClient(creds, model), nil
	case "anthropic":
		return anthropic.NewClient(creds, model), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}

// Classify resolves the route for the purpose, runs the provider, and
// decodes the response. Every failure path degrades to the fallback
// result so the pipeline can always proceed.
func (r *Router) Classify(ctx context.Context, purpose classify.Purpose, req classify.Request) classify.Result {
	ids := req.IDs()
	route, ok := r.cfg.RouteFor(string(purpose))
	if !ok {
		r.logger.Warn("no route for purpose",
			logging.String("purpose", string(purpose)))
		return classify.Fallback("router", ids)
	}
	creds, ok := r.cfg.CredentialsFor(route.Provider)
	if !ok {
		r.logger.Warn("no credentials for provider",
			logging.String(logging.FieldProvider, route.Provider))
		return classify.Fallback(route.Provider, ids)
	}
	provider, err := r.factory(route.Provider, creds, route.Model)
	if err != nil {
		r.logger.Warn("provider construction failed",
			logging.String(logging.FieldProvider, route.Provider),
			logging.Error(err))
		return classify.Fallback(route.Provider, ids)
	}

	prompt := classify.BuildPrompt(req)
	raw, err := provider.Complete(ctx, prompt)
	if err != nil {
		r.logger.Warn("provider call failed",
			logging.String(logging.FieldProvider, provider.Name()),
			logging.Error(err))
		return classify.Fallback(provider.Name(), ids)
	}
	result, err := classify.DecodeResult(raw)
	if err != nil {
		r.logger.Warn("provider response unparseable",
			logging.String(logging.FieldProvider, provider.Name()),
			logging.Error(err))
		return classify.Fallback(provider.Name(), ids)
	}
	return restrictToRequest(result, ids)
}

// restrictToRequest drops ids the provider invented. Groups left empty
// after restriction are removed.
func restrictToRequest(result classify.Result, ids []int64) classify.Result {
	known := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}
	closeIDs := result.CloseIDs[:0]
	for _, id := range result.CloseIDs {
		if _, ok := known[id]; ok {
			closeIDs = append(closeIDs, id)
		}
	}
	result.CloseIDs = closeIDs

	groups := result.Groups[:0]
	for _, group := range result.Groups {
		kept := group.TabIDs[:0]
		for _, id := range group.TabIDs {
			if _, ok := known[id]; ok {
				kept = append(kept, id)
			}
		}
		group.TabIDs = kept
		if len(group.TabIDs) > 0 {
			groups = append(groups, group)
		}
	}
	result.Groups = groups
	return result
}
