package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/DinN0000/dotbrain/internal/common"
	"github.com/DinN0000/dotbrain/internal/secrets"
)

// sender is the transport behind a single provider.
type sender interface {
	Send(ctx context.Context, model string, maxTokens int, prompt string) (string, Usage, error)
}

// clientFactory builds a sender for the given provider and API key.
type clientFactory func(provider Provider, apiKey string) sender

func defaultClientFactory(provider Provider, apiKey string) sender {
	switch provider {
	case ProviderGemini:
		return newGeminiClient(apiKey)
	default:
		return newClaudeClient(apiKey)
	}
}

type request struct {
	ctx       context.Context
	tier      ModelTier
	maxTokens int
	prompt    string
	reply     chan response
}

type response struct {
	text string
	err  error
}

// Service sends prompts to the configured AI provider. All requests are
// funneled through a single worker goroutine, so the active provider and
// its credentials are read exactly once per request and concurrent callers
// never observe a half-switched configuration.
type Service struct {
	requests chan request
	done     chan struct{}

	providerFn func() Provider
	store      secrets.Store
	newClient  clientFactory
	limiter    *rate.Limiter
	costs      CostRecorder
	logger     *slog.Logger

	baseDelay time.Duration
	sleep     func(time.Duration)
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithClientFactory replaces the transport constructor. Used in tests.
func WithClientFactory(factory clientFactory) ServiceOption {
	return func(s *Service) { s.newClient = factory }
}

// WithSleep replaces the backoff sleep function. Used in tests.
func WithSleep(sleep func(time.Duration)) ServiceOption {
	return func(s *Service) { s.sleep = sleep }
}

// WithBaseDelay sets the initial retry backoff delay.
func WithBaseDelay(delay time.Duration) ServiceOption {
	return func(s *Service) { s.baseDelay = delay }
}

// WithRateLimit overrides the request rate limit.
func WithRateLimit(limit rate.Limit, burst int) ServiceOption {
	return func(s *Service) { s.limiter = rate.NewLimiter(limit, burst) }
}

// WithCostRecorder records the priced token usage of every successful call.
func WithCostRecorder(recorder CostRecorder) ServiceOption {
	return func(s *Service) { s.costs = recorder }
}

// NewService creates a Service and starts its worker. providerFn is consulted
// per request, so provider switches take effect on the next call. Callers must
// Close the service when done.
func NewService(providerFn func() Provider, store secrets.Store, logger *slog.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		requests:   make(chan request),
		done:       make(chan struct{}),
		providerFn: providerFn,
		store:      store,
		newClient:  defaultClientFactory,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 2),
		logger:     logger,
		baseDelay:  time.Second,
		sleep:      time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.worker()
	return s
}

// Close stops the worker. Pending Send calls fail once the worker drains.
func (s *Service) Close() {
	close(s.requests)
	<-s.done
}

// Send submits a prompt at the given model tier and returns the raw reply.
func (s *Service) Send(ctx context.Context, tier ModelTier, maxTokens int, prompt string) (string, error) {
	req := request{
		ctx:       ctx,
		tier:      tier,
		maxTokens: maxTokens,
		prompt:    prompt,
		reply:     make(chan response, 1),
	}
	select {
	case s.requests <- req:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	select {
	case res := <-req.reply:
		return res.text, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *Service) worker() {
	defer close(s.done)
	for req := range s.requests {
		text, err := s.process(req)
		req.reply <- response{text: text, err: err}
	}
}

func (s *Service) process(req request) (string, error) {
	if err := s.limiter.Wait(req.ctx); err != nil {
		return "", err
	}

	primary := s.providerFn()
	text, primaryErr := s.sendWithRetry(req, primary)
	if primaryErr == nil {
		return text, nil
	}

	fallback := primary.Alternate()
	apiKey, err := s.store.Get(fallback.CredentialAccount())
	if err != nil || apiKey == "" {
		return "", primaryErr
	}

	s.logger.Warn("primary provider failed, trying fallback",
		"primary", string(primary),
		"fallback", string(fallback),
		"error", primaryErr)

	client := s.newClient(fallback, apiKey)
	model := fallback.Model(req.tier)
	text, usage, fallbackErr := client.Send(req.ctx, model, req.maxTokens, req.prompt)
	if fallbackErr != nil {
		// The primary error describes the configured provider; the
		// fallback was best effort.
		return "", primaryErr
	}
	s.recordCost(req.ctx, model, usage)
	return text, nil
}

// sendWithRetry runs up to three attempts against a single provider with
// exponential backoff between attempts. The returned error is the last
// provider error, not the retry bookkeeping wrapper.
func (s *Service) sendWithRetry(req request, provider Provider) (string, error) {
	apiKey, err := s.store.Get(provider.CredentialAccount())
	if err != nil || apiKey == "" {
		return "", fmt.Errorf("%s: %w", provider, ErrNoAPIKey)
	}

	client := s.newClient(provider, apiKey)
	model := provider.Model(req.tier)

	var text string
	var lastErr error
	retryErr := common.WithRetry(req.ctx, func() error {
		reply, usage, sendErr := client.Send(req.ctx, model, req.maxTokens, req.prompt)
		if sendErr != nil {
			lastErr = sendErr
			s.logger.Debug("provider call failed",
				"provider", string(provider),
				"model", model,
				"error", sendErr)
			return &common.RetryableError{Err: sendErr, Retryable: IsRetryable(sendErr)}
		}
		text = reply
		s.recordCost(req.ctx, model, usage)
		return nil
	}, common.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: s.baseDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2,
		Sleep: func(ctx context.Context, d time.Duration) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.sleep(d)
			return nil
		},
	})
	if retryErr != nil {
		if lastErr != nil {
			return "", lastErr
		}
		return "", retryErr
	}
	return text, nil
}

func (s *Service) recordCost(ctx context.Context, model string, usage Usage) {
	if s.costs == nil {
		return
	}
	cost := CostOf(model, usage)
	if cost == 0 {
		return
	}
	if err := s.costs.AddAPICost(ctx, cost); err != nil {
		s.logger.Warn("failed to record api cost",
			"model", model,
			"error", err)
	}
}
