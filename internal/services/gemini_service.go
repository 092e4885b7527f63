package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"
	"waste-tracking-backend/config"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

type GeminiService struct {
	client      *genai.Client
	cache       map[string]*CachedResponse
	cacheMutex  sync.RWMutex
	rateLimiter *rate.Limiter
}

type CachedResponse struct {
	Data      string
	ExpiresAt time.Time
}

type RetryConfig struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

func NewGeminiService(apiKey string) (*GeminiService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	service := &GeminiService{
		client:      client,
		cache:       make(map[string]*CachedResponse),
		rateLimiter: rate.NewLimiter(rate.Every(time.Minute), 15), // 15 requests per minute
	}

	// Start background cache cleanup
	service.StartCacheCleanup()

	return service, nil
}

// GenerateReport satisfies the waste data report generator. Identical filter
// sets produce identical prompts, so the prompt cache keeps repeated dashboard
// requests from burning quota.
func (g *GeminiService) GenerateReport(ctx context.Context, prompt string) (string, error) {
	return g.GenerateContentWithRetry(ctx, prompt, nil)
}

func (g *GeminiService) GenerateContentWithRetry(ctx context.Context, prompt string, config *RetryConfig) (string, error) {
	if config == nil {
		config = &RetryConfig{
			MaxRetries:    3,
			InitialDelay:  time.Second,
			MaxDelay:      time.Minute,
			BackoffFactor: 2.0,
		}
	}

	// Check cache first
	if cached := g.getFromCache(prompt); cached != "" {
		return cached, nil
	}

	// Rate limit check
	if err := g.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit exceeded: %w", err)
	}

	var lastErr error
	delay := config.InitialDelay

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
				// Continue with retry
			}
		}

		result, err := g.generateContent(ctx, prompt)
		if err == nil {
			// Cache successful response
			g.cacheResponse(prompt, result)
			return result, nil
		}

		lastErr = err

		// Check if error is retryable
		if !g.isRetryableError(err) {
			break
		}

		// Calculate next delay with exponential backoff
		delay = time.Duration(float64(delay) * config.BackoffFactor)
		if delay > config.MaxDelay {
			delay = config.MaxDelay
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", config.MaxRetries+1, lastErr)
}

func (g *GeminiService) generateContent(ctx context.Context, prompt string) (string, error) {
	config.Logger.Info("Sending request to Gemini 2.5 Flash",
		zap.Int("promptLength", len(prompt)),
	)

	parts := []*genai.Part{
		{Text: prompt},
	}
	contents := []*genai.Content{
		{Parts: parts},
	}

	startTime := time.Now()

	resp, err := g.client.Models.GenerateContent(ctx, "gemini-2.5-flash", contents, nil)
	if err != nil {
		config.Logger.Error("Gemini API request failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(startTime)),
		)
		return "", err
	}

	responseText := resp.Text()

	config.Logger.Info("Received response from Gemini 2.5 Flash",
		zap.Int("responseLength", len(responseText)),
		zap.Duration("duration", time.Since(startTime)),
	)

	return responseText, nil
}

func (g *GeminiService) isRetryableError(err error) bool {
	// Check for rate limit, quota, or temporary errors
	errStr := err.Error()
	retryableErrors := []string{
		"rate limit",
		"quota exceeded",
		"temporary",
		"timeout",
		"connection",
		"503",
		"429",
		"internal error",
		"service unavailable",
	}

	for _, retryable := range retryableErrors {
		if strings.Contains(strings.ToLower(errStr), retryable) {
			return true
		}
	}
	return false
}

func (g *GeminiService) getFromCache(prompt string) string {
	key := g.generateCacheKey(prompt)

	g.cacheMutex.RLock()
	defer g.cacheMutex.RUnlock()

	if cached, exists := g.cache[key]; exists {
		if time.Now().Before(cached.ExpiresAt) {
			return cached.Data
		}
	}
	return ""
}

func (g *GeminiService) cacheResponse(prompt, response string) {
	key := g.generateCacheKey(prompt)

	g.cacheMutex.Lock()
	defer g.cacheMutex.Unlock()

	g.cache[key] = &CachedResponse{
		Data:      response,
		ExpiresAt: time.Now().Add(24 * time.Hour), // Cache for 24 hours
	}
}

func (g *GeminiService) generateCacheKey(prompt string) string {
	hash := md5.Sum([]byte(prompt))
	return hex.EncodeToString(hash[:])
}

func (g *GeminiService) StartCacheCleanup() {
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			g.cleanupExpiredCache()
		}
	}()
}

func (g *GeminiService) cleanupExpiredCache() {
	g.cacheMutex.Lock()
	defer g.cacheMutex.Unlock()

	now := time.Now()
	for key, cached := range g.cache {
		if now.After(cached.ExpiresAt) {
			delete(g.cache, key)
		}
	}
}
