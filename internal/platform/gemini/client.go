package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"google.golang.org/genai"

	"github.com/phrazzld/lingua-api/internal/config"
	"github.com/phrazzld/lingua-api/internal/generation"
)

const (
	defaultMaxRetries     = 3
	defaultRetryDelay     = 2 * time.Second
	defaultRequestTimeout = 30 * time.Second
)

// modelsAPI is the subset of genai.Models the client uses.
type modelsAPI interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Client talks to the Gemini API. It is safe for concurrent use.
type Client struct {
	api    modelsAPI
	logger *slog.Logger
	models map[string]string

	maxRetries     int
	retryDelay     time.Duration
	requestTimeout time.Duration

	// sleep waits for d or until ctx is done; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

var (
	_ generation.TextGenerator     = (*Client)(nil)
	_ generation.SpeechSynthesizer = (*Client)(nil)
)

// New creates a Client from the LLM configuration.
//
// Parameters:
//   - ctx: Context for client initialization
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model names and retry settings
//
// Returns:
//   - A ready Client, or an error wrapping generation.ErrInvalidConfig
func New(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newClient(client.Models, logger, cfg)
}

func newClient(api modelsAPI, logger *slog.Logger, cfg config.LLMConfig) (*Client, error) {
	models := map[string]string{
		generation.ModelText:   cfg.TextModel,
		generation.ModelVision: cfg.VisionModel,
		generation.ModelAudio:  cfg.AudioModel,
		generation.ModelSpeech: cfg.SpeechModel,
	}
	for role, name := range models {
		if name == "" {
			return nil, fmt.Errorf("%w: model name for %s cannot be empty", generation.ErrInvalidConfig, role)
		}
	}

	c := &Client{
		api:            api,
		logger:         logger.With("component", "gemini_client"),
		models:         models,
		maxRetries:     cfg.MaxRetries,
		retryDelay:     cfg.RetryDelay(),
		requestTimeout: cfg.RequestTimeout(),
		sleep:          sleepContext,
	}

	if c.maxRetries < 0 {
		c.logger.Warn("invalid max retries value, using default", "max_retries", defaultMaxRetries)
		c.maxRetries = defaultMaxRetries
	}
	if c.retryDelay <= 0 {
		c.retryDelay = defaultRetryDelay
	}
	if c.requestTimeout <= 0 {
		c.requestTimeout = defaultRequestTimeout
	}
	return c, nil
}

// GenerateText sends req to the model for its role and returns the text of
// the first candidate.
func (c *Client) GenerateText(ctx context.Context, req generation.Request) (string, error) {
	if req.Prompt == "" && len(req.Media) == 0 {
		return "", generation.ErrEmptyPrompt
	}
	model, err := c.model(req.Model)
	if err != nil {
		return "", err
	}

	parts := make([]*genai.Part, 0, 1+len(req.Media))
	if req.Prompt != "" {
		parts = append(parts, genai.NewPartFromText(req.Prompt))
	}
	for _, m := range req.Media {
		parts = append(parts, genai.NewPartFromBytes(m.Data, m.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	genCfg := &genai.GenerateContentConfig{
		Temperature: req.Temperature,
		TopP:        req.TopP,
	}
	if req.SystemInstruction != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	var text string
	err = c.callWithRetry(ctx, req.Operation, model, func(ctx context.Context) error {
		resp, err := c.api.GenerateContent(ctx, model, contents, genCfg)
		if err != nil {
			return classifyAPIError(err)
		}
		candidate, err := firstCandidate(resp)
		if err != nil {
			return err
		}
		text = candidateText(candidate)
		if text == "" {
			return fmt.Errorf("%w: empty text in response", generation.ErrInvalidResponse)
		}
		return nil
	})
	return text, err
}

// SynthesizeSpeech asks the speech model to read req.Text aloud with the
// given prebuilt voice and returns the raw audio it produces.
func (c *Client) SynthesizeSpeech(ctx context.Context, req generation.SpeechRequest) (*generation.Audio, error) {
	if req.Text == "" {
		return nil, generation.ErrEmptyPrompt
	}
	model, err := c.model(generation.ModelSpeech)
	if err != nil {
		return nil, err
	}

	contents := genai.Text(req.Text)
	genCfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: req.Voice},
			},
		},
	}

	var audio *generation.Audio
	err = c.callWithRetry(ctx, "synthesize_speech", model, func(ctx context.Context) error {
		resp, err := c.api.GenerateContent(ctx, model, contents, genCfg)
		if err != nil {
			return classifyAPIError(err)
		}
		candidate, err := firstCandidate(resp)
		if err != nil {
			return err
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				audio = &generation.Audio{Data: part.InlineData.Data, MIMEType: part.InlineData.MIMEType}
				return nil
			}
		}
		return fmt.Errorf("%w: no audio in response", generation.ErrInvalidResponse)
	})
	return audio, err
}

func (c *Client) model(role string) (string, error) {
	if role == "" {
		role = generation.ModelText
	}
	name, ok := c.models[role]
	if !ok {
		return "", fmt.Errorf("%w: unknown model role %q", generation.ErrInvalidConfig, role)
	}
	return name, nil
}

// callWithRetry runs call up to maxRetries+1 times, using exponential backoff
// with jitter between attempts. Permanent errors are returned immediately.
func (c *Client) callWithRetry(ctx context.Context, operation, model string, call func(context.Context) error) error {
	for attempt := 0; ; attempt++ {
		attemptNum := attempt + 1 // For logging (1-based)
		c.logger.DebugContext(ctx, "making Gemini API call",
			"operation", operation,
			"model", model,
			"attempt", attemptNum,
			"max_attempts", c.maxRetries+1)

		attemptCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
		err := call(attemptCtx)
		cancel()
		if err == nil {
			return nil
		}

		c.logger.WarnContext(ctx, "Gemini API call failed",
			"operation", operation,
			"model", model,
			"attempt", attemptNum,
			"error", err)

		if generation.IsPermanent(err) {
			return err
		}
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
		if attempt >= c.maxRetries {
			return fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, c.maxRetries, err)
		}

		delay := backoff(c.retryDelay, attempt)
		if err := c.sleep(ctx, delay); err != nil {
			return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
		}
	}
}

// backoff returns base * 2^attempt scaled by a jitter factor in [0.5, 1.0).
func backoff(base time.Duration, attempt int) time.Duration {
	jitter := 0.5 + rand.Float64()*0.5
	return time.Duration(float64(base) * float64(uint(1)<<uint(attempt)) * jitter)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func firstCandidate(resp *genai.GenerateContentResponse) (*genai.Candidate, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return nil, fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}
	return candidate, nil
}

func candidateText(candidate *genai.Candidate) string {
	var text string
	for _, part := range candidate.Content.Parts {
		if part != nil && !part.Thought {
			text += part.Text
		}
	}
	return text
}

// classifyAPIError marks client-side API failures as permanent. Rate limits,
// server errors and network failures stay transient.
func classifyAPIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 429 || apiErr.Code >= 500:
			return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
		case apiErr.Code >= 400:
			return fmt.Errorf("%w: %v", generation.ErrRequestRejected, err)
		}
	}
	return err
}
