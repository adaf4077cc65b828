package plantintel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"verdant/internal/types"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4o-mini"
	// DefaultBaseURL is the OpenAI API endpoint.
	DefaultBaseURL = "https://api.openai.com/v1"
	// defaultTimeout bounds each inference call.
	defaultTimeout = 20 * time.Second
)

const systemPrompt = "You are a horticulture expert. Given a plant description you classify its " +
	"origin, lifecycle, cold tolerance, water needs and dormancy months for the given region. " +
	"Respond with valid JSON only."

// OpenAIProvider implements types.CharacteristicProvider using the OpenAI
// chat completions API.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

// NewOpenAIProvider creates a provider. Empty model or baseURL fall back
// to the defaults; httpClient may be nil.
func NewOpenAIProvider(apiKey, baseURL, model string, httpClient *http.Client) *OpenAIProvider {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(httpClient),
	)

	return &OpenAIProvider{client: client, model: model}
}

// Infer asks the model to classify the plant and repairs the response into
// a valid PlantCharacteristics. Invalid enum values are coerced to safe
// defaults rather than rejected.
func (p *OpenAIProvider) Infer(ctx context.Context, req types.InferenceRequest) (*types.PlantCharacteristics, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
		openai.UserMessage(buildPrompt(req)),
	}

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(p.model),
		Messages: messages,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeUpstreamAI, "characteristic inference request failed", err)
	}
	if len(resp.Choices) == 0 {
		return nil, types.NewAppError(types.ErrCodeUpstreamAI, "characteristic inference returned no choices", nil)
	}

	chars, err := parseInference(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeUpstreamAI, "characteristic inference returned malformed JSON", err)
	}
	return chars, nil
}

func buildPrompt(req types.InferenceRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Classify this plant.\nSpecies: %s\nLocation: %s\n", orUnknown(req.Species), orUnknown(req.Location))
	if req.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", req.Notes)
	}
	if req.Light != "" {
		fmt.Fprintf(&b, "Light: %s\n", req.Light)
	}
	if req.City != "" {
		fmt.Fprintf(&b, "Region: %s\n", req.City)
	}
	if req.HardinessZone != "" {
		fmt.Fprintf(&b, "USDA hardiness zone: %s\n", req.HardinessZone)
	}
	b.WriteString(`Reply with JSON: {"origin": "native"|"non_native_adapted", ` +
		`"lifecycle": "annual"|"perennial"|"unknown", ` +
		`"cold_tolerance": "hardy"|"semi_hardy"|"tender", ` +
		`"water_needs": "low"|"moderate"|"high", ` +
		`"dormancy_months": [1-12], "confidence": 0.0-1.0}`)
	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// rawInference mirrors the JSON shape the model is asked to return.
type rawInference struct {
	Origin         string  `json:"origin"`
	Lifecycle      string  `json:"lifecycle"`
	ColdTolerance  string  `json:"cold_tolerance"`
	WaterNeeds     string  `json:"water_needs"`
	DormancyMonths []int   `json:"dormancy_months"`
	Confidence     float64 `json:"confidence"`
}

// parseInference extracts JSON from the model output, tolerating markdown
// code fences and surrounding prose, then repairs enum fields.
func parseInference(content string) (*types.PlantCharacteristics, error) {
	raw := strings.TrimSpace(content)

	var parsed rawInference
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		start := strings.Index(raw, "{")
		end := strings.LastIndex(raw, "}")
		if start == -1 || end <= start {
			return nil, err
		}
		if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
			return nil, err
		}
	}

	chars := &types.PlantCharacteristics{
		Origin:        types.RepairOrigin(parsed.Origin),
		Lifecycle:     types.RepairLifecycle(parsed.Lifecycle),
		ColdTolerance: types.RepairColdTolerance(parsed.ColdTolerance),
		WaterNeeds:    types.RepairWaterNeeds(parsed.WaterNeeds),
		Confidence:    clampConfidence(parsed.Confidence),
		Source:        types.SourceAI,
	}
	for _, m := range parsed.DormancyMonths {
		if m >= 1 && m <= 12 {
			chars.DormancyMonths = append(chars.DormancyMonths, time.Month(m))
		}
	}
	return chars, nil
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
