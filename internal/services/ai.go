package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/rishanreddy/habitmind/internal/models"
)

const (
	defaultInsightMaxTokens = 500
	decayTokensPerHabit     = 150
	insightTemperature      = 0.7
)

// DecayRisk is the model's prediction for a single habit.
type DecayRisk struct {
	HabitName      string  `json:"habitName" validate:"required"`
	RiskPercentage float64 `json:"riskPercentage" validate:"min=0,max=100"`
	RiskLevel      string  `json:"riskLevel" validate:"oneof=Low Medium High"`
	Recommendation string  `json:"recommendation" validate:"required"`
}

// DecayReport is the structured decay-risk response.
type DecayReport struct {
	DecayRisk []DecayRisk `json:"decayRisk" validate:"required,dive"`
}

// InsightReport is the structured success-rate insight response.
type InsightReport struct {
	Recommendations       string  `json:"recommendations" validate:"required"`
	SuccessRate           float64 `json:"successRate" validate:"min=0,max=100"`
	ImprovementPercentage float64 `json:"improvementPercentage"`
}

// AIConfig configures the chat completion client.
type AIConfig struct {
	APIKey string
	// BaseURL points the client at an OpenAI compatible gateway.
	BaseURL string
	Model   string
}

type AIService struct {
	client *openai.Client
	model  string
}

func NewAIService(cfg AIConfig) *AIService {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	return &AIService{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

// PredictDecay asks the model how likely each habit is to be abandoned.
func (s *AIService) PredictDecay(ctx context.Context, habits []models.Habit, maxTokens int) (*DecayReport, error) {
	habitData, err := json.Marshal(habits)
	if err != nil {
		return nil, fmt.Errorf("failed to encode habits: %w", err)
	}

	prompt := fmt.Sprintf(`You are an AI trained to predict habit decay risk based on user habit data.
Given the following habits, analyze their tracking behavior and predict their likelihood of being abandoned.
Provide a risk percentage (0-100) along with a risk level (Low, Medium, High) and a brief recommendation.

User Habit Data:
%s

Respond with JSON only, in this format:
{"decayRisk": [{"habitName": string, "riskPercentage": number, "riskLevel": "Low" | "Medium" | "High", "recommendation": string}]}`, habitData)

	var report DecayReport
	if err := s.complete(ctx, prompt, maxTokens, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// GenerateInsights asks the model for one way to improve the success rate.
func (s *AIService) GenerateInsights(ctx context.Context, habits []models.Habit, successRate int) (*InsightReport, error) {
	habitData, err := json.Marshal(habits)
	if err != nil {
		return nil, fmt.Errorf("failed to encode habits: %w", err)
	}

	prompt := fmt.Sprintf(`You are an AI trained to analyze habit-tracking data and provide actionable habit improvement recommendations.
Given the user's habits and their success rate, suggest ONE way to optimize their habit-building strategy.

User Habit Data:
%s

Their current success rate is %d%%.

Respond with JSON only, in this format:
{"recommendations": string, "successRate": number between 0 and 100, "improvementPercentage": number}`, habitData, successRate)

	var report InsightReport
	if err := s.complete(ctx, prompt, defaultInsightMaxTokens, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *AIService) complete(ctx context.Context, prompt string, maxTokens int, out interface{}) error {
	if s.client == nil {
		return fmt.Errorf("OpenAI client not initialized")
	}

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: insightTemperature,
			MaxTokens:   maxTokens,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return fmt.Errorf("no response from OpenAI")
	}

	content := stripCodeFence(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("invalid AI response: %w", err)
	}

	return nil
}

// Some compatible gateways wrap JSON output in a markdown fence even when a
// JSON response format is requested.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func decayMaxTokens(habitCount int) int {
	if n := habitCount * decayTokensPerHabit; n > defaultInsightMaxTokens {
		return n
	}
	return defaultInsightMaxTokens
}
