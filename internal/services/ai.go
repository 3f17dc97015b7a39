package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/project-dashboard-api/internal/models"
)

// TaskSuggester turns free text into candidate tasks for a project.
type TaskSuggester interface {
	GenerateTasksFromText(ctx context.Context, projectName, text string, today time.Time) ([]GeneratedTask, error)
}

type AIService struct {
	client *openai.Client
	model  string
}

// GeneratedTask is one task as returned by the model. Priority and deadline
// are unvalidated strings.
type GeneratedTask struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Deadline    *string `json:"deadline"`
}

func NewAIService(apiKey string) *AIService {
	return NewAIServiceWithConfig(openai.DefaultConfig(apiKey))
}

// NewAIServiceWithConfig allows pointing the client at another base URL.
func NewAIServiceWithConfig(cfg openai.ClientConfig) *AIService {
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.GPT4o,
	}
}

// GenerateTasksFromText analyzes text and extracts tasks using OpenAI GPT
func (s *AIService) GenerateTasksFromText(ctx context.Context, projectName, text string, today time.Time) ([]GeneratedTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are a task planning assistant for the project %q. Extract concrete, actionable tasks from the text below.

Today: %s

Text:
%s

Respond with a JSON object of this shape:
{
  "tasks": [
    {
      "title": "short task title",
      "description": "what needs to be done",
      "priority": "LOW, MEDIUM or HIGH",
      "deadline": "YYYY-MM-DD, or null when the text gives no deadline"
    }
  ]
}

Rules:
- Return {"tasks": []} when the text contains no tasks
- Convert relative expressions such as "tomorrow" or "next week" into calendar dates
- Return JSON only, without any explanation`, projectName, today.Format(models.DateLayout), text)

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
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var parsed struct {
		Tasks []GeneratedTask `json:"tasks"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return parsed.Tasks, nil
}
