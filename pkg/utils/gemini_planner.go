package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ItineraryPlannerInterface is the conversational generation collaborator.
// It returns the raw JSON of a complete itinerary document; validation and
// persistence are the caller's problem.
type ItineraryPlannerInterface interface {
	GenerateItineraryJSON(ctx context.Context, destination string, days int, startDate string, interests []string) (string, error)
}

type GeminiPlannerClient struct {
	client *genai.Client
	model  string
}

func NewGeminiPlannerClient(apiKey, model string) (ItineraryPlannerInterface, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiPlannerClient{
		client: client,
		model:  model,
	}, nil
}

const itinerarySchema = `
{
  "title": "string",
  "summary": "string",
  "trip_tips": ["string"],
  "days": [
    {
      "id": "",
      "index": 1,
      "date": "YYYY-MM-DD",
      "title": "string",
      "theme": "string",
      "area_cluster": "string",
      "overview": "string",
      "photos": [],
      "slots": [
        {"label": "morning", "summary": "string", "places": []},
        {"label": "afternoon", "summary": "string", "places": []},
        {"label": "evening", "summary": "string", "places": []}
      ]
    }
  ]
}`

func (c *GeminiPlannerClient) GenerateItineraryJSON(ctx context.Context, destination string, days int, startDate string, interests []string) (string, error) {
	if days < 1 || days > 30 {
		return "", fmt.Errorf("bad day count %d", days)
	}
	if destination == "" {
		return "", fmt.Errorf("missing destination")
	}

	m := c.client.GenerativeModel(c.model)
	// JSON-only output, no brace-matching on prose needed
	m.ResponseMIMEType = "application/json"
	m.SetTopP(0.5)
	m.SetTopK(20)
	m.SetTemperature(0.2)

	prompt := fmt.Sprintf(`
You are planning a %d-day trip to %s starting %s. Traveler interests: %s.
Return **JSON only** matching this schema exactly. Every day gets exactly the
three slots morning/afternoon/evening, days numbered from 1 with consecutive
dates, places arrays left empty.

Schema:
%s`, days, destination, startDate, strings.Join(interests, ", "), itinerarySchema)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("gemini returned no text part")
	}
	return out.String(), nil
}
