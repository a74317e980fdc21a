package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mycare/backend/internal/knowledge"
	"github.com/mycare/backend/internal/models"
	"github.com/mycare/backend/internal/types"
)

// Fallback copy returned when the upstream model is unreachable. The
// advisor endpoints degrade to these instead of failing the request.
const (
	fallbackNoLogs      = "Add some health logs to get personalized AI suggestions."
	fallbackSuggestions = "Health assistant is currently offline. Please try again later."
	fallbackTip         = "Remember to take deep breaths and stay mindful of your posture."
	fallbackChat        = "I'm having trouble connecting right now. Please try again later."
	fallbackNearby      = "Could not find nearby facilities."
)

// AdvisorService generates health guidance through a chat-completions API.
// Every public method degrades gracefully: upstream failures surface as
// canned fallback copy, never as a failed request.
type AdvisorService struct {
	apiKey string
	apiURL string
	client *http.Client
	logger *zap.Logger
}

func NewAdvisorService(apiKey, apiURL string, logger *zap.Logger) *AdvisorService {
	return &AdvisorService{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// chatMessage mirrors the chat-completions wire format.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
	Temperature    float64           `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete sends one request to the upstream model and returns the first
// choice's content.
func (s *AdvisorService) complete(ctx context.Context, messages []chatMessage, jsonMode bool, temperature float64) (string, error) {
	reqBody := chatRequest{
		Model:       "deepseek-chat",
		Messages:    messages,
		Temperature: temperature,
	}
	if jsonMode {
		reqBody.ResponseFormat = map[string]string{"type": "json_object"}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("response contained no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// HealthSuggestions summarizes the user's latest log into a short summary
// with actionable suggestions.
func (s *AdvisorService) HealthSuggestions(ctx context.Context, user *models.User, latest *types.HealthLog) string {
	if latest == nil {
		return fallbackNoLogs
	}

	prompt := fmt.Sprintf(`User Profile: %s, %d years old, %.0fcm.
Latest Health Data:
- Weight: %.1fkg (BMI: %.1f)
- BP: %d/%d mmHg
- Sugar: %.1f mg/dL
- Heart Rate: %d bpm
- Activity: %d mins/day

Provide a short, professional health summary and 3 actionable suggestions.`,
		user.Gender, user.Age, user.HeightCm,
		latest.Weight, latest.BMI,
		latest.Systolic, latest.Diastolic,
		latest.SugarLevel,
		latest.HeartRate,
		latest.ActivityMinutes)

	out, err := s.complete(ctx, []chatMessage{
		{Role: "system", Content: "You are a supportive health assistant. Be concise and prioritize safety. Always include a disclaimer that this is not medical advice."},
		{Role: "user", Content: prompt},
	}, false, 0.7)
	if err != nil {
		s.logger.Warn("health suggestions unavailable", zap.Error(err))
		return fallbackSuggestions
	}
	return out
}

// GeneratedScenario is first-aid guidance produced by the model for a
// topic outside the static catalog. It carries a single language only.
type GeneratedScenario struct {
	Title string   `json:"title"`
	Steps []string `json:"steps"`
	Dos   []string `json:"dos"`
	Donts []string `json:"donts"`
}

// GenerateFirstAid asks the model for structured first-aid guidance in the
// requested language. This is the only advisor call with a hard error
// path; the caller decides how to present the miss.
func (s *AdvisorService) GenerateFirstAid(ctx context.Context, topic string, lang knowledge.Language) (*GeneratedScenario, error) {
	prompt := fmt.Sprintf(`Provide first aid instructions for: %q.
Language: %s.
Format as JSON with:
{
  "title": "Title",
  "steps": ["step 1", "step 2", ...],
  "dos": ["do 1", ...],
  "donts": ["dont 1", ...]
}`, topic, lang)

	out, err := s.complete(ctx, []chatMessage{
		{Role: "system", Content: "You are an emergency medical expert. Provide clear, numbered steps. Prioritize life-saving actions. Add a disclaimer."},
		{Role: "user", Content: prompt},
	}, true, 0.3)
	if err != nil {
		return nil, err
	}

	var scenario GeneratedScenario
	if err := json.Unmarshal([]byte(out), &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse generated guidance: %w", err)
	}
	if scenario.Title == "" || len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("generated guidance is incomplete")
	}
	return &scenario, nil
}

// DailyTip returns a one-sentence health tip.
func (s *AdvisorService) DailyTip(ctx context.Context) string {
	out, err := s.complete(ctx, []chatMessage{
		{Role: "system", Content: "You are a wellness expert. Your tips are brief, professional, and vary between nutrition, exercise, sleep, and first aid safety."},
		{Role: "user", Content: "Provide a one-sentence daily health tip or first aid reminder. It should be practical and encouraging."},
	}, false, 0.9)
	if err != nil {
		s.logger.Warn("daily tip unavailable", zap.Error(err))
		return fallbackTip
	}
	tip := strings.TrimSpace(out)
	if tip == "" {
		return "Stay hydrated and move for at least 30 minutes today!"
	}
	return tip
}

// Chat answers one conversational turn with the prior history replayed.
func (s *AdvisorService) Chat(ctx context.Context, message string, history []types.ChatMessage) string {
	messages := []chatMessage{
		{Role: "system", Content: "You are 'myCare Assistant', a friendly and expert health bot. You help with first aid, tracking explanations, and general wellness. If an emergency is mentioned, ALWAYS advise calling 911 immediately. You do not replace doctors. Keep responses helpful and under 3 sentences unless asked for instructions."},
	}
	for _, m := range history {
		role := m.Role
		if role != "assistant" {
			role = "user"
		}
		messages = append(messages, chatMessage{Role: role, Content: m.Content})
	}
	messages = append(messages, chatMessage{Role: "user", Content: message})

	out, err := s.complete(ctx, messages, false, 0.7)
	if err != nil {
		s.logger.Warn("chat unavailable", zap.Error(err))
		return fallbackChat
	}
	return out
}

// LocationSuggestions autocompletes a partial location input. Short input
// and upstream failure both yield an empty list.
func (s *AdvisorService) LocationSuggestions(ctx context.Context, input string) []string {
	input = strings.TrimSpace(input)
	if len(input) < 2 {
		return []string{}
	}

	prompt := fmt.Sprintf(`Suggest 5 specific areas or medical districts in India related to: %q.
Include area and city (e.g., 'Gachibowli, Hyderabad').
Return ONLY a comma-separated list.`, input)

	out, err := s.complete(ctx, []chatMessage{
		{Role: "system", Content: "You are a precise location suggestor for a health app. Focus on well-known residential or medical hubs."},
		{Role: "user", Content: prompt},
	}, false, 0.5)
	if err != nil {
		s.logger.Warn("location suggestions unavailable", zap.Error(err))
		return []string{}
	}

	var suggestions []string
	for _, part := range strings.Split(out, ",") {
		if s := strings.TrimSpace(part); s != "" {
			suggestions = append(suggestions, s)
		}
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	return suggestions
}

// NearbyFacilities asks for highly rated facilities of the requested type
// around a coordinate pair or a named location.
func (s *AdvisorService) NearbyFacilities(ctx context.Context, req *types.NearbyRequest) string {
	typeLabel := "pharmacies"
	if req.Type == "doctor" {
		typeLabel = "doctors, clinics, and specialists"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Find the 5 most highly-rated %s", typeLabel)
	if req.Location != "" {
		fmt.Fprintf(&b, " specifically in or near %s.", req.Location)
	}
	if req.Lat != nil && req.Lng != nil {
		fmt.Fprintf(&b, " The user is at latitude %f, longitude %f.", *req.Lat, *req.Lng)
	}
	b.WriteString(` For each result, I need:
- Name of the Facility/Doctor
- Specialization (e.g. General Physician, Pediatrician, 24/7 Pharmacy)
- Public Contact Number
- Brief Address.`)

	out, err := s.complete(ctx, []chatMessage{
		{Role: "system", Content: "You are a local health facility directory. List real, well-known facilities with accurate details where possible."},
		{Role: "user", Content: b.String()},
	}, false, 0.3)
	if err != nil {
		s.logger.Warn("nearby facilities unavailable", zap.Error(err))
		return fallbackNearby
	}
	return out
}
