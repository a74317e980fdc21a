package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mycare/backend/internal/knowledge"
	"github.com/mycare/backend/internal/models"
	"github.com/mycare/backend/internal/types"
)

// stubUpstream fakes the chat-completions endpoint with a fixed reply.
func stubUpstream(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Messages)

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func brokenUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
}

func testUser() *models.User {
	return &models.User{Name: "Priya", Age: 29, HeightCm: 162, Gender: "female"}
}

func testLatestLog() *types.HealthLog {
	return &types.HealthLog{
		Weight: 58, Systolic: 118, Diastolic: 76,
		HeartRate: 70, SugarLevel: 92, ActivityMinutes: 45, BMI: 22.1,
	}
}

func TestHealthSuggestions(t *testing.T) {
	upstream := stubUpstream(t, "Keep up the regular activity.")
	defer upstream.Close()
	svc := NewAdvisorService("test-key", upstream.URL, zap.NewNop())

	out := svc.HealthSuggestions(context.Background(), testUser(), testLatestLog())
	assert.Equal(t, "Keep up the regular activity.", out)
}

func TestHealthSuggestionsWithoutLogs(t *testing.T) {
	svc := NewAdvisorService("test-key", "http://unused", zap.NewNop())

	out := svc.HealthSuggestions(context.Background(), testUser(), nil)
	assert.Equal(t, "Add some health logs to get personalized AI suggestions.", out)
}

func TestHealthSuggestionsFallsBackWhenUpstreamFails(t *testing.T) {
	upstream := brokenUpstream(t)
	defer upstream.Close()
	svc := NewAdvisorService("test-key", upstream.URL, zap.NewNop())

	out := svc.HealthSuggestions(context.Background(), testUser(), testLatestLog())
	assert.Equal(t, "Health assistant is currently offline. Please try again later.", out)
}

func TestGenerateFirstAid(t *testing.T) {
	payload := `{"title":"Bee Sting","steps":["Remove the stinger"],"dos":["Wash the area"],"donts":["Do not squeeze"]}`
	upstream := stubUpstream(t, payload)
	defer upstream.Close()
	svc := NewAdvisorService("test-key", upstream.URL, zap.NewNop())

	scenario, err := svc.GenerateFirstAid(context.Background(), "bee sting", knowledge.English)
	require.NoError(t, err)
	assert.Equal(t, "Bee Sting", scenario.Title)
	assert.Equal(t, []string{"Remove the stinger"}, scenario.Steps)
}

func TestGenerateFirstAidRejectsIncompletePayload(t *testing.T) {
	upstream := stubUpstream(t, `{"title":"","steps":[]}`)
	defer upstream.Close()
	svc := NewAdvisorService("test-key", upstream.URL, zap.NewNop())

	_, err := svc.GenerateFirstAid(context.Background(), "bee sting", knowledge.English)
	assert.Error(t, err)
}

func TestGenerateFirstAidUpstreamFailure(t *testing.T) {
	upstream := brokenUpstream(t)
	defer upstream.Close()
	svc := NewAdvisorService("test-key", upstream.URL, zap.NewNop())

	_, err := svc.GenerateFirstAid(context.Background(), "bee sting", knowledge.Hindi)
	assert.Error(t, err)
}

func TestDailyTipFallsBack(t *testing.T) {
	upstream := brokenUpstream(t)
	defer upstream.Close()
	svc := NewAdvisorService("test-key", upstream.URL, zap.NewNop())

	tip := svc.DailyTip(context.Background())
	assert.Equal(t, "Remember to take deep breaths and stay mindful of your posture.", tip)
}

func TestChatReplaysHistory(t *testing.T) {
	var seen []chatMessage
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		seen = req.Messages
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "Rest and hydrate."}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer upstream.Close()
	svc := NewAdvisorService("test-key", upstream.URL, zap.NewNop())

	history := []types.ChatMessage{
		{Role: "user", Content: "I have a headache"},
		{Role: "assistant", Content: "How long has it lasted?"},
	}
	out := svc.Chat(context.Background(), "Since this morning", history)
	assert.Equal(t, "Rest and hydrate.", out)

	// system prompt + 2 history turns + the new message
	require.Len(t, seen, 4)
	assert.Equal(t, "system", seen[0].Role)
	assert.Equal(t, "assistant", seen[2].Role)
	assert.Equal(t, "Since this morning", seen[3].Content)
}

func TestLocationSuggestions(t *testing.T) {
	upstream := stubUpstream(t, "Gachibowli, Hyderabad, Indiranagar, Bengaluru")
	defer upstream.Close()
	svc := NewAdvisorService("test-key", upstream.URL, zap.NewNop())

	got := svc.LocationSuggestions(context.Background(), "gach")
	assert.Equal(t, []string{"Gachibowli", "Hyderabad", "Indiranagar", "Bengaluru"}, got)
}

func TestLocationSuggestionsShortInput(t *testing.T) {
	svc := NewAdvisorService("test-key", "http://unused", zap.NewNop())

	assert.Empty(t, svc.LocationSuggestions(context.Background(), "g"))
	assert.Empty(t, svc.LocationSuggestions(context.Background(), "  "))
}

func TestNearbyFacilitiesFallsBack(t *testing.T) {
	upstream := brokenUpstream(t)
	defer upstream.Close()
	svc := NewAdvisorService("test-key", upstream.URL, zap.NewNop())

	out := svc.NearbyFacilities(context.Background(), &types.NearbyRequest{Type: "pharmacy"})
	assert.Equal(t, "Could not find nearby facilities.", out)
}
