package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"grievgo/backend/internal/api"
	"grievgo/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestUpdateStatusSendsAuthAndPayload(t *testing.T) {
	var gotAuth string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/complaints/c-1/status", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(models.Complaint{ID: "c-1", Status: models.StatusInProgress})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, "tok-123")
	complaint, err := client.UpdateStatus("c-1", models.StatusInProgress, "")

	assert.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "InProgress", gotBody["new_status"])
	assert.Equal(t, models.StatusInProgress, complaint.Status)
}

// TestErrorEnvelopeDecoding verifies error responses become classified
// errors the engines can branch on.
func TestErrorEnvelopeDecoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "you cannot vote on your own complaint",
			"code":  "self_vote",
		})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, "tok-123")
	_, err := client.CastVote("c-1", models.VoteUpvote)

	var apiErr *api.Error
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, api.CodeSelfVote, apiErr.Code)
	assert.True(t, api.IsSelfVote(err))
	assert.False(t, api.IsRateLimited(err))
}

// TestErrorWithoutEnvelope covers proxies and panics that return a bare
// status with no JSON body.
func TestErrorWithoutEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := api.NewClient(server.URL, "")
	_, err := client.ClearVote("c-1")

	var apiErr *api.Error
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusText(http.StatusServiceUnavailable), apiErr.Message)
	assert.True(t, api.IsBusy(err))
}

func TestUnreadNotificationCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notifications/unread-count", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]int{"count": 7})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, "tok")
	count, err := client.UnreadNotificationCount()

	assert.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestFetchConfig(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/config", r.URL.Path)
		json.NewEncoder(w).Encode(models.ClientConfig{
			EscalationThresholdDays: 7,
			PollIntervalSeconds:     30,
		})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, "tok")
	cfg, err := client.FetchConfig()

	assert.NoError(t, err)
	assert.Equal(t, 7, cfg.EscalationThresholdDays)
	assert.Equal(t, 30, cfg.PollIntervalSeconds)
}
