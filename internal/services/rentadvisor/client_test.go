package rentadvisor_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-analytics-engine/internal/config"
	"portfolio-analytics-engine/internal/services/rentadvisor"
)

func newTestClient(baseURL string) *rentadvisor.Client {
	return rentadvisor.NewClient(&config.Config{
		RentAdvisorURL:        baseURL,
		RentAdvisorTimeoutSec: 5,
	})
}

func TestSuggestRent_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/rent-suggestions", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("property_id"))
		assert.Equal(t, "1", r.URL.Query().Get("org_id"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"recommended_rent": 165000, "adjustment_percentage": 10.0}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	suggestion, err := client.SuggestRent(context.Background(), 42, 1)

	require.NoError(t, err)
	require.NotNil(t, suggestion)
	assert.Equal(t, int64(165000), suggestion.RecommendedRent)
	assert.Equal(t, 10.0, suggestion.AdjustmentPercentage)
}

func TestSuggestRent_NotFoundMeansNoRecommendation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	suggestion, err := client.SuggestRent(context.Background(), 42, 1)

	require.NoError(t, err, "404 means no recommendation, not an error")
	assert.Nil(t, suggestion)
}

func TestSuggestRent_NoContentMeansNoRecommendation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	suggestion, err := client.SuggestRent(context.Background(), 42, 1)

	require.NoError(t, err)
	assert.Nil(t, suggestion)
}

func TestSuggestRent_NullBodyMeansNoRecommendation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`null`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	suggestion, err := client.SuggestRent(context.Background(), 42, 1)

	require.NoError(t, err)
	assert.Nil(t, suggestion)
}

func TestSuggestRent_ServerErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	suggestion, err := client.SuggestRent(context.Background(), 42, 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Nil(t, suggestion)
}

func TestSuggestRent_MalformedBodyIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	suggestion, err := client.SuggestRent(context.Background(), 42, 1)

	require.Error(t, err)
	assert.Nil(t, suggestion)
}

func TestSuggestRent_NotConfigured(t *testing.T) {
	client := newTestClient("")

	suggestion, err := client.SuggestRent(context.Background(), 42, 1)

	assert.ErrorIs(t, err, rentadvisor.ErrNotConfigured)
	assert.Nil(t, suggestion)
}

func TestSuggestRent_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient(server.URL)
	_, err := client.SuggestRent(ctx, 42, 1)

	require.Error(t, err)
}
