package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskPulse/internal/domain/models"
	domsvc "RiskPulse/internal/domain/service"
	"RiskPulse/pkg/config"
)

func classifierConfig(url string) *config.Config {
	cfg := &config.Config{}
	cfg.Analytics.ModelServiceURL = url
	return cfg
}

func TestPredictDirection(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var req predictRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "AAPL", req.Symbol)
		_ = json.NewEncoder(w).Encode(predictResponse{Direction: "up", Probability: 0.62})
	}))
	defer srv.Close()

	c := NewHTTPDirectionClassifier(classifierConfig(srv.URL))
	sma10, sma50, rsi := 101.0, 99.0, 55.0
	pred, err := c.PredictDirection(context.Background(), "AAPL", domsvc.FeatureVector{
		SMA10: &sma10, SMA50: &sma50, RSI: &rsi,
	})
	require.NoError(t, err)
	assert.Equal(t, "/predict", gotPath)
	assert.Equal(t, models.PredictionOK, pred.Status)
	assert.Equal(t, "up", pred.Direction)
	require.NotNil(t, pred.Probability)
	assert.InDelta(t, 0.62, *pred.Probability, 1e-12)
}

func TestPredictDirectionIncompleteFeaturesSkipsModel(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewHTTPDirectionClassifier(classifierConfig(srv.URL))
	sma10 := 101.0
	pred, err := c.PredictDirection(context.Background(), "AAPL", domsvc.FeatureVector{SMA10: &sma10})
	require.NoError(t, err)
	assert.False(t, called)
	assert.Equal(t, models.PredictionInsufficientData, pred.Status)
	assert.Empty(t, pred.Direction)
	assert.Nil(t, pred.Probability)
}
