package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwkang/goalplanner/internal/advisor"
	"github.com/dwkang/goalplanner/internal/analytics"
	"github.com/dwkang/goalplanner/internal/contracts"
	"github.com/dwkang/goalplanner/internal/forecast"
	"github.com/dwkang/goalplanner/internal/planning"
	"github.com/dwkang/goalplanner/internal/selection"
	"github.com/dwkang/goalplanner/pkg/config"
	"github.com/dwkang/goalplanner/pkg/logger"
)

type memStore struct {
	series map[string]*contracts.PriceSeries
}

func (m *memStore) SaveSeries(_ context.Context, s *contracts.PriceSeries) error {
	m.series[s.Symbol] = s
	return nil
}

func (m *memStore) GetSeries(_ context.Context, symbol string, _, _ time.Time) (*contracts.PriceSeries, error) {
	if s, ok := m.series[symbol]; ok {
		return s, nil
	}
	return &contracts.PriceSeries{Symbol: symbol}, nil
}

func (m *memStore) GetLatest(_ context.Context, symbol string) (*contracts.PricePoint, error) {
	s, ok := m.series[symbol]
	if !ok || s.IsEmpty() {
		return nil, fmt.Errorf("no prices stored for %s: %w", symbol, contracts.ErrInvalidInput)
	}
	p := s.Points[len(s.Points)-1]
	return &p, nil
}

func (m *memStore) Symbols(_ context.Context) ([]string, error) {
	var out []string
	for s := range m.series {
		out = append(out, s)
	}
	return out, nil
}

type stubFetcher struct {
	series map[string]*contracts.PriceSeries
}

func (f *stubFetcher) FetchSeries(_ context.Context, symbol string, _, _ time.Time) (*contracts.PriceSeries, error) {
	if s, ok := f.series[symbol]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("unknown symbol %s", symbol)
}

func yearlySeries(symbol string, startYear int, closes ...float64) *contracts.PriceSeries {
	s := &contracts.PriceSeries{Symbol: symbol}
	for i, c := range closes {
		s.Points = append(s.Points, contracts.PricePoint{
			Date:  time.Date(startYear+i, 12, 30, 0, 0, 0, 0, time.UTC),
			Close: c,
		})
	}
	return s
}

// testRouter wires the handlers onto the production route patterns.
func testRouter(t *testing.T, fetched map[string]*contracts.PriceSeries) http.Handler {
	t.Helper()

	log := logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
	nop := zerolog.Nop()

	adv := advisor.New(
		&memStore{series: make(map[string]*contracts.PriceSeries)},
		&stubFetcher{series: fetched},
		analytics.NewEngine(nop),
		selection.NewRanker(nop),
		planning.NewPlanner(nop),
		forecast.NewForecaster(nop),
		10,
		nop,
	)

	defaults := []string{"SPY", "QQQ"}
	instrument := NewInstrumentHandler(adv, log)
	recommend := NewRecommendHandler(adv, defaults, log)
	data := NewDataHandler(adv, defaults, log)

	r := mux.NewRouter()
	r.HandleFunc("/api/instruments/{symbol}/metrics", instrument.GetMetrics).Methods("GET")
	r.HandleFunc("/api/instruments/{symbol}/forecast", instrument.GetForecast).Methods("GET")
	r.HandleFunc("/api/recommend", recommend.Recommend).Methods("POST")
	r.HandleFunc("/api/data/collect", data.Collect).Methods("POST")
	return r
}

func defaultSeries() map[string]*contracts.PriceSeries {
	return map[string]*contracts.PriceSeries{
		"SPY": yearlySeries("SPY", 2014, 100, 108, 117, 126, 136, 147, 159),
		"QQQ": yearlySeries("QQQ", 2014, 100, 150, 90, 160, 95, 170, 100),
	}
}

func TestInstrumentHandler_GetMetrics(t *testing.T) {
	router := testRouter(t, defaultSeries())

	req := httptest.NewRequest("GET", "/api/instruments/SPY/metrics", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Symbol  string            `json:"symbol"`
		Metrics contracts.Metrics `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "SPY", body.Symbol)
	assert.Equal(t, 159.0, body.Metrics.LatestPrice)
	assert.Greater(t, body.Metrics.AvgAnnualReturn, 0.0)
}

func TestInstrumentHandler_GetMetrics_InsufficientHistory(t *testing.T) {
	router := testRouter(t, map[string]*contracts.PriceSeries{
		"NEW": yearlySeries("NEW", 2024, 50),
	})

	req := httptest.NewRequest("GET", "/api/instruments/NEW/metrics", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "not enough history")
}

func TestInstrumentHandler_GetForecast(t *testing.T) {
	series := &contracts.PriceSeries{Symbol: "LIN"}
	for i := 0; i < 5; i++ {
		series.Points = append(series.Points, contracts.PricePoint{
			Date:  time.Date(2024, 3, 1+i, 0, 0, 0, 0, time.UTC),
			Close: 10 + 2*float64(i),
		})
	}
	router := testRouter(t, map[string]*contracts.PriceSeries{"LIN": series})

	req := httptest.NewRequest("GET", "/api/instruments/LIN/forecast?periods=2", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Periods  int                       `json:"periods"`
		Forecast []contracts.ForecastPoint `json:"forecast"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Periods)
	require.Len(t, body.Forecast, 2)
	assert.InDelta(t, 20.0, body.Forecast[0].Predicted, 1e-9)
	assert.InDelta(t, 22.0, body.Forecast[1].Predicted, 1e-9)
}

func TestInstrumentHandler_GetForecast_BadPeriods(t *testing.T) {
	router := testRouter(t, defaultSeries())

	req := httptest.NewRequest("GET", "/api/instruments/SPY/forecast?periods=zero", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRecommendHandler_Recommend(t *testing.T) {
	router := testRouter(t, defaultSeries())

	target := time.Now().UTC().AddDate(12, 0, 0).Format("2006-01-02")
	body, _ := json.Marshal(RecommendRequest{
		GoalAmount: 100000,
		TargetDate: target,
	})

	req := httptest.NewRequest("POST", "/api/recommend", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var advice advisor.Advice
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &advice))
	assert.Equal(t, "SPY", advice.Recommendation.Symbol)
	assert.Greater(t, advice.Schedule.Yearly, 0.0)
	assert.Len(t, advice.Considered, 2)
}

func TestRecommendHandler_Recommend_TargetTooSoon(t *testing.T) {
	router := testRouter(t, defaultSeries())

	target := time.Now().UTC().AddDate(0, 6, 0).Format("2006-01-02")
	body, _ := json.Marshal(RecommendRequest{GoalAmount: 100000, TargetDate: target})

	req := httptest.NewRequest("POST", "/api/recommend", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "at least one year")
}

func TestRecommendHandler_Recommend_BadBody(t *testing.T) {
	router := testRouter(t, defaultSeries())

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "{not json"},
		{"zero goal", `{"goal_amount":0,"target_date":"2040-01-01"}`},
		{"bad date", `{"goal_amount":1000,"target_date":"soon"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/recommend", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestDataHandler_Collect(t *testing.T) {
	router := testRouter(t, defaultSeries())

	body, _ := json.Marshal(CollectRequest{Symbols: []string{"SPY"}})
	req := httptest.NewRequest("POST", "/api/data/collect", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp CollectResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, 7, resp.Collected["SPY"])
}

func TestDataHandler_Collect_AllFail(t *testing.T) {
	router := testRouter(t, map[string]*contracts.PriceSeries{})

	body, _ := json.Marshal(CollectRequest{Symbols: []string{"NOPE"}})
	req := httptest.NewRequest("POST", "/api/data/collect", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadGateway, rr.Code)

	var resp CollectResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "failed", resp.Status)
	assert.Equal(t, []string{"NOPE"}, resp.Failed)
}
