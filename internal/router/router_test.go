package router

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loadavg-service/internal/config"
	"loadavg-service/internal/domain"
	"loadavg-service/internal/endpoints"
	"loadavg-service/internal/sampler"
	"loadavg-service/internal/util"
)

type failingSampler struct{}

func (failingSampler) Sample(ctx context.Context) (domain.LoadSample, error) {
	return domain.LoadSample{}, fmt.Errorf("%w: test platform", domain.ErrPlatformUnsupported)
}

type panickingSampler struct{}

func (panickingSampler) Sample(ctx context.Context) (domain.LoadSample, error) {
	panic("sampler exploded")
}

func doRequest(t *testing.T, s domain.Sampler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	NewRouter(s, &util.ServiceLogger{}).ServeHTTP(rr, req)
	return rr
}

func decodeLoadBody(t *testing.T, body []byte) map[string]float64 {
	t.Helper()
	var decoded map[string]float64
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Len(t, decoded, 3)
	for _, key := range []string{"last", "last5", "last15"} {
		v, ok := decoded[key]
		require.True(t, ok, "missing key %s", key)
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		assert.GreaterOrEqual(t, v, 0.0)
	}
	return decoded
}

func TestLoadAvg_Placeholder(t *testing.T) {
	s := sampler.NewPlaceholder(config.Default().Placeholder.Sample())

	rr := doRequest(t, s, http.MethodGet, "/loadavg")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, `{"last":0.9,"last5":1.5,"last15":1.8}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))
}

func TestLoadAvg_RealStrategy(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("syscall strategy needs linux")
	}

	s := sampler.NewSyscall()

	first := doRequest(t, s, http.MethodGet, "/loadavg")
	second := doRequest(t, s, http.MethodGet, "/loadavg")

	for _, rr := range []*httptest.ResponseRecorder{first, second} {
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		decodeLoadBody(t, rr.Body.Bytes())
	}
	assert.NotEqual(t, first.Header().Get(RequestIDHeader), second.Header().Get(RequestIDHeader))
}

func TestLoadAvg_OtherRoutes(t *testing.T) {
	s := sampler.NewPlaceholder(config.Default().Placeholder.Sample())

	rr := doRequest(t, s, http.MethodPost, "/loadavg")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.NotContains(t, rr.Body.String(), "last")

	rr = doRequest(t, s, http.MethodGet, "/loadavg/extra")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, s, http.MethodGet, "/")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotContains(t, rr.Body.String(), "last")
}

func TestLoadAvg_UnsupportedWithoutFallback(t *testing.T) {
	rr := doRequest(t, failingSampler{}, http.MethodGet, "/loadavg")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var apiResponse endpoints.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &apiResponse))
	assert.False(t, apiResponse.Status)
	assert.Equal(t, endpoints.PLATFORM_UNSUPPORTED, apiResponse.ErrorCode)
}

func TestLoadAvg_UnsupportedWithFallback(t *testing.T) {
	placeholder := sampler.NewPlaceholder(domain.NewLoadSample(0.9, 1.5, 1.8))
	s := sampler.NewFallback(failingSampler{}, placeholder, &util.ServiceLogger{})

	rr := doRequest(t, s, http.MethodGet, "/loadavg")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"last":0.9,"last5":1.5,"last15":1.8}`, rr.Body.String())
}

func TestRecoveryMiddleware(t *testing.T) {
	rr := doRequest(t, panickingSampler{}, http.MethodGet, "/loadavg")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var apiResponse endpoints.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &apiResponse))
	assert.Equal(t, endpoints.ErrInternal.Error(), apiResponse.Error)
}

func TestRequestIDMiddleware_KeepsIncomingID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/loadavg", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()

	NewRouter(sampler.NewPlaceholder(domain.NewLoadSample(0, 0, 0)), &util.ServiceLogger{}).ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
}

func TestLoadAvg_OverHTTP(t *testing.T) {
	s := sampler.NewPlaceholder(config.Default().Placeholder.Sample())
	srv := httptest.NewServer(NewRouter(s, &util.ServiceLogger{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/loadavg")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, map[string]float64{"last": 0.9, "last5": 1.5, "last15": 1.8}, decodeLoadBody(t, body))
}

func TestNewServer(t *testing.T) {
	cfg := config.Default()
	cfg.Addr = "127.0.0.1:9999"
	handler := http.NewServeMux()

	server := NewServer(cfg, handler)

	assert.Equal(t, "127.0.0.1:9999", server.Addr)
	assert.Equal(t, cfg.ReadTimeout, server.ReadTimeout)
	assert.Equal(t, cfg.WriteTimeout, server.WriteTimeout)
	assert.Equal(t, cfg.IdleTimeout, server.IdleTimeout)
}

func TestServe_ShutdownOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, cfg, sampler.NewPlaceholder(domain.NewLoadSample(0, 0, 0)), &util.ServiceLogger{})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServe_ListenError(t *testing.T) {
	server := &http.Server{Addr: "127.0.0.1:99999", Handler: http.NewServeMux()}

	err := Serve(context.Background(), server, time.Second, &util.ServiceLogger{})

	assert.Error(t, err)
}
