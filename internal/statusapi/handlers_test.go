package statusapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jroosing/hydradns/internal/reactor"
	"github.com/jroosing/hydradns/internal/statusapi/models"
)

type fakeStats struct {
	snap reactor.Snapshot
}

func (f fakeStats) Snapshot() reactor.Snapshot { return f.snap }

func newTestEngine(h *handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.GET("/healthz", h.Health)
	e.GET("/stats", h.Stats)
	return e
}

func TestHealthReturnsOK(t *testing.T) {
	h := &handler{startTime: time.Now(), stats: fakeStats{}}
	e := newTestEngine(h)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
}

func TestStatsReportsQueryCounters(t *testing.T) {
	snap := reactor.Snapshot{QueriesUDP: 10, QueriesTCP: 2, ResponsesNX: 1, ResponsesErr: 0}
	h := &handler{instanceID: "test-instance", startTime: time.Now().Add(-time.Minute), stats: fakeStats{snap: snap}}
	e := newTestEngine(h)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.ServerStatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "test-instance", body.InstanceID)
	assert.Equal(t, uint64(10), body.DNSStats.QueriesUDP)
	assert.Equal(t, uint64(2), body.DNSStats.QueriesTCP)
	assert.Equal(t, uint64(1), body.DNSStats.ResponsesNX)
	assert.GreaterOrEqual(t, body.UptimeSeconds, int64(59))
}
