package infrastructure

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMetrics_Singleton(t *testing.T) {
	assert.Same(t, NewPrometheusMetrics(), NewPrometheusMetrics())
}

func TestPrometheusMetrics_Upstream(t *testing.T) {
	m := NewPrometheusMetrics()
	ok := m.upstreamCalls.WithLabelValues("forecast", "true")
	failed := m.upstreamCalls.WithLabelValues("forecast", "false")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	m.RecordUpstreamCall("forecast", true, 120*time.Millisecond)
	m.RecordUpstreamCall("forecast", true, 80*time.Millisecond)
	m.RecordUpstreamCall("forecast", false, time.Second)

	assert.Equal(t, okBefore+2, testutil.ToFloat64(ok))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}

func TestPrometheusMetrics_Commands(t *testing.T) {
	m := NewPrometheusMetrics()
	search := m.commands.WithLabelValues("search", "false")
	stale := m.staleResults.WithLabelValues("search")
	limited := m.rateLimited.WithLabelValues("reverse_geocode")
	searchBefore, staleBefore, limitedBefore := testutil.ToFloat64(search), testutil.ToFloat64(stale), testutil.ToFloat64(limited)

	m.RecordCommand("search", false)
	m.RecordStaleResult("search")
	m.RecordRateLimited("reverse_geocode")

	assert.Equal(t, searchBefore+1, testutil.ToFloat64(search))
	assert.Equal(t, staleBefore+1, testutil.ToFloat64(stale))
	assert.Equal(t, limitedBefore+1, testutil.ToFloat64(limited))
}

func TestPrometheusMetrics_ActiveSessions(t *testing.T) {
	m := NewPrometheusMetrics()

	m.SetActiveSessions(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(m.activeSessions))

	m.SetActiveSessions(1)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.activeSessions))
}
