package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/crat/pkg/generator"
	"github.com/Amr-9/crat/pkg/generator/cpu"
)

func TestObserverUpdatesCollectors(t *testing.T) {
	m := New()

	m.SearchStarted(generator.Solana, 8)
	assert.Equal(t, 8.0, testutil.ToFloat64(m.activeWorkers))

	m.AttemptsAdded(generator.Solana, 1000)
	m.AttemptsAdded(generator.Solana, 500)
	m.AttemptsAdded(generator.Ethereum, 7)
	assert.Equal(t, 1500.0, testutil.ToFloat64(m.attemptsTotal.WithLabelValues("solana")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.attemptsTotal.WithLabelValues("ethereum")))

	m.SearchFinished(generator.Solana, cpu.OutcomeFound, 2*time.Second)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.activeWorkers))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.searchesTotal.WithLabelValues("solana", "found")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.searchDuration))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.AttemptsAdded(generator.Bitcoin, 42)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `crat_attempts_total{chain="bitcoin"} 42`), body)
}
