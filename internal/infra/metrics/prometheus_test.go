package metrics_test

import (
	"testing"

	"github.com/diillson/restaurante-api/internal/infra/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIMetrics_DomainCounters(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.NewAPIMetrics(registry)

	m.OrderCreated("mesa")
	m.OrderCreated("mesa")
	m.PaymentRegistered("Pix", 50.5)
	m.LoginAttempt(false)

	families, err := registry.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			values[f.GetName()] += metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, 2.0, values["restaurante_orders_created_total"])
	assert.Equal(t, 50.5, values["restaurante_payments_amount_total"])
	assert.Equal(t, 1.0, values["restaurante_login_attempts_total"])
}

func TestAPIMetrics_NilReceiver(t *testing.T) {
	var m *metrics.APIMetrics
	assert.NotPanics(t, func() {
		m.OrderCreated("itens")
		m.LoginAttempt(true)
		m.UpdateCacheHitRatio("memory", 1)
	})
}

func TestAPIMetrics_SeparateRegistries(t *testing.T) {
	// Registros distintos permitem várias instâncias no mesmo processo
	assert.NotPanics(t, func() {
		metrics.NewAPIMetrics(prometheus.NewRegistry())
		metrics.NewAPIMetrics(prometheus.NewRegistry())
	})
}
