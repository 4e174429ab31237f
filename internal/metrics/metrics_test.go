package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Requests.WithLabelValues("GET", "/dashboard", "200").Inc()
	m.Visits.Inc()
	m.Documents.WithLabelValues("informe_visita").Add(2)
	m.Logins.WithLabelValues("failure").Inc()

	require.Equal(t, 1.0, testutil.ToFloat64(m.Visits))
	require.Equal(t, 2.0, testutil.ToFloat64(m.Documents.WithLabelValues("informe_visita")))

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 4)

	// registering twice on the same registry panics
	require.Panics(t, func() { New(reg) })
}
