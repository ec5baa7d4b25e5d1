package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordCall_IncrementsByResult(t *testing.T) {
	before := testutil.ToFloat64(CallsTotal.WithLabelValues("dispatched"))
	RecordCall("dispatched")
	after := testutil.ToFloat64(CallsTotal.WithLabelValues("dispatched"))
	require.Equal(t, before+1, after)
}

func TestSetRegistrySize(t *testing.T) {
	SetRegistrySize(3)
	require.Equal(t, float64(3), testutil.ToFloat64(RegistrySize))
}

func TestRecordSafetyViolation_Labels(t *testing.T) {
	before := testutil.ToFloat64(SafetyViolationsTotal.WithLabelValues("A", "obstruction"))
	RecordSafetyViolation("A", "obstruction")
	after := testutil.ToFloat64(SafetyViolationsTotal.WithLabelValues("A", "obstruction"))
	require.Equal(t, before+1, after)
}
