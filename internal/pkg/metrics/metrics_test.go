package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Counts(t *testing.T) {
	c := NewCollector()
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))

	c.RecordCreated("student")
	c.RecordCreated("student")
	c.RecordRejected("enrollment", "duplicate_enrollment")
	c.ObserveDuration("create_student", 2*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.created.WithLabelValues("student")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rejected.WithLabelValues("enrollment", "duplicate_enrollment")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.duration))

	count, err := testutil.GatherAndCount(reg, "unirecords_records_created_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector

	assert.NotPanics(t, func() {
		c.RecordCreated("department")
		c.RecordRejected("department", "invalid_argument")
		c.ObserveDuration("create_department", time.Millisecond)
	})
}
