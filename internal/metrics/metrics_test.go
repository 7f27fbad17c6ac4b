package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorders(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordRequest("/health/ping", "GET", 200, 0.01)
	m.RecordRequest("", "GET", 404, 0.01)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/health/ping", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("unmatched", "GET", "404")))

	m.RecordMessage("text", "ok")
	m.RecordMessage("text", "ok")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Messages.WithLabelValues("text", "ok")))

	m.RecordCollaborator("stt", 0.2, nil)
	m.RecordCollaborator("stt", 0.3, errors.New("boom"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CollaboratorErrors.WithLabelValues("stt")))

	m.RecordCacheLookup(true)
	m.RecordCacheLookup(false)
	m.RecordCacheLookup(false)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExtractionCache.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ExtractionCache.WithLabelValues("miss")))
}
