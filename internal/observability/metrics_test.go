package observability

import (
	"testing"
	"time"

	"github.com/danmuck/artnet/internal/testutil/testlog"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	testlog.Start(t)
	RegisterMetrics()
	RegisterMetrics()

	RecordHTTPRequest("monitor-a", "GET", "/health", 200, 12*time.Millisecond)
	RecordDatagram(19)
}

func TestRecordFrameAndDecodeErrorCounters(t *testing.T) {
	testlog.Start(t)
	before := testutil.ToFloat64(framesDecoded.WithLabelValues("TimeCode"))
	RecordFrame("TimeCode")
	RecordFrame("TimeCode")
	if got := testutil.ToFloat64(framesDecoded.WithLabelValues("TimeCode")); got != before+2 {
		t.Fatalf("frames counter: got=%v want=%v", got, before+2)
	}

	before = testutil.ToFloat64(decodeErrors.WithLabelValues("invalid_magic"))
	RecordDecodeError("invalid_magic")
	if got := testutil.ToFloat64(decodeErrors.WithLabelValues("invalid_magic")); got != before+1 {
		t.Fatalf("decode error counter: got=%v want=%v", got, before+1)
	}
}
