package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordRequest(t *testing.T) {
	tests := []struct {
		name       string
		tool       string
		duration   float64
		success    bool
		wantStatus string
	}{
		{
			name:       "successful request",
			tool:       "test_tool",
			duration:   0.5,
			success:    true,
			wantStatus: "success",
		},
		{
			name:       "failed request",
			tool:       "test_tool",
			duration:   1.0,
			success:    false,
			wantStatus: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Record the request
			RecordRequest(tt.tool, tt.duration, tt.success)

			// Verify counter was incremented
			counter, err := RequestsTotal.GetMetricWithLabelValues(tt.tool, tt.wantStatus)
			if err != nil {
				t.Fatalf("failed to get metric: %v", err)
			}

			var m dto.Metric
			if err := counter.Write(&m); err != nil {
				t.Fatalf("failed to write metric: %v", err)
			}

			if m.Counter.GetValue() < 1 {
				t.Error("expected counter to be incremented")
			}
		})
	}
}

func TestRecordAPICall(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		operation string
		duration  float64
		success   bool
		errorKind string
	}{
		{
			name:      "successful API call",
			version:   "v3",
			operation: "/_api/v3/page",
			duration:  0.1,
			success:   true,
			errorKind: "",
		},
		{
			name:      "failed API call with error kind",
			version:   "v1",
			operation: "/_api/pages.update",
			duration:  0.5,
			success:   false,
			errorKind: "conflict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordAPICall(tt.version, tt.operation, tt.duration, tt.success, tt.errorKind)

			// Verify request counter
			status := "success"
			if !tt.success {
				status = "error"
			}
			counter, err := WikiAPIRequestsTotal.GetMetricWithLabelValues(tt.version, tt.operation, status)
			if err != nil {
				t.Fatalf("failed to get metric: %v", err)
			}

			var m dto.Metric
			if err := counter.Write(&m); err != nil {
				t.Fatalf("failed to write metric: %v", err)
			}

			if m.Counter.GetValue() < 1 {
				t.Error("expected counter to be incremented")
			}

			// Verify error counter if error kind provided
			if tt.errorKind != "" {
				errCounter, err := WikiAPIErrors.GetMetricWithLabelValues(tt.version, tt.operation, tt.errorKind)
				if err != nil {
					t.Fatalf("failed to get error metric: %v", err)
				}

				var em dto.Metric
				if err := errCounter.Write(&em); err != nil {
					t.Fatalf("failed to write error metric: %v", err)
				}

				if em.Counter.GetValue() < 1 {
					t.Error("expected error counter to be incremented")
				}
			}
		})
	}
}

func TestRecordTransfer(t *testing.T) {
	RecordTransfer("upload", 4096)
	RecordTransfer("download", 1<<20)

	hist, err := TransferBytes.GetMetricWithLabelValues("upload")
	if err != nil {
		t.Fatalf("failed to get metric: %v", err)
	}

	var m dto.Metric
	if err := hist.(prometheus.Histogram).Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if m.Histogram.GetSampleCount() < 1 {
		t.Error("expected upload histogram to record a sample")
	}
}

func TestMetricsRegistered(t *testing.T) {
	// Verify all metrics are registered by checking they can be collected
	metrics := []prometheus.Collector{
		RequestsTotal,
		RequestDuration,
		RequestInFlight,
		WikiAPILatency,
		WikiAPIRequestsTotal,
		WikiAPIErrors,
		AuthFailures,
		PanicsRecovered,
		TransferBytes,
	}

	for i, m := range metrics {
		if m == nil {
			t.Errorf("metric at index %d is nil", i)
		}
	}
}

func TestNamespace(t *testing.T) {
	if Namespace != "growi_mcp" {
		t.Errorf("expected namespace 'growi_mcp', got '%s'", Namespace)
	}
}
