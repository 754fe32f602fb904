package metrics

import (
	"testing"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics("test_service")

	m.RegisterCounter("requests_total", "Total requests")
	m.RegisterCounterVec("errors_total", "Total errors", []string{"operation"})
	m.RegisterHistogramVec("duration_seconds", "Request duration", []float64{0.1, 1}, []string{"operation"})
	m.RegisterGauge("inflight", "Inflight requests")

	m.IncCounter("requests_total")
	m.AddCounter("requests_total", 2)
	m.IncCounterVec("errors_total", "login")
	m.ObserveHistogramVec("duration_seconds", 0.5, "login")
	m.SetGauge("inflight", 3)

	families, err := m.GetRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	found := map[string]bool{}
	for _, family := range families {
		found[family.GetName()] = true
	}
	for _, name := range []string{
		"test_service_requests_total",
		"test_service_errors_total",
		"test_service_duration_seconds",
		"test_service_inflight",
	} {
		if !found[name] {
			t.Errorf("metric %s not registered, got %v", name, found)
		}
	}

	for _, family := range families {
		if family.GetName() == "test_service_requests_total" {
			if got := family.GetMetric()[0].GetCounter().GetValue(); got != 3 {
				t.Errorf("requests_total = %v, want 3", got)
			}
		}
	}
}

func TestMetrics_UnregisteredNamesAreDropped(t *testing.T) {
	m := NewMetrics("test_service")

	// None of these were registered; they must not panic.
	m.IncCounter("missing")
	m.IncCounterVec("missing", "label")
	m.ObserveHistogram("missing", 1)
	m.ObserveHistogramVec("missing", 1, "label")
	m.SetGauge("missing", 1)
}
