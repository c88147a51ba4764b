package domain

import (
	"testing"
	"time"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name        string
		payload     string
		expectOK    bool
		heartRate   *int
		temperature *float64
		oxygen      *int
	}{
		{
			name:        "all three fields",
			payload:     "H:82,T:36.9,O:97",
			expectOK:    true,
			heartRate:   intPtr(82),
			temperature: floatPtr(36.9),
			oxygen:      intPtr(97),
		},
		{
			name:        "temperature only",
			payload:     "T:37.0",
			expectOK:    true,
			temperature: floatPtr(37.0),
		},
		{
			name:      "heart rate only",
			payload:   "H:78",
			expectOK:  true,
			heartRate: intPtr(78),
		},
		{
			name:     "oxygen only",
			payload:  "O:98",
			expectOK: true,
			oxygen:   intPtr(98),
		},
		{
			name:        "fields in any order",
			payload:     "O:96 H:70 T:36.5",
			expectOK:    true,
			heartRate:   intPtr(70),
			temperature: floatPtr(36.5),
			oxygen:      intPtr(96),
		},
		{
			name:        "extra surrounding text ignored",
			payload:     "status=ok;H:65;batt=80%;T:36.6",
			expectOK:    true,
			heartRate:   intPtr(65),
			temperature: floatPtr(36.6),
		},
		{
			name:        "integer temperature",
			payload:     "T:37",
			expectOK:    true,
			temperature: floatPtr(37.0),
		},
		{
			name:     "no recognized field",
			payload:  "hello world",
			expectOK: false,
		},
		{
			name:     "empty payload",
			payload:  "",
			expectOK: false,
		},
		{
			name:     "lowercase prefixes do not match",
			payload:  "h:80,t:36.6,o:98",
			expectOK: false,
		},
		{
			name:     "prefix without digits does not match",
			payload:  "H:,T:abc,O:",
			expectOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reading, ok := ParsePayload(tt.payload)

			if ok != tt.expectOK {
				t.Fatalf("expected ok=%v, got %v", tt.expectOK, ok)
			}

			checkIntField(t, "heart rate", reading.HeartRate, tt.heartRate)
			checkFloatField(t, "temperature", reading.Temperature, tt.temperature)
			checkIntField(t, "oxygen", reading.Oxygen, tt.oxygen)
		})
	}
}

func checkIntField(t *testing.T, field string, got, want *int) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Errorf("expected %s to be absent, got %d", field, *got)
		}
		return
	}
	if got == nil {
		t.Errorf("expected %s %d, got absent", field, *want)
		return
	}
	if *got != *want {
		t.Errorf("expected %s %d, got %d", field, *want, *got)
	}
}

func checkFloatField(t *testing.T, field string, got, want *float64) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Errorf("expected %s to be absent, got %v", field, *got)
		}
		return
	}
	if got == nil {
		t.Errorf("expected %s %v, got absent", field, *want)
		return
	}
	if *got != *want {
		t.Errorf("expected %s %v, got %v", field, *want, *got)
	}
}

func TestReading_Apply(t *testing.T) {
	ts := time.Date(2026, 8, 24, 12, 30, 45, 0, time.UTC)
	prev := NewSample(ts.Add(-time.Second), 90, 36.5, 96)

	tests := []struct {
		name     string
		payload  string
		expected Sample
	}{
		{
			name:     "all fields updated",
			payload:  "H:82,T:36.9,O:97",
			expected: Sample{Timestamp: ts, HeartRate: 82, Temperature: 36.9, Oxygen: 97},
		},
		{
			name:     "temperature only carries heart rate and oxygen forward",
			payload:  "T:37.0",
			expected: Sample{Timestamp: ts, HeartRate: 90, Temperature: 37.0, Oxygen: 96},
		},
		{
			name:     "heart rate only carries temperature and oxygen forward",
			payload:  "H:71",
			expected: Sample{Timestamp: ts, HeartRate: 71, Temperature: 36.5, Oxygen: 96},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reading, ok := ParsePayload(tt.payload)
			if !ok {
				t.Fatalf("expected payload %q to parse", tt.payload)
			}

			sample := reading.Apply(prev, ts)
			if sample != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, sample)
			}
		})
	}
}

func TestSample_DisplayTime(t *testing.T) {
	sample := NewSample(time.Date(2026, 8, 24, 9, 5, 3, 0, time.UTC), 80, 36.6, 98)
	if got := sample.DisplayTime(); got != "09:05:03" {
		t.Errorf("expected display time %q, got %q", "09:05:03", got)
	}
}
