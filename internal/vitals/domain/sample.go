package domain

import "time"

// Sample represents one vital-signs observation value object
type Sample struct {
	Timestamp   time.Time
	HeartRate   int     // beats per minute
	Temperature float64 // degrees Celsius, one fractional digit
	Oxygen      int     // saturation percent
}

// NewSample creates a new sample
func NewSample(timestamp time.Time, heartRate int, temperature float64, oxygen int) Sample {
	return Sample{
		Timestamp:   timestamp,
		HeartRate:   heartRate,
		Temperature: temperature,
		Oxygen:      oxygen,
	}
}

// DisplayTime renders the timestamp in the HH:MM:SS form used on the wire
// and in the UI.
func (s Sample) DisplayTime() string {
	return s.Timestamp.Format("15:04:05")
}
