package domain

import (
	"regexp"
	"strconv"
	"time"
)

// Payload field patterns. Each field is optional and independent; order and
// surrounding text are irrelevant, e.g. "H:78,T:36.6,O:98".
var (
	heartRatePattern   = regexp.MustCompile(`H:(\d+)`)
	temperaturePattern = regexp.MustCompile(`T:(\d+(?:\.\d+)?)`)
	oxygenPattern      = regexp.MustCompile(`O:(\d+)`)
)

// Reading is the parse result of a single payload. Nil fields were absent
// from the payload and carry the previous sample's value forward on Apply.
type Reading struct {
	HeartRate   *int
	Temperature *float64
	Oxygen      *int
}

// Empty reports whether no recognized field was present.
func (r Reading) Empty() bool {
	return r.HeartRate == nil && r.Temperature == nil && r.Oxygen == nil
}

// Apply merges the reading with the previous sample, carrying forward any
// field the payload omitted.
func (r Reading) Apply(prev Sample, timestamp time.Time) Sample {
	sample := Sample{
		Timestamp:   timestamp,
		HeartRate:   prev.HeartRate,
		Temperature: prev.Temperature,
		Oxygen:      prev.Oxygen,
	}
	if r.HeartRate != nil {
		sample.HeartRate = *r.HeartRate
	}
	if r.Temperature != nil {
		sample.Temperature = *r.Temperature
	}
	if r.Oxygen != nil {
		sample.Oxygen = *r.Oxygen
	}
	return sample
}

// ParsePayload extracts the recognized fields from a decoded text payload.
// It returns ok=false when no field matched, in which case the payload has
// no observable effect. A capture that fails numeric conversion is skipped
// without failing the rest of the payload.
func ParsePayload(payload string) (Reading, bool) {
	var r Reading

	if m := heartRatePattern.FindStringSubmatch(payload); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			r.HeartRate = &v
		}
	}

	if m := temperaturePattern.FindStringSubmatch(payload); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			r.Temperature = &v
		}
	}

	if m := oxygenPattern.FindStringSubmatch(payload); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			r.Oxygen = &v
		}
	}

	return r, !r.Empty()
}
