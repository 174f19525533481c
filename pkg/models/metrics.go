package models

import (
	"encoding/json"
	"time"
)

// TransmitterMetric is one time-series observation. Rows are keyed by
// (TransmitterID, Timestamp) and append-only.
type TransmitterMetric struct {
	TransmitterID  string          `json:"transmitterId"`
	Timestamp      time.Time       `json:"timestamp"`
	PowerOutput    *float64        `json:"powerOutput,omitempty"`
	ForwardPower   *float64        `json:"forwardPower,omitempty"`
	ReflectedPower *float64        `json:"reflectedPower,omitempty"`
	Frequency      *float64        `json:"frequency,omitempty"`
	VSWR           *float64        `json:"vswr,omitempty"`
	Temperature    *float64        `json:"temperature,omitempty"`
	Status         string          `json:"status"`
	RawData        json.RawMessage `json:"rawData,omitempty"`
	ErrorMessage   *string         `json:"errorMessage,omitempty"`
}

// TransmitterMetricData is the parser output: whichever domain fields the
// raw varbind map yielded, plus a proposed name when the radio-name OID was
// present. The store decides whether the name is written.
type TransmitterMetricData struct {
	PowerOutput    *float64
	ForwardPower   *float64
	ReflectedPower *float64
	Frequency      *float64
	VSWR           *float64
	Temperature    *float64
	Status         string
	RadioName      string
}

// DeviceResult records one poll outcome for the in-memory ring and the
// event stream.
type DeviceResult struct {
	DeviceID  string           `json:"deviceId"`
	Timestamp time.Time        `json:"timestamp"`
	Success   bool             `json:"success"`
	Data      map[string]Value `json:"data,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// DeviceStatus is the scheduler's liveness view of one device, derived
// from its most recent poll results.
type DeviceStatus struct {
	DeviceID   string     `json:"deviceId"`
	Online     bool       `json:"online"`
	LastSeen   *time.Time `json:"lastSeen,omitempty"`
	ErrorCount int        `json:"errorCount"`
}
