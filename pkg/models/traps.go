package models

import "time"

// TrapVarbind is one normalized varbind from a received notification.
// Type carries the readable ASN.1 name when known, nil otherwise.
type TrapVarbind struct {
	OID   string  `json:"oid"`
	Type  *string `json:"type"`
	Value Value   `json:"value"`
}

// SnmpTrap is an unsolicited notification normalized into a uniform event
// record. TransmitterID and SiteID are set when the source host matched a
// configured transmitter; attribution failure is non-fatal and leaves both
// nil.
type SnmpTrap struct {
	ID            int64         `json:"id"`
	TransmitterID *string       `json:"transmitterId,omitempty"`
	SiteID        *string       `json:"siteId,omitempty"`
	SourceHost    string        `json:"sourceHost"`
	SourcePort    int           `json:"sourcePort"`
	Community     string        `json:"community"`
	Version       int           `json:"version"`
	TrapOID       *string       `json:"trapOid,omitempty"`
	EnterpriseOID *string       `json:"enterpriseOid,omitempty"`
	Varbinds      []TrapVarbind `json:"varbinds"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// TrapFilter narrows trap queries; zero-value fields are ignored.
type TrapFilter struct {
	TransmitterID string
	SiteID        string
	SourceHost    string
}
