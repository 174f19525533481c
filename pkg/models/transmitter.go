package models

import "time"

// Transmitter status values. Status is derived by the metric parser from
// the Elenos standby/on-air OIDs; "fault" and "unknown" are set by external
// policy, never by the polling path.
const (
	StatusActive  = "active"
	StatusStandby = "standby"
	StatusOffline = "offline"
	StatusFault   = "fault"
	StatusUnknown = "unknown"
)

// SNMP protocol versions on the wire: 0 selects SNMPv1, 1 selects SNMPv2c.
const (
	SNMPv1  = 0
	SNMPv2c = 1
)

// Defaults applied when configuration leaves the fields empty.
const (
	DefaultSNMPPort      = 161
	DefaultCommunity     = "public"
	DefaultPollInterval  = 10000
	LegacyPollInterval   = 30000
	MinimumPollInterval  = 1000
)

// Transmitter is a polled SNMP endpoint at a site. It is the single record
// behind both the storage schema and the /devices wire projection.
type Transmitter struct {
	ID            string    `json:"id"`
	SiteID        string    `json:"siteId"`
	Name          string    `json:"name"`
	DisplayLabel  *string   `json:"displayLabel,omitempty"`
	DisplayOrder  int       `json:"displayOrder"`
	Frequency     float64   `json:"frequency"`
	Power         float64   `json:"power"`
	Status        string    `json:"status"`
	SNMPHost      string    `json:"snmpHost"`
	SNMPPort      int       `json:"snmpPort"`
	SNMPCommunity string    `json:"snmpCommunity"`
	SNMPVersion   int       `json:"snmpVersion"`
	OIDs          []string  `json:"oids"`
	PollInterval  int       `json:"pollInterval"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TransmitterPatch carries a partial transmitter update; nil fields are
// left unchanged. Upsert uses the same shape with an optional ID.
type TransmitterPatch struct {
	ID            *string   `json:"id,omitempty"`
	SiteID        *string   `json:"siteId,omitempty"`
	Name          *string   `json:"name,omitempty"`
	DisplayLabel  *string   `json:"displayLabel,omitempty"`
	DisplayOrder  *int      `json:"displayOrder,omitempty"`
	Frequency     *float64  `json:"frequency,omitempty"`
	Power         *float64  `json:"power,omitempty"`
	Status        *string   `json:"status,omitempty"`
	SNMPHost      *string   `json:"snmpHost,omitempty"`
	SNMPPort      *int      `json:"snmpPort,omitempty"`
	SNMPCommunity *string   `json:"snmpCommunity,omitempty"`
	SNMPVersion   *int      `json:"snmpVersion,omitempty"`
	OIDs          *[]string `json:"oids,omitempty"`
	PollInterval  *int      `json:"pollInterval,omitempty"`
	IsActive      *bool     `json:"isActive,omitempty"`
}

// Device is the wire projection of a transmitter consumed by the
// /api/snmp/devices endpoints. Field names are part of the REST contract.
type Device struct {
	ID           string   `json:"id"`
	Host         string   `json:"host"`
	Port         int      `json:"port"`
	Community    string   `json:"community"`
	Version      int      `json:"version"`
	OIDs         []string `json:"oids"`
	PollInterval int      `json:"pollInterval"`
	IsActive     bool     `json:"isActive"`
	Name         string   `json:"name"`
	Label        string   `json:"label,omitempty"`
	DisplayOrder int      `json:"displayOrder"`
	SiteID       string   `json:"siteId"`
}

// ToDevice projects the transmitter onto the wire shape.
func (t *Transmitter) ToDevice() Device {
	label := ""
	if t.DisplayLabel != nil {
		label = *t.DisplayLabel
	}

	oids := t.OIDs
	if oids == nil {
		oids = []string{}
	}

	return Device{
		ID:           t.ID,
		Host:         t.SNMPHost,
		Port:         t.SNMPPort,
		Community:    t.SNMPCommunity,
		Version:      t.SNMPVersion,
		OIDs:         oids,
		PollInterval: t.PollInterval,
		IsActive:     t.IsActive,
		Name:         t.Name,
		Label:        label,
		DisplayOrder: t.DisplayOrder,
		SiteID:       t.SiteID,
	}
}

// ConnectionTupleEquals reports whether two transmitters share the SNMP
// connection parameters. A change in any of them requires recycling the
// device session before the next poll.
func ConnectionTupleEquals(a, b *Transmitter) bool {
	return a.SNMPHost == b.SNMPHost &&
		a.SNMPPort == b.SNMPPort &&
		a.SNMPCommunity == b.SNMPCommunity &&
		a.SNMPVersion == b.SNMPVersion
}

// SameEndpoint reports whether two device snapshots share the connection
// tuple, meaning an open session can be kept across the update.
func (d Device) SameEndpoint(other Device) bool {
	return d.Host == other.Host &&
		d.Port == other.Port &&
		d.Community == other.Community &&
		d.Version == other.Version
}
