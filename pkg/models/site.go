package models

import (
	"encoding/json"
	"strings"
	"time"
)

// ContactInfo identifies who to call when a site needs hands on-site.
type ContactInfo struct {
	Technician string `json:"technician"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// UnmarshalJSON tolerates the legacy string form of contact info. A JSON
// object parses normally; a JSON string is first tried as an embedded
// object, and anything else is treated as a bare legacy email address.
func (c *ContactInfo) UnmarshalJSON(data []byte) error {
	type plain ContactInfo

	var p plain
	if err := json.Unmarshal(data, &p); err == nil {
		*c = ContactInfo(p)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	return c.fromLegacyString(s)
}

// ParseContactInfo normalizes a stored contact value: valid JSON objects
// parse as-is, strings wrapping a JSON object are unwrapped, and any other
// string becomes {technician:"", phone:"", email:<string>}.
func ParseContactInfo(raw string) ContactInfo {
	var c ContactInfo
	_ = c.fromLegacyString(raw)
	return c
}

func (c *ContactInfo) fromLegacyString(s string) error {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		*c = ContactInfo{}
		return nil
	}

	type plain ContactInfo

	var p plain
	if strings.HasPrefix(trimmed, "{") && json.Unmarshal([]byte(trimmed), &p) == nil {
		*c = ContactInfo(p)
		return nil
	}

	*c = ContactInfo{Email: trimmed}
	return nil
}

// Site is a physical transmitter location. Location follows the
// "STATE, District" convention used across the fleet.
type Site struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Location    string      `json:"location"`
	Latitude    *float64    `json:"latitude,omitempty"`
	Longitude   *float64    `json:"longitude,omitempty"`
	Address     *string     `json:"address,omitempty"`
	ContactInfo ContactInfo `json:"contactInfo"`
	IsActive    bool        `json:"isActive"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// SitePatch carries a partial site update; nil fields are left unchanged.
type SitePatch struct {
	Name        *string      `json:"name,omitempty"`
	Location    *string      `json:"location,omitempty"`
	Latitude    *float64     `json:"latitude,omitempty"`
	Longitude   *float64     `json:"longitude,omitempty"`
	Address     *string      `json:"address,omitempty"`
	ContactInfo *ContactInfo `json:"contactInfo,omitempty"`
	IsActive    *bool        `json:"isActive,omitempty"`
}
