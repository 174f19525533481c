package models

// Varbind is one (OID, type, value) triple from a GET or WALK response,
// after protocol-level error varbinds have been filtered out.
type Varbind struct {
	OID   string `json:"oid"`
	Type  string `json:"type"`
	Value Value  `json:"value"`
}

// WalkTemplate is the JSON document generated from a WALK (live or parsed
// from a dump file) and persisted under the assets directory for the
// configuration UI to offer as a polling template.
type WalkTemplate struct {
	DeviceType  string            `json:"deviceType"`
	GeneratedAt string            `json:"generatedAt"`
	Source      string            `json:"source"`
	OIDs        []WalkTemplateOID `json:"oids"`
}

// WalkTemplateOID is one discovered object in a walk template.
type WalkTemplateOID struct {
	OID    string `json:"oid"`
	Name   string `json:"name,omitempty"`
	Type   string `json:"type"`
	Sample string `json:"sample"`
}
