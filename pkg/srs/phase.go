package srs

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"encoding/json"
	"fmt"
)

// Phase is the lifecycle stage of an item.
type Phase int

const (
	New      Phase = iota + 1 // Never graduated; stability unset or from a failed first review.
	Learning                  // Graduated from New but stability has not exceeded one day.
	Review                    // Mature interval; long-term review cycle.
)

var (
	phaseNames  = [...]string{New: "NEW", Learning: "LEARNING", Review: "REVIEW"}
	phaseByName = map[string]Phase{
		"NEW":      New,
		"LEARNING": Learning,
		"REVIEW":   Review,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Phase(0)
	_ json.Marshaler           = Phase(0)
	_ json.Unmarshaler         = (*Phase)(nil)
	_ encoding.TextMarshaler   = Phase(0)
	_ encoding.TextUnmarshaler = (*Phase)(nil)
	_ driver.Valuer            = Phase(0)
	_ sql.Scanner              = (*Phase)(nil)
)

// String returns the name of the phase ("NEW", "LEARNING", "REVIEW").
// For invalid values it returns "Phase(n)".
func (p Phase) String() string {
	if p.IsValid() {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// IsValid reports whether p is a valid phase (New through Review).
func (p Phase) IsValid() bool {
	return p >= New && p <= Review
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPhase, int(p))
	}
	return []byte(phaseNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	v, ok := phaseByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPhase, text)
	}
	*p = v
	return nil
}

// MarshalJSON implements json.Marshaler. Phase serializes as a JSON string.
func (p Phase) MarshalJSON() ([]byte, error) {
	text, err := p.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (p *Phase) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPhase, data)
	}
	return p.UnmarshalText([]byte(s))
}

// Value implements driver.Valuer. Phase is stored as its name.
func (p Phase) Value() (driver.Value, error) {
	text, err := p.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

// Scan implements sql.Scanner. Accepts the stored name as string or []byte.
func (p *Phase) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return p.UnmarshalText([]byte(v))
	case []byte:
		return p.UnmarshalText(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidPhase, src)
	}
}
