package document

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PartnerMap is an insertion-ordered map from partner identifier to its
// configuration. Setting an existing key replaces the value but keeps the
// key's original position.
type PartnerMap struct {
	keys   []string
	values map[string]PartnerConfig
}

// NewPartnerMap returns an empty map.
func NewPartnerMap() *PartnerMap {
	return &PartnerMap{values: make(map[string]PartnerConfig)}
}

// Set stores cfg under key and reports whether an earlier value was replaced.
func (m *PartnerMap) Set(key string, cfg PartnerConfig) bool {
	if m.values == nil {
		m.values = make(map[string]PartnerConfig)
	}
	_, replaced := m.values[key]
	if !replaced {
		m.keys = append(m.keys, key)
	}
	m.values[key] = cfg
	return replaced
}

// Get returns the configuration stored under key.
func (m *PartnerMap) Get(key string) (PartnerConfig, bool) {
	if m == nil {
		return PartnerConfig{}, false
	}
	cfg, ok := m.values[key]
	return cfg, ok
}

// Keys returns identifiers in insertion order.
func (m *PartnerMap) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Len reports the number of partners.
func (m *PartnerMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// MarshalJSON writes the object with keys in insertion order.
func (m *PartnerMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if m != nil {
		for i, key := range m.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := marshalNoEscape(key)
			if err != nil {
				return nil, err
			}
			buf.Write(k)
			buf.WriteByte(':')
			v, err := marshalNoEscape(m.values[key])
			if err != nil {
				return nil, err
			}
			buf.Write(v)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object, keeping key order. Repeated keys follow the
// same replace-in-place rule as Set.
func (m *PartnerMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("partners: %w", err)
	}
	if tok == nil {
		*m = PartnerMap{values: make(map[string]PartnerConfig)}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("partners: expected object, got %v", tok)
	}

	out := PartnerMap{values: make(map[string]PartnerConfig)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("partners: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("partners: expected string key, got %v", keyTok)
		}
		var cfg PartnerConfig
		if err := dec.Decode(&cfg); err != nil {
			return fmt.Errorf("partners: value for %q: %w", key, err)
		}
		out.Set(key, cfg)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("partners: %w", err)
	}
	*m = out
	return nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
