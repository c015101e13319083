// Package profile defines the generation vocabulary documents: named pools of
// text fragments plus the templates that reference them. Profiles are JSON
// files; pool declaration order is part of the contract because pool i is
// always consumed through coordinate slot i+1, so decoding preserves it.
package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
)

// Pool is one named list of candidate fragments. Its position in
// Profile.Pools decides which coordinate slot selects from it.
type Pool struct {
	Name   string
	Values []string
}

// Profile is a parsed vocabulary document. Name, Description and Version are
// metadata only and never influence generation.
type Profile struct {
	Name        string
	Description string
	Version     string
	Templates   []string
	Pools       []Pool
}

// UnmarshalJSON decodes a profile document keeping pool declaration order.
// A plain map would shuffle the pools and with them the coordinate slots.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Version     string          `json:"version"`
		Templates   []string        `json:"templates"`
		Pools       json.RawMessage `json:"pools"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Name = raw.Name
	p.Description = raw.Description
	p.Version = raw.Version
	p.Templates = raw.Templates
	p.Pools = nil

	if len(raw.Pools) == 0 || bytes.Equal(raw.Pools, []byte("null")) {
		return nil
	}
	pools, err := decodePools(raw.Pools)
	if err != nil {
		return err
	}
	p.Pools = pools
	return nil
}

// decodePools walks the object tokens one key at a time. Duplicate keys are
// kept as separate entries here so Validate can reject them; a map decode
// would silently drop all but the last.
func decodePools(data []byte) ([]Pool, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("pools must be an object")
	}

	var pools []Pool
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("pools: unexpected key token %v", keyTok)
		}

		var values []string
		if err := dec.Decode(&values); err != nil {
			return nil, fmt.Errorf("pool %q: %w", name, err)
		}
		pools = append(pools, Pool{Name: name, Values: values})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return pools, nil
}

// MarshalJSON writes the document back in its canonical shape, pools in
// declaration order.
func (p *Profile) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeField := func(key string, v any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}

	if p.Name != "" {
		if err := writeField("name", p.Name); err != nil {
			return nil, err
		}
	}
	if p.Description != "" {
		if err := writeField("description", p.Description); err != nil {
			return nil, err
		}
	}
	if p.Version != "" {
		if err := writeField("version", p.Version); err != nil {
			return nil, err
		}
	}
	if err := writeField("templates", p.Templates); err != nil {
		return nil, err
	}

	if buf.Len() > 1 {
		buf.WriteByte(',')
	}
	buf.WriteString(`"pools":{`)
	for i, pool := range p.Pools {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(pool.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(pool.Values)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// Validate performs structural validation and returns a *SchemaError
// describing every problem found, or nil. It works on programmatically built
// profiles as well as decoded ones; loading runs it on every document.
func (p *Profile) Validate() error {
	var issues []Issue

	if len(p.Templates) == 0 {
		issues = append(issues, Issue{
			Field:  "templates",
			Reason: "at least one template is required",
		})
	}

	seen := make(map[string]bool, len(p.Pools))
	for i, pool := range p.Pools {
		field := fmt.Sprintf("pools.%s", pool.Name)
		if pool.Name == "" {
			field = fmt.Sprintf("pools[%d]", i)
			issues = append(issues, Issue{Field: field, Reason: "pool name must not be empty"})
		}
		if seen[pool.Name] {
			issues = append(issues, Issue{Field: field, Reason: "duplicate pool name"})
		}
		seen[pool.Name] = true
		if len(pool.Values) == 0 {
			issues = append(issues, Issue{Field: field, Reason: "pool must contain at least one value"})
		}
	}

	if len(issues) > 0 {
		return &SchemaError{Issues: issues}
	}
	return nil
}

// Combinations returns the size of the output space:
// len(templates) x the product of every pool size. Every pool is consumed on
// every generation whether or not the template references it, so the product
// runs over all pools. Arbitrary precision; real profiles overflow int64.
func (p *Profile) Combinations() *big.Int {
	total := big.NewInt(int64(len(p.Templates)))
	for _, pool := range p.Pools {
		total.Mul(total, big.NewInt(int64(len(pool.Values))))
	}
	return total
}
