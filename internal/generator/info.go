package generator

import (
	"math/big"
	"strings"

	"github.com/promptloom-dev/promptloom/internal/profile"
)

// PoolSize pairs a pool name with its value count, in declaration order.
type PoolSize struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// InfoReport summarizes a profile for inspection: metadata, shape and the
// size of its output space.
type InfoReport struct {
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Version      string     `json:"version,omitempty"`
	Templates    int        `json:"templates"`
	Pools        []PoolSize `json:"pools"`
	Combinations string     `json:"combinations"`
	Scientific   string     `json:"scientific"`
}

// Info builds the inspection report for a profile. Combinations is the exact
// decimal count; Scientific is the same number in two-decimal e-notation.
func Info(p *profile.Profile) InfoReport {
	name := p.Name
	if name == "" {
		name = "Unknown"
	}

	pools := make([]PoolSize, len(p.Pools))
	for i, pool := range p.Pools {
		pools[i] = PoolSize{Name: pool.Name, Size: len(pool.Values)}
	}

	total := p.Combinations()
	return InfoReport{
		Name:         name,
		Description:  p.Description,
		Version:      p.Version,
		Templates:    len(p.Templates),
		Pools:        pools,
		Combinations: total.String(),
		Scientific:   scientific(total),
	}
}

// scientific renders n as d.dde+dd. The exponent is padded to two digits so
// small and large counts line up the same way.
func scientific(n *big.Int) string {
	s := new(big.Float).SetInt(n).Text('e', 2)
	i := strings.IndexByte(s, 'e')
	if i < 0 {
		return s
	}
	mantissa, exp := s[:i], s[i+1:]
	sign := "+"
	if len(exp) > 0 && (exp[0] == '+' || exp[0] == '-') {
		sign = string(exp[0])
		exp = exp[1:]
	}
	if len(exp) < 2 {
		exp = "0" + exp
	}
	return mantissa + "e" + sign + exp
}
