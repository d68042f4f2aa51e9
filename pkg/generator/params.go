package generator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Unlimited is the resolved value of an unbounded degree or crossing limit.
const Unlimited = -1

// Degree is a degree bound. Values in (0,1) are a fraction of the node
// count, negative values mean unlimited, anything else is an absolute count.
type Degree float64

// Resolve turns d into an absolute count for a graph of n nodes.
func (d Degree) Resolve(n int) int {
	switch {
	case d < 0:
		return Unlimited
	case d > 0 && d < 1:
		return max(1, int(math.Round(float64(d)*float64(n))))
	}
	return int(d)
}

// Unlimited reports whether d imposes no bound.
func (d Degree) Unlimited() bool { return d < 0 }

func (d Degree) String() string {
	if d < 0 {
		return "inf"
	}
	return strconv.FormatFloat(float64(d), 'g', -1, 64)
}

// Set parses "inf", "unlimited", a count or a fraction. It lets Degree
// serve as a command-line flag value.
func (d *Degree) Set(s string) error {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "inf" || s == "unlimited" {
		*d = Unlimited
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("degree %q: %w", s, err)
	}
	if v < 0 {
		v = Unlimited
	}
	*d = Degree(v)
	return nil
}

// Type names the flag value type.
func (d *Degree) Type() string { return "degree" }

// UnmarshalYAML accepts the same spellings as Set.
func (d *Degree) UnmarshalYAML(value *yaml.Node) error {
	return d.Set(value.Value)
}

// MarshalYAML writes unlimited degrees as "inf".
func (d Degree) MarshalYAML() (any, error) {
	if d < 0 {
		return "inf", nil
	}
	return float64(d), nil
}

// Params describe one generation round.
type Params struct {
	NodeCount int    `yaml:"node_count" validate:"min=1"`
	MinDegree Degree `yaml:"min_degree" validate:"gte=0"`
	MaxDegree Degree `yaml:"max_degree"`
	// Moat is the minimum Chebyshev separation between nodes.
	Moat int `yaml:"moat" validate:"min=0"`
	// ConnectRadius caps edge length. Zero derives it from the bound.
	ConnectRadius float64 `yaml:"connect_radius" validate:"gte=0"`
	MaxCrossings  int     `yaml:"max_crossings" validate:"gte=-1"`
	Spread        float64 `yaml:"spread" validate:"gte=0,lte=100"`
	Directed      bool    `yaml:"directed"`
}

// MaxSpread caps the placement bound multiplier.
const MaxSpread = 100

// DefaultParams mirrors the stock parameter dialog.
func DefaultParams() Params {
	return Params{
		NodeCount:    100,
		MinDegree:    3,
		MaxDegree:    5,
		Moat:         2,
		MaxCrossings: 0,
	}
}

var validate = validator.New()

// Validate rejects parameters generation cannot run with.
func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("Validate: %w: %v", ErrInvalidParams, err)
	}
	if !p.MaxDegree.Unlimited() && p.MaxDegree.Resolve(p.NodeCount) < p.MinDegree.Resolve(p.NodeCount) {
		return fmt.Errorf("Validate: %w: max degree %s below min degree %s",
			ErrInvalidParams, p.MaxDegree, p.MinDegree)
	}
	return nil
}

// Normalize applies the clamps the parameter dialog enforces: at least
// three nodes, max degree not below min degree and at most (N-2)/2
// crossings per edge.
func (p Params) Normalize() Params {
	p.NodeCount = max(p.NodeCount, 3)
	if p.MinDegree < 0 {
		p.MinDegree = 0
	}
	if !p.MaxDegree.Unlimited() && p.MaxDegree.Resolve(p.NodeCount) < p.MinDegree.Resolve(p.NodeCount) {
		p.MaxDegree = Degree(p.MinDegree.Resolve(p.NodeCount))
	}
	if p.MaxCrossings < Unlimited {
		p.MaxCrossings = Unlimited
	}
	if limit := (p.NodeCount - 2) / 2; p.MaxCrossings > limit {
		p.MaxCrossings = limit
	}
	p.Moat = max(p.Moat, 0)
	p.Spread = math.Min(math.Max(p.Spread, 0), MaxSpread)
	p.ConnectRadius = math.Max(p.ConnectRadius, 0)
	return p
}

// InitialBound is the half-width of the first placement square.
func (p Params) InitialBound() int {
	b := math.Sqrt(float64(p.NodeCount)) * float64(2*p.Moat+1) * math.Max(p.Spread, 1)
	return max(1, int(math.Ceil(b)))
}

// Radius is the connection radius, derived from the initial bound when
// ConnectRadius is zero.
func (p Params) Radius() float64 {
	if p.ConnectRadius > 0 {
		return p.ConnectRadius
	}
	return 0.3 * 2 * float64(p.InitialBound())
}
