package fairness

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/materna-backend/internal/cohort"
)

// Policy is the audit configuration: the flagging threshold plus the named
// subgroup axes to partition on. The default mirrors fixed clinical-review
// policy (two axes, 10-point threshold); a YAML policy file can add axes
// without touching the auditor itself.
type Policy struct {
	ThresholdPoints float64 `yaml:"threshold_points"`
	Axes            []Axis  `yaml:"axes"`
}

// Axis is one two-way partition of the cohort, e.g. delivery type. Exactly
// two groups per axis; the gap is their pairwise absolute difference.
type Axis struct {
	Name   string  `yaml:"name"`
	Groups []Group `yaml:"groups"`
}

// Group names one side of an axis and the record field/value it matches.
type Group struct {
	Name   string `yaml:"name"`
	Field  string `yaml:"field"`
	Equals string `yaml:"equals"`
}

const DefaultThresholdPoints = 10.0

func DefaultPolicy() Policy {
	return Policy{
		ThresholdPoints: DefaultThresholdPoints,
		Axes: []Axis{
			{
				Name: "delivery_type",
				Groups: []Group{
					{Name: "vaginal", Field: "delivery_type", Equals: string(cohort.DeliveryVaginal)},
					{Name: "cesarean", Field: "delivery_type", Equals: string(cohort.DeliveryCesarean)},
				},
			},
			{
				Name: "location",
				Groups: []Group{
					{Name: "urban", Field: "location", Equals: string(cohort.LocationUrban)},
					{Name: "rural", Field: "location", Equals: string(cohort.LocationRural)},
				},
			},
		},
	}
}

// LoadPolicy reads a YAML policy file. Missing threshold falls back to the
// default; axes are validated against the known record fields.
func LoadPolicy(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("fairness: read policy: %w", err)
	}
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("fairness: parse policy: %w", err)
	}
	if p.ThresholdPoints <= 0 {
		p.ThresholdPoints = DefaultThresholdPoints
	}
	if len(p.Axes) == 0 {
		return Policy{}, fmt.Errorf("fairness: policy defines no axes")
	}
	for _, axis := range p.Axes {
		if strings.TrimSpace(axis.Name) == "" {
			return Policy{}, fmt.Errorf("fairness: axis with empty name")
		}
		if len(axis.Groups) != 2 {
			return Policy{}, fmt.Errorf("fairness: axis %q must define exactly 2 groups, has %d", axis.Name, len(axis.Groups))
		}
		for _, g := range axis.Groups {
			if _, err := predicateFor(g); err != nil {
				return Policy{}, fmt.Errorf("fairness: axis %q: %w", axis.Name, err)
			}
		}
	}
	return p, nil
}

// Predicate reports whether a record belongs to the group.
type Predicate func(cohort.PatientRecord) bool

func predicateFor(g Group) (Predicate, error) {
	equals := strings.ToLower(strings.TrimSpace(g.Equals))
	switch strings.ToLower(strings.TrimSpace(g.Field)) {
	case "delivery_type":
		want := cohort.DeliveryType(equals)
		if want != cohort.DeliveryVaginal && want != cohort.DeliveryCesarean {
			return nil, fmt.Errorf("group %q: unknown delivery_type %q", g.Name, g.Equals)
		}
		return func(r cohort.PatientRecord) bool { return r.DeliveryType == want }, nil
	case "location":
		want := cohort.Location(equals)
		if want != cohort.LocationUrban && want != cohort.LocationRural {
			return nil, fmt.Errorf("group %q: unknown location %q", g.Name, g.Equals)
		}
		return func(r cohort.PatientRecord) bool { return r.Location == want }, nil
	case "age_over":
		// Age-band axes, e.g. equals: "35" splits at age > 35.
		n, err := parseAge(equals)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", g.Name, err)
		}
		return func(r cohort.PatientRecord) bool { return r.Age > n }, nil
	case "age_at_most":
		n, err := parseAge(equals)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", g.Name, err)
		}
		return func(r cohort.PatientRecord) bool { return r.Age <= n }, nil
	default:
		return nil, fmt.Errorf("group %q: unknown field %q", g.Name, g.Field)
	}
}

func parseAge(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid age bound %q", s)
	}
	return n, nil
}
