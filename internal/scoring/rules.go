package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RuleSpec is a single-shot rule: it contributes Points at most once per post.
type RuleSpec struct {
	Points   int      `yaml:"points"`
	Keywords []string `yaml:"keywords"`
}

// PainSpec is the counted rule: each distinct keyword match contributes
// PointsPerMatch, capped at MaxMatches matches.
type PainSpec struct {
	PointsPerMatch int      `yaml:"points_per_match"`
	MaxMatches     int      `yaml:"max_matches"`
	Keywords       []string `yaml:"keywords"`
}

// Rules is the full scoring rule table. Evaluation order is fixed:
// identity, urgency, transition, velocity, pain.
type Rules struct {
	Identity   RuleSpec `yaml:"identity"`
	Urgency    RuleSpec `yaml:"urgency"`
	Transition RuleSpec `yaml:"transition"`
	Velocity   RuleSpec `yaml:"velocity"`
	Pain       PainSpec `yaml:"pain"`
}

// DefaultRules returns the built-in rule table. Keyword sets are chosen so
// entries do not shadow each other under word-boundary matching (e.g.
// "tech debt" never matches inside "technical debt").
func DefaultRules() Rules {
	return Rules{
		Identity: RuleSpec{
			Points: 30,
			Keywords: []string{
				"ceo", "founder", "co-founder", "cofounder", "cto",
				"my startup", "our startup", "i founded",
			},
		},
		Urgency: RuleSpec{
			Points: 25,
			Keywords: []string{
				"urgent", "urgently", "asap", "deadline", "deadlines",
				"runway", "burn rate", "losing money", "losing customers",
				"crisis", "emergency", "immediately", "desperate",
				"running out of time",
			},
		},
		Transition: RuleSpec{
			Points: 20,
			Keywords: []string{
				"hiring", "hire", "replacing", "replace", "need a",
				"need to hire", "looking for", "recruiting",
			},
		},
		Velocity: RuleSpec{
			Points: 15,
			Keywords: []string{
				"can't ship", "cannot ship", "slow development", "shipping",
				"velocity", "behind schedule", "missed deadlines",
			},
		},
		Pain: PainSpec{
			PointsPerMatch: 10,
			MaxMatches:     3,
			Keywords: []string{
				"technical debt", "tech debt", "scaling", "outages", "outage",
				"downtime", "burnout", "turnover", "legacy codebase",
				"legacy system", "spaghetti code", "on fire",
			},
		},
	}
}

// LoadRules reads a rule table from a YAML file. Omitted fields fall back
// to the defaults, so a file may override a single keyword set.
func LoadRules(path string) (Rules, error) {
	r := DefaultRules()
	b, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("scoring: read rules file: %w", err)
	}
	if err := yaml.Unmarshal(b, &r); err != nil {
		return r, fmt.Errorf("scoring: parse rules file: %w", err)
	}
	if err := r.validate(); err != nil {
		return r, err
	}
	return r, nil
}

func (r Rules) validate() error {
	for name, spec := range map[string]RuleSpec{
		"identity":   r.Identity,
		"urgency":    r.Urgency,
		"transition": r.Transition,
		"velocity":   r.Velocity,
	} {
		if spec.Points < 0 {
			return fmt.Errorf("scoring: rule %s: negative points", name)
		}
		if len(spec.Keywords) == 0 {
			return fmt.Errorf("scoring: rule %s: empty keyword set", name)
		}
	}
	if r.Pain.PointsPerMatch < 0 || r.Pain.MaxMatches < 1 {
		return fmt.Errorf("scoring: rule pain: invalid point or cap settings")
	}
	if len(r.Pain.Keywords) == 0 {
		return fmt.Errorf("scoring: rule pain: empty keyword set")
	}
	return nil
}
