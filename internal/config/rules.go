package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"jackpotsim/internal/betting"
)

type rulesFile struct {
	SportPesa *betting.Rules `yaml:"sportpesa"`
}

// LoadRules returns the rule table from a YAML file such as
//
//	sportpesa:
//	  max_only_doubles: 10
//	  max_only_triples: 5
//	  max_combining_doubles: 9
//	  max_combining_triples: 5
//	  cost_per_bet: 99
//
// Keys left out keep their default value. An empty path yields the defaults.
func LoadRules(path string) (betting.Rules, error) {
	rules := betting.DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read rules file: %w", err)
	}

	file := rulesFile{SportPesa: &rules}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return betting.DefaultRules(), fmt.Errorf("parse rules file: %w", err)
	}
	if err := rules.Check(); err != nil {
		return betting.DefaultRules(), fmt.Errorf("rules file %s: %w", path, err)
	}

	log.Printf("[CONFIG] Loaded rules from %s", path)
	return rules, nil
}
