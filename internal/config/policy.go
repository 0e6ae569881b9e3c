package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"beerbot/internal/decision"
)

// PolicyFile is the YAML form of the policy tunables. Omitted keys keep the
// value already configured.
//
//	smoothing_window: 4
//	weeks_of_supply_target: 4
//	correction_factor: 0.5
//	supply_lead_time: 2
//	default_order: 10
type PolicyFile struct {
	SmoothingWindow     *int     `yaml:"smoothing_window"`
	WeeksOfSupplyTarget *float64 `yaml:"weeks_of_supply_target"`
	CorrectionFactor    *float64 `yaml:"correction_factor"`
	SupplyLeadTime      *int     `yaml:"supply_lead_time"`
	DefaultOrder        *int     `yaml:"default_order"`
}

// ParsePolicy decodes a policy file. Unknown keys are an error so a typo
// cannot silently leave a default in place.
func ParsePolicy(data []byte) (*PolicyFile, error) {
	var pf PolicyFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse policy: %w", err)
	}
	return &pf, nil
}

// Apply overlays the file's values on p.
func (pf *PolicyFile) Apply(p decision.Params) decision.Params {
	if pf.SmoothingWindow != nil {
		p.SmoothingWindow = *pf.SmoothingWindow
	}
	if pf.WeeksOfSupplyTarget != nil {
		p.WeeksOfSupplyTarget = *pf.WeeksOfSupplyTarget
	}
	if pf.CorrectionFactor != nil {
		p.CorrectionFactor = *pf.CorrectionFactor
	}
	if pf.SupplyLeadTime != nil {
		p.SupplyLeadTime = *pf.SupplyLeadTime
	}
	if pf.DefaultOrder != nil {
		p.DefaultOrder = *pf.DefaultOrder
	}
	return p
}

// ApplyPolicyFile reads path and overlays it on c.Policy.
func (c *Config) ApplyPolicyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read policy file: %w", err)
	}
	pf, err := ParsePolicy(data)
	if err != nil {
		return err
	}
	c.Policy = pf.Apply(c.Policy)
	c.PolicyFile = path
	return nil
}
