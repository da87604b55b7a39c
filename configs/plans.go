package configs

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed plans.yaml
var plansYAML []byte

type Plan struct {
	Code         string `yaml:"-" json:"code"`
	Name         string `yaml:"name" json:"name"`
	Price        int64  `yaml:"price" json:"price"`
	PeriodDays   int    `yaml:"periodDays" json:"periodDays"`
	MaxMenus     int    `yaml:"maxMenus" json:"maxMenus"`
	MaxItems     int    `yaml:"maxItems" json:"maxItems"`
	MaxLanguages int    `yaml:"maxLanguages" json:"maxLanguages"`
}

type PlanCatalog map[string]Plan

// Get falls back to FREE for unknown codes.
func (pc PlanCatalog) Get(code string) Plan {
	if p, ok := pc[code]; ok {
		return p
	}
	return pc["FREE"]
}

func (pc PlanCatalog) Has(code string) bool {
	_, ok := pc[code]
	return ok
}

func LoadPlans() (PlanCatalog, error) {
	return ParsePlans(plansYAML)
}

func ParsePlans(data []byte) (PlanCatalog, error) {
	var doc struct {
		Plans map[string]Plan `yaml:"plans"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse plans: %w", err)
	}
	if _, ok := doc.Plans["FREE"]; !ok {
		return nil, fmt.Errorf("parse plans: FREE plan is required")
	}
	for code, p := range doc.Plans {
		p.Code = code
		doc.Plans[code] = p
	}
	return PlanCatalog(doc.Plans), nil
}

// Within ตรวจว่า used ยังไม่เกิน limit (0 = ไม่จำกัด)
func Within(limit, used int) bool {
	return limit == 0 || used < limit
}
