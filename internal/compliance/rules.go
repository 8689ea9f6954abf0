package compliance

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

// Rule is the labor-law data for one country entity.
type Rule struct {
	Country         string          `json:"country"`
	Name            string          `json:"name"`
	WeeklyHourCap   int             `json:"weekly_hour_cap"`
	AnnualLeaveDays int             `json:"annual_leave_days"`
	MinNoticeDays   int             `json:"min_notice_days"`
	WithholdingRate decimal.Decimal `json:"withholding_rate"`
	DataProtection  string          `json:"data_protection"`
}

// Rules is an immutable lookup table keyed by ISO country code.
type Rules struct {
	byCountry map[string]Rule
	ordered   []Rule
}

type rulesFile struct {
	Rules []struct {
		Country         string `yaml:"country"`
		Name            string `yaml:"name"`
		WeeklyHourCap   int    `yaml:"weekly_hour_cap"`
		AnnualLeaveDays int    `yaml:"annual_leave_days"`
		MinNoticeDays   int    `yaml:"min_notice_days"`
		WithholdingRate string `yaml:"withholding_rate"`
		DataProtection  string `yaml:"data_protection"`
	} `yaml:"rules"`
}

// DefaultRules parses the embedded table.
func DefaultRules() (*Rules, error) {
	return ParseRules(defaultRules)
}

func ParseRules(data []byte) (*Rules, error) {
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("compliance rules: %w", err)
	}

	r := &Rules{byCountry: make(map[string]Rule, len(f.Rules))}
	for _, raw := range f.Rules {
		country := strings.ToUpper(raw.Country)
		if len(country) != 2 {
			return nil, fmt.Errorf("compliance rules: invalid country %q", raw.Country)
		}
		if _, dup := r.byCountry[country]; dup {
			return nil, fmt.Errorf("compliance rules: duplicate country %s", country)
		}
		rate, err := decimal.NewFromString(raw.WithholdingRate)
		if err != nil || rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("compliance rules: %s withholding_rate %q must be in [0,1)", country, raw.WithholdingRate)
		}
		if raw.WeeklyHourCap <= 0 || raw.AnnualLeaveDays < 0 || raw.MinNoticeDays < 0 {
			return nil, fmt.Errorf("compliance rules: %s has negative or empty limits", country)
		}

		rule := Rule{
			Country:         country,
			Name:            raw.Name,
			WeeklyHourCap:   raw.WeeklyHourCap,
			AnnualLeaveDays: raw.AnnualLeaveDays,
			MinNoticeDays:   raw.MinNoticeDays,
			WithholdingRate: rate,
			DataProtection:  raw.DataProtection,
		}
		r.byCountry[country] = rule
		r.ordered = append(r.ordered, rule)
	}
	sort.Slice(r.ordered, func(i, j int) bool { return r.ordered[i].Country < r.ordered[j].Country })
	return r, nil
}

func (r *Rules) Get(country string) (Rule, bool) {
	rule, ok := r.byCountry[strings.ToUpper(country)]
	return rule, ok
}

func (r *Rules) All() []Rule {
	out := make([]Rule, len(r.ordered))
	copy(out, r.ordered)
	return out
}
