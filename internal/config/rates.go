package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
)

// ratesFile is the YAML layout of COMMISSION_RATES_FILE. Rates are percent
// values, e.g. 1.5 for 1.5 %.
//
//	service:
//	  default: 1
//	  departments: {C2: 1.5}
//	lito:
//	  default: {ligerbude: 0.5, liegerando: 0.5}
//	  departments:
//	    C6: {ligerbude: 0.5, liegerando: 0.5, minimum_sum: 1000}
type ratesFile struct {
	Service struct {
		Default     *string           `yaml:"default"`
		Departments map[string]string `yaml:"departments"`
	} `yaml:"service"`
	Lito struct {
		Default     *litoRuleFile           `yaml:"default"`
		Departments map[string]litoRuleFile `yaml:"departments"`
	} `yaml:"lito"`
}

type litoRuleFile struct {
	Ligerbude  string `yaml:"ligerbude"`
	Liegerando string `yaml:"liegerando"`
	MinimumSum string `yaml:"minimum_sum"`
}

var hundred = decimal.NewFromInt(100)

func percent(field, v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s %q: %w", field, v, err)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("invalid %s %q: must not be negative", field, v)
	}
	return d.Div(hundred), nil
}

func (f litoRuleFile) rule(name string) (attendance.LitoRule, error) {
	var (
		r   attendance.LitoRule
		err error
	)
	if r.LigerbudeRate, err = percent(name+".ligerbude", f.Ligerbude); err != nil {
		return r, err
	}
	if r.LiegerandoRate, err = percent(name+".liegerando", f.Liegerando); err != nil {
		return r, err
	}
	if f.MinimumSum != "" {
		if r.MinimumSum, err = decimal.NewFromString(f.MinimumSum); err != nil {
			return r, fmt.Errorf("invalid %s.minimum_sum %q: %w", name, f.MinimumSum, err)
		}
	}
	return r, nil
}

// ParseRates overlays the YAML document onto the built-in rates. Entries
// the document omits keep their defaults.
func ParseRates(data []byte) (attendance.CommissionRates, error) {
	rates := attendance.DefaultCommissionRates()

	var f ratesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return rates, fmt.Errorf("failed to parse commission rates: %w", err)
	}

	if f.Service.Default != nil {
		d, err := percent("service.default", *f.Service.Default)
		if err != nil {
			return rates, err
		}
		rates.ServiceDefault = d
	}
	for dept, v := range f.Service.Departments {
		d, err := percent("service.departments."+dept, v)
		if err != nil {
			return rates, err
		}
		rates.ServiceByDepartment[dept] = d
	}

	if f.Lito.Default != nil {
		r, err := f.Lito.Default.rule("lito.default")
		if err != nil {
			return rates, err
		}
		rates.LitoDefault = r
	}
	for dept, v := range f.Lito.Departments {
		r, err := v.rule("lito.departments." + dept)
		if err != nil {
			return rates, err
		}
		rates.LitoByDepartment[dept] = r
	}
	return rates, nil
}

// LoadRates reads COMMISSION_RATES_FILE. An empty path yields the built-in
// rates.
func (c *Config) LoadRates() (attendance.CommissionRates, error) {
	if c.App.RatesFile == "" {
		return attendance.DefaultCommissionRates(), nil
	}
	data, err := os.ReadFile(c.App.RatesFile)
	if err != nil {
		return attendance.CommissionRates{}, fmt.Errorf("failed to read %s: %w", c.App.RatesFile, err)
	}
	return ParseRates(data)
}
