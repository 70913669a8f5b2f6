package config

import (
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v2"
)

var Coop *CoopSettings

// CoopSettings are the cooperative-level settings loaded from config/coop.yml.
type CoopSettings struct {
	Cooperative struct {
		Name           string `yaml:"name"`
		CurrencySymbol string `yaml:"currency_symbol"`
	} `yaml:"cooperative"`
	Liquidation struct {
		PeriodYears int `yaml:"period_years"`
	} `yaml:"liquidation"`
	Receipts struct {
		Series string `yaml:"series"`
	} `yaml:"receipts"`
}

func defaultSettings() *CoopSettings {
	s := &CoopSettings{}
	s.Cooperative.Name = "Cooperativa Estudiantil"
	s.Cooperative.CurrencySymbol = "₡"
	s.Liquidation.PeriodYears = 6
	s.Receipts.Series = "LIQ"

	return s
}

func LoadSettings() error {
	path := os.Getenv("COOP_SETTINGS")
	if len(path) == 0 {
		path = "config/coop.yml"
	}

	buf, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			Coop = defaultSettings()
			return nil
		}
		return err
	}

	s := defaultSettings()
	if err := yaml.Unmarshal(buf, s); err != nil {
		return err
	}

	if s.Liquidation.PeriodYears <= 0 {
		s.Liquidation.PeriodYears = 6
	}

	Coop = s

	return nil
}
