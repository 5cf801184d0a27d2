package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/vic2tools/econstat/economy"
)

// writeTimeSeries splits the full dataset into focused files: world market
// series, global statistics, per-country series and CSV summaries.
func (p *Processor) writeTimeSeries(snapshots []economy.Snapshot) error {
	out := p.opts.OutputDir

	marketSeries := []struct {
		name string
		pick func(economy.WorldMarket) map[string]float64
	}{
		{name: "world_market_prices.json", pick: func(m economy.WorldMarket) map[string]float64 { return m.Prices }},
		{name: "world_market_supply.json", pick: func(m economy.WorldMarket) map[string]float64 { return m.Supply }},
		{name: "world_market_sold.json", pick: func(m economy.WorldMarket) map[string]float64 { return m.ActualSold }},
	}

	for _, series := range marketSeries {
		entries := make([]map[string]any, 0, len(snapshots))

		for _, s := range snapshots {
			entry := map[string]any{"date": s.Date}

			for goods, amount := range series.pick(s.WorldMarket) {
				entry[goods] = amount
			}

			entries = append(entries, entry)
		}

		if err := writeJSON(filepath.Join(out, series.name), entries); err != nil {
			return err
		}
	}

	globalSeries := make([]globalEntry, 0, len(snapshots))
	popTypeSeries := make([]map[string]any, 0, len(snapshots))

	for _, s := range snapshots {
		globalSeries = append(globalSeries, newGlobalEntry(s))

		byType := map[string]any{"date": s.Date}
		for popType, count := range s.Global.PopulationByType {
			byType[popType] = count
		}

		popTypeSeries = append(popTypeSeries, byType)
	}

	if err := writeJSON(filepath.Join(out, "global_statistics.json"), globalSeries); err != nil {
		return err
	}

	if err := writeJSON(filepath.Join(out, "global_population_by_type.json"), popTypeSeries); err != nil {
		return err
	}

	if err := p.writeCountrySeries(snapshots); err != nil {
		return err
	}

	if err := p.writeGlobalCSV(snapshots); err != nil {
		return err
	}

	return p.writeMajorCountriesCSV(snapshots)
}

// globalEntry is one dated row of world statistics.
type globalEntry struct {
	Date             string  `json:"date"`
	TotalPopulation  int64   `json:"total_population"`
	TotalMoney       float64 `json:"total_pop_money"`
	TotalBankSavings float64 `json:"total_pop_bank_savings"`
	AvgLifeNeeds     float64 `json:"avg_life_needs"`
	AvgEverydayNeeds float64 `json:"avg_everyday_needs"`
	AvgLuxuryNeeds   float64 `json:"avg_luxury_needs"`
	AvgLiteracy      float64 `json:"avg_literacy"`
	AvgConsciousness float64 `json:"avg_consciousness"`
	AvgMilitancy     float64 `json:"avg_militancy"`
}

func newGlobalEntry(s economy.Snapshot) globalEntry {
	return globalEntry{
		Date:             s.Date,
		TotalPopulation:  s.Global.TotalPopulation,
		TotalMoney:       s.Global.TotalMoney,
		TotalBankSavings: s.Global.TotalBankSavings,
		AvgLifeNeeds:     s.Global.AvgLifeNeeds,
		AvgEverydayNeeds: s.Global.AvgEverydayNeeds,
		AvgLuxuryNeeds:   s.Global.AvgLuxuryNeeds,
		AvgLiteracy:      s.Global.AvgLiteracy,
		AvgConsciousness: s.Global.AvgConsciousness,
		AvgMilitancy:     s.Global.AvgMilitancy,
	}
}

// countryEntry is one dated row of a single country's series. Countries
// appear and disappear over a campaign; rows for dates where the country
// does not exist carry exists=false and nothing else.
type countryEntry struct {
	Date   string `json:"date"`
	Exists bool   `json:"exists"`

	Treasury               float64 `json:"treasury,omitempty"`
	BankReserves           float64 `json:"bank_reserves,omitempty"`
	Prestige               float64 `json:"prestige,omitempty"`
	Infamy                 float64 `json:"infamy,omitempty"`
	TotalTaxIncome         float64 `json:"total_tax_income,omitempty"`
	TotalFactoryCount      int64   `json:"total_factory_count,omitempty"`
	TotalFactoryLevels     int64   `json:"total_factory_levels,omitempty"`
	TotalFactoryIncome     float64 `json:"total_factory_income,omitempty"`
	TotalFactoryEmployment int64   `json:"total_factory_employment,omitempty"`
	TotalRGOIncome         float64 `json:"total_rgo_income,omitempty"`
	TotalRGOEmployment     int64   `json:"total_rgo_employment,omitempty"`
	Population             int64   `json:"population_total,omitempty"`
	PopMoney               float64 `json:"pop_money,omitempty"`
	PopBankSavings         float64 `json:"pop_bank_savings,omitempty"`
	AvgLifeNeeds           float64 `json:"avg_life_needs,omitempty"`
	AvgEverydayNeeds       float64 `json:"avg_everyday_needs,omitempty"`
	AvgLiteracy            float64 `json:"avg_literacy,omitempty"`
}

func (p *Processor) writeCountrySeries(snapshots []economy.Snapshot) error {
	countriesDir := filepath.Join(p.opts.OutputDir, "countries")
	if err := os.MkdirAll(countriesDir, 0o755); err != nil {
		return fmt.Errorf("creating countries dir: %w", err)
	}

	tags := map[string]struct{}{}

	for _, s := range snapshots {
		for tag := range s.Countries {
			tags[tag] = struct{}{}
		}
	}

	for tag := range tags {
		series := make([]countryEntry, 0, len(snapshots))
		hasData := false

		for _, s := range snapshots {
			country, ok := s.Countries[tag]
			if !ok {
				series = append(series, countryEntry{Date: s.Date, Exists: false})

				continue
			}

			hasData = true
			series = append(series, countryEntry{
				Date:                   s.Date,
				Exists:                 true,
				Treasury:               country.Treasury,
				BankReserves:           country.BankReserves,
				Prestige:               country.Prestige,
				Infamy:                 country.Infamy,
				TotalTaxIncome:         country.TotalTaxIncome,
				TotalFactoryCount:      country.TotalFactoryCount,
				TotalFactoryLevels:     country.TotalFactoryLevels,
				TotalFactoryIncome:     country.TotalFactoryIncome,
				TotalFactoryEmployment: country.TotalFactoryEmployment,
				TotalRGOIncome:         country.TotalRGOIncome,
				TotalRGOEmployment:     country.TotalRGOEmployment,
				Population:             country.Pops.TotalPopulation,
				PopMoney:               country.Pops.TotalMoney,
				PopBankSavings:         country.Pops.TotalBankSavings,
				AvgLifeNeeds:           country.Pops.AvgLifeNeeds,
				AvgEverydayNeeds:       country.Pops.AvgEverydayNeeds,
				AvgLiteracy:            country.Pops.AvgLiteracy,
			})
		}

		if !hasData {
			continue
		}

		if err := writeJSON(filepath.Join(countriesDir, tag+".json"), series); err != nil {
			return err
		}
	}

	return nil
}

func (p *Processor) writeGlobalCSV(snapshots []economy.Snapshot) error {
	file, err := os.Create(filepath.Join(p.opts.OutputDir, "global_summary.csv"))
	if err != nil {
		return fmt.Errorf("creating global summary: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)

	header := []string{
		"date", "total_population", "total_pop_money", "total_pop_bank_savings",
		"avg_life_needs", "avg_everyday_needs", "avg_luxury_needs",
		"avg_literacy", "avg_consciousness", "avg_militancy",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing global summary: %w", err)
	}

	for _, s := range snapshots {
		row := []string{
			s.Date,
			strconv.FormatInt(s.Global.TotalPopulation, 10),
			formatFloat(s.Global.TotalMoney),
			formatFloat(s.Global.TotalBankSavings),
			formatFloat(s.Global.AvgLifeNeeds),
			formatFloat(s.Global.AvgEverydayNeeds),
			formatFloat(s.Global.AvgLuxuryNeeds),
			formatFloat(s.Global.AvgLiteracy),
			formatFloat(s.Global.AvgConsciousness),
			formatFloat(s.Global.AvgMilitancy),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing global summary: %w", err)
		}
	}

	w.Flush()

	return w.Error()
}

// writeMajorCountriesCSV summarizes the top countries by population at the
// final snapshot, one column group per country.
func (p *Processor) writeMajorCountriesCSV(snapshots []economy.Snapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	final := snapshots[len(snapshots)-1]

	majors := make([]string, 0, len(final.Countries))
	for tag := range final.Countries {
		majors = append(majors, tag)
	}

	sort.Slice(majors, func(i, j int) bool {
		a := final.Countries[majors[i]]
		b := final.Countries[majors[j]]

		if a.Pops.TotalPopulation != b.Pops.TotalPopulation {
			return a.Pops.TotalPopulation > b.Pops.TotalPopulation
		}

		return majors[i] < majors[j]
	})

	if len(majors) > p.opts.MajorCountries {
		majors = majors[:p.opts.MajorCountries]
	}

	file, err := os.Create(filepath.Join(p.opts.OutputDir, "major_countries_summary.csv"))
	if err != nil {
		return fmt.Errorf("creating major countries summary: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)

	header := []string{"date"}
	for _, tag := range majors {
		header = append(header,
			tag+"_treasury", tag+"_prestige", tag+"_population",
			tag+"_factory_count", tag+"_factory_income", tag+"_rgo_income",
			tag+"_pop_money",
		)
	}

	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing major countries summary: %w", err)
	}

	for _, s := range snapshots {
		row := []string{s.Date}

		for _, tag := range majors {
			country, ok := s.Countries[tag]
			if !ok {
				row = append(row, "0", "0", "0", "0", "0", "0", "0")

				continue
			}

			row = append(row,
				formatFloat(country.Treasury),
				formatFloat(country.Prestige),
				strconv.FormatInt(country.Pops.TotalPopulation, 10),
				strconv.FormatInt(country.TotalFactoryCount, 10),
				formatFloat(country.TotalFactoryIncome),
				formatFloat(country.TotalRGOIncome),
				formatFloat(country.Pops.TotalMoney),
			)
		}

		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing major countries summary: %w", err)
		}
	}

	w.Flush()

	return w.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}

	return nil
}
