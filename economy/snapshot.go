package economy

import (
	"strconv"
	"strings"

	"github.com/vic2tools/econstat/savefile"
)

// rebelTag is the pseudo-country holding rebel units; it is not a real
// economy and is excluded from country extraction.
const rebelTag = "REB"

// BuildSnapshot extracts the complete economic picture from a parsed save.
// Provinces are collected first because pops live in province blocks, not
// country blocks.
func BuildSnapshot(doc savefile.Value) Snapshot {
	snapshot := Snapshot{
		WorldMarket: ExtractWorldMarket(doc),
		Countries:   map[string]Country{},
	}

	date, _ := doc.Get("date")
	snapshot.Date = date.TextOr("")

	root := doc.Mapping()
	if root == nil {
		return snapshot
	}

	provinces := map[int64]savefile.Value{}

	for key, v := range root.All() {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}

		// Only blocks with a name field are provinces; other numeric
		// top-level sections exist.
		if _, ok := v.Get("name"); ok {
			provinces[id] = v
		}
	}

	for key, v := range root.All() {
		if !isCountryTag(key) || v.Kind() != savefile.KindMapping {
			continue
		}

		snapshot.Countries[key] = ExtractCountry(key, v, provinces)
	}

	snapshot.Global = AggregateGlobalPops(snapshot.Countries)

	return snapshot
}

func isCountryTag(key string) bool {
	if len(key) != 3 || key == rebelTag {
		return false
	}

	for i := range 3 {
		if key[i] < 'A' || key[i] > 'Z' {
			return false
		}
	}

	return true
}

// AggregateGlobalPops sums population data across all countries and
// recomputes the averages weighted by each country's population.
func AggregateGlobalPops(countries map[string]Country) PopStats {
	global := PopStats{
		PopulationByType: map[string]int64{},
		MoneyByType:      map[string]float64{},
	}

	var weightedLife, weightedEveryday, weightedLuxury float64

	var weightedLiteracy, weightedCon, weightedMil float64

	for _, country := range countries {
		pops := country.Pops

		global.TotalPopulation += pops.TotalPopulation
		global.TotalMoney += pops.TotalMoney
		global.TotalBankSavings += pops.TotalBankSavings

		for popType, count := range pops.PopulationByType {
			global.PopulationByType[popType] += count
		}

		for popType, money := range pops.MoneyByType {
			global.MoneyByType[popType] += money
		}

		global.EmployedCraftsmen += pops.EmployedCraftsmen
		global.EmployedClerks += pops.EmployedClerks
		global.EmployedLabourers += pops.EmployedLabourers
		global.EmployedFarmers += pops.EmployedFarmers

		size := float64(pops.TotalPopulation)
		weightedLife += pops.AvgLifeNeeds * size
		weightedEveryday += pops.AvgEverydayNeeds * size
		weightedLuxury += pops.AvgLuxuryNeeds * size
		weightedLiteracy += pops.AvgLiteracy * size
		weightedCon += pops.AvgConsciousness * size
		weightedMil += pops.AvgMilitancy * size
	}

	if global.TotalPopulation > 0 {
		total := float64(global.TotalPopulation)
		global.AvgLifeNeeds = weightedLife / total
		global.AvgEverydayNeeds = weightedEveryday / total
		global.AvgLuxuryNeeds = weightedLuxury / total
		global.AvgLiteracy = weightedLiteracy / total
		global.AvgConsciousness = weightedCon / total
		global.AvgMilitancy = weightedMil / total
	}

	return global
}

// ParseGameDate splits a "YYYY.M.D" game date, tolerating surrounding
// quotes. It reports false for anything else.
func ParseGameDate(s string) (year, month, day int, ok bool) {
	parts := strings.Split(strings.Trim(s, `"`), ".")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, false
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, false
	}

	day, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, false
	}

	return year, month, day, true
}
