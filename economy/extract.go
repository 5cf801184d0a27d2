package economy

import (
	"github.com/vic2tools/econstat/savefile"
)

// ExtractWorldMarket pulls the commodity pools out of the worldmarket
// section of a parsed save.
func ExtractWorldMarket(doc savefile.Value) WorldMarket {
	wm, _ := doc.Get("worldmarket")

	return WorldMarket{
		Prices:     numericPool(wm, "price_pool"),
		Supply:     numericPool(wm, "supply_pool"),
		ActualSold: numericPool(wm, "actual_sold"),
	}
}

// numericPool reads a goods->number mapping, dropping entries of any other
// shape. The save format guarantees nothing, so every entry is checked.
func numericPool(v savefile.Value, key string) map[string]float64 {
	pool := map[string]float64{}

	block, ok := v.Get(key)
	if !ok || block.Kind() != savefile.KindMapping {
		return pool
	}

	for goods, amount := range block.Mapping().All() {
		switch amount.Kind() {
		case savefile.KindInt, savefile.KindFloat:
			pool[goods] = amount.FloatOr(0)
		}
	}

	return pool
}

// pop holds one population unit read from a province block.
type pop struct {
	size          int64
	money         float64
	bank          float64
	lifeNeeds     float64
	everydayNeeds float64
	luxuryNeeds   float64
	literacy      float64
	consciousness float64
	militancy     float64
}

func popFromBlock(block savefile.Value) (pop, bool) {
	if block.Kind() != savefile.KindMapping {
		return pop{}, false
	}

	return pop{
		size:          field(block, "size").IntOr(0),
		money:         field(block, "money").FloatOr(0),
		bank:          field(block, "bank").FloatOr(0),
		lifeNeeds:     field(block, "life_needs").FloatOr(0),
		everydayNeeds: field(block, "everyday_needs").FloatOr(0),
		luxuryNeeds:   field(block, "luxury_needs").FloatOr(0),
		literacy:      field(block, "literacy").FloatOr(0),
		consciousness: field(block, "con").FloatOr(0),
		militancy:     field(block, "mil").FloatOr(0),
	}, true
}

// ExtractFactory reads one state_buildings block. Wages are stored under
// pops_paychecks; employment sits in a doubly nested employees list keyed
// by pop type ID.
func ExtractFactory(block savefile.Value) Factory {
	f := Factory{
		Name:             field(block, "building").TextOr(""),
		Level:            field(block, "level").IntOr(0),
		Money:            field(block, "money").FloatOr(0),
		LastIncome:       field(block, "last_income").FloatOr(0),
		LastSpending:     field(block, "last_spending").FloatOr(0),
		WagesPaid:        field(block, "pops_paychecks").FloatOr(0),
		UnprofitableDays: field(block, "unprofitable_days").IntOr(0),
		Subsidised:       field(block, "subsidised").BoolOr(false),
		Produces:         field(block, "produces").FloatOr(0),
	}

	for _, emp := range employees(block) {
		popID, _ := emp.Get("province_pop_id")
		count, _ := emp.Get("count")

		typeID := int64(-1)
		if t, ok := popID.Get("type"); ok {
			typeID = t.IntOr(-1)
		}

		switch typeID {
		case popClerks, popClerksAlt:
			f.EmployedClerks += count.IntOr(0)
		case popCraftsmen:
			f.EmployedCraftsmen += count.IntOr(0)
		}
	}

	return f
}

// ExtractRGO reads a province's rgo block.
func ExtractRGO(block savefile.Value) RGO {
	goodsType, _ := block.Get("goods_type")
	lastIncome, _ := block.Get("last_income")

	rgo := RGO{
		GoodsType:  goodsType.TextOr(""),
		LastIncome: lastIncome.FloatOr(0),
	}

	for _, emp := range employees(block) {
		count, _ := emp.Get("count")
		rgo.TotalEmployed += count.IntOr(0)
	}

	return rgo
}

// employees walks employment={ employees={ ... } } and returns the worker
// entries, tolerating a single mapping where a list is usual.
func employees(block savefile.Value) []savefile.Value {
	employment, ok := block.Get("employment")
	if !ok {
		return nil
	}

	list, ok := employment.Get("employees")
	if !ok {
		return nil
	}

	return blocks(list)
}

// ExtractState reads a state block with all its factories.
func ExtractState(block savefile.Value) State {
	state := State{}

	if provinces, ok := block.Get("provinces"); ok {
		for _, p := range provinces.Sequence() {
			if p.Kind() == savefile.KindInt {
				state.Provinces = append(state.Provinces, p.Int())
			}
		}
	}

	isColonial, _ := block.Get("is_colonial")
	state.IsColonial = isColonial.IntOr(0)

	savings, _ := block.Get("savings")
	state.Savings = savings.FloatOr(0)

	for _, building := range blocks(field(block, "state_buildings")) {
		if _, ok := building.Get("building"); !ok {
			continue
		}

		factory := ExtractFactory(building)
		state.Factories = append(state.Factories, factory)
		state.TotalFactoryEmployment += factory.EmployedCraftsmen + factory.EmployedClerks
		state.TotalFactoryIncome += factory.LastIncome
	}

	return state
}

// ExtractCountry reads one country block plus the pop and RGO data of its
// owned provinces, and computes the population-weighted averages.
func ExtractCountry(tag string, block savefile.Value, provinces map[int64]savefile.Value) Country {
	country := Country{
		Tag:       tag,
		Treasury:  field(block, "money").FloatOr(0),
		Prestige:  field(block, "prestige").FloatOr(0),
		Infamy:    field(block, "badboy").FloatOr(0), // infamy is stored as badboy
		TaxBase:   field(block, "tax_base").FloatOr(0),
		Civilized: field(block, "civilized").BoolOr(true),
	}

	if bank, ok := block.Get("bank"); ok {
		money, _ := bank.Get("money")
		lent, _ := bank.Get("money_lent")
		country.BankReserves = money.FloatOr(0)
		country.BankMoneyLent = lent.FloatOr(0)
	}

	country.RichTaxRate, country.RichTaxIncome = taxBracket(block, "rich_tax")
	country.MiddleTaxRate, country.MiddleTaxIncome = taxBracket(block, "middle_tax")
	country.PoorTaxRate, country.PoorTaxIncome = taxBracket(block, "poor_tax")
	country.TotalTaxIncome = country.RichTaxIncome + country.MiddleTaxIncome + country.PoorTaxIncome

	country.EducationSpending = spendingSlider(block, "education_spending")
	country.MilitarySpending = spendingSlider(block, "military_spending")
	country.SocialSpending = spendingSlider(block, "social_spending")

	for _, stateBlock := range blocks(field(block, "state")) {
		state := ExtractState(stateBlock)
		country.States = append(country.States, state)
		country.TotalFactoryEmployment += state.TotalFactoryEmployment
		country.TotalFactoryIncome += state.TotalFactoryIncome

		for _, factory := range state.Factories {
			country.TotalFactoryCount++
			country.TotalFactoryLevels += factory.Level
		}
	}

	pops := PopStats{
		PopulationByType: map[string]int64{},
		MoneyByType:      map[string]float64{},
	}

	var weightedLife, weightedEveryday, weightedLuxury float64

	var weightedLiteracy, weightedCon, weightedMil float64

	for _, provBlock := range provinces {
		owner, _ := provBlock.Get("owner")
		if owner.TextOr("") != tag {
			continue
		}

		if rgoBlock, ok := provBlock.Get("rgo"); ok && rgoBlock.Kind() == savefile.KindMapping {
			rgo := ExtractRGO(rgoBlock)
			country.TotalRGOIncome += rgo.LastIncome
			country.TotalRGOEmployment += rgo.TotalEmployed
		}

		for _, popType := range popTypeNames {
			for _, popBlock := range blocks(field(provBlock, popType)) {
				p, ok := popFromBlock(popBlock)
				if !ok {
					continue
				}

				pops.TotalPopulation += p.size
				pops.PopulationByType[popType] += p.size
				pops.TotalMoney += p.money
				pops.TotalBankSavings += p.bank
				pops.MoneyByType[popType] += p.money

				size := float64(p.size)
				weightedLife += p.lifeNeeds * size
				weightedEveryday += p.everydayNeeds * size
				weightedLuxury += p.luxuryNeeds * size
				weightedLiteracy += p.literacy * size
				weightedCon += p.consciousness * size
				weightedMil += p.militancy * size
			}
		}
	}

	if pops.TotalPopulation > 0 {
		total := float64(pops.TotalPopulation)
		pops.AvgLifeNeeds = weightedLife / total
		pops.AvgEverydayNeeds = weightedEveryday / total
		pops.AvgLuxuryNeeds = weightedLuxury / total
		pops.AvgLiteracy = weightedLiteracy / total
		pops.AvgConsciousness = weightedCon / total
		pops.AvgMilitancy = weightedMil / total
	}

	// Factory employment approximates craftsmen, RGO employment labourers.
	pops.EmployedCraftsmen = country.TotalFactoryEmployment
	pops.EmployedLabourers = country.TotalRGOEmployment

	country.Pops = pops

	return country
}

func taxBracket(block savefile.Value, key string) (rate, income float64) {
	bracket, ok := block.Get(key)
	if !ok {
		return 0, 0
	}

	current, _ := bracket.Get("current")
	total, _ := bracket.Get("total")

	return current.FloatOr(0), total.FloatOr(0)
}

func spendingSlider(block savefile.Value, key string) float64 {
	slider, ok := block.Get(key)
	if !ok {
		return 0
	}

	settings, _ := slider.Get("settings")

	return settings.FloatOr(0)
}

// blocks normalizes "a single mapping or a sequence of them": repeated keys
// come back from the parser as Sequences, single occurrences as Mappings.
func blocks(v savefile.Value) []savefile.Value {
	switch v.Kind() {
	case savefile.KindMapping:
		return []savefile.Value{v}
	case savefile.KindSequence:
		return v.Sequence()
	default:
		return nil
	}
}

// field reads a key from a block, returning the zero Value when the block
// is not a mapping or the key is absent.
func field(block savefile.Value, key string) savefile.Value {
	v, _ := block.Get(key)

	return v
}
