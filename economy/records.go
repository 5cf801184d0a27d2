package economy

// WorldMarket holds the global commodity market pools: price, supply and
// actually-sold quantities per goods type.
type WorldMarket struct {
	Prices     map[string]float64 `json:"prices"`
	Supply     map[string]float64 `json:"supply"`
	ActualSold map[string]float64 `json:"actual_sold"`
}

// PopStats aggregates population data across a country or the whole world.
// The avg_* fields are population-weighted averages.
type PopStats struct {
	TotalPopulation  int64              `json:"total_population"`
	PopulationByType map[string]int64   `json:"population_by_type"`
	TotalMoney       float64            `json:"total_money"`
	TotalBankSavings float64            `json:"total_bank_savings"`
	MoneyByType      map[string]float64 `json:"money_by_type"`

	AvgLifeNeeds     float64 `json:"avg_life_needs"`
	AvgEverydayNeeds float64 `json:"avg_everyday_needs"`
	AvgLuxuryNeeds   float64 `json:"avg_luxury_needs"`
	AvgLiteracy      float64 `json:"avg_literacy"`
	AvgConsciousness float64 `json:"avg_consciousness"`
	AvgMilitancy     float64 `json:"avg_militancy"`

	EmployedCraftsmen int64 `json:"employed_craftsmen"`
	EmployedClerks    int64 `json:"employed_clerks"`
	EmployedLabourers int64 `json:"employed_labourers"`
	EmployedFarmers   int64 `json:"employed_farmers"`
}

// Factory is one state building block: an industrial production site
// employing craftsmen and clerks.
type Factory struct {
	Name             string  `json:"name"`
	Level            int64   `json:"level"`
	Money            float64 `json:"money"`
	LastIncome       float64 `json:"last_income"`
	LastSpending     float64 `json:"last_spending"`
	WagesPaid        float64 `json:"wages_paid"`
	UnprofitableDays int64   `json:"unprofitable_days"`
	Subsidised       bool    `json:"subsidised"`
	Produces         float64 `json:"produces"`

	EmployedCraftsmen int64 `json:"employed_craftsmen"`
	EmployedClerks    int64 `json:"employed_clerks"`
}

// State is a group of provinces where factories are built.
type State struct {
	Provinces  []int64   `json:"provinces"`
	IsColonial int64     `json:"is_colonial"`
	Savings    float64   `json:"savings"`
	Factories  []Factory `json:"factories"`

	TotalFactoryEmployment int64   `json:"total_factory_employment"`
	TotalFactoryIncome     float64 `json:"total_factory_income"`
}

// RGO is a province's resource gathering operation: primary production
// such as farming or mining.
type RGO struct {
	GoodsType     string  `json:"goods_type"`
	LastIncome    float64 `json:"last_income"`
	TotalEmployed int64   `json:"total_employed"`
}

// Country holds the full extracted economic picture of one nation.
type Country struct {
	Tag           string  `json:"tag"`
	Treasury      float64 `json:"treasury"`
	BankReserves  float64 `json:"bank_reserves"`
	BankMoneyLent float64 `json:"bank_money_lent"`
	Prestige      float64 `json:"prestige"`
	Infamy        float64 `json:"infamy"`
	TaxBase       float64 `json:"tax_base"`
	Civilized     bool    `json:"civilized"`

	RichTaxRate     float64 `json:"rich_tax_rate"`
	MiddleTaxRate   float64 `json:"middle_tax_rate"`
	PoorTaxRate     float64 `json:"poor_tax_rate"`
	RichTaxIncome   float64 `json:"rich_tax_income"`
	MiddleTaxIncome float64 `json:"middle_tax_income"`
	PoorTaxIncome   float64 `json:"poor_tax_income"`
	TotalTaxIncome  float64 `json:"total_tax_income"`

	EducationSpending float64 `json:"education_spending"`
	MilitarySpending  float64 `json:"military_spending"`
	SocialSpending    float64 `json:"social_spending"`

	Pops   PopStats `json:"population"`
	States []State  `json:"states,omitempty"`

	TotalFactoryCount      int64   `json:"total_factory_count"`
	TotalFactoryLevels     int64   `json:"total_factory_levels"`
	TotalFactoryIncome     float64 `json:"total_factory_income"`
	TotalFactoryEmployment int64   `json:"total_factory_employment"`

	TotalRGOIncome     float64 `json:"total_rgo_income"`
	TotalRGOEmployment int64   `json:"total_rgo_employment"`
}

// Snapshot is everything extracted from one save file: a dated picture of
// the world economy.
type Snapshot struct {
	Date        string             `json:"date"`
	WorldMarket WorldMarket        `json:"world_market"`
	Global      PopStats           `json:"global_statistics"`
	Countries   map[string]Country `json:"countries"`
}
