package habitat

// Totals is the running fold target for one aggregation pass. It is owned by
// a single computation and never shared.
type Totals struct {
	Crew                   float64            `json:"crew"`
	BaseMassTons           float64            `json:"baseMass_tons"`
	Power                  float64            `json:"power"`
	IncomeMoney            float64            `json:"incomeMoney_month"`
	IncomeInfluence        float64            `json:"incomeInfluence_month"`
	IncomeOps              float64            `json:"incomeOps_month"`
	IncomeResearch         float64            `json:"incomeResearch_month"`
	IncomeProjects         float64            `json:"incomeProjects"`
	MissionControl         float64            `json:"missionControl"`
	SupportMaterials       ResourceMap        `json:"supportMaterials_month"`
	IncomeAntimatter       float64            `json:"incomeAntimatter_month"`
	AllowsResupply         bool               `json:"allowsResupply"`
	CanFoundHabs           bool               `json:"CanFoundHabs"`
	AllowsShipConstruction bool               `json:"allowsShipConstruction"`
	SpaceCombatValue       float64            `json:"spaceCombatValue"`
	TechBonuses            map[string]float64 `json:"techBonuses"`
	LeoBonuses             map[string]float64 `json:"leoBonuses"`
	WeightedBuildMaterials ResourceMap        `json:"weightedBuildMaterials"`
}

// NewTotals returns zeroed totals with every material resource present
func NewTotals() *Totals {
	return &Totals{
		SupportMaterials:       NewResourceMap(),
		TechBonuses:            make(map[string]float64),
		LeoBonuses:             make(map[string]float64),
		WeightedBuildMaterials: NewResourceMap(),
	}
}

// NetMoney is money income net of money upkeep
func (t *Totals) NetMoney() float64 {
	return t.IncomeMoney - t.SupportMaterials.Get(Money)
}
