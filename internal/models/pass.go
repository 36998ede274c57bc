package models

// Known pass identifiers. The comparison engine keys its cost semantics on
// these; a pass with an unlisted id is costed at its flat monthly price.
const (
	PassNoPass          = "no-pass"
	PassBusUnlimited    = "bus-unlimited"
	PassRailUnlimited   = "rail-unlimited"
	PassHybridUnlimited = "hybrid-unlimited"
)

// ConcessionPass is one entry of the configured pass catalog.
type ConcessionPass struct {
	ID           string  `mapstructure:"id" json:"id"`
	Label        string  `mapstructure:"label" json:"label"`
	MonthlyPrice float64 `mapstructure:"monthly_price" json:"monthlyPrice"`
	Description  string  `mapstructure:"description" json:"description"`
}

// FareTotals aggregates a period's fares three ways for pass comparison:
// everything, everything except bus fares, and everything except rail fares.
// All three are 2dp currency amounts.
type FareTotals struct {
	TotalFareNoPass       float64 `json:"totalFareNoPass"`
	TotalFareExcludingBus float64 `json:"totalFareExcludingBus"`
	TotalFareExcludingMrt float64 `json:"totalFareExcludingMrt"`
}

// PassComparisonResult is the costed outcome for one pass. Savings is
// relative to the no-pass baseline and fixed at zero for the baseline itself.
type PassComparisonResult struct {
	Pass          ConcessionPass `json:"pass"`
	Cost          float64        `json:"cost"`
	Savings       float64        `json:"savings"`
	IsSavingMoney bool           `json:"isSavingMoney"`
}
