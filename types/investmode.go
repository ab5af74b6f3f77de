package types

// InvestMode controls how the loan strategy deploys the freed-up cash.
type InvestMode string

const (
	InvestModeLumpSum   InvestMode = "lump_sum"
	InvestModeDCAWeekly InvestMode = "dca_weekly"
)

var ConvertInvestMode = map[string]InvestMode{
	"lump_sum":   InvestModeLumpSum,
	"dca_weekly": InvestModeDCAWeekly,
}

func (m InvestMode) Valid() bool {
	return m == InvestModeLumpSum || m == InvestModeDCAWeekly
}
