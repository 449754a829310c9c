package tariff

// Tariff is a subscription plan.
type Tariff struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       int      `json:"price"`
	Currency    string   `json:"currency"`
	Period      string   `json:"period"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Popular     bool     `json:"popular"`
	Recommended bool     `json:"recommended"`
}

// Discounts are percentages applied to prepaid periods.
type Discounts struct {
	Quarterly int `json:"quarterly"`
	Yearly    int `json:"yearly"`
}

// Data is the tariffs document as stored on disk.
type Data struct {
	Tariffs     []Tariff  `json:"tariffs"`
	Discounts   Discounts `json:"discounts"`
	TrialPeriod int       `json:"trial_period"`
}

// Billing periods accepted by CalculatePrice.
const (
	PeriodMonthly   = "monthly"
	PeriodQuarterly = "quarterly"
	PeriodYearly    = "yearly"
)

// PriceCalculation is the cost of a tariff over one billing period.
type PriceCalculation struct {
	Period     string  `json:"period"`
	Price      int     `json:"price"`
	Discount   int     `json:"discount"`
	FinalPrice float64 `json:"final_price"`
}
