package datagen

// Fixed constants of the dataset design. These are not runtime configuration:
// the only tunables are the seed, the horizon, and the account count. The
// sampling weights below are the single source of truth the tests assert
// against.

var (
	Segments       = []string{"Enterprise", "Mid-Market", "SMB"}
	SegmentWeights = []float64{0.15, 0.35, 0.50}

	CompanySizes       = []string{"1-50", "51-200", "201-1000", "1000+"}
	CompanySizeWeights = []float64{0.40, 0.30, 0.20, 0.10}

	Regions = []string{"North America", "EMEA", "APAC", "LATAM"}

	// MarketingChannels doubles as the account acquisition-channel set so
	// downstream CAC attribution joins line up.
	MarketingChannels = []string{"Google Ads", "LinkedIn", "Content Marketing", "Events", "Referral"}

	UserRoles       = []string{"Admin", "User", "Viewer"}
	UserRoleWeights = []float64{0.20, 0.60, 0.20}

	PlanTiers       = []string{"Starter", "Professional", "Business", "Enterprise"}
	PlanTierWeights = []float64{0.30, 0.40, 0.20, 0.10}

	SupportCategories = []string{"Technical", "Billing", "Feature Request", "Bug Report"}

	Severities      = []string{"Low", "Medium", "High", "Critical"}
	SeverityWeights = []float64{0.50, 0.30, 0.15, 0.05}

	PaymentMethods = []string{"Credit Card", "ACH", "Wire Transfer"}
)

// PlanBaseRate is the monthly base rate per plan tier.
var PlanBaseRate = map[string]float64{
	"Starter":      99,
	"Professional": 299,
	"Business":     799,
	"Enterprise":   2499,
}

// SLAHoursBySeverity maps ticket severity to its resolution target.
var SLAHoursBySeverity = map[string]int{
	"Low":      48,
	"Medium":   24,
	"High":     8,
	"Critical": 2,
}

// ChannelBaseSpend is the monthly base marketing spend per channel.
var ChannelBaseSpend = map[string]float64{
	"Google Ads":        25000,
	"LinkedIn":          18000,
	"Content Marketing": 12000,
	"Events":            30000,
	"Referral":          5000,
}

// Deal value ranges by segment for Closed Won deals.
var DealValueRange = map[string][2]int{
	"Enterprise": {50000, 150000},
	"Mid-Market": {15000, 50000},
	"SMB":        {3000, 15000},
}

const (
	AvgUsersPerAccount = 8.0
	ChurnRate          = 0.15
	ExpansionRate      = 0.05
	ExpansionUplift    = 1.2
	ActivationRate     = 0.85
	WeeklyActiveRate   = 0.70
	LostDealRatio      = 0.30
	Q4SpendUplift      = 1.3
)
