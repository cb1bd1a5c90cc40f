package datagen

import "time"

// All entities are immutable once produced. "Churned" and "lost" are
// attribute values, never deletions.

type Account struct {
	ID                 string
	Name               string
	Segment            string
	CompanySize        string
	Region             string
	AcquisitionChannel string
	CreatedAt          time.Time
	Status             string
}

type User struct {
	ID        string
	AccountID string
	Email     string
	Role      string
	CreatedAt time.Time
}

type Subscription struct {
	ID        string
	AccountID string
	PlanTier  string
	StartDate time.Time
	EndDate   *time.Time // nil = still active at horizon end
	Status    string
}

type Invoice struct {
	ID             string
	SubscriptionID string
	AccountID      string
	InvoiceDate    time.Time
	Amount         float64
	Status         string
}

type Payment struct {
	ID          string
	InvoiceID   string
	PaymentDate time.Time
	Amount      float64
	Method      string
}

type Deal struct {
	ID             string
	AccountID      string // empty for Closed Lost deals
	DealValue      int
	Stage          string
	CreatedDate    time.Time
	ClosedDate     time.Time
	SalesCycleDays int
	Segment        string
}

type ProductEvent struct {
	ID        string
	UserID    string
	AccountID string
	EventType string
	Timestamp time.Time
}

type SupportTicket struct {
	ID              string
	AccountID       string
	Category        string
	Severity        string
	CreatedAt       time.Time
	ResolvedAt      time.Time
	SLAHours        int
	ResolutionHours float64
	SLABreached     bool
}

type MarketingSpendRecord struct {
	Month          time.Time
	Channel        string
	Spend          float64
	LeadsGenerated int
	CampaignName   string
}

// Dataset is the full output of one generation run, in generation order.
type Dataset struct {
	Accounts       []Account
	Users          []User
	Subscriptions  []Subscription
	Invoices       []Invoice
	Payments       []Payment
	Deals          []Deal
	ProductEvents  []ProductEvent
	SupportTickets []SupportTicket
	MarketingSpend []MarketingSpendRecord
}
