package datagen

import (
	"fmt"
	"time"
)

// Params is the full configuration surface of a generation run. Everything
// else (weights, rates, channel sets) is a fixed design constant.
type Params struct {
	Seed         int64
	HorizonStart time.Time
	HorizonEnd   time.Time
	Accounts     int
}

func (p Params) Validate() error {
	if p.Accounts <= 0 {
		return fmt.Errorf("account count must be positive, got %d", p.Accounts)
	}
	if !p.HorizonEnd.After(p.HorizonStart) {
		return fmt.Errorf("horizon end %s must be after start %s",
			p.HorizonEnd.Format("2006-01-02"), p.HorizonStart.Format("2006-01-02"))
	}
	return nil
}

// Generator produces one self-consistent dataset. It is single-threaded by
// design: correctness of reproduction depends on drawing from the shared Rand
// in a fixed order (entity type, then record index).
type Generator struct {
	params Params
	rng    *Rand
}

func New(params Params) (*Generator, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generation params: %w", err)
	}
	return &Generator{
		params: params,
		rng:    NewRand(params.Seed),
	}, nil
}

// Generate runs the strict topological pass:
// accounts → users → subscriptions → billing → deals → events → tickets → spend.
// No generator revisits or mutates another's output.
func (g *Generator) Generate() (*Dataset, error) {
	if err := g.params.Validate(); err != nil {
		return nil, err
	}

	ds := &Dataset{}
	ds.Accounts = g.generateAccounts()
	ds.Users = g.generateUsers(ds.Accounts)
	ds.Subscriptions = g.generateSubscriptions(ds.Accounts)
	ds.Invoices, ds.Payments = g.generateBilling(ds.Subscriptions)
	ds.Deals = g.generateDeals(ds.Accounts)
	ds.ProductEvents = g.generateProductEvents(ds.Users)
	ds.SupportTickets = g.generateSupportTickets(ds.Accounts)
	ds.MarketingSpend = g.generateMarketingSpend()
	return ds, nil
}

func (g *Generator) generateAccounts() []Account {
	accounts := make([]Account, 0, g.params.Accounts)

	for i := 0; i < g.params.Accounts; i++ {
		segment := g.rng.WeightedChoice(Segments, SegmentWeights)
		createdAt := g.rng.DateBetween(g.params.HorizonStart, g.params.HorizonEnd)

		// Q4 fiscal rush: pull year-end signups up to 60 days earlier,
		// clamped so created_at never leaves the horizon.
		if isQ4(createdAt) {
			createdAt = createdAt.AddDate(0, 0, -g.rng.IntBetween(0, 60))
			if createdAt.Before(g.params.HorizonStart) {
				createdAt = g.params.HorizonStart
			}
		}

		accounts = append(accounts, Account{
			ID:                 fmt.Sprintf("ACC%05d", i+1),
			Name:               g.rng.companyName(),
			Segment:            segment,
			CompanySize:        g.rng.WeightedChoice(CompanySizes, CompanySizeWeights),
			Region:             g.rng.Choice(Regions),
			AcquisitionChannel: g.rng.Choice(MarketingChannels),
			CreatedAt:          createdAt,
			Status:             "Active",
		})
	}

	return accounts
}

func (g *Generator) generateUsers(accounts []Account) []User {
	var users []User
	userNum := 0

	for _, account := range accounts {
		count := g.rng.Poisson(AvgUsersPerAccount)
		if count < 1 {
			count = 1
		}

		for i := 0; i < count; i++ {
			userNum++
			users = append(users, User{
				ID:        fmt.Sprintf("USR%06d", userNum),
				AccountID: account.ID,
				Email:     g.rng.email(userNum),
				Role:      g.rng.WeightedChoice(UserRoles, UserRoleWeights),
				CreatedAt: account.CreatedAt.AddDate(0, 0, g.rng.IntBetween(0, 30)),
			})
		}
	}

	return users
}

func (g *Generator) generateSubscriptions(accounts []Account) []Subscription {
	subscriptions := make([]Subscription, 0, len(accounts))

	for i, account := range accounts {
		tier := "Enterprise"
		if account.Segment != "Enterprise" {
			tier = g.rng.WeightedChoice(PlanTiers, PlanTierWeights)
		}

		// Churn is an independent 15% coin per account. An end date landing
		// past the horizon is dropped and the subscription reported Active:
		// failures beyond the dataset's horizon are invisible to reporting.
		// Deliberate boundary policy, do not "fix".
		var endDate *time.Time
		status := "Active"
		if g.rng.Chance(ChurnRate) {
			end := account.CreatedAt.AddDate(0, 0, g.rng.IntBetween(90, 400))
			if !end.After(g.params.HorizonEnd) {
				endDate = &end
				status = "Cancelled"
			}
		}

		subscriptions = append(subscriptions, Subscription{
			ID:        fmt.Sprintf("SUB%05d", i+1),
			AccountID: account.ID,
			PlanTier:  tier,
			StartDate: account.CreatedAt,
			EndDate:   endDate,
			Status:    status,
		})
	}

	return subscriptions
}
