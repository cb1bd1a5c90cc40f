package datagen

import (
	"fmt"
	"math"
	"time"
)

// generateProductEvents models the activation funnel: 85% of users activate
// 1-14 days after creation, then emit weekly_active events at a constant 70%
// per elapsed week until the horizon. Retention decay is not simulated; only
// the available week range shrinks near the horizon.
func (g *Generator) generateProductEvents(users []User) []ProductEvent {
	var events []ProductEvent
	num := 0

	for _, user := range users {
		if !g.rng.Chance(ActivationRate) {
			continue
		}

		activation := user.CreatedAt.AddDate(0, 0, g.rng.IntBetween(1, 14))
		num++
		events = append(events, ProductEvent{
			ID:        fmt.Sprintf("EVT%08d", num),
			UserID:    user.ID,
			AccountID: user.AccountID,
			EventType: "activation",
			Timestamp: activation,
		})

		weeks := daysBetween(activation, g.params.HorizonEnd) / 7
		for w := 0; w < weeks; w++ {
			if !g.rng.Chance(WeeklyActiveRate) {
				continue
			}
			num++
			events = append(events, ProductEvent{
				ID:        fmt.Sprintf("EVT%08d", num),
				UserID:    user.ID,
				AccountID: user.AccountID,
				EventType: "weekly_active",
				Timestamp: activation.AddDate(0, 0, 7*w),
			})
		}
	}

	return events
}

// generateSupportTickets emits 1-20 tickets per account. Resolution time is
// the severity SLA scaled by U(0.5, 1.5), rounded to a tenth of an hour; the
// breach flag and resolved_at are derived from the rounded value so the
// stored row is always internally consistent.
func (g *Generator) generateSupportTickets(accounts []Account) []SupportTicket {
	var tickets []SupportTicket
	num := 0

	for _, account := range accounts {
		count := g.rng.IntBetween(1, 20)

		for i := 0; i < count; i++ {
			createdAt := account.CreatedAt.AddDate(0, 0,
				g.rng.IntBetween(0, daysBetween(account.CreatedAt, g.params.HorizonEnd)))

			severity := g.rng.WeightedChoice(Severities, SeverityWeights)
			slaHours := SLAHoursBySeverity[severity]
			resolution := math.Round(float64(slaHours)*g.rng.FloatBetween(0.5, 1.5)*10) / 10

			num++
			tickets = append(tickets, SupportTicket{
				ID:              fmt.Sprintf("TKT%06d", num),
				AccountID:       account.ID,
				Category:        g.rng.Choice(SupportCategories),
				Severity:        severity,
				CreatedAt:       createdAt,
				ResolvedAt:      createdAt.Add(time.Duration(resolution * float64(time.Hour))),
				SLAHours:        slaHours,
				ResolutionHours: resolution,
				SLABreached:     resolution > float64(slaHours),
			})
		}
	}

	return tickets
}

// generateMarketingSpend is independent of the entity graph: one record per
// horizon month per channel, with a Q4 uplift and noisy cost-per-lead. The
// channel set matches account acquisition channels exactly so attribution
// joins stay computable downstream.
func (g *Generator) generateMarketingSpend() []MarketingSpendRecord {
	var records []MarketingSpendRecord

	for _, month := range MonthStartsWithin(g.params.HorizonStart, g.params.HorizonEnd) {
		for _, channel := range MarketingChannels {
			base := ChannelBaseSpend[channel]
			if isQ4(month) {
				base *= Q4SpendUplift
			}

			spend := round2(base * g.rng.FloatBetween(0.8, 1.2))
			leads := int(spend / float64(g.rng.IntBetween(80, 150)))

			records = append(records, MarketingSpendRecord{
				Month:          month,
				Channel:        channel,
				Spend:          spend,
				LeadsGenerated: leads,
				CampaignName:   fmt.Sprintf("%s %s", channel, month.Format("Jan 2006")),
			})
		}
	}

	return records
}
