package datagen

import (
	"fmt"
	"math"
)

// generateBilling walks calendar months for each subscription and emits one
// invoice per month with a paired payment. Invoice and payment counts are
// always equal and id pairs are 1:1 and never reused.
func (g *Generator) generateBilling(subscriptions []Subscription) ([]Invoice, []Payment) {
	var invoices []Invoice
	var payments []Payment
	num := 0

	for _, sub := range subscriptions {
		end := g.params.HorizonEnd
		if sub.EndDate != nil {
			end = *sub.EndDate
		}

		for _, month := range MonthStartsWithin(sub.StartDate, end) {
			amount := PlanBaseRate[sub.PlanTier]
			if g.rng.Chance(ExpansionRate) {
				amount = round2(amount * ExpansionUplift)
			}

			num++
			invoiceID := fmt.Sprintf("INV%06d", num)

			invoices = append(invoices, Invoice{
				ID:             invoiceID,
				SubscriptionID: sub.ID,
				AccountID:      sub.AccountID,
				InvoiceDate:    month,
				Amount:         amount,
				Status:         "Paid",
			})
			payments = append(payments, Payment{
				ID:          fmt.Sprintf("PAY%06d", num),
				InvoiceID:   invoiceID,
				PaymentDate: month.AddDate(0, 0, g.rng.IntBetween(1, 10)),
				Amount:      amount,
				Method:      g.rng.Choice(PaymentMethods),
			})
		}
	}

	return invoices, payments
}

// generateDeals emits two independent streams: one Closed Won deal per
// account, and a pool of unattached Closed Lost deals sized at 30% of the
// account count. The streams intentionally have different sales-cycle
// distributions.
func (g *Generator) generateDeals(accounts []Account) []Deal {
	var deals []Deal
	num := 0

	for _, account := range accounts {
		valueRange := DealValueRange[account.Segment]
		created := account.CreatedAt.AddDate(0, 0, -g.rng.IntBetween(30, 120))

		num++
		deals = append(deals, Deal{
			ID:             fmt.Sprintf("DEAL%05d", num),
			AccountID:      account.ID,
			DealValue:      g.rng.IntBetween(valueRange[0], valueRange[1]),
			Stage:          "Closed Won",
			CreatedDate:    created,
			ClosedDate:     account.CreatedAt,
			SalesCycleDays: daysBetween(created, account.CreatedAt),
			Segment:        account.Segment,
		})
	}

	lost := int(float64(g.params.Accounts) * LostDealRatio)
	for i := 0; i < lost; i++ {
		segment := g.rng.WeightedChoice(Segments, SegmentWeights)
		created := g.rng.DateBetween(g.params.HorizonStart, g.params.HorizonEnd)
		cycle := g.rng.IntBetween(20, 90)

		num++
		deals = append(deals, Deal{
			ID:             fmt.Sprintf("DEAL%05d", num),
			AccountID:      "",
			DealValue:      g.rng.IntBetween(5000, 100000),
			Stage:          "Closed Lost",
			CreatedDate:    created,
			ClosedDate:     created.AddDate(0, 0, cycle),
			SalesCycleDays: cycle,
			Segment:        segment,
		})
	}

	return deals
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
