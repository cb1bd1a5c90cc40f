package emit

// The output contract: nine tabular datasets with fixed names, files, column
// sets and column kinds. Loader DDL and post-hoc verification both derive
// from this table list, so renaming or reordering a column here is a breaking
// change for every consumer.

type Kind int

const (
	KindText Kind = iota
	KindDate
	KindTimestamp
	KindMoney // two decimal places
	KindFloat // one decimal place
	KindInt
	KindBool
)

type Column struct {
	Name     string
	Kind     Kind
	Nullable bool
}

type Table struct {
	Name    string
	File    string
	Columns []Column
}

func (t Table) Header() []string {
	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Name
	}
	return header
}

// Tables returns the datasets in generation order.
func Tables() []Table {
	return []Table{
		{
			Name: "accounts", File: "accounts.csv",
			Columns: []Column{
				{Name: "account_id", Kind: KindText},
				{Name: "account_name", Kind: KindText},
				{Name: "segment", Kind: KindText},
				{Name: "company_size", Kind: KindText},
				{Name: "region", Kind: KindText},
				{Name: "acquisition_channel", Kind: KindText},
				{Name: "created_at", Kind: KindDate},
				{Name: "status", Kind: KindText},
			},
		},
		{
			Name: "users", File: "users.csv",
			Columns: []Column{
				{Name: "user_id", Kind: KindText},
				{Name: "account_id", Kind: KindText},
				{Name: "email", Kind: KindText},
				{Name: "role", Kind: KindText},
				{Name: "created_at", Kind: KindDate},
			},
		},
		{
			Name: "subscriptions", File: "subscriptions.csv",
			Columns: []Column{
				{Name: "subscription_id", Kind: KindText},
				{Name: "account_id", Kind: KindText},
				{Name: "plan_tier", Kind: KindText},
				{Name: "start_date", Kind: KindDate},
				{Name: "end_date", Kind: KindDate, Nullable: true},
				{Name: "status", Kind: KindText},
			},
		},
		{
			Name: "invoices", File: "invoices.csv",
			Columns: []Column{
				{Name: "invoice_id", Kind: KindText},
				{Name: "subscription_id", Kind: KindText},
				{Name: "account_id", Kind: KindText},
				{Name: "invoice_date", Kind: KindDate},
				{Name: "amount", Kind: KindMoney},
				{Name: "status", Kind: KindText},
			},
		},
		{
			Name: "payments", File: "payments.csv",
			Columns: []Column{
				{Name: "payment_id", Kind: KindText},
				{Name: "invoice_id", Kind: KindText},
				{Name: "payment_date", Kind: KindDate},
				{Name: "amount", Kind: KindMoney},
				{Name: "payment_method", Kind: KindText},
			},
		},
		{
			Name: "crm_deals", File: "crm_deals.csv",
			Columns: []Column{
				{Name: "deal_id", Kind: KindText},
				{Name: "account_id", Kind: KindText, Nullable: true},
				{Name: "deal_value", Kind: KindInt},
				{Name: "stage", Kind: KindText},
				{Name: "created_date", Kind: KindDate},
				{Name: "closed_date", Kind: KindDate},
				{Name: "sales_cycle_days", Kind: KindInt},
				{Name: "segment", Kind: KindText},
			},
		},
		{
			Name: "product_events", File: "product_events.csv",
			Columns: []Column{
				{Name: "event_id", Kind: KindText},
				{Name: "user_id", Kind: KindText},
				{Name: "account_id", Kind: KindText},
				{Name: "event_type", Kind: KindText},
				{Name: "event_timestamp", Kind: KindDate},
			},
		},
		{
			Name: "support_tickets", File: "support_tickets.csv",
			Columns: []Column{
				{Name: "ticket_id", Kind: KindText},
				{Name: "account_id", Kind: KindText},
				{Name: "category", Kind: KindText},
				{Name: "severity", Kind: KindText},
				{Name: "created_at", Kind: KindDate},
				{Name: "resolved_at", Kind: KindTimestamp},
				{Name: "sla_hours", Kind: KindInt},
				{Name: "resolution_hours", Kind: KindFloat},
				{Name: "sla_breached", Kind: KindBool},
			},
		},
		{
			Name: "marketing_spend", File: "marketing_spend.csv",
			Columns: []Column{
				{Name: "month", Kind: KindDate},
				{Name: "channel", Kind: KindText},
				{Name: "spend", Kind: KindMoney},
				{Name: "leads_generated", Kind: KindInt},
				{Name: "campaign_name", Kind: KindText},
			},
		},
	}
}

// TableByName looks a dataset up in the contract.
func TableByName(name string) (Table, bool) {
	for _, t := range Tables() {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}
