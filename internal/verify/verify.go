package verify

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Metrik-Labs-HQ/gtmforge/internal/datagen"
	"github.com/Metrik-Labs-HQ/gtmforge/internal/emit"
)

// Run re-reads an emitted dataset and checks every property that is decidable
// from the files alone: headers, manifest row counts, referential integrity,
// invoice/payment pairing, per-subscription invoice cardinality, and SLA flag
// consistency. It returns the list of violations; an error means the dataset
// could not be read at all.
func Run(dir string) ([]string, error) {
	manifest, err := emit.ReadManifest(dir)
	if err != nil {
		return nil, err
	}

	tables := make(map[string]*table)
	var violations []string

	for _, spec := range emit.Tables() {
		t, err := readTable(dir, spec)
		if err != nil {
			return nil, err
		}
		tables[spec.Name] = t

		for _, m := range manifest.Tables {
			if m.Name == spec.Name && m.Rows != len(t.rows) {
				violations = append(violations,
					fmt.Sprintf("%s: manifest says %d rows, file has %d", spec.Name, m.Rows, len(t.rows)))
			}
		}
	}

	violations = append(violations, checkReferences(tables)...)
	violations = append(violations, checkBilling(tables, manifest)...)
	violations = append(violations, checkTickets(tables["support_tickets"])...)

	return violations, nil
}

type table struct {
	name string
	rows [][]string
	idx  map[string]int
}

func (t *table) col(row []string, name string) string {
	return row[t.idx[name]]
}

func (t *table) ids(column string) map[string]bool {
	ids := make(map[string]bool, len(t.rows))
	for _, row := range t.rows {
		ids[t.col(row, column)] = true
	}
	return ids
}

func readTable(dir string, spec emit.Table) (*table, error) {
	file, err := os.Open(filepath.Join(dir, spec.File))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", spec.File, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", spec.File, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is missing its header row", spec.File)
	}

	expected := spec.Header()
	header := records[0]
	if len(header) != len(expected) {
		return nil, fmt.Errorf("%s header has %d columns, contract has %d", spec.File, len(header), len(expected))
	}
	idx := make(map[string]int, len(header))
	for i, name := range expected {
		if header[i] != name {
			return nil, fmt.Errorf("%s column %d is %q, contract says %q", spec.File, i, header[i], name)
		}
		idx[name] = i
	}

	return &table{name: spec.Name, rows: records[1:], idx: idx}, nil
}

// checkReferences verifies that every foreign key column resolves to an
// existing parent record.
func checkReferences(tables map[string]*table) []string {
	accounts := tables["accounts"].ids("account_id")
	users := tables["users"].ids("user_id")
	subscriptions := tables["subscriptions"].ids("subscription_id")
	invoices := tables["invoices"].ids("invoice_id")

	var violations []string
	check := func(t *table, column string, parents map[string]bool, nullable bool) {
		for _, row := range t.rows {
			id := t.col(row, column)
			if id == "" {
				if !nullable {
					violations = append(violations, fmt.Sprintf("%s: empty %s", t.name, column))
				}
				continue
			}
			if !parents[id] {
				violations = append(violations, fmt.Sprintf("%s: %s %q has no parent record", t.name, column, id))
			}
		}
	}

	check(tables["users"], "account_id", accounts, false)
	check(tables["subscriptions"], "account_id", accounts, false)
	check(tables["invoices"], "subscription_id", subscriptions, false)
	check(tables["invoices"], "account_id", accounts, false)
	check(tables["payments"], "invoice_id", invoices, false)
	check(tables["crm_deals"], "account_id", accounts, true)
	check(tables["product_events"], "user_id", users, false)
	check(tables["product_events"], "account_id", accounts, false)
	check(tables["support_tickets"], "account_id", accounts, false)

	return violations
}

// checkBilling verifies the invoice/payment 1:1 pairing and that each
// subscription carries exactly one invoice per active calendar month.
func checkBilling(tables map[string]*table, manifest *emit.Manifest) []string {
	var violations []string

	invoices := tables["invoices"]
	payments := tables["payments"]
	if len(invoices.rows) != len(payments.rows) {
		violations = append(violations,
			fmt.Sprintf("invoice count %d != payment count %d", len(invoices.rows), len(payments.rows)))
	}

	paid := make(map[string]int)
	for _, row := range payments.rows {
		paid[payments.col(row, "invoice_id")]++
	}
	for _, row := range invoices.rows {
		id := invoices.col(row, "invoice_id")
		if paid[id] != 1 {
			violations = append(violations,
				fmt.Sprintf("invoices: %s has %d payments, expected exactly 1", id, paid[id]))
		}
	}

	horizonEnd, err := time.Parse("2006-01-02", manifest.HorizonEnd)
	if err != nil {
		return append(violations, fmt.Sprintf("manifest horizon_end unparseable: %v", err))
	}

	perSub := make(map[string]int)
	for _, row := range invoices.rows {
		perSub[invoices.col(row, "subscription_id")]++
	}

	subs := tables["subscriptions"]
	for _, row := range subs.rows {
		id := subs.col(row, "subscription_id")
		start, err := time.Parse("2006-01-02", subs.col(row, "start_date"))
		if err != nil {
			violations = append(violations, fmt.Sprintf("subscriptions: %s start_date unparseable: %v", id, err))
			continue
		}
		end := horizonEnd
		if raw := subs.col(row, "end_date"); raw != "" {
			end, err = time.Parse("2006-01-02", raw)
			if err != nil {
				violations = append(violations, fmt.Sprintf("subscriptions: %s end_date unparseable: %v", id, err))
				continue
			}
		}
		expected := len(datagen.MonthStartsWithin(start, end))
		if perSub[id] != expected {
			violations = append(violations,
				fmt.Sprintf("subscriptions: %s has %d invoices, expected %d active months", id, perSub[id], expected))
		}
	}

	return violations
}

// checkTickets verifies sla_breached == (resolution_hours > sla_hours) for
// every row, with no exceptions.
func checkTickets(tickets *table) []string {
	var violations []string
	for _, row := range tickets.rows {
		id := tickets.col(row, "ticket_id")
		sla, err := strconv.Atoi(tickets.col(row, "sla_hours"))
		if err != nil {
			violations = append(violations, fmt.Sprintf("support_tickets: %s sla_hours unparseable: %v", id, err))
			continue
		}
		resolution, err := strconv.ParseFloat(tickets.col(row, "resolution_hours"), 64)
		if err != nil {
			violations = append(violations, fmt.Sprintf("support_tickets: %s resolution_hours unparseable: %v", id, err))
			continue
		}
		breached, err := strconv.ParseBool(tickets.col(row, "sla_breached"))
		if err != nil {
			violations = append(violations, fmt.Sprintf("support_tickets: %s sla_breached unparseable: %v", id, err))
			continue
		}
		if breached != (resolution > float64(sla)) {
			violations = append(violations,
				fmt.Sprintf("support_tickets: %s breach flag %v inconsistent with %.1fh against %dh SLA",
					id, breached, resolution, sla))
		}
	}
	return violations
}
