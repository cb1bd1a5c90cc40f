package emit

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Metrik-Labs-HQ/gtmforge/internal/datagen"
	"gopkg.in/yaml.v3"
)

const (
	dateFormat      = "2006-01-02"
	timestampFormat = "2006-01-02 15:04:05"
	ManifestFile    = "manifest.yaml"
)

// Manifest describes one emitted dataset batch. The loader and verify
// commands read it back to know what to expect.
type Manifest struct {
	Seed         int64           `yaml:"seed"`
	HorizonStart string          `yaml:"horizon_start"`
	HorizonEnd   string          `yaml:"horizon_end"`
	Accounts     int             `yaml:"accounts"`
	Tables       []TableManifest `yaml:"tables"`
}

type TableManifest struct {
	Name    string   `yaml:"name"`
	File    string   `yaml:"file"`
	Rows    int      `yaml:"rows"`
	Columns []string `yaml:"columns"`
}

type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write serializes the dataset as nine header-bearing CSV files plus a YAML
// manifest, overwriting any previous run in the directory. The dataset is
// complete in memory before the first file is touched, so a failed run never
// leaves a partial batch behind.
func (w *Writer) Write(ds *datagen.Dataset, params datagen.Params) (*Manifest, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	manifest := &Manifest{
		Seed:         params.Seed,
		HorizonStart: params.HorizonStart.Format(dateFormat),
		HorizonEnd:   params.HorizonEnd.Format(dateFormat),
		Accounts:     params.Accounts,
	}

	for _, table := range Tables() {
		rows := tableRows(table.Name, ds)
		if err := w.writeCSV(table, rows); err != nil {
			return nil, err
		}
		manifest.Tables = append(manifest.Tables, TableManifest{
			Name:    table.Name,
			File:    table.File,
			Rows:    len(rows),
			Columns: table.Header(),
		})
	}

	data, err := yaml.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.dir, ManifestFile), data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	return manifest, nil
}

func (w *Writer) writeCSV(table Table, rows [][]string) error {
	path := filepath.Join(w.dir, table.File)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", table.File, err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(table.Header()); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", table.Name, err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", table.Name, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", table.Name, err)
	}
	return nil
}

// ReadManifest loads the manifest of a previously emitted batch.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

func tableRows(name string, ds *datagen.Dataset) [][]string {
	switch name {
	case "accounts":
		return accountRows(ds.Accounts)
	case "users":
		return userRows(ds.Users)
	case "subscriptions":
		return subscriptionRows(ds.Subscriptions)
	case "invoices":
		return invoiceRows(ds.Invoices)
	case "payments":
		return paymentRows(ds.Payments)
	case "crm_deals":
		return dealRows(ds.Deals)
	case "product_events":
		return eventRows(ds.ProductEvents)
	case "support_tickets":
		return ticketRows(ds.SupportTickets)
	case "marketing_spend":
		return spendRows(ds.MarketingSpend)
	default:
		panic(fmt.Sprintf("emit: unknown table %q", name))
	}
}

func accountRows(accounts []datagen.Account) [][]string {
	rows := make([][]string, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, []string{
			a.ID, a.Name, a.Segment, a.CompanySize, a.Region,
			a.AcquisitionChannel, formatDate(a.CreatedAt), a.Status,
		})
	}
	return rows
}

func userRows(users []datagen.User) [][]string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.ID, u.AccountID, u.Email, u.Role, formatDate(u.CreatedAt)})
	}
	return rows
}

func subscriptionRows(subs []datagen.Subscription) [][]string {
	rows := make([][]string, 0, len(subs))
	for _, s := range subs {
		end := ""
		if s.EndDate != nil {
			end = formatDate(*s.EndDate)
		}
		rows = append(rows, []string{s.ID, s.AccountID, s.PlanTier, formatDate(s.StartDate), end, s.Status})
	}
	return rows
}

func invoiceRows(invoices []datagen.Invoice) [][]string {
	rows := make([][]string, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, []string{
			inv.ID, inv.SubscriptionID, inv.AccountID,
			formatDate(inv.InvoiceDate), formatMoney(inv.Amount), inv.Status,
		})
	}
	return rows
}

func paymentRows(payments []datagen.Payment) [][]string {
	rows := make([][]string, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, []string{
			p.ID, p.InvoiceID, formatDate(p.PaymentDate), formatMoney(p.Amount), p.Method,
		})
	}
	return rows
}

func dealRows(deals []datagen.Deal) [][]string {
	rows := make([][]string, 0, len(deals))
	for _, d := range deals {
		rows = append(rows, []string{
			d.ID, d.AccountID, strconv.Itoa(d.DealValue), d.Stage,
			formatDate(d.CreatedDate), formatDate(d.ClosedDate),
			strconv.Itoa(d.SalesCycleDays), d.Segment,
		})
	}
	return rows
}

func eventRows(events []datagen.ProductEvent) [][]string {
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{e.ID, e.UserID, e.AccountID, e.EventType, formatDate(e.Timestamp)})
	}
	return rows
}

func ticketRows(tickets []datagen.SupportTicket) [][]string {
	rows := make([][]string, 0, len(tickets))
	for _, t := range tickets {
		rows = append(rows, []string{
			t.ID, t.AccountID, t.Category, t.Severity,
			formatDate(t.CreatedAt), t.ResolvedAt.Format(timestampFormat),
			strconv.Itoa(t.SLAHours),
			strconv.FormatFloat(t.ResolutionHours, 'f', 1, 64),
			strconv.FormatBool(t.SLABreached),
		})
	}
	return rows
}

func spendRows(records []datagen.MarketingSpendRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			formatDate(r.Month), r.Channel, formatMoney(r.Spend),
			strconv.Itoa(r.LeadsGenerated), r.CampaignName,
		})
	}
	return rows
}

func formatDate(t time.Time) string {
	return t.Format(dateFormat)
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
