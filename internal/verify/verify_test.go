package verify

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Metrik-Labs-HQ/gtmforge/internal/datagen"
	"github.com/Metrik-Labs-HQ/gtmforge/internal/emit"
)

func writeDataset(t *testing.T) string {
	t.Helper()
	params := datagen.Params{
		Seed:         42,
		HorizonStart: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		HorizonEnd:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Accounts:     30,
	}
	g, err := datagen.New(params)
	if err != nil {
		t.Fatalf("Failed to create generator: %v", err)
	}
	ds, err := g.Generate()
	if err != nil {
		t.Fatalf("Failed to generate dataset: %v", err)
	}
	dir := t.TempDir()
	if _, err := emit.NewWriter(dir).Write(ds, params); err != nil {
		t.Fatalf("Failed to write dataset: %v", err)
	}
	return dir
}

func readCSV(t *testing.T, dir, file string) [][]string {
	t.Helper()
	f, err := os.Open(filepath.Join(dir, file))
	if err != nil {
		t.Fatalf("Failed to open %s: %v", file, err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse %s: %v", file, err)
	}
	return records
}

func writeCSV(t *testing.T, dir, file string, records [][]string) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, file))
	if err != nil {
		t.Fatalf("Failed to rewrite %s: %v", file, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		t.Fatalf("Failed to write %s: %v", file, err)
	}
}

func TestCleanDatasetHasNoViolations(t *testing.T) {
	dir := writeDataset(t)

	violations, err := Run(dir)
	if err != nil {
		t.Fatalf("Verification failed to run: %v", err)
	}
	if len(violations) != 0 {
		t.Errorf("Clean dataset reported %d violations: %v", len(violations), violations)
	}
}

func TestDetectsBrokenReference(t *testing.T) {
	dir := writeDataset(t)

	records := readCSV(t, dir, "users.csv")
	// Point the first user at an account that does not exist.
	records[1][1] = "ACC99999"
	writeCSV(t, dir, "users.csv", records)

	violations, err := Run(dir)
	if err != nil {
		t.Fatalf("Verification failed to run: %v", err)
	}
	if !containsViolation(violations, "ACC99999") {
		t.Errorf("Broken account reference not detected, got: %v", violations)
	}
}

func TestDetectsMissingPayment(t *testing.T) {
	dir := writeDataset(t)

	records := readCSV(t, dir, "payments.csv")
	writeCSV(t, dir, "payments.csv", records[:len(records)-1])

	violations, err := Run(dir)
	if err != nil {
		t.Fatalf("Verification failed to run: %v", err)
	}
	if !containsViolation(violations, "expected exactly 1") {
		t.Errorf("Unpaid invoice not detected, got: %v", violations)
	}
	if !containsViolation(violations, "manifest says") {
		t.Errorf("Manifest row count mismatch not detected, got: %v", violations)
	}
}

func TestDetectsInconsistentBreachFlag(t *testing.T) {
	dir := writeDataset(t)

	records := readCSV(t, dir, "support_tickets.csv")
	flag := records[1][8]
	if flag == "true" {
		records[1][8] = "false"
	} else {
		records[1][8] = "true"
	}
	writeCSV(t, dir, "support_tickets.csv", records)

	violations, err := Run(dir)
	if err != nil {
		t.Fatalf("Verification failed to run: %v", err)
	}
	if !containsViolation(violations, "breach flag") {
		t.Errorf("Flipped breach flag not detected, got: %v", violations)
	}
}

func TestDetectsExtraInvoiceMonth(t *testing.T) {
	dir := writeDataset(t)

	records := readCSV(t, dir, "invoices.csv")
	// Duplicate the last invoice under a fresh id so one subscription
	// carries more invoices than it has active months.
	extra := make([]string, len(records[len(records)-1]))
	copy(extra, records[len(records)-1])
	extra[0] = "INV999999"
	writeCSV(t, dir, "invoices.csv", append(records, extra))

	violations, err := Run(dir)
	if err != nil {
		t.Fatalf("Verification failed to run: %v", err)
	}
	if !containsViolation(violations, "active months") {
		t.Errorf("Extra invoice month not detected, got: %v", violations)
	}
}

func TestRejectsHeaderDrift(t *testing.T) {
	dir := writeDataset(t)

	records := readCSV(t, dir, "accounts.csv")
	records[0][0] = "acct_id"
	writeCSV(t, dir, "accounts.csv", records)

	if _, err := Run(dir); err == nil {
		t.Error("Expected a renamed column to fail verification outright")
	}
}

func TestMissingManifest(t *testing.T) {
	if _, err := Run(t.TempDir()); err == nil {
		t.Error("Expected an error verifying an empty directory")
	}
}

func containsViolation(violations []string, substr string) bool {
	for _, v := range violations {
		if strings.Contains(v, substr) {
			return true
		}
	}
	return false
}
