package emit

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Metrik-Labs-HQ/gtmforge/internal/datagen"
)

func testParams(accounts int) datagen.Params {
	return datagen.Params{
		Seed:         42,
		HorizonStart: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		HorizonEnd:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Accounts:     accounts,
	}
}

func generate(t *testing.T, params datagen.Params) *datagen.Dataset {
	t.Helper()
	g, err := datagen.New(params)
	if err != nil {
		t.Fatalf("Failed to create generator: %v", err)
	}
	ds, err := g.Generate()
	if err != nil {
		t.Fatalf("Failed to generate dataset: %v", err)
	}
	return ds
}

func TestWriteProducesContractFiles(t *testing.T) {
	dir := t.TempDir()
	params := testParams(25)
	ds := generate(t, params)

	manifest, err := NewWriter(dir).Write(ds, params)
	if err != nil {
		t.Fatalf("Failed to write dataset: %v", err)
	}

	if len(manifest.Tables) != 9 {
		t.Fatalf("Manifest lists %d tables, expected 9", len(manifest.Tables))
	}

	for _, table := range Tables() {
		path := filepath.Join(dir, table.File)
		file, err := os.Open(path)
		if err != nil {
			t.Fatalf("Missing output file %s: %v", table.File, err)
		}

		records, err := csv.NewReader(file).ReadAll()
		file.Close()
		if err != nil {
			t.Fatalf("Failed to parse %s: %v", table.File, err)
		}
		if len(records) == 0 {
			t.Fatalf("%s has no header row", table.File)
		}

		header := records[0]
		want := table.Header()
		if len(header) != len(want) {
			t.Fatalf("%s header has %d columns, expected %d", table.File, len(header), len(want))
		}
		for i := range want {
			if header[i] != want[i] {
				t.Errorf("%s column %d is %q, expected %q", table.File, i, header[i], want[i])
			}
		}

		var entry *TableManifest
		for i := range manifest.Tables {
			if manifest.Tables[i].Name == table.Name {
				entry = &manifest.Tables[i]
			}
		}
		if entry == nil {
			t.Fatalf("Table %s missing from manifest", table.Name)
		}
		if rows := len(records) - 1; rows != entry.Rows {
			t.Errorf("%s has %d data rows, manifest says %d", table.File, rows, entry.Rows)
		}
	}
}

func TestWriteIsByteDeterministic(t *testing.T) {
	params := testParams(25)
	dirA, dirB := t.TempDir(), t.TempDir()

	if _, err := NewWriter(dirA).Write(generate(t, params), params); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if _, err := NewWriter(dirB).Write(generate(t, params), params); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	for _, table := range Tables() {
		a, err := os.ReadFile(filepath.Join(dirA, table.File))
		if err != nil {
			t.Fatalf("Failed to read %s: %v", table.File, err)
		}
		b, err := os.ReadFile(filepath.Join(dirB, table.File))
		if err != nil {
			t.Fatalf("Failed to read %s: %v", table.File, err)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("%s differs between two same-seed runs", table.File)
		}
	}
}

func TestWriteOverwritesPreviousBatch(t *testing.T) {
	dir := t.TempDir()

	big := testParams(40)
	if _, err := NewWriter(dir).Write(generate(t, big), big); err != nil {
		t.Fatalf("First write failed: %v", err)
	}

	small := testParams(10)
	if _, err := NewWriter(dir).Write(generate(t, small), small); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	file, err := os.Open(filepath.Join(dir, "accounts.csv"))
	if err != nil {
		t.Fatalf("Failed to open accounts.csv: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse accounts.csv: %v", err)
	}
	if rows := len(records) - 1; rows != 10 {
		t.Errorf("accounts.csv has %d rows after overwrite, expected 10", rows)
	}
}

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	params := testParams(15)

	written, err := NewWriter(dir).Write(generate(t, params), params)
	if err != nil {
		t.Fatalf("Failed to write dataset: %v", err)
	}

	read, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("Failed to read manifest back: %v", err)
	}

	if read.Seed != 42 || read.Accounts != 15 {
		t.Errorf("Manifest round trip lost params: seed=%d accounts=%d", read.Seed, read.Accounts)
	}
	if read.HorizonStart != "2024-07-01" || read.HorizonEnd != "2025-12-31" {
		t.Errorf("Manifest horizon %s..%s, expected 2024-07-01..2025-12-31", read.HorizonStart, read.HorizonEnd)
	}
	if len(read.Tables) != len(written.Tables) {
		t.Fatalf("Manifest round trip has %d tables, expected %d", len(read.Tables), len(written.Tables))
	}
	for i, tm := range read.Tables {
		if tm.Rows != written.Tables[i].Rows || tm.Name != written.Tables[i].Name {
			t.Errorf("Manifest table %d changed across round trip: %+v vs %+v", i, tm, written.Tables[i])
		}
	}
}

func TestReadManifestMissing(t *testing.T) {
	if _, err := ReadManifest(t.TempDir()); err == nil {
		t.Error("Expected an error reading a manifest from an empty directory")
	}
}

func TestTableByName(t *testing.T) {
	table, ok := TableByName("support_tickets")
	if !ok {
		t.Fatal("support_tickets not found in contract")
	}
	if table.File != "support_tickets.csv" || len(table.Columns) != 9 {
		t.Errorf("Unexpected support_tickets contract: file=%s columns=%d", table.File, len(table.Columns))
	}

	if _, ok := TableByName("nonsense"); ok {
		t.Error("TableByName accepted an unknown table")
	}
}
