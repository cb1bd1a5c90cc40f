package loader

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Metrik-Labs-HQ/gtmforge/internal/emit"
)

func TestTargetTable(t *testing.T) {
	if got := TargetTable("accounts"); got != "raw_accounts" {
		t.Errorf("TargetTable(accounts) = %q, expected raw_accounts", got)
	}
}

func TestParseValue(t *testing.T) {
	cases := []struct {
		name string
		col  emit.Column
		in   string
		want any
	}{
		{"text", emit.Column{Kind: emit.KindText}, "Acme Corp", "Acme Corp"},
		{"date", emit.Column{Kind: emit.KindDate}, "2024-07-01",
			time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"timestamp", emit.Column{Kind: emit.KindTimestamp}, "2024-07-01 13:30:00",
			time.Date(2024, 7, 1, 13, 30, 0, 0, time.UTC)},
		{"money", emit.Column{Kind: emit.KindMoney}, "299.00", 299.0},
		{"float", emit.Column{Kind: emit.KindFloat}, "26.4", 26.4},
		{"int", emit.Column{Kind: emit.KindInt}, "42", int64(42)},
		{"bool", emit.Column{Kind: emit.KindBool}, "true", true},
		{"nullable empty", emit.Column{Kind: emit.KindDate, Nullable: true}, "", nil},
	}

	for _, tc := range cases {
		got, err := parseValue(tc.col, tc.in)
		if err != nil {
			t.Errorf("%s: parseValue failed: %v", tc.name, err)
			continue
		}
		if wantTime, ok := tc.want.(time.Time); ok {
			if gotTime, ok := got.(time.Time); !ok || !gotTime.Equal(wantTime) {
				t.Errorf("%s: got %v, expected %v", tc.name, got, tc.want)
			}
			continue
		}
		if got != tc.want {
			t.Errorf("%s: got %v (%T), expected %v (%T)", tc.name, got, got, tc.want, tc.want)
		}
	}
}

func TestParseValueRejectsGarbage(t *testing.T) {
	cases := []struct {
		name string
		col  emit.Column
		in   string
	}{
		{"bad date", emit.Column{Kind: emit.KindDate}, "July 1st"},
		{"bad int", emit.Column{Kind: emit.KindInt}, "forty-two"},
		{"bad bool", emit.Column{Kind: emit.KindBool}, "maybe"},
		{"empty non-nullable date", emit.Column{Kind: emit.KindDate}, ""},
	}
	for _, tc := range cases {
		if _, err := parseValue(tc.col, tc.in); err == nil {
			t.Errorf("%s: expected parseValue to fail on %q", tc.name, tc.in)
		}
	}
}

func TestCreateSQLPerProvider(t *testing.T) {
	table, ok := emit.TableByName("subscriptions")
	if !ok {
		t.Fatal("subscriptions missing from contract")
	}

	pg := createSQL(table, "postgresql")
	if !strings.HasPrefix(pg, "CREATE TABLE raw_subscriptions (") {
		t.Errorf("Postgres DDL has wrong prefix: %s", pg)
	}
	if !strings.Contains(pg, "start_date DATE NOT NULL") {
		t.Errorf("Postgres DDL missing typed date column: %s", pg)
	}
	if strings.Contains(pg, "end_date DATE NOT NULL") {
		t.Errorf("Postgres DDL marks nullable end_date NOT NULL: %s", pg)
	}

	lite := createSQL(table, "sqlite3")
	if !strings.Contains(lite, "start_date TEXT NOT NULL") {
		t.Errorf("SQLite DDL should store dates as TEXT: %s", lite)
	}

	tickets, _ := emit.TableByName("support_tickets")
	my := createSQL(tickets, "mysql")
	if !strings.Contains(my, "resolved_at DATETIME NOT NULL") {
		t.Errorf("MySQL DDL should use DATETIME for timestamps: %s", my)
	}
	if !strings.Contains(my, "sla_breached TINYINT(1) NOT NULL") {
		t.Errorf("MySQL DDL should use TINYINT(1) for booleans: %s", my)
	}
	if !strings.Contains(createSQL(tickets, "postgresql"), "sla_breached BOOLEAN NOT NULL") {
		t.Error("Postgres DDL should use BOOLEAN for booleans")
	}
	if !strings.Contains(createSQL(tickets, "postgresql"), "resolution_hours NUMERIC(8,1) NOT NULL") {
		t.Error("Postgres DDL should use NUMERIC(8,1) for resolution hours")
	}
}

func TestDropSQL(t *testing.T) {
	table, _ := emit.TableByName("accounts")
	if got := dropSQL(table); got != "DROP TABLE IF EXISTS raw_accounts" {
		t.Errorf("dropSQL = %q", got)
	}
}

func TestLoadRequiresManifest(t *testing.T) {
	l := New("postgresql", "postgres://localhost/none", t.TempDir())
	if _, err := l.Load(context.Background()); err == nil {
		t.Error("Expected loading an empty directory to fail")
	}
}
