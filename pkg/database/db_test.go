package database

import "testing"

func TestIsPostgres(t *testing.T) {
	tests := []struct {
		dsn  string
		want bool
	}{
		{"", false},
		{"leadercircle.db", false},
		{"file::memory:?cache=shared", false},
		{"postgres://u:p@localhost:5432/db", true},
		{"postgresql://localhost/db", true},
		{"host=localhost user=postgres dbname=leadercircle", true},
	}
	for _, tt := range tests {
		if got := IsPostgres(tt.dsn); got != tt.want {
			t.Errorf("IsPostgres(%q) = %v, want %v", tt.dsn, got, tt.want)
		}
	}
}

func TestOpen_InMemory(t *testing.T) {
	db, err := Open("")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := db.Exec("CREATE TABLE t (id INTEGER)").Error; err != nil {
		t.Fatalf("create table: %v", err)
	}
	var n int64
	if err := db.Raw("SELECT COUNT(*) FROM t").Scan(&n).Error; err != nil {
		t.Errorf("table missing on second query: %v", err)
	}
}
