package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"hours-reconciliation/internal/domain"
)

func writeTestCSV(t testing.TB, dir, name string, records [][]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, record := range records {
		if err := w.Write(record); err != nil {
			t.Fatalf("Failed to write test record: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("Failed to flush test file: %v", err)
	}
	return path
}

func TestPeriodFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     domain.Period
		wantOK   bool
	}{
		{name: "standard export name", filename: "EskerLodge-2024-W01.csv", want: domain.Period{Year: 2024, Week: 1}, wantOK: true},
		{name: "two digit week", filename: "timesheet-2023-W52.csv", want: domain.Period{Year: 2023, Week: 52}, wantOK: true},
		{name: "single digit week", filename: "2024-W5.csv", want: domain.Period{Year: 2024, Week: 5}, wantOK: true},
		{name: "no marker", filename: "payroll.csv", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := periodFromFilename(tt.filename)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFileSourceRepository_GetTimesheetRows(t *testing.T) {
	dir := t.TempDir()
	path := writeTestCSV(t, dir, "EskerLodge-2024-W05.csv", [][]string{
		{"Staff Number", "Name", "Department Name", "Pay Rate", "Basic", "Night Rate"},
		{"1001", "Murphy, Anne", "Nursing", "14.50", "20:00", "05:00"},
		{"1002", "Byrne, Liam", "Kitchen", "12.80", "30", ""},
	})

	repo := NewFileSourceRepository()
	rows, err := repo.GetTimesheetRows(context.Background(), []string{path})

	assert.NoError(t, err)
	assert.Len(t, rows, 2)

	anne := rows[0]
	assert.Equal(t, "1001", anne.StaffNumber)
	assert.Equal(t, "Murphy, Anne", anne.Name)
	assert.Equal(t, "Nursing", anne.Department)
	assert.Equal(t, "14.50", anne.PayRate)
	// Cell values come back raw; conversion is the normalizer's job.
	assert.Equal(t, "20:00", anne.Hours["Basic"])
	assert.Equal(t, "05:00", anne.Hours["Night Rate"])
	assert.Equal(t, domain.Period{Year: 2024, Week: 5}, anne.Period)
	assert.Equal(t, "EskerLodge-2024-W05.csv", anne.SourceFile)
	assert.Equal(t, 2, anne.Line)

	assert.Equal(t, 3, rows[1].Line)
}

func TestFileSourceRepository_GetTimesheetRows_MultipleFilesSorted(t *testing.T) {
	dir := t.TempDir()
	// Written out of order on purpose.
	writeTestCSV(t, dir, "EskerLodge-2024-W06.csv", [][]string{
		{"Staff Number", "Name", "Basic"},
		{"1001", "Murphy, Anne", "20"},
	})
	writeTestCSV(t, dir, "EskerLodge-2024-W05.csv", [][]string{
		{"Staff Number", "Name", "Basic"},
		{"1001", "Murphy, Anne", "25"},
	})

	repo := NewFileSourceRepository()
	paths := []string{
		filepath.Join(dir, "EskerLodge-2024-W06.csv"),
		filepath.Join(dir, "EskerLodge-2024-W05.csv"),
	}
	rows, err := repo.GetTimesheetRows(context.Background(), paths)

	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	// Files are read in sorted path order regardless of argument order.
	assert.Equal(t, domain.Period{Year: 2024, Week: 5}, rows[0].Period)
	assert.Equal(t, domain.Period{Year: 2024, Week: 6}, rows[1].Period)
}

func TestFileSourceRepository_GetTimesheetRows_RaggedRows(t *testing.T) {
	dir := t.TempDir()
	path := writeTestCSV(t, dir, "EskerLodge-2024-W05.csv", [][]string{
		{"Staff Number", "Name", "Basic", "Night Rate"},
		{"1001", "Murphy, Anne", "20"},
		{"1002", "Byrne, Liam", "30", "5", "trailing junk"},
	})

	repo := NewFileSourceRepository()
	rows, err := repo.GetTimesheetRows(context.Background(), []string{path})

	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	_, ok := rows[0].Hours["Night Rate"]
	assert.False(t, ok)
	assert.Equal(t, "5", rows[1].Hours["Night Rate"])
}

func TestFileSourceRepository_GetTimesheetRows_MissingFile(t *testing.T) {
	repo := NewFileSourceRepository()
	_, err := repo.GetTimesheetRows(context.Background(), []string{"/nonexistent/file.csv"})

	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestFileSourceRepository_GetTimesheetRows_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty-2024-W01.csv")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("Failed to create empty file: %v", err)
	}

	repo := NewFileSourceRepository()
	_, err := repo.GetTimesheetRows(context.Background(), []string{path})

	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func BenchmarkGetTimesheetRows(b *testing.B) {
	dir := b.TempDir()
	records := [][]string{{"Staff Number", "Name", "Department Name", "Pay Rate", "Basic", "Night Rate"}}
	for i := 0; i < 1000; i++ {
		records = append(records, []string{
			fmt.Sprintf("%d", 1000+i), "Murphy, Anne", "Nursing", "14.50", "20:00", "05:00",
		})
	}
	path := writeTestCSV(b, dir, "bench-2024-W01.csv", records)

	repo := NewFileSourceRepository()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := repo.GetTimesheetRows(ctx, []string{path}); err != nil {
			b.Fatalf("Error in benchmark: %v", err)
		}
	}
}
