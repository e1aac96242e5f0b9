package validator

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
)

type sample struct {
	Type        string `binding:"required,transaction_type"`
	Description string `binding:"required,not_blank"`
	Date        string `binding:"required,flexible_date"`
}

func TestRegister(t *testing.T) {
	Register()

	tests := []struct {
		name    string
		in      sample
		wantErr bool
	}{
		{"valid_rfc3339", sample{"income", "Salary", "2024-03-01T10:00:00Z"}, false},
		{"valid_plain_date", sample{"expense", "Lunch", "2024-03-01"}, false},
		{"bad_type", sample{"transfer", "Lunch", "2024-03-01"}, true},
		{"blank_description", sample{"expense", "   ", "2024-03-01"}, true},
		{"bad_date", sample{"expense", "Lunch", "03/01/2024"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("ParseDate = %v, want %v", got, want)
	}

	if _, err := ParseDate("not a date"); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestParseDateNormalizesToUTC(t *testing.T) {
	got, err := ParseDate("2024-03-01T23:00:00-05:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Location() != time.UTC {
		t.Errorf("expected UTC location, got %v", got.Location())
	}
	if want := time.Date(2024, 3, 2, 4, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("ParseDate = %v, want %v", got, want)
	}
}

func TestParseEndDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"plain_date_covers_whole_day", "2024-03-01", time.Date(2024, 3, 1, 23, 59, 59, 999999000, time.UTC)},
		{"timestamp_kept_exact", "2024-03-01T10:00:00+02:00", time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEndDate(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) || got.Location() != time.UTC {
				t.Errorf("ParseEndDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if _, err := ParseEndDate("yesterday"); err == nil {
		t.Error("expected error for invalid date")
	}
}
