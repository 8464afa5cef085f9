package registry

import (
	"testing"
	"time"
)

func TestAgeWholeYears(t *testing.T) {
	p := &Person{DateOfBirth: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)}

	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"on birthday", time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC), 30},
		{"day before birthday", time.Date(2020, 6, 14, 0, 0, 0, 0, time.UTC), 29},
		{"day after birthday", time.Date(2020, 6, 16, 0, 0, 0, 0, time.UTC), 30},
		{"earlier month", time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC), 29},
		{"later month", time.Date(2020, 11, 1, 0, 0, 0, 0, time.UTC), 30},
		{"same year", time.Date(1990, 12, 1, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Age(tt.at); got != tt.want {
				t.Errorf("Age(%v) = %d, want %d", tt.at, got, tt.want)
			}
		})
	}
}

func TestAgeNeverNegativeForValidDOB(t *testing.T) {
	p := &Person{DateOfBirth: time.Now().AddDate(0, 0, -1)}
	if got := p.Age(time.Now()); got < 0 {
		t.Errorf("expected non-negative age, got %d", got)
	}
}

func TestFullName(t *testing.T) {
	middle := "Atieno"
	p := &Person{FirstName: "Mary", MiddleName: &middle, LastName: "Odhiambo"}
	if got := p.FullName(); got != "Mary Atieno Odhiambo" {
		t.Errorf("unexpected full name: %q", got)
	}
	p.MiddleName = nil
	if got := p.FullName(); got != "Mary Odhiambo" {
		t.Errorf("unexpected full name: %q", got)
	}
}
