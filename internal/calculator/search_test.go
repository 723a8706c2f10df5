package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmynk/utang/internal/models"
)

func TestMatchName(t *testing.T) {
	tests := []struct {
		name, query string
		want        bool
	}{
		{"Juan dela Cruz", "", true},
		{"Juan dela Cruz", "juan", true},
		{"Juan dela Cruz", "DELA", true},
		{"Juan dela Cruz", "maria", false},
		{"Peña", "PEÑA", true},
		{"Pen\u0303a", "peña", true}, // decomposed name, composed query
		{"Aling Nena", "  nena ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchName(tt.name, tt.query))
		})
	}
}

func TestFilterDebtors(t *testing.T) {
	debtors := []*models.Debtor{
		{ID: 3, Name: "Maria"},
		{ID: 2, Name: "Juan"},
		{ID: 1, Name: "Mario"},
	}

	got := FilterDebtors(debtors, "mari")
	assert.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)

	assert.Len(t, FilterDebtors(debtors, " "), 3)
}
