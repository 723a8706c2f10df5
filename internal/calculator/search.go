package calculator

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/mmynk/utang/internal/models"
)

// foldName normalizes a name for case-insensitive comparison.
// A Caser is stateful, so a fresh one is built per call.
func foldName(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// MatchName reports whether name contains query, ignoring case and
// Unicode composition differences. An empty query matches everything.
func MatchName(name, query string) bool {
	q := foldName(query)
	if q == "" {
		return true
	}
	return strings.Contains(foldName(name), q)
}

// FilterDebtors returns the debtors whose name matches query, keeping order.
func FilterDebtors(debtors []*models.Debtor, query string) []*models.Debtor {
	if strings.TrimSpace(query) == "" {
		return debtors
	}
	filtered := make([]*models.Debtor, 0, len(debtors))
	for _, d := range debtors {
		if MatchName(d.Name, query) {
			filtered = append(filtered, d)
		}
	}
	return filtered
}
