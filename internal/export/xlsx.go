// Package export renders the ledger as a spreadsheet.
package export

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx"

	"github.com/mmynk/utang/internal/service"
)

// ContentType is the MIME type of the workbook written by WriteLedger.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const dateLayout = "2006-01-02 15:04:05"

var (
	debtorHeaders = []string{"ID", "Name", "Date Added", "Status", "Total Owed"}
	itemHeaders   = []string{"Debtor", "Item", "Quantity", "Price", "Line Total", "Paid", "Date Added"}
)

// WriteLedger writes a workbook with a "Debtors" sheet and an "Items" sheet.
func WriteLedger(w io.Writer, ledger []*service.DebtorDetail) error {
	file := xlsx.NewFile()

	debtors, err := file.AddSheet("Debtors")
	if err != nil {
		return fmt.Errorf("failed to add debtors sheet: %w", err)
	}
	items, err := file.AddSheet("Items")
	if err != nil {
		return fmt.Errorf("failed to add items sheet: %w", err)
	}

	addHeader(debtors, debtorHeaders)
	addHeader(items, itemHeaders)

	for _, d := range ledger {
		row := debtors.AddRow()
		row.AddCell().SetValue(d.Debtor.ID)
		row.AddCell().SetValue(d.Debtor.Name)
		row.AddCell().SetValue(d.Debtor.DateAdded.Format(dateLayout))
		row.AddCell().SetValue(string(d.Status))
		row.AddCell().SetFloat(d.TotalOwed.InexactFloat64())

		for _, it := range d.Items {
			paid := "No"
			if it.IsPaid {
				paid = "Yes"
			}

			row := items.AddRow()
			row.AddCell().SetValue(d.Debtor.Name)
			row.AddCell().SetValue(it.Name)
			row.AddCell().SetValue(it.Quantity)
			row.AddCell().SetFloat(it.Price.InexactFloat64())
			row.AddCell().SetFloat(it.LineTotal().InexactFloat64())
			row.AddCell().SetValue(paid)
			row.AddCell().SetValue(it.DateAdded.Format(dateLayout))
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func addHeader(sheet *xlsx.Sheet, headers []string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetValue(h)
	}
}
