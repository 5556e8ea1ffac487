package tabular

import (
	"fmt"
	"strings"

	"github.com/Aashish23092/finextract/dto"
	"github.com/Aashish23092/finextract/utils"
	"github.com/shopspring/decimal"
)

// planHeaderIndex finds the column header below the plan preamble
// ("Plan Name:", "Date Range", ...).
func planHeaderIndex(records [][]string) int {
	for i := 1; i < len(records); i++ {
		line := strings.ToLower(strings.Join(records[i], ","))
		if strings.Contains(line, "date") && strings.Contains(line, "transaction") {
			return i
		}
	}
	return -1
}

// parse401k reads a retirement plan activity export. Source columns
// (employee, employer match, ...) are reported separately and summed.
func parse401k(content string, doc *dto.ExtractedDocument) {
	records, errs := readRecords(content)
	doc.Errors = append(doc.Errors, errs...)

	headerIdx := planHeaderIndex(records)
	if headerIdx < 0 {
		doc.Errors = append(doc.Errors, "no transaction header found below plan summary")
		return
	}
	header := normalizeHeader(records[headerIdx])

	eachRow(records, headerIdx, doc, func(r Row) error {
		rawDate := r.Get("date")
		if rawDate == "" {
			return errSkipRow
		}
		date := utils.ParseDate(rawDate, "01/02/2006", "1/2/2006")
		if date == nil {
			return fmt.Errorf("invalid date %q", rawDate)
		}
		total := decimal.Zero
		for i, h := range header {
			if !strings.Contains(h, "amount") {
				continue
			}
			if d := utils.ParseAmount(r.Cell(i)); d != nil {
				total = total.Add(*d)
			}
		}
		desc := r.Get("transaction type")
		if desc == "" {
			desc = "Transaction"
		}
		doc.Transactions = append(doc.Transactions, dto.ParsedTransaction{
			Date:            *date,
			Description:     utils.CleanCell(desc),
			Amount:          total,
			TransactionType: dto.TransactionContribution,
		})
		return nil
	})
}
