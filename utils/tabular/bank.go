package tabular

import (
	"fmt"
	"strings"

	"github.com/Aashish23092/finextract/dto"
	"github.com/Aashish23092/finextract/utils"
	"github.com/shopspring/decimal"
)

var (
	balanceColumns     = []string{"balance", "running balance", "running bal.", "ending balance"}
	genericDateLayouts = []string{"2006-1-2", "1/2/2006", "2/1/2006", "2006/1/2"}
)

func signedType(amount decimal.Decimal) string {
	if amount.IsPositive() {
		return dto.TransactionCredit
	}
	return dto.TransactionDebit
}

func requireAmount(raw, field string) (decimal.Decimal, error) {
	d := utils.ParseAmount(raw)
	if d == nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q", field, raw)
	}
	return *d, nil
}

// U.S. Bank: Date,Transaction,Name,Memo,Amount with ISO dates.
func parseUSBank(content string, doc *dto.ExtractedDocument) {
	records, errs := readRecords(content)
	doc.Errors = append(doc.Errors, errs...)
	eachRow(records, 0, doc, func(r Row) error {
		date := utils.ParseDate(r.Get("date"), "2006-01-02")
		if date == nil {
			return fmt.Errorf("invalid date %q", r.Get("date"))
		}
		amount, err := requireAmount(r.Get("amount"), "amount")
		if err != nil {
			return err
		}
		doc.Transactions = append(doc.Transactions, dto.ParsedTransaction{
			Date:            *date,
			Description:     utils.CleanCell(r.Get("transaction") + " - " + r.Get("name")),
			Memo:            utils.CleanCell(r.Get("memo")),
			Amount:          amount,
			TransactionType: signedType(amount),
		})
		return nil
	})
}

// Chase: Details,Posting Date,Description,Amount,Type,Balance with the
// institution's own type column.
func parseChase(content string, doc *dto.ExtractedDocument) {
	records, errs := readRecords(content)
	doc.Errors = append(doc.Errors, errs...)
	eachRow(records, 0, doc, func(r Row) error {
		date := utils.ParseDate(r.Get("posting date"), "1/2/2006")
		if date == nil {
			return fmt.Errorf("invalid posting date %q", r.Get("posting date"))
		}
		amount, err := requireAmount(r.Get("amount"), "amount")
		if err != nil {
			return err
		}
		doc.Transactions = append(doc.Transactions, dto.ParsedTransaction{
			Date:            *date,
			Description:     utils.CleanCell(r.Get("description")),
			Amount:          amount,
			TransactionType: strings.ToLower(r.Get("type")),
			Balance:         utils.ParseAmount(r.Get("balance")),
		})
		return nil
	})
}

func findColumn(header []string, subs ...string) string {
	for _, h := range header {
		if utils.ContainsAny(h, subs...) {
			return h
		}
	}
	return ""
}

// parseGeneric handles any export that names a date, an amount and a
// description column. Without all three the file is not this format and
// nothing is reported.
func parseGeneric(content string, doc *dto.ExtractedDocument) {
	records, errs := readRecords(content)
	if len(records) == 0 {
		doc.Errors = append(doc.Errors, errs...)
		return
	}
	header := normalizeHeader(records[0])
	dateCol := findColumn(header, "date")
	amountCol := findColumn(header, "amount")
	descCol := findColumn(header, "description", "memo", "name")
	if dateCol == "" || amountCol == "" || descCol == "" {
		return
	}
	doc.Errors = append(doc.Errors, errs...)

	eachRow(records, 0, doc, func(r Row) error {
		date := utils.ParseDate(r.Get(dateCol), genericDateLayouts...)
		if date == nil {
			return fmt.Errorf("invalid date %q", r.Get(dateCol))
		}
		amount, err := requireAmount(r.Get(amountCol), "amount")
		if err != nil {
			return err
		}
		doc.Transactions = append(doc.Transactions, dto.ParsedTransaction{
			Date:            *date,
			Description:     utils.CleanCell(r.Get(descCol)),
			Amount:          amount,
			TransactionType: signedType(amount),
			Balance:         utils.ParseAmount(r.Get(balanceColumns...)),
		})
		return nil
	})
}
