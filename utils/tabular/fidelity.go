package tabular

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Aashish23092/finextract/dto"
	"github.com/Aashish23092/finextract/utils"
	"github.com/shopspring/decimal"
)

// an account number repeated as a section header inside the holdings table
var accountHeaderSymbol = regexp.MustCompile(`^(?:\d{8,}|[A-Za-z]\d{7,})$`)

func isHoldingsBoundary(rec []string) bool {
	for _, c := range rec {
		if strings.Contains(strings.ToLower(c), "symbol/cusip") {
			return true
		}
	}
	return false
}

// parseFidelityStatement reads the two sections of a positions statement:
// account summaries first, then the holdings table introduced by a
// "Symbol/CUSIP" header. Holdings inherit the most recent account number.
func parseFidelityStatement(content string, doc *dto.ExtractedDocument) {
	records, errs := readRecords(content)
	doc.Errors = append(doc.Errors, errs...)
	if len(records) == 0 {
		return
	}

	header := normalizeHeader(records[0])
	inHoldings := false
	currentAccount := ""

	for i := 1; i < len(records); i++ {
		rec := records[i]
		if filledCells(rec) == 0 {
			continue
		}
		if isHoldingsBoundary(rec) {
			header = normalizeHeader(rec)
			inHoldings = true
			continue
		}
		row := newRow(header, rec, i+1)

		var err error
		if inHoldings {
			err = runRow(func(r Row) error { return fidelityHolding(r, &currentAccount, doc) }, row)
		} else {
			err = runRow(func(r Row) error { return fidelityAccount(r, &currentAccount, doc) }, row)
		}
		if err != nil && err != errSkipRow {
			doc.Errors = append(doc.Errors, fmt.Sprintf("row %d: %v", row.Line, err))
		}
	}
}

func fidelityAccount(r Row, current *string, doc *dto.ExtractedDocument) error {
	accountType := r.Cell(0)
	if accountType == "" || filledCells(r.cells) < 2 {
		return errSkipRow
	}
	raw := r.Get("ending net value", "ending mkt value")
	if raw == "" {
		raw = r.GetContaining("ending")
	}
	if raw == "" {
		raw = r.Cell(4)
	}
	balance := decimal.Zero
	if !utils.IsBlank(raw) {
		d := utils.ParseAmount(raw)
		if d == nil {
			return fmt.Errorf("invalid ending value %q", raw)
		}
		balance = *d
	}
	number := r.GetOr(1, "account")
	doc.Balances = append(doc.Balances, dto.ParsedAccountBalance{
		AccountType:   utils.CleanCell(accountType),
		AccountNumber: number,
		Balance:       balance,
	})
	*current = number
	return nil
}

func fidelityHolding(r Row, current *string, doc *dto.ExtractedDocument) error {
	symbol := r.Cell(0)
	if symbol == "" {
		return errSkipRow
	}
	if accountHeaderSymbol.MatchString(symbol) {
		*current = symbol
		return errSkipRow
	}
	// core cash sweeps and footers
	if strings.HasPrefix(symbol, "X") || len(symbol) > 10 || filledCells(r.cells) < 3 {
		return errSkipRow
	}
	rawQty := r.GetOr(2, "quantity")
	qty := utils.ParseQuantity(rawQty)
	if qty == nil {
		return fmt.Errorf("invalid quantity %q for %s", rawQty, symbol)
	}
	doc.Holdings = append(doc.Holdings, dto.ParsedHolding{
		AccountNumber: *current,
		Symbol:        symbol,
		Description:   utils.CleanCell(r.GetOr(1, "description")),
		Quantity:      *qty,
		Price:         utils.ParseAmount(r.GetOr(3, "price", "last price")),
		Value:         utils.ParseAmount(r.GetOr(5, "ending value", "current value")),
		CostBasis:     utils.ParseAmount(r.GetOr(6, "cost basis", "cost basis total")),
	})
	return nil
}

// parseFidelityTransactions reads the brokerage activity export. Rows
// without a run date are disclaimers and are skipped.
func parseFidelityTransactions(content string, doc *dto.ExtractedDocument) {
	records, errs := readRecords(content)
	doc.Errors = append(doc.Errors, errs...)
	eachRow(records, 0, doc, func(r Row) error {
		rawDate := r.Get("run date")
		if rawDate == "" {
			return errSkipRow
		}
		date := utils.ParseDate(rawDate, "01/02/2006", "1/2/2006")
		if date == nil {
			return fmt.Errorf("invalid run date %q", rawDate)
		}
		amount := decimal.Zero
		if raw := r.Get("amount ($)", "amount"); raw != "" {
			d := utils.ParseAmount(raw)
			if d == nil {
				return fmt.Errorf("invalid amount %q", raw)
			}
			amount = *d
		}
		action := r.Get("action")
		symbol := r.Get("symbol")
		desc := strings.TrimSpace(fmt.Sprintf("%s %s - %s", action, symbol, r.Get("security description")))
		doc.Transactions = append(doc.Transactions, dto.ParsedTransaction{
			Date:            *date,
			Description:     utils.CleanCell(desc),
			Amount:          amount,
			TransactionType: strings.ToLower(action),
			Symbol:          symbol,
			Quantity:        utils.ParseQuantity(r.Get("quantity")),
			AccountNumber:   r.Get("account"),
		})
		return nil
	})
}
