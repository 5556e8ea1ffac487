package tabular

import (
	"fmt"
	"strings"

	"github.com/Aashish23092/finextract/dto"
	"github.com/Aashish23092/finextract/utils"
)

// Column synonyms of brokerage positions exports (E*TRADE, Schwab, ...).
var (
	symbolColumns      = []string{"symbol", "ticker", "cusip", "security symbol"}
	quantityColumns    = []string{"quantity", "qty", "shares"}
	valueColumns       = []string{"current value", "market value", "total value", "value"}
	priceColumns       = []string{"last price", "price", "current price", "market price"}
	costColumns        = []string{"cost basis", "cost basis total", "total cost", "cost"}
	securityColumns    = []string{"description", "name", "security description", "security"}
	accountColumns     = []string{"account number", "account #", "acct #", "acct", "account"}
	holdingsHeaderSubs = [][]string{
		{"symbol", "ticker", "cusip"},
		{"quantity", "qty", "shares", "market value", "current value"},
	}
)

// holdingsPreamble is how many lines ("Account Summary as of ...") may sit
// above a positions table header.
const holdingsPreamble = 9

// holdingsHeaderLine finds the positions table header below any preamble.
func holdingsHeaderLine(lines []string) int {
	for i, line := range lines {
		if i > holdingsPreamble {
			break
		}
		if lineMatches(strings.ToLower(line), holdingsHeaderSubs) {
			return i
		}
	}
	return 0
}

func cell(r Row, exact []string, contains ...string) string {
	if v := r.Get(exact...); v != "" {
		return v
	}
	if len(contains) == 0 {
		return ""
	}
	return r.GetContaining(contains...)
}

func parseHoldings(content string, doc *dto.ExtractedDocument) {
	lines := strings.Split(content, "\n")
	start := holdingsHeaderLine(lines)
	records, errs := readRecords(strings.Join(lines[start:], "\n"))
	doc.Errors = append(doc.Errors, errs...)

	eachRow(records, 0, doc, func(r Row) error {
		symbol := strings.ToUpper(strings.TrimRight(cell(r, symbolColumns, "symbol", "ticker", "cusip"), "* "))
		if symbol == "" {
			return errSkipRow
		}
		// subtotal and cash summary rows
		if lower := strings.ToLower(symbol); strings.Contains(lower, "total") || strings.Contains(lower, "pending") {
			return errSkipRow
		}

		rawQty := cell(r, quantityColumns, "quantity", "qty", "shares")
		rawValue := cell(r, valueColumns, "current value", "market value", "total value")
		qty := utils.ParseQuantity(rawQty)
		value := utils.ParseAmount(rawValue)
		if rawQty != "" && qty == nil {
			return fmt.Errorf("invalid quantity %q for %s", rawQty, symbol)
		}
		if qty == nil && value == nil {
			return fmt.Errorf("no quantity or value for %s", symbol)
		}

		h := dto.ParsedHolding{
			AccountNumber: cell(r, accountColumns, "account number", "acct"),
			Symbol:        symbol,
			Description:   utils.CleanCell(cell(r, securityColumns, "description", "security")),
			Price:         utils.ParseAmount(cell(r, priceColumns, "last price", "current price", "market price")),
			Value:         value,
			CostBasis:     utils.ParseAmount(cell(r, costColumns, "cost basis", "total cost")),
		}
		if qty != nil {
			h.Quantity = *qty
		}
		if h.Description == "" {
			h.Description = symbol
		}
		doc.Holdings = append(doc.Holdings, h)
		return nil
	})
}
