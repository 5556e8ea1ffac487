package tabular

import (
	"fmt"
	"strings"

	"github.com/Aashish23092/finextract/dto"
	"github.com/Aashish23092/finextract/utils"
	"github.com/shopspring/decimal"
)

// Benefit history sheets (ESPP purchases, RSU releases) name the event date
// and the share count differently per plan type.
var (
	awardDateColumns = []string{"purchase date", "vest date", "release date", "date acquired", "grant date", "date"}
	awardQtyColumns  = []string{
		"purchased qty.", "purchased qty", "released qty", "vested qty.", "vested qty",
		"sellable qty.", "sellable qty", "quantity", "shares", "qty",
	}
	awardPriceColumns = []string{
		"purchase price", "release price", "vest price", "fmv", "purchase date fmv", "grant price", "price",
	}
	awardValueColumns = []string{"total value", "est. market value", "market value", "value", "amount"}
)

// parseEquityAwards emits one transaction per award event carrying the
// symbol and share count. Summary and grant rows without an event date or
// a share count are ignored.
func parseEquityAwards(content string, doc *dto.ExtractedDocument) {
	records, errs := readRecords(content)
	doc.Errors = append(doc.Errors, errs...)
	eachRow(records, 0, doc, func(r Row) error {
		rawDate := r.Get(awardDateColumns...)
		rawQty := r.Get(awardQtyColumns...)
		if rawDate == "" && rawQty == "" {
			return errSkipRow
		}
		date := utils.ParseDateFlexible(rawDate)
		if date == nil {
			return fmt.Errorf("invalid award date %q", rawDate)
		}
		qty := utils.ParseQuantity(rawQty)
		if qty == nil {
			return fmt.Errorf("invalid quantity %q", rawQty)
		}

		amount := decimal.Zero
		if v := utils.ParseAmount(r.Get(awardValueColumns...)); v != nil {
			amount = *v
		} else if p := utils.ParseAmount(r.Get(awardPriceColumns...)); p != nil {
			amount = p.Mul(*qty).Round(2)
		}

		recordType := r.Get("record type")
		symbol := strings.ToUpper(r.Get("symbol"))
		desc := strings.TrimSpace(recordType + " " + symbol)
		if plan := r.Get("plan type", "grant number"); plan != "" {
			desc += " (" + plan + ")"
		}
		doc.Transactions = append(doc.Transactions, dto.ParsedTransaction{
			Date:            *date,
			Description:     utils.CleanCell(desc),
			Amount:          amount,
			TransactionType: strings.ToLower(recordType),
			Symbol:          symbol,
			Quantity:        qty,
		})
		return nil
	})
}
