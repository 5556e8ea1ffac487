package tabular

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Aashish23092/finextract/dto"
	"github.com/Aashish23092/finextract/utils"
	"github.com/shopspring/decimal"
)

type scheduleCLine struct {
	keywords []string
	line     string
	label    string
}

// scheduleCMap maps accounting categories to Schedule C expense lines.
// Order matters: "mortgage interest" must win over "interest".
var scheduleCMap = []scheduleCLine{
	{[]string{"advertising", "marketing", "promotion", "ads"}, "8", "Advertising"},
	{[]string{"mileage", "car", "truck", "auto", "vehicle", "gas", "fuel"}, "9", "Car & Truck Expenses"},
	{[]string{"commission", "referral fee"}, "10", "Commissions & Fees"},
	{[]string{"contract", "freelance", "subcontract", "1099"}, "11", "Contract Labor"},
	{[]string{"depreciation", "amortization"}, "13", "Depreciation"},
	{[]string{"insurance"}, "15", "Insurance"},
	{[]string{"interest - mortgage", "mortgage interest"}, "16a", "Mortgage Interest"},
	{[]string{"interest"}, "16b", "Interest - Other"},
	{[]string{"legal", "accounting", "attorney", "cpa", "bookkeeping"}, "17", "Legal & Professional Services"},
	{[]string{"office supply", "office expense", "software", "saas", "subscript", "app", "cloud", "hosting"}, "18", "Office Expense"},
	{[]string{"rent", "lease"}, "20b", "Rent/Lease - Other"},
	{[]string{"repair", "maintenance"}, "21", "Repairs & Maintenance"},
	{[]string{"supplies"}, "22", "Supplies"},
	{[]string{"tax", "license", "permit", "registration"}, "23", "Taxes & Licenses"},
	{[]string{"travel", "hotel", "flight", "airfare", "lodging"}, "24a", "Travel"},
	{[]string{"meal", "dining", "food", "restaurant", "entertainment"}, "24b", "Meals (50%)"},
	{[]string{"utility", "electric", "internet", "phone", "water"}, "25", "Utilities"},
	{[]string{"wage", "salary", "payroll"}, "26", "Wages"},
	{[]string{"home office"}, "30", "Home Office"},
}

var incomeKeywords = []string{"income", "revenue", "sales", "invoice", "payment received",
	"service", "consulting", "fee income", "client"}

const (
	grossReceiptsLine  = "1"
	grossReceiptsLabel = "Gross Receipts / Sales"
	cogsLine           = "4"
	cogsLabel          = "Cost of Goods Sold"
	otherExpenseLine   = "48"
	otherExpenseLabel  = "Other Expenses"
)

// ScheduleCCategory classifies an accounting category. Credits and
// income-like categories are gross receipts; everything else maps to the
// first matching expense line, else "Other Expenses".
func ScheduleCCategory(category string, isCredit bool) (isIncome bool, line, label string) {
	c := strings.ToLower(category)
	if isCredit || utils.ContainsAny(c, incomeKeywords...) {
		return true, grossReceiptsLine, grossReceiptsLabel
	}
	for _, m := range scheduleCMap {
		if utils.ContainsAny(c, m.keywords...) {
			return false, m.line, m.label
		}
	}
	return false, otherExpenseLine, otherExpenseLabel
}

var (
	// calculated rows of the report, never imported
	pnlSkipNames = map[string]bool{
		"gross profit": true, "net profit": true, "net loss": true, "net income": true,
		"total income": true, "total expenses": true, "total cost of goods sold": true,
		"total operating expenses": true, "accounts": true, "": true,
	}
	pnlIncomeNames = map[string]bool{"income": true, "revenue": true, "sales": true, "other income": true}
	pnlCOGSNames   = map[string]bool{
		"cost of goods sold": true, "cost of sales": true, "cogs": true,
		"cost of goods": true, "direct costs": true,
	}

	yearPattern = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
)

// reportYear reads the tax year from the "Date Range: 2025-01-01 to ..." line.
func reportYear(records [][]string) (int, bool) {
	for _, rec := range records {
		line := strings.Join(rec, " ")
		if !strings.Contains(strings.ToLower(line), "date range") {
			continue
		}
		if y := yearPattern.FindString(line); y != "" {
			var year int
			fmt.Sscanf(y, "%d", &year)
			return year, true
		}
	}
	return 0, false
}

// pnlColumns returns the account name and amount of a report line. Wave
// indents accounts one column: ",Income,$25555.99".
func pnlColumns(rec []string) (name, amount string) {
	cells := make([]string, len(rec))
	for i, c := range rec {
		cells[i] = strings.TrimSpace(strings.Trim(strings.TrimSpace(c), `"`))
	}
	switch {
	case cells[0] == "" && len(cells) >= 3:
		return cells[1], cells[2]
	case cells[0] == "" && len(cells) == 2:
		return cells[1], ""
	default:
		return cells[0], cells[len(cells)-1]
	}
}

// parseWavePnL imports a Profit & Loss report as one yearly line per
// account, dated January 1 of the report year.
func parseWavePnL(content string, doc *dto.ExtractedDocument) {
	records, errs := readRecords(content)
	doc.Errors = append(doc.Errors, errs...)

	year, ok := reportYear(records)
	if !ok {
		doc.Errors = append(doc.Errors, "no report year found in Date Range line")
		return
	}
	date := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

	for i, rec := range records {
		if filledCells(rec) < 2 {
			continue
		}
		name, rawAmount := pnlColumns(rec)
		lower := strings.ToLower(strings.TrimSpace(name))
		if pnlSkipNames[lower] || strings.HasPrefix(lower, "date range") ||
			strings.HasPrefix(lower, "report type") || strings.HasPrefix(lower, "profit and loss") {
			continue
		}
		if utils.IsBlank(rawAmount) {
			continue
		}
		amount := utils.ParseAmount(rawAmount)
		if amount == nil {
			doc.Errors = append(doc.Errors, fmt.Sprintf("row %d: invalid amount %q", i+1, rawAmount))
			continue
		}
		if amount.IsZero() {
			continue
		}

		var isIncome bool
		switch {
		case pnlIncomeNames[lower] || (strings.Contains(lower, "income") && !strings.Contains(lower, "net")):
			isIncome = true
		case pnlCOGSNames[lower] || strings.Contains(lower, "operating expense"):
			isIncome = false
		default:
			isIncome = amount.IsPositive()
		}

		_, line, label := ScheduleCCategory(name, isIncome)
		value := amount.Abs()
		switch {
		case isIncome:
			line, label = grossReceiptsLine, grossReceiptsLabel
		case pnlCOGSNames[lower]:
			line, label = cogsLine, cogsLabel
			value = value.Neg()
		default:
			value = value.Neg()
		}

		doc.Transactions = append(doc.Transactions, dto.ParsedTransaction{
			Date:            date,
			Description:     utils.CleanCell(name),
			Memo:            fmt.Sprintf("Imported from Wave P&L report (%d)", year),
			Amount:          value,
			TransactionType: signedType(value),
			Category:        utils.CleanCell(name),
			ScheduleCLine:   line,
			ScheduleCLabel:  label,
			IsIncome:        isIncome,
		})
	}
}

func optionalAmount(raw string) (decimal.Decimal, error) {
	if utils.IsBlank(raw) {
		return decimal.Zero, nil
	}
	d := utils.ParseAmount(raw)
	if d == nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	return *d, nil
}

// parseWaveTransactions reads the accounting transaction export. Column
// names vary between export versions; amounts come either as separate
// debit/credit columns or as one signed total.
func parseWaveTransactions(content string, doc *dto.ExtractedDocument) {
	records, errs := readRecords(content)
	doc.Errors = append(doc.Errors, errs...)
	eachRow(records, 0, doc, func(r Row) error {
		rawDate := r.Get("date", "transaction date", "transaction_date")
		date := utils.ParseDate(rawDate, "2006-01-02", "01/02/2006", "1/2/2006")
		if date == nil {
			return fmt.Errorf("invalid date %q", rawDate)
		}

		debitRaw := r.Get("debit amount", "debit", "amount (debit)")
		creditRaw := r.Get("credit amount", "credit", "amount (credit)")
		var amount decimal.Decimal
		var isCredit bool
		if debitRaw != "" || creditRaw != "" {
			debit, err := optionalAmount(debitRaw)
			if err != nil {
				return err
			}
			credit, err := optionalAmount(creditRaw)
			if err != nil {
				return err
			}
			isCredit = credit.IsPositive()
			if isCredit {
				amount = credit
			} else {
				amount = debit.Neg()
			}
		} else {
			total, err := optionalAmount(r.Get("total", "amount", "total amount", "net amount"))
			if err != nil {
				return err
			}
			amount = total
			isCredit = !total.IsNegative()
		}
		if amount.IsZero() {
			return errSkipRow
		}

		category := r.Get("category", "category name", "category_name")
		isIncome, line, label := ScheduleCCategory(category, isCredit)
		desc := r.Get("description", "memo", "name")
		if desc == "" {
			desc = "(no description)"
		}
		doc.Transactions = append(doc.Transactions, dto.ParsedTransaction{
			Date:            *date,
			Description:     utils.CleanCell(desc),
			Memo:            utils.CleanCell(r.Get("notes", "note")),
			Amount:          amount,
			TransactionType: signedType(amount),
			AccountName:     utils.CleanCell(r.Get("account name", "account_name", "account")),
			Category:        utils.CleanCell(category),
			ScheduleCLine:   line,
			ScheduleCLabel:  label,
			IsIncome:        isIncome,
		})
		return nil
	})
}
