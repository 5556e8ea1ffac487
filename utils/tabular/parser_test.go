package tabular

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Aashish23092/finextract/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParse_USBank(t *testing.T) {
	content := `"Date","Transaction","Name","Memo","Amount"
"2024-01-05","DEBIT","COFFEE SHOP","Download from usbank.com","-4.50"
"2024-01-06","CREDIT","PAYROLL ACME","","1,250.00"
`
	doc := Parse(content, "usb_checking.csv")

	require.Equal(t, dto.FormatUSBank, doc.Format)
	assert.Empty(t, doc.Errors)
	require.Len(t, doc.Transactions, 2)

	first := doc.Transactions[0]
	assert.Equal(t, day(2024, 1, 5), first.Date)
	assert.Equal(t, "DEBIT - COFFEE SHOP", first.Description)
	assert.Equal(t, "Download from usbank.com", first.Memo)
	assert.True(t, dec("-4.50").Equal(first.Amount))
	assert.Equal(t, dto.TransactionDebit, first.TransactionType)

	assert.True(t, dec("1250").Equal(doc.Transactions[1].Amount))
	assert.Equal(t, dto.TransactionCredit, doc.Transactions[1].TransactionType)
}

func TestParse_RowFailureIsolation(t *testing.T) {
	var b strings.Builder
	b.WriteString(`"Date","Transaction","Name","Memo","Amount"` + "\n")
	for i := 1; i <= 10; i++ {
		amount := fmt.Sprintf("-%d.00", i)
		if i == 5 {
			amount = "twelve"
		}
		fmt.Fprintf(&b, "\"2024-02-%02d\",\"DEBIT\",\"SHOP %d\",\"\",\"%s\"\n", i, i, amount)
	}

	doc := Parse(b.String(), "usb.csv")

	assert.Len(t, doc.Transactions, 9)
	require.Len(t, doc.Errors, 1)
	assert.Contains(t, doc.Errors[0], "row 6")
	assert.Contains(t, doc.Errors[0], "invalid amount")
	assert.False(t, doc.Failed())
}

func TestParse_Chase(t *testing.T) {
	content := "Details,Posting Date,Description,Amount,Type,Balance\n" +
		"DEBIT,01/15/2024,\"AMAZON, INC\",-25.99,DEBIT_CARD,1000.00\n" +
		"CREDIT,01/16/2024,PAYROLL,2500.00,ACH_CREDIT,\n"

	doc := Parse(content, "chase.csv")

	require.Len(t, doc.Transactions, 2)
	assert.Empty(t, doc.Errors)
	assert.Equal(t, "AMAZON, INC", doc.Transactions[0].Description)
	assert.Equal(t, "debit_card", doc.Transactions[0].TransactionType)
	require.NotNil(t, doc.Transactions[0].Balance)
	assert.True(t, dec("1000").Equal(*doc.Transactions[0].Balance))
	assert.Nil(t, doc.Transactions[1].Balance)
	assert.Equal(t, day(2024, 1, 16), doc.Transactions[1].Date)
}

func TestParse_GenericRequiresAllColumns(t *testing.T) {
	doc := Parse("Date,Amount\n2024-01-01,5.00\n2024-01-02,6.00\n", "export.csv")

	assert.Equal(t, dto.FormatGeneric, doc.Format)
	assert.Empty(t, doc.Transactions)
	assert.Empty(t, doc.Errors)
}

func TestParse_Generic(t *testing.T) {
	content := "Transaction Date,Payee Name,Amount\n" +
		"2024-03-01,Grocer,-42.10\n" +
		"03/02/2024,Refund,10.00\n" +
		"yesterday,Broken,1.00\n"

	doc := Parse(content, "bank.csv")

	require.Equal(t, dto.FormatGeneric, doc.Format)
	require.Len(t, doc.Transactions, 2)
	assert.Equal(t, "Grocer", doc.Transactions[0].Description)
	assert.Equal(t, day(2024, 3, 2), doc.Transactions[1].Date)
	require.Len(t, doc.Errors, 1)
	assert.Contains(t, doc.Errors[0], "invalid date")
}

func TestParse_Unknown(t *testing.T) {
	doc := Parse("foo,bar\n1,2\n", "mystery.csv")

	assert.Equal(t, dto.FormatUnknown, doc.Format)
	assert.Equal(t, []string{"Unknown CSV format: mystery.csv"}, doc.Errors)
	assert.True(t, doc.Failed())
}

func TestParse_Idempotent(t *testing.T) {
	content := "Details,Posting Date,Description,Amount,Type,Balance\nDEBIT,01/15/2024,Shop,-1.00,DEBIT_CARD,\n"
	assert.Equal(t, Parse(content, "a.csv"), Parse(content, "a.csv"))
}

func TestParse_FilenameDigitsStayOutOfRows(t *testing.T) {
	doc := Parse("Date,Description,Amount\n2024-01-05,Coffee,-4.50\n", "transactions_2024.csv")

	require.Len(t, doc.Transactions, 1)
	assert.Empty(t, doc.Transactions[0].AccountNumber)
	require.NotNil(t, doc.Account)
	assert.Equal(t, "2024", doc.Account.Last4)
}

func TestParseWorkbook_SheetNameIsNotAccount(t *testing.T) {
	sheets := []Sheet{{Name: "ESPP 2025", Rows: [][]string{
		{"Date", "Description", "Amount"},
		{"2025-02-01", "Payroll", "100.00"},
	}}}

	doc := ParseWorkbook(sheets, "BenefitHistory.xlsx")

	require.Len(t, doc.Transactions, 1)
	assert.Empty(t, doc.Transactions[0].AccountNumber)
	require.NotNil(t, doc.Account)
	assert.Empty(t, doc.Account.Last4)
}

func TestParse_FidelityStatementSections(t *testing.T) {
	content := `Account Type,Account,Beginning mkt Value,Change in Investment,Ending mkt Value,Ending Net Value
Individual,X12345678,"10,000.00",500.00,"10,500.00","10,450.00"
ROTH IRA,223456789,5000.00,100.00,5100.00,
,,,,,
Symbol/CUSIP,Description,Quantity,Price,Beginning Value,Ending Value,Cost Basis
X12345678,,,,,,
AAPL,APPLE INC,10,190.50,1800.00,1905.00,1500.00
SPAXX,FIDELITY GOVERNMENT MONEY MARKET,100,1.00,100,100,
223456789,,,,,,
VTI,VANGUARD TOTAL STOCK MKT,5.5,250.00,1300,1375.00,1200
`
	doc := Parse(content, "Portfolio_Positions.csv")

	require.Equal(t, dto.FormatFidelityStatement, doc.Format)
	assert.Empty(t, doc.Errors)

	require.Len(t, doc.Balances, 2)
	assert.Equal(t, "X12345678", doc.Balances[0].AccountNumber)
	assert.True(t, dec("10450").Equal(doc.Balances[0].Balance))
	assert.True(t, dec("5100").Equal(doc.Balances[1].Balance), "falls back to ending mkt value")

	require.Len(t, doc.Holdings, 3)
	aapl := doc.Holdings[0]
	assert.Equal(t, "AAPL", aapl.Symbol)
	assert.Equal(t, "X12345678", aapl.AccountNumber)
	assert.True(t, dec("10").Equal(aapl.Quantity))
	require.NotNil(t, aapl.Value)
	assert.True(t, dec("1905").Equal(*aapl.Value))
	require.NotNil(t, aapl.CostBasis)
	assert.Nil(t, doc.Holdings[1].CostBasis)
	assert.Equal(t, "223456789", doc.Holdings[2].AccountNumber)
	assert.True(t, dec("5.5").Equal(doc.Holdings[2].Quantity))
}

func TestParse_FidelityTransactions(t *testing.T) {
	content := "Run Date,Account,Action,Symbol,Security Description,Quantity,Price ($),Commission ($),Fees ($),Amount ($),Settlement Date\n" +
		"01/10/2024,Z123,YOU BOUGHT,VTI,VANGUARD TOTAL,2.123456,240.00,,,-509.63,01/12/2024\n" +
		"01/11/2024,Z123,DIVIDEND RECEIVED,VTI,VANGUARD TOTAL,,,,,12.34,\n" +
		",,,,,,,,,,\n" +
		"\"The data and information in this spreadsheet is provided to you solely for your use\",,\n"

	doc := Parse(content, "History_for_Account_Z123.csv")

	require.Equal(t, dto.FormatFidelityTransactions, doc.Format)
	assert.Empty(t, doc.Errors)
	require.Len(t, doc.Transactions, 2)

	buy := doc.Transactions[0]
	assert.Equal(t, "YOU BOUGHT VTI - VANGUARD TOTAL", buy.Description)
	assert.Equal(t, "you bought", buy.TransactionType)
	assert.Equal(t, "Z123", buy.AccountNumber)
	require.NotNil(t, buy.Quantity)
	assert.Equal(t, "2.123456", buy.Quantity.String())
	assert.Nil(t, doc.Transactions[1].Quantity)
}

func TestParse_401k(t *testing.T) {
	content := `Plan Name: ACME 401(k) Plan
Date Range: 01/01/2024 - 12/31/2024
Date,Transaction Type,Investment,Employee Amount,Employer Amount
01/15/2024,Contribution,Target 2050,500.00,250.00
01/31/2024,Contribution,Target 2050,"1,000.00",
`
	doc := Parse(content, "401k.csv")

	require.Equal(t, dto.Format401k, doc.Format)
	assert.Empty(t, doc.Errors)
	require.Len(t, doc.Transactions, 2)
	assert.True(t, dec("750").Equal(doc.Transactions[0].Amount))
	assert.True(t, dec("1000").Equal(doc.Transactions[1].Amount))
	assert.Equal(t, "Contribution", doc.Transactions[0].Description)
	assert.Equal(t, dto.TransactionContribution, doc.Transactions[0].TransactionType)
}

func TestParse_WavePnL(t *testing.T) {
	content := `Profit and Loss,,
E-AUTOMATION,,
Date Range: 2025-01-01 to 2025-12-31,,
Report Type: Accrual (Paid & Unpaid),,
,,
,ACCOUNTS,Jan 01 2025 to Dec 31 2025
,Income,$25555.99
,Cost of Goods Sold,$7608.96
,Gross Profit,$17947.03
,Operating Expenses,$7714.22
,Net Profit,$10232.81
`
	doc := Parse(content, "wave_pnl.csv")

	require.Equal(t, dto.FormatWavePnL, doc.Format)
	assert.Empty(t, doc.Errors)
	require.Len(t, doc.Transactions, 3)

	income := doc.Transactions[0]
	assert.True(t, income.IsIncome)
	assert.Equal(t, "1", income.ScheduleCLine)
	assert.True(t, dec("25555.99").Equal(income.Amount))
	assert.Equal(t, day(2025, 1, 1), income.Date)

	cogs := doc.Transactions[1]
	assert.Equal(t, "4", cogs.ScheduleCLine)
	assert.True(t, dec("-7608.96").Equal(cogs.Amount))

	opex := doc.Transactions[2]
	assert.False(t, opex.IsIncome)
	assert.Equal(t, "48", opex.ScheduleCLine)
}

func TestParse_WavePnLWithoutYear(t *testing.T) {
	doc := Parse("Profit and Loss,,\n,Income,$10.00\n", "wave.csv")
	assert.Empty(t, doc.Transactions)
	assert.True(t, doc.Failed())
}

func TestParse_WaveTransactions(t *testing.T) {
	content := "Date,Description,Account Name,Category,Debit Amount,Credit Amount,Notes\n" +
		"2025-02-01,Client invoice 1001,Checking,Sales,,1500.00,\n" +
		"2025-02-03,Adobe,Business Visa,Software,52.99,,monthly\n" +
		"2025-02-04,Zero row,Checking,Misc,,,\n"

	doc := Parse(content, "wave_transactions.csv")

	require.Equal(t, dto.FormatWaveTransactions, doc.Format)
	assert.Empty(t, doc.Errors)
	require.Len(t, doc.Transactions, 2)

	assert.True(t, doc.Transactions[0].IsIncome)
	assert.True(t, dec("1500").Equal(doc.Transactions[0].Amount))
	assert.Equal(t, "Checking", doc.Transactions[0].AccountName)

	adobe := doc.Transactions[1]
	assert.Equal(t, "Business Visa", adobe.AccountName)
	assert.Empty(t, adobe.AccountNumber)
	assert.True(t, dec("-52.99").Equal(adobe.Amount))
	assert.Equal(t, "18", adobe.ScheduleCLine)
	assert.Equal(t, "Office Expense", adobe.ScheduleCLabel)
	assert.Equal(t, "monthly", adobe.Memo)
}

func TestScheduleCCategory(t *testing.T) {
	tests := []struct {
		category string
		credit   bool
		income   bool
		line     string
	}{
		{"Anything", true, true, "1"},
		{"Consulting Revenue", false, true, "1"},
		{"Mortgage Interest", false, false, "16a"},
		{"Bank Interest", false, false, "16b"},
		{"Meals & Entertainment", false, false, "24b"},
		{"Miscellaneous", false, false, "48"},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			income, line, _ := ScheduleCCategory(tt.category, tt.credit)
			assert.Equal(t, tt.income, income)
			assert.Equal(t, tt.line, line)
		})
	}
}

func TestParse_Holdings(t *testing.T) {
	content := `Account Summary as of 01/31/2025
Symbol,Description,Quantity,Last Price,Market Value,Cost Basis
AAPL*,Apple Inc,10,190.00,"1,900.00",1500.00
CASH,,,,250.00,
Account Total,,,,"2,150.00",
`
	doc := Parse(content, "etrade_1234_positions.csv")

	require.Equal(t, dto.FormatHoldings, doc.Format)
	assert.Empty(t, doc.Errors)
	require.Len(t, doc.Holdings, 2)

	aapl := doc.Holdings[0]
	assert.Equal(t, "AAPL", aapl.Symbol)
	assert.Empty(t, aapl.AccountNumber)
	require.NotNil(t, doc.Account)
	assert.Equal(t, "1234", doc.Account.Last4)
	require.NotNil(t, aapl.Price)
	assert.True(t, dec("190").Equal(*aapl.Price))
	require.NotNil(t, aapl.Value)
	assert.True(t, dec("1900").Equal(*aapl.Value))

	cash := doc.Holdings[1]
	assert.Equal(t, "CASH", cash.Description)
	assert.True(t, cash.Quantity.IsZero())
}

func TestParse_OFXInvalid(t *testing.T) {
	doc := Parse("OFXHEADER:100\nnot really ofx", "bank.ofx")

	assert.Equal(t, dto.FormatOFX, doc.Format)
	assert.True(t, doc.Failed())
	assert.Contains(t, doc.Errors[0], "invalid OFX document")
}

func TestParseWorkbook_ShiftedColumns(t *testing.T) {
	sheets := []Sheet{
		{Name: "ESPP", Rows: [][]string{
			{"Record Type", "Symbol", "Purchase Date", "", "Purchased Qty.", "Purchase Price"},
			{"Purchase", "acme", "01/31/2024", "lot A", "10", "85.00"},
			{"Purchase", "acme", "07/31/2024", "lot B", "12.5", "90.10"},
		}},
		{Name: "Empty", Rows: [][]string{{"", ""}}},
		{Name: "Notes", Rows: [][]string{{"Generated by plan admin"}}},
	}

	doc := ParseWorkbook(sheets, "BenefitHistory.xlsx")

	assert.Equal(t, dto.FormatEquityAwards, doc.Format)
	require.Len(t, doc.Transactions, 2)

	first := doc.Transactions[0]
	assert.Equal(t, "ACME", first.Symbol)
	assert.Equal(t, day(2024, 1, 31), first.Date)
	require.NotNil(t, first.Quantity)
	assert.True(t, dec("10").Equal(*first.Quantity))
	assert.True(t, dec("850").Equal(first.Amount))
	assert.Equal(t, "purchase", first.TransactionType)
	assert.True(t, dec("1126.25").Equal(doc.Transactions[1].Amount))

	require.Len(t, doc.Errors, 1)
	assert.True(t, strings.HasPrefix(doc.Errors[0], "sheet Notes: Unknown CSV format"))
}

func TestParseWorkbook_NoSheets(t *testing.T) {
	doc := ParseWorkbook(nil, "empty.xlsx")
	assert.Equal(t, []string{"No sheets found in empty.xlsx"}, doc.Errors)
}
