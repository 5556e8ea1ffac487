package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TabularFormat identifies the layout of a statement export.
type TabularFormat string

const (
	FormatUSBank               TabularFormat = "usb_bank"
	FormatChase                TabularFormat = "chase"
	FormatFidelityStatement    TabularFormat = "fidelity_statement"
	FormatFidelityTransactions TabularFormat = "fidelity_transactions"
	Format401k                 TabularFormat = "401k"
	FormatOFX                  TabularFormat = "ofx"
	FormatWavePnL              TabularFormat = "wave_pnl"
	FormatWaveTransactions     TabularFormat = "wave_transactions"
	FormatEquityAwards         TabularFormat = "equity_awards"
	FormatHoldings             TabularFormat = "holdings"
	FormatGeneric              TabularFormat = "generic"
	FormatUnknown              TabularFormat = "unknown"
)

// TransactionType values emitted by the bank formats. Brokerage formats
// pass the institution's action text through lower-cased.
const (
	TransactionCredit       = "credit"
	TransactionDebit        = "debit"
	TransactionContribution = "contribution"
)

type ParsedTransaction struct {
	Date            time.Time        `json:"date"`
	Description     string           `json:"description"`
	Memo            string           `json:"memo,omitempty"`
	Amount          decimal.Decimal  `json:"amount"`
	TransactionType string           `json:"transaction_type"`
	Balance         *decimal.Decimal `json:"balance,omitempty"`
	Symbol          string           `json:"symbol,omitempty"`
	Quantity        *decimal.Decimal `json:"quantity,omitempty"`
	ExternalID      string           `json:"external_id,omitempty"`
	AccountNumber   string           `json:"account_number,omitempty"`
	AccountName     string           `json:"account_name,omitempty"`

	// Business exports carry a Schedule C classification.
	Category       string `json:"category,omitempty"`
	ScheduleCLine  string `json:"schedule_c_line,omitempty"`
	ScheduleCLabel string `json:"schedule_c_label,omitempty"`
	IsIncome       bool   `json:"is_income,omitempty"`
}

type ParsedAccountBalance struct {
	AccountType   string          `json:"account_type"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
}

type ParsedHolding struct {
	AccountNumber string           `json:"account_number"`
	Symbol        string           `json:"symbol"`
	Description   string           `json:"description"`
	Quantity      decimal.Decimal  `json:"quantity"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	Value         *decimal.Decimal `json:"value,omitempty"`
	CostBasis     *decimal.Decimal `json:"cost_basis,omitempty"`
}

// AccountHint is what an upload's file name suggests about its account.
// It is a guess and is never copied into row data.
type AccountHint struct {
	Institution string `json:"institution"`
	Last4       string `json:"last4"`
	AccountType string `json:"account_type"`
}

// ExtractedDocument is the envelope returned for every tabular upload.
// Rows that fail are reported in Errors while the rest are still returned.
type ExtractedDocument struct {
	Format       TabularFormat          `json:"format"`
	Filename     string                 `json:"filename"`
	Account      *AccountHint           `json:"account_hint,omitempty"`
	Transactions []ParsedTransaction    `json:"transactions"`
	Balances     []ParsedAccountBalance `json:"account_balances"`
	Holdings     []ParsedHolding        `json:"holdings"`
	Errors       []string               `json:"errors"`
}

// NewExtractedDocument returns an envelope with non-nil slices so it
// serializes as empty lists.
func NewExtractedDocument(format TabularFormat, filename string) *ExtractedDocument {
	return &ExtractedDocument{
		Format:       format,
		Filename:     filename,
		Transactions: []ParsedTransaction{},
		Balances:     []ParsedAccountBalance{},
		Holdings:     []ParsedHolding{},
		Errors:       []string{},
	}
}

// Failed reports total failure: nothing extracted and at least one error.
func (d *ExtractedDocument) Failed() bool {
	return len(d.Transactions) == 0 && len(d.Balances) == 0 && len(d.Holdings) == 0 && len(d.Errors) > 0
}

// Merge appends another document's rows and errors. Errors are prefixed
// when a prefix is given.
func (d *ExtractedDocument) Merge(other *ExtractedDocument, prefix string) {
	d.Transactions = append(d.Transactions, other.Transactions...)
	d.Balances = append(d.Balances, other.Balances...)
	d.Holdings = append(d.Holdings, other.Holdings...)
	for _, e := range other.Errors {
		if prefix != "" {
			e = prefix + ": " + e
		}
		d.Errors = append(d.Errors, e)
	}
}

// MortgageStatement holds the fields read from a mortgage statement.
// A nil field was not found in the text.
type MortgageStatement struct {
	StatementDate    *time.Time       `json:"statement_date"`
	DueDate          *time.Time       `json:"due_date"`
	UnpaidPrincipal  *decimal.Decimal `json:"unpaid_principal"`
	InterestRate     *decimal.Decimal `json:"interest_rate"`
	PaymentAmount    *decimal.Decimal `json:"payment_amount"`
	PrincipalPortion *decimal.Decimal `json:"principal_portion"`
	InterestPortion  *decimal.Decimal `json:"interest_portion"`
	EscrowPortion    *decimal.Decimal `json:"escrow_portion"`
	EscrowBalance    *decimal.Decimal `json:"escrow_balance"`
	YTDInterest      *decimal.Decimal `json:"ytd_interest"`
	YTDTaxes         *decimal.Decimal `json:"ytd_taxes"`
	LoanNumber       *string          `json:"loan_number"`
	PropertyAddress  *string          `json:"property_address"`
	RawText          string           `json:"raw_text"`
	Error            string           `json:"error,omitempty"`
}

type Receipt struct {
	Provider    string           `json:"provider"`
	ServiceDate *time.Time       `json:"service_date"`
	PaidDate    *time.Time       `json:"paid_date"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    string           `json:"category"`
	TaxYear     *int             `json:"tax_year"`
	Barcode     string           `json:"barcode,omitempty"`
	RawText     string           `json:"raw_text"`
	Error       string           `json:"error,omitempty"`
}

// DedupKey builds the composite key storage layers use to skip re-imported
// rows. An institution transaction id wins when present.
func DedupKey(accountID string, t ParsedTransaction) string {
	if t.ExternalID != "" {
		return accountID + "|" + t.ExternalID
	}
	desc := t.Description
	if r := []rune(desc); len(r) > 50 {
		desc = string(r[:50])
	}
	return accountID + "|" + t.Date.Format("2006-01-02") + "|" + t.Amount.StringFixed(2) + "|" + desc
}
