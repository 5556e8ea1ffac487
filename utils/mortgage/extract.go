// Package mortgage reads the payment and balance fields of a mortgage
// servicer's monthly statement from its extracted text.
package mortgage

import (
	"regexp"
	"strings"
	"time"

	"github.com/Aashish23092/finextract/dto"
	"github.com/Aashish23092/finextract/utils"
	"github.com/shopspring/decimal"
)

var (
	loanNumberPattern = regexp.MustCompile(`\d[\d\-]+`)
	ratePattern       = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	addressPattern    = regexp.MustCompile(`[^\n]*[^\s\n]`)
)

// Label synonyms, most specific first.
var (
	loanNumberLabels    = []string{"loan number", "loan #", "loan no.", "loan no"}
	statementDateLabels = []string{"statement date", "cycle date"}
	dueDateLabels       = []string{"payment due date", "due date", "amount due by"}
	principalLabels     = []string{"unpaid principal balance", "principal balance", "outstanding principal"}
	rateLabels          = []string{"interest rate"}
	paymentLabels       = []string{"total amount due", "amount due", "regular monthly payment"}
	escrowBalanceLabels = []string{"escrow balance"}
	ytdInterestLabels   = []string{
		"year-to-date interest paid", "year-to-date interest", "ytd interest paid", "ytd interest",
	}
	ytdTaxLabels = []string{
		"year-to-date real estate taxes paid", "year-to-date taxes paid", "year-to-date tax paid",
		"ytd taxes paid", "ytd taxes", "ytd tax",
	}
	addressLabels = []string{"property address"}
)

var dateLayouts = []string{"1/2/2006", "January 2, 2006"}

// Extract reads the fixed statement field set from text. Fields that cannot
// be found stay nil; an empty text yields an all-nil statement.
func Extract(text string) dto.MortgageStatement {
	st := dto.MortgageStatement{RawText: text}
	if strings.TrimSpace(text) == "" {
		return st
	}

	st.LoanNumber = utils.FindLabeledValue(text, loanNumberLabels, loanNumberPattern)
	st.StatementDate = findDate(text, statementDateLabels)
	st.DueDate = findDate(text, dueDateLabels)
	st.UnpaidPrincipal = findAmount(text, principalLabels)
	st.InterestRate = findRate(text)
	st.PaymentAmount = findAmount(text, paymentLabels)
	st.PrincipalPortion = findAmount(text, []string{"principal"})
	st.InterestPortion = findAmount(text, []string{"interest"})
	st.EscrowPortion = findAmount(text, []string{"escrow"})
	st.EscrowBalance = findAmount(text, escrowBalanceLabels)
	st.YTDInterest = findAmount(text, ytdInterestLabels)
	st.YTDTaxes = findAmount(text, ytdTaxLabels)

	if addr := utils.FindLabeledValue(text, addressLabels, addressPattern); addr != nil {
		v := utils.CleanCell(*addr)
		st.PropertyAddress = &v
	}
	return st
}

func findAmount(text string, labels []string) *decimal.Decimal {
	v := utils.FindLabeledValue(text, labels, utils.AmountPattern)
	if v == nil {
		return nil
	}
	return utils.ParseAmount(*v)
}

func findRate(text string) *decimal.Decimal {
	v := utils.FindLabeledValue(text, rateLabels, ratePattern)
	if v == nil {
		return nil
	}
	d, err := decimal.NewFromString(*v)
	if err != nil {
		return nil
	}
	return &d
}

func findDate(text string, labels []string) *time.Time {
	v := utils.FindLabeledValue(text, labels, utils.AnyDatePattern)
	if v == nil {
		return nil
	}
	if t := utils.ParseDate(*v, dateLayouts...); t != nil {
		return t
	}
	return utils.ParseDateFlexible(*v)
}
