package tabular

import (
	"fmt"
	"strings"

	"github.com/Aashish23092/finextract/dto"
	"github.com/Aashish23092/finextract/utils"
	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
)

func ofxAmount(a ofxgo.Amount) (decimal.Decimal, error) {
	return decimal.NewFromString(a.FloatString(10))
}

// parseOFX reads OFX/QFX bank and credit card statements. Investment
// statements are not supported.
func parseOFX(content string, doc *dto.ExtractedDocument) {
	resp, err := ofxgo.ParseResponse(strings.NewReader(content))
	if err != nil {
		doc.Errors = append(doc.Errors, fmt.Sprintf("invalid OFX document: %v", err))
		return
	}

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok {
			doc.Errors = append(doc.Errors, fmt.Sprintf("unexpected bank message %T", msg))
			continue
		}
		account := stmt.BankAcctFrom.AcctID.String()
		ofxTransactions(stmt.BankTranList, account, doc)
		ofxBalance(stmt.BalAmt, strings.ToLower(stmt.BankAcctFrom.AcctType.String()), account, doc)
	}
	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok {
			doc.Errors = append(doc.Errors, fmt.Sprintf("unexpected credit card message %T", msg))
			continue
		}
		account := stmt.CCAcctFrom.AcctID.String()
		ofxTransactions(stmt.BankTranList, account, doc)
		ofxBalance(stmt.BalAmt, "credit_card", account, doc)
	}
	if len(resp.InvStmt) > 0 {
		doc.Errors = append(doc.Errors, fmt.Sprintf("%d investment statement(s) skipped", len(resp.InvStmt)))
	}
}

func ofxTransactions(list *ofxgo.TransactionList, account string, doc *dto.ExtractedDocument) {
	if list == nil {
		return
	}
	for i, txn := range list.Transactions {
		amount, err := ofxAmount(txn.TrnAmt)
		if err != nil {
			doc.Errors = append(doc.Errors, fmt.Sprintf("transaction %d: invalid amount: %v", i+1, err))
			continue
		}
		date := txn.DtPosted.Time
		if date.IsZero() {
			doc.Errors = append(doc.Errors, fmt.Sprintf("transaction %d: missing posted date", i+1))
			continue
		}
		desc := strings.TrimSpace(txn.Name.String())
		memo := strings.TrimSpace(txn.Memo.String())
		if desc == "" {
			desc = memo
		}
		doc.Transactions = append(doc.Transactions, dto.ParsedTransaction{
			Date:            date,
			Description:     utils.CleanCell(desc),
			Memo:            utils.CleanCell(memo),
			Amount:          amount,
			TransactionType: strings.ToLower(txn.TrnType.String()),
			ExternalID:      txn.FiTID.String(),
			AccountNumber:   account,
		})
	}
}

func ofxBalance(bal ofxgo.Amount, accountType, account string, doc *dto.ExtractedDocument) {
	amount, err := ofxAmount(bal)
	if err != nil {
		doc.Errors = append(doc.Errors, fmt.Sprintf("invalid ledger balance: %v", err))
		return
	}
	doc.Balances = append(doc.Balances, dto.ParsedAccountBalance{
		AccountType:   accountType,
		AccountNumber: account,
		Balance:       amount,
	})
}
