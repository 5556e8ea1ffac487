package taxform

import (
	"strings"
	"testing"

	"github.com/Aashish23092/finextract/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const form1098Text = `RECIPIENT'S/LENDER'S name, street address, city or town, state or province, country, ZIP or foreign postal code, and telephone no.
OMB No. 1545-1380
ROCKET MORTGAGE LLC
1050 Woodward Ave, Detroit MI 48226
PAYER'S/BORROWER'S name
JANE DOE
42 Oak Lane
Springfield IL 62704
1 Mortgage interest received from payer(s)/borrower(s)
$ 9,876.54
2 Outstanding mortgage principal
$ 250,000.00
3 Mortgage origination date
06/15/2019
5 Mortgage insurance premiums
$ 0.00
6 Points paid on purchase of principal residence
$ 0.00
[X] 7 If address of property securing mortgage is the same as PAYER'S/BORROWER'S address, the box is checked
8 Address or description of property securing mortgage
`

func TestExtract_1098(t *testing.T) {
	res := Extract(form1098Text, dto.Form1098)
	require.Empty(t, res.Error)

	assert.Equal(t, "ROCKET MORTGAGE LLC", res.Fields["lender_name"])
	assert.Equal(t, "9876.54", res.Fields["mortgage_interest"])
	assert.Equal(t, "250000.00", res.Fields["outstanding_principal"])
	assert.Equal(t, "2019-06-15", res.Fields["origination_date"])
	assert.Equal(t, "0.00", res.Fields["mortgage_insurance"])
	assert.Equal(t, "0.00", res.Fields["points"])
	assert.Equal(t, "42 Oak Lane, Springfield IL 62704", res.Fields["property_address"])
}

func TestExtract_1098ExplicitAddress(t *testing.T) {
	text := strings.Replace(form1098Text, "[X] 7", "[ ] 7", 1) + "12 Elm Street, Springfield IL 62701\n"

	res := Extract(text, dto.Form1098)
	require.Empty(t, res.Error)
	assert.Equal(t, "12 Elm Street, Springfield IL 62701", res.Fields["property_address"])
}

func TestPropertyAddress_NonASCIIPrefix(t *testing.T) {
	// İ lower-cases to more bytes than it takes in the original line
	text := "İZMİR HOLDINGS property address 12 Elm Street, Springfield IL 62701\n"

	assert.Equal(t, "12 Elm Street, Springfield IL 62701", propertyAddress(text))
}

func TestSameAsBorrower(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"bracket", "[x] Same as borrower's address", true},
		{"ballot box", "☒ If address is the same as PAYER'S/BORROWER'S address", true},
		{"check mark", "Same as payer/borrower ✓", true},
		{"next line", "7 Same as borrower\nX", true},
		{"unchecked", "[ ] Same as borrower\n8 Address of property", false},
		{"no box", "Borrower address 42 Oak Lane", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sameAsBorrower(tt.text))
		})
	}
}

func TestIsNoise(t *testing.T) {
	noise := []string{
		"OMB No. 1545-1380",
		"RECIPIENT'S/LENDER'S name, street address",
		"Telephone number (800) 555-1212",
		"Copy B For Payer/Borrower",
		"1,234.56",
		"RECIPIENT'S TIN",
		"7",
	}
	for _, line := range noise {
		assert.True(t, isNoise(line), line)
	}

	names := []string{"ROCKET MORTGAGE LLC", "Wells Fargo Home Mortgage", "Martin Lending Co"}
	for _, line := range names {
		assert.False(t, isNoise(line), line)
	}
}

func TestIssuerName(t *testing.T) {
	text := "Form 1099-R\nCORRECTED\n2023\nFidelity Investments Institutional\n"
	assert.Equal(t, "Fidelity Investments Institutional", issuerName(text))
	assert.Empty(t, issuerName("Form 1099\n12345\n"))
}
