package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCell(t *testing.T) {
	assert.Equal(t, "Coffee & Tea", CleanCell("<b>Coffee</b> &  Tea"))
	assert.Equal(t, "Shop", CleanCell("<script>alert(1)</script>Shop"))
	assert.Equal(t, "ACH DEBIT PAYROLL", CleanCell("ACH\tDEBIT\nPAYROLL"))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Dental", TitleCase("DENTAL"))
	assert.Equal(t, "Urgent Care", TitleCase("urgent care"))
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "posting date", NormalizeKey("\ufeffPosting   Date "))
	assert.Equal(t, "", NormalizeKey("   "))
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c", "d"}, SplitLines("a\r\nb\fc\rd"))
}
