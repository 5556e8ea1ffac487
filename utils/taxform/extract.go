// Package taxform pulls box values out of the text of year-end tax forms.
//
// Every routine is best effort: a value that cannot be located is left out
// of the result rather than guessed, and nothing in this package returns an
// error or panics across its boundary.
package taxform

import (
	"fmt"
	"strings"

	"github.com/Aashish23092/finextract/dto"
	"github.com/Aashish23092/finextract/utils"
)

const previewLength = 500

type extractor func(text string, fields map[string]string)

// extractors is the dispatch table for supported form types.
var extractors = map[dto.FormType]extractor{
	dto.FormW2:               extractW2,
	dto.Form1098:             extract1098,
	dto.Form1099INT:          simpleForm(form1099INT),
	dto.Form1098T:            simpleForm(form1098T),
	dto.Form3922:             simpleForm(form3922),
	dto.Form1099Consolidated: simpleForm(form1099Consolidated),
	dto.Form1099R:            simpleForm(form1099R),
	dto.FormSSA1099:          simpleForm(formSSA1099),
	dto.Form1099SA:           simpleForm(form1099SA),
}

// Supported reports whether a form type has an extraction routine.
func Supported(formType dto.FormType) bool {
	_, ok := extractors[formType]
	return ok
}

// Extract runs the routine for formType over text. Empty text and unknown
// form types produce an error result; a failure inside a routine is
// recovered into an error result carrying the text preview.
func Extract(text string, formType dto.FormType) (res dto.TaxFormResult) {
	res = dto.TaxFormResult{
		FormType: formType,
		Fields:   map[string]string{},
		Preview:  utils.Truncate(text, previewLength),
	}
	if strings.TrimSpace(text) == "" {
		res.Error = "Could not extract text from document"
		return res
	}
	extract, ok := extractors[formType]
	if !ok {
		res.Error = fmt.Sprintf("Unsupported form type: %s", formType)
		return res
	}

	defer func() {
		if r := recover(); r != nil {
			res.Fields = map[string]string{}
			res.Error = fmt.Sprintf("Extraction failed: %v", r)
		}
	}()
	extract(text, res.Fields)
	return res
}
