package extract

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// extractPDF pulls text from a PDF payload using github.com/ledongthuc/pdf.
// The library panics on some malformed files, so the whole call is fenced and
// any fault surfaces as a typed parser error.
func extractPDF(data []byte) (text string, err *Error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = parserFault("pdf", fmt.Errorf("panic: %v", r))
		}
	}()

	reader := bytes.NewReader(data)
	pdfReader, rerr := pdf.NewReader(reader, int64(len(data)))
	if rerr != nil {
		return "", parserFault("pdf", rerr)
	}
	plain, rerr := pdfReader.GetPlainText()
	if rerr != nil {
		return "", parserFault("pdf", rerr)
	}
	var buf bytes.Buffer
	if _, rerr := io.Copy(&buf, plain); rerr != nil {
		return "", parserFault("pdf", rerr)
	}
	if buf.Len() == 0 {
		// Image-only PDFs parse fine but carry no text layer.
		return "", emptyContent("pdf contains no extractable text")
	}
	return buf.String(), nil
}
