// Package pdfx estimates the page count of uploaded documents. The
// estimate feeds print pricing only; it is explicitly best-effort and any
// failure degrades to a count of 1.
package pdfx

import (
	"bytes"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PageCount returns the number of pages in a PDF, or 1 for non-PDF files
// and for any PDF that cannot be parsed.
func PageCount(data []byte, filename string) (count int) {
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return 1
	}

	// pdfcpu can panic on malformed input.
	defer func() {
		if recover() != nil {
			count = 1
		}
	}()

	n, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil || n < 1 {
		return 1
	}
	return n
}
