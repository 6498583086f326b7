package notifyutils

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PDFPageCount returns the number of pages in a PDF stream.
func PDFPageCount(rs io.ReadSeeker) (int, error) {
	count, err := api.PageCount(rs, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPDFRead, err)
	}
	return count, nil
}

// ExtractPDFPage returns a new single-page PDF holding the given
// one-based page of the input.
func ExtractPDFPage(rs io.ReadSeeker, page int) ([]byte, error) {
	count, err := PDFPageCount(rs)
	if err != nil {
		return nil, err
	}
	if page < 1 || page > count {
		return nil, fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, page, count)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFRead, err)
	}

	var buf bytes.Buffer
	if err := api.Trim(rs, &buf, []string{strconv.Itoa(page)}, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFRead, err)
	}
	return buf.Bytes(), nil
}
