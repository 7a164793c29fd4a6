package extract

import (
	"bytes"
	"fmt"

	"code.sajari.com/docconv/v2"
)

// fromDOCX reads the main document part plus headers and footers. docconv
// indexes into the archive without checking every part exists, so a
// malformed upload can panic.
func fromDOCX(data []byte) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("read docx: malformed document: %v", rec)
		}
	}()

	raw, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	return collapseLines(raw), nil
}
