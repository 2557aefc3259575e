package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// ContentTypeCSV is the media type of CSV exports
const ContentTypeCSV = "text/csv"

// WriteCSV writes rows as CSV with a header line taken from the csv tags of T.
func WriteCSV[T any](w io.Writer, rows []T) error {
	if rows == nil {
		rows = []T{}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
