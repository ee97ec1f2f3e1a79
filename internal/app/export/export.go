// Package export serializes an email list into a downloadable file.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

const (
	FormatCSV   = "csv"
	FormatTXT   = "txt"
	FormatExcel = "excel"
)

type File struct {
	Body        []byte
	ContentType string
	Filename    string
}

// Render builds the file for format. An empty format means csv. The excel
// variant is CSV with an Email header served under the Excel mimetype.
func Render(format string, emails []string) (File, error) {
	switch strings.ToLower(format) {
	case "", FormatCSV:
		return File{
			Body:        []byte(strings.Join(emails, "\n")),
			ContentType: "text/csv",
			Filename:    "emails.csv",
		}, nil
	case FormatTXT:
		return File{
			Body:        []byte(strings.Join(emails, "\n")),
			ContentType: "text/plain",
			Filename:    "emails.txt",
		}, nil
	case FormatExcel:
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write([]string{"Email"}); err != nil {
			return File{}, err
		}
		for _, e := range emails {
			if err := w.Write([]string{e}); err != nil {
				return File{}, err
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return File{}, err
		}
		return File{
			Body:        buf.Bytes(),
			ContentType: "application/vnd.ms-excel",
			Filename:    "emails.xlsx",
		}, nil
	default:
		return File{}, fmt.Errorf("unsupported format %q", format)
	}
}

// ContentDisposition is the attachment header value for f.
func (f File) ContentDisposition() string {
	return "attachment; filename=" + f.Filename
}
