// package formatter provides functions to export leaderboards to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/rankr/internal/models"
	"github.com/desertthunder/rankr/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
)

// Formats lists the canonical format names, for help text.
var Formats = []Format{FormatCSV, FormatMarkdown, FormatText, FormatJSON}

// ParseFormat resolves a user-supplied format name, accepting the long aliases "markdown" and "text".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q (want one of csv, md, txt, json)", shared.ErrInvalidFormat, s)
	}
}

// Extension is the file extension written by [WriteExport], without the dot.
func (f Format) Extension() string { return string(f) }

// Export renders board in the named format.
func Export(board *models.Leaderboard, format string) ([]byte, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	switch f {
	case FormatCSV:
		return ExportToCSV(board)
	case FormatMarkdown:
		return ExportToMarkdown(board)
	case FormatText:
		return ExportToText(board)
	default:
		return ExportToJSON(board)
	}
}

// ExportToCSV converts a leaderboard to CSV format with columns: Rank, Name, ID
func ExportToCSV(board *models.Leaderboard) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Rank", "Name", "ID"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, e := range board.Entries() {
		record := []string{strconv.Itoa(e.Rank), e.Name, strconv.FormatUint(e.ID, 10)}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a leaderboard to a Markdown document with an ordered list of entries
func ExportToMarkdown(board *models.Leaderboard) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", board.Name())
	fmt.Fprintf(&buf, "**Entries**: %d\n\n", board.Len())

	if board.Len() == 0 {
		buf.WriteString("_No entries yet._\n")
		return buf.Bytes(), nil
	}

	for _, e := range board.Entries() {
		fmt.Fprintf(&buf, "%d. %s\n", e.Rank, e.Name)
	}

	return buf.Bytes(), nil
}

// ExportToText writes one "rank: name" line per entry
func ExportToText(board *models.Leaderboard) ([]byte, error) {
	var buf bytes.Buffer
	for _, line := range board.Lines() {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// ExportToJSON returns the persisted document, indented.
func ExportToJSON(board *models.Leaderboard) ([]byte, error) {
	data, err := json.MarshalIndent(board, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", board.Name(), err)
	}
	return append(data, '\n'), nil
}

// WriteExport renders board and writes it to path, creating parent directories.
//
// An empty path defaults to {board name}.{extension} in the working directory.
// Returns the path written.
func WriteExport(board *models.Leaderboard, format, path string) (string, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return "", err
	}

	if path == "" {
		path = board.Name() + "." + f.Extension()
	}

	data, err := Export(board, string(f))
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}
