// package formatter provides functions to export playlist listings to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/love-yuri/qq-music-api/internal/models"
	"github.com/love-yuri/qq-music-api/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
)

// ParseFormat accepts a format name or common file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, s)
}

// Ext returns the file extension used for f.
func (f Format) Ext() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

// PlaylistListing is the set of playlists created by one account.
type PlaylistListing struct {
	HostUIN   string            `json:"host_uin"`
	HostName  string            `json:"host_name"`
	Playlists []models.Playlist `json:"playlists"`
}

// ExportToCSV converts a listing to CSV format with columns: DirID, TID, Name, Songs, Listens, Cover
func ExportToCSV(listing *PlaylistListing) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"DirID", "TID", "Name", "Songs", "Listens", "Cover"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, p := range listing.Playlists {
		record := []string{
			strconv.FormatInt(p.DirID, 10),
			strconv.FormatInt(p.TID, 10),
			p.Name,
			strconv.Itoa(p.SongCount),
			strconv.FormatInt(p.ListenCount, 10),
			p.Cover,
		}
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

// ExportToMarkdown converts a listing to a Markdown table
func ExportToMarkdown(listing *PlaylistListing) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# Playlists of %s\n\n", owner(listing))
	fmt.Fprintf(&buf, "**Playlists**: %d\n\n", len(listing.Playlists))

	buf.WriteString("| DirID | Name | Songs | Listens |\n")
	buf.WriteString("|------:|------|------:|--------:|\n")
	for _, p := range listing.Playlists {
		name := strings.ReplaceAll(p.Name, "|", `\|`)
		if p.Cover != "" {
			name = fmt.Sprintf("[%s](%s)", name, p.Cover)
		}
		fmt.Fprintf(&buf, "| %d | %s | %d | %d |\n", p.DirID, name, p.SongCount, p.ListenCount)
	}

	return buf.Bytes(), nil
}

// ExportToText converts a listing to plain text format
func ExportToText(listing *PlaylistListing) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Owner: %s\n", owner(listing))
	fmt.Fprintf(&buf, "Playlists: %d\n\n", len(listing.Playlists))

	for i, p := range listing.Playlists {
		fmt.Fprintf(&buf, "%d. %s [dirid %d] (%d songs)\n", i+1, p.Name, p.DirID, p.SongCount)
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a listing to JSON
func ExportToJSON(listing *PlaylistListing, pretty bool) ([]byte, error) {
	return shared.MarshalJSON(listing, pretty)
}

// Export renders listing in format f.
func Export(listing *PlaylistListing, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		return ExportToCSV(listing)
	case FormatMarkdown:
		return ExportToMarkdown(listing)
	case FormatText:
		return ExportToText(listing)
	case FormatJSON:
		return ExportToJSON(listing, true)
	}
	return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, f)
}

// WriteExport exports a listing to a file.
//
// Defaults to {uin}_playlists.{ext} as the filename.
func WriteExport(listing *PlaylistListing, f Format, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_playlists.%s", listing.HostUIN, f.Ext())
	}

	data, err := Export(listing, f)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", f, err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", f, err)
	}

	return filepath, nil
}

func owner(listing *PlaylistListing) string {
	switch {
	case listing.HostName != "" && listing.HostUIN != "":
		return fmt.Sprintf("%s (%s)", listing.HostName, listing.HostUIN)
	case listing.HostName != "":
		return listing.HostName
	default:
		return listing.HostUIN
	}
}
