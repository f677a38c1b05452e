package usecase

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/domain"
)

// Compiled patterns for the spreadsheet-style catalog markup.
// Opening tags accept an optional ss: prefix and attributes, but never a self-closing slash.
var (
	rowBlockPattern    = regexp.MustCompile(`(?is)<(?:ss:)?Row(?:\s[^>]*[^/>])?\s*>(.*?)</(?:ss:)?Row\s*>`)
	cellPayloadPattern = regexp.MustCompile(`(?is)<(?:ss:)?Data(?:\s[^>]*[^/>])?\s*>(.*?)</(?:ss:)?Data\s*>`)
	inlineTagPattern   = regexp.MustCompile(`<[^>]*>`)
	cdataPattern       = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	entityPattern      = regexp.MustCompile(`&(#[0-9]+|#[xX][0-9a-fA-F]+|amp|lt|gt|quot|apos);`)
)

// predefinedEntities are the only named references markup may carry
var predefinedEntities = map[string]string{
	"amp":  "&",
	"lt":   "<",
	"gt":   ">",
	"quot": `"`,
	"apos": "'",
}

// ScanMarkupTable extracts the header row and data rows from a tabular markup blob.
// The first row holding at least one cell supplies the headers; every later row with
// cells is mapped positionally onto them. Rows without cells are skipped.
func ScanMarkupTable(markup string) domain.MarkupTable {
	var table domain.MarkupTable

	for _, rowMatch := range rowBlockPattern.FindAllStringSubmatch(markup, -1) {
		cells := scanRowCells(rowMatch[1])
		if len(cells) == 0 {
			continue
		}

		if table.Headers == nil {
			table.Headers = cells
			continue
		}

		row := make(domain.MarkupRow, len(cells))
		for i, cell := range cells {
			if i >= len(table.Headers) {
				break
			}
			header := table.Headers[i]
			if header == "" {
				continue
			}
			row[header] = cell
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// scanRowCells returns the payload of every cell in one row body, in order.
// Each call matches from the start of body so no scan position leaks between rows.
func scanRowCells(body string) []string {
	matches := cellPayloadPattern.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}

	cells := make([]string, 0, len(matches))
	for _, match := range matches {
		cells = append(cells, cleanCellPayload(match[1]))
	}
	return cells
}

// cleanCellPayload drops inline formatting tags, decodes entities and trims whitespace.
// CDATA sections are kept literally.
func cleanCellPayload(payload string) string {
	var b strings.Builder
	last := 0
	for _, loc := range cdataPattern.FindAllStringSubmatchIndex(payload, -1) {
		b.WriteString(cleanMarkupText(payload[last:loc[0]]))
		b.WriteString(payload[loc[2]:loc[3]])
		last = loc[1]
	}
	b.WriteString(cleanMarkupText(payload[last:]))
	return strings.TrimSpace(b.String())
}

func cleanMarkupText(text string) string {
	return decodeEntities(inlineTagPattern.ReplaceAllString(text, ""))
}

// decodeEntities resolves the predefined XML entities and numeric character references.
// Anything else, including HTML-only names, is left untouched.
func decodeEntities(text string) string {
	if !strings.Contains(text, "&") {
		return text
	}
	return entityPattern.ReplaceAllStringFunc(text, func(ref string) string {
		name := ref[1 : len(ref)-1]
		if value, ok := predefinedEntities[name]; ok {
			return value
		}

		digits, base := name[1:], 10
		if digits[0] == 'x' || digits[0] == 'X' {
			digits, base = digits[1:], 16
		}
		code, err := strconv.ParseUint(digits, base, 32)
		if err != nil || !utf8.ValidRune(rune(code)) {
			return ref
		}
		return string(rune(code))
	})
}
