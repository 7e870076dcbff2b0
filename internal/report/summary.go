// Package report renders human-readable summaries of an inventory.
package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/codeinventory/internal/inventory"
)

// LanguageRow counts the records of one primary language.
type LanguageRow struct {
	Language     string
	Projects     int
	Repositories int
}

// Summary is the per-language breakdown of an inventory.
type Summary struct {
	Rows         []LanguageRow
	Total        int
	Repositories int
}

// Summarize groups records by primary language. Rows are ordered by project
// count (descending), then language name.
func Summarize(records []inventory.Record) Summary {
	byLanguage := make(map[string]*LanguageRow)
	var s Summary

	for _, r := range records {
		lang := r.PrimaryLanguage()
		if lang == "" {
			lang = "Unknown"
		}

		row, ok := byLanguage[lang]
		if !ok {
			row = &LanguageRow{Language: lang}
			byLanguage[lang] = row
		}

		row.Projects++
		s.Total++
		if r.IsRepoRoot() {
			row.Repositories++
			s.Repositories++
		}
	}

	s.Rows = make([]LanguageRow, 0, len(byLanguage))
	for _, row := range byLanguage {
		s.Rows = append(s.Rows, *row)
	}
	slices.SortFunc(s.Rows, func(a, b LanguageRow) int {
		if c := cmp.Compare(b.Projects, a.Projects); c != 0 {
			return c
		}
		return strings.Compare(a.Language, b.Language)
	})

	return s
}

var summaryHeader = [3]string{"LANGUAGE", "PROJECTS", "REPO ROOTS"}

// Render writes the summary as an aligned text table. Column widths account
// for wide runes so CJK language labels line up.
func (s Summary) Render(w io.Writer) error {
	cells := make([][3]string, 0, len(s.Rows)+2)
	cells = append(cells, summaryHeader)
	for _, row := range s.Rows {
		cells = append(cells, [3]string{row.Language, strconv.Itoa(row.Projects), strconv.Itoa(row.Repositories)})
	}
	cells = append(cells, [3]string{"TOTAL", strconv.Itoa(s.Total), strconv.Itoa(s.Repositories)})

	var widths [3]int
	for _, line := range cells {
		for i, cell := range line {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var b strings.Builder
	for i, line := range cells {
		if i == len(cells)-1 {
			writeRule(&b, widths)
		}
		fmt.Fprintf(&b, "%s  %s  %s\n",
			runewidth.FillRight(line[0], widths[0]),
			padLeft(line[1], widths[1]),
			padLeft(line[2], widths[2]),
		)
		if i == 0 {
			writeRule(&b, widths)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRule(b *strings.Builder, widths [3]int) {
	fmt.Fprintf(b, "%s  %s  %s\n",
		strings.Repeat("-", widths[0]),
		strings.Repeat("-", widths[1]),
		strings.Repeat("-", widths[2]),
	)
}

func padLeft(s string, width int) string {
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}
