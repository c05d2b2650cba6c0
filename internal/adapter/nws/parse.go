package nws

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/wyattreis/philly-ice-forecast/internal/domain"
)

// hourRowRe matches the hour-row label of the digital forecast table, e.g.
// "Hour (EST)". The captured abbreviation names the window's timezone.
var hourRowRe = regexp.MustCompile(`^Hour \(([A-Z]{3,4})\)$`)

// parseDigitalForecast extracts hourly records from a MapClick digital
// forecast page. The page carries one table whose rows come in blocks: a
// "Date" row, an "Hour (TZ)" row, then one row per forecast parameter. A
// 48-hour window spans two such blocks. now anchors year inference, since
// the page prints only month/day.
func parseDigitalForecast(r io.Reader, now time.Time) ([]domain.ForecastRecord, *time.Location, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, nil, fmt.Errorf("parse html: %w", err)
	}

	rows := findForecastRows(doc)
	if rows == nil {
		return nil, nil, errors.New("no digital forecast table in page")
	}

	var (
		records []domain.ForecastRecord
		tz      *time.Location
	)
	for _, block := range splitBlocks(rows) {
		recs, blockTZ, err := parseBlock(block, now)
		if err != nil {
			return nil, nil, err
		}
		if tz == nil {
			tz = blockTZ
		}
		records = append(records, recs...)
	}
	if len(records) == 0 {
		return nil, nil, errors.New("digital forecast table has no records")
	}
	return records, tz, nil
}

// findForecastRows walks the document for the table containing both a "Date"
// row and an hour row, and returns its rows with colspans expanded. The page
// nests several layout tables around the forecast, so identification is by
// content, not position.
func findForecastRows(doc *html.Node) [][]string {
	var result [][]string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if result != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "table" {
			rows := tableRows(n)
			if isForecastTable(rows) {
				result = rows
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return result
}

func isForecastTable(rows [][]string) bool {
	var hasDate, hasHour bool
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		switch {
		case row[0] == "Date":
			hasDate = true
		case hourRowRe.MatchString(row[0]):
			hasHour = true
		}
	}
	return hasDate && hasHour
}

// tableRows flattens a table node into text cells, repeating each cell for
// its colspan so every row indexes column-by-column.
func tableRows(table *html.Node) [][]string {
	var rows [][]string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var row []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
					continue
				}
				text := strings.TrimSpace(nodeText(c))
				for i := 0; i < colspan(c); i++ {
					row = append(row, text)
				}
			}
			rows = append(rows, row)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			// Do not descend into nested layout tables.
			if c.Type == html.ElementNode && c.Data == "table" {
				continue
			}
			walk(c)
		}
	}
	walk(table)
	return rows
}

func colspan(n *html.Node) int {
	for _, a := range n.Attr {
		if a.Key == "colspan" {
			if v, err := strconv.Atoi(strings.TrimSpace(a.Val)); err == nil && v > 1 {
				return v
			}
		}
	}
	return 1
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// splitBlocks groups rows into per-block slices, each starting at a "Date"
// row. Rows before the first Date row (headers, legends) are dropped.
func splitBlocks(rows [][]string) [][][]string {
	var blocks [][][]string
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		if row[0] == "Date" {
			blocks = append(blocks, nil)
		}
		if len(blocks) == 0 {
			continue
		}
		blocks[len(blocks)-1] = append(blocks[len(blocks)-1], row)
	}
	return blocks
}

// parseBlock turns one Date/Hour/parameters block into hourly records. Date
// cells are forward-filled: the page only prints a date where it changes.
func parseBlock(block [][]string, now time.Time) ([]domain.ForecastRecord, *time.Location, error) {
	var (
		dateRow, hourRow []string
		paramRows        [][]string
		tzAbbrev         string
	)
	for _, row := range block {
		switch {
		case row[0] == "Date":
			dateRow = row
		case hourRowRe.MatchString(row[0]):
			hourRow = row
			tzAbbrev = hourRowRe.FindStringSubmatch(row[0])[1]
		default:
			paramRows = append(paramRows, row)
		}
	}
	if dateRow == nil || hourRow == nil {
		return nil, nil, errors.New("forecast block missing Date or Hour row")
	}

	tz, err := domain.ResolveTimezone(tzAbbrev)
	if err != nil {
		return nil, nil, err
	}
	localNow := now.In(tz)

	records := make([]domain.ForecastRecord, 0, len(hourRow)-1)
	var lastDate string
	for col := 1; col < len(hourRow); col++ {
		if col < len(dateRow) && dateRow[col] != "" {
			lastDate = dateRow[col]
		}
		ts, err := cellTime(lastDate, hourRow[col], localNow, tz)
		if err != nil {
			return nil, nil, err
		}

		cells := make(map[string]string, len(paramRows))
		for _, row := range paramRows {
			if col < len(row) {
				cells[row[0]] = row[col]
			}
		}
		records = append(records, domain.ForecastRecord{Time: ts, Cells: cells})
	}
	return records, tz, nil
}

// cellTime builds the timestamp for one column. The page prints month/day
// only, so the year is inferred: a month at or after the current one belongs
// to the current year, an earlier month to the next (the feed never reaches
// more than a week out, so an earlier month can only mean a rollover).
func cellTime(date, hour string, localNow time.Time, tz *time.Location) (time.Time, error) {
	md := strings.SplitN(date, "/", 2)
	if len(md) != 2 {
		return time.Time{}, fmt.Errorf("malformed date cell %q", date)
	}
	month, err := strconv.Atoi(md[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed date cell %q: %w", date, err)
	}
	day, err := strconv.Atoi(md[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed date cell %q: %w", date, err)
	}
	h, err := strconv.Atoi(hour)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed hour cell %q: %w", hour, err)
	}

	year := localNow.Year()
	if month < int(localNow.Month()) {
		year++
	}
	return time.Date(year, time.Month(month), day, h, 0, 0, 0, tz), nil
}
