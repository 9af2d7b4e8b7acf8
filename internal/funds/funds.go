// Package funds reads mutual fund return tables so that a plan's expected return can be seeded from
// a fund's track record.
package funds

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Horizon names a return column of the table
type Horizon string

const (
	OneWeek     Horizon = "1W"
	OneMonth    Horizon = "1M"
	ThreeMonths Horizon = "3M"
	SixMonths   Horizon = "6M"
	YearToDate  Horizon = "YTD"
	OneYear     Horizon = "1Y"
	TwoYears    Horizon = "2Y"
	ThreeYears  Horizon = "3Y"
	FiveYears   Horizon = "5Y"
	TenYears    Horizon = "10Y"
)

// columnHorizons maps the return cells, starting at column 5, to their horizon
var columnHorizons = []Horizon{OneWeek, OneMonth, ThreeMonths, SixMonths, YearToDate, OneYear, TwoYears, ThreeYears, FiveYears, TenYears}

// minColumns is the number of cells a fund row must have
const minColumns = 15

// Fund is one row of the returns table. Returns holds only the horizons that had a value.
type Fund struct {
	Scheme     string              `json:"scheme"`
	Plan       string              `json:"plan"`
	Category   string              `json:"category"`
	CrisilRank string              `json:"crisil_rank,omitempty"`
	AuMCrore   float64             `json:"aum_crore,omitempty"`
	Returns    map[Horizon]float64 `json:"returns"`
}

// ParseHorizon resolves a horizon name case-insensitively
func ParseHorizon(s string) (Horizon, bool) {
	h := Horizon(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range columnHorizons {
		if h == known {
			return h, true
		}
	}
	return h, false
}

// IsAnnualised reports whether the horizon is reported as a yearly rate
func (h Horizon) IsAnnualised() bool {
	switch h {
	case OneYear, TwoYears, ThreeYears, FiveYears, TenYears:
		return true
	}
	return false
}

// AnnualisedReturn returns the fund's annual return percent over a multi-year horizon
func (f Fund) AnnualisedReturn(h Horizon) (float64, bool) {
	if !h.IsAnnualised() {
		return 0, false
	}
	v, ok := f.Returns[h]
	return v, ok
}

// ParseReturnsTable extracts funds from a returns table page. Rows are <tr> elements whose class
// starts with the ISIN prefix "INF"; rows with fewer than 15 cells are skipped.
func ParseReturnsTable(r io.Reader) ([]Fund, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse returns HTML: %w", err)
	}

	var funds []Fund
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		class, _ := row.Attr("class")
		if !strings.HasPrefix(class, "INF") {
			return
		}

		var cells []string
		row.Find("td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) < minColumns {
			return
		}

		fund := Fund{
			Scheme:     cells[0],
			Plan:       cells[1],
			Category:   cells[2],
			CrisilRank: cells[3],
			Returns:    make(map[Horizon]float64, len(columnHorizons)),
		}
		if aum, ok := parseNumber(cells[4]); ok {
			fund.AuMCrore = aum
		}
		for i, h := range columnHorizons {
			if v, ok := parseNumber(cells[5+i]); ok {
				fund.Returns[h] = v
			}
		}
		funds = append(funds, fund)
	})

	return funds, nil
}

// Find returns the first fund whose scheme name contains name, ignoring case
func Find(funds []Fund, name string) (Fund, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return Fund{}, false
	}
	for _, f := range funds {
		if strings.EqualFold(f.Scheme, needle) {
			return f, true
		}
	}
	for _, f := range funds {
		if strings.Contains(strings.ToLower(f.Scheme), needle) {
			return f, true
		}
	}
	return Fund{}, false
}

// RankByHorizon returns the funds that report a return for h, highest return first
func RankByHorizon(funds []Fund, h Horizon) []Fund {
	ranked := make([]Fund, 0, len(funds))
	for _, f := range funds {
		if _, ok := f.Returns[h]; ok {
			ranked = append(ranked, f)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Returns[h] > ranked[j].Returns[h]
	})
	return ranked
}

// parseNumber handles grouping commas and percent signs. "-", "N/A" and blanks are absent.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case "", "-", "--", "N/A", "NA":
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
