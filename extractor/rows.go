package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/proplens/proplens/models"
)

// unitFloorPattern matches the unit marker in an address fragment like
// "#07-12": a hash, two or more digits, then a hyphen. The captured digit
// run is the floor, verbatim.
var unitFloorPattern = regexp.MustCompile(`#(\d{2,})-`)

// Rows extracts the ordered transaction records visible in the given table
// snapshot. Extraction is tolerant: a missing field container or sub-element
// yields an omitted field, never an error, so one malformed row can't abort
// the page. Only unparseable HTML is an error.
func Rows(snapshot string, p Profile) ([]models.Transaction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snapshot))
	if err != nil {
		return nil, err
	}

	var out []models.Transaction
	doc.Find(p.Row).Each(func(_ int, row *goquery.Selection) {
		var tx models.Transaction

		tx.Date, _ = fieldValues(row.Find(p.FieldSel(p.DateKey)), p)
		tx.Bedrooms, tx.Size = fieldValues(row.Find(p.FieldSel(p.BedroomKey)), p)
		tx.Price, tx.PricePerSqft = fieldValues(row.Find(p.FieldSel(p.PriceKey)), p)
		tx.FloorLevel, _ = fieldValues(row.Find(p.FieldSel(p.FloorLevelKey)), p)
		tx.BuildStatus, _ = fieldValues(row.Find(p.FieldSel(p.CompletedKey)), p)

		// Expanded detail panel, present only for rows that were opened.
		tx.Lease, _ = fieldValues(row.Find(p.FieldSel(p.LeaseKey)), p)
		tx.Address, _ = fieldValues(row.Find(p.FieldSel(p.AddressKey)), p)

		// Floor is derived, never fabricated: only a matching address
		// produces one.
		if tx.Address != "" {
			if m := unitFloorPattern.FindStringSubmatch(tx.Address); m != nil {
				tx.Floor = m[1]
			}
		}

		out = append(out, tx)
	})

	return out, nil
}

// fieldValues reads the primary and secondary values of one field container.
// An absent container or sub-element yields empty strings, which callers
// treat as "field omitted".
func fieldValues(s *goquery.Selection, p Profile) (primary, sub string) {
	if s.Length() == 0 {
		return "", ""
	}
	s = s.First()

	sub = squash(s.Find(p.SubText).First().Text())
	primary = squash(s.Find(p.PrimaryText).First().Text())
	if primary == "" {
		primary = squash(ownText(s))
	}
	if primary == "" && sub == "" {
		primary = squash(s.Text())
	}
	return primary, sub
}

// ownText returns the container's direct text content, excluding text nested
// in child elements (the sub-value lives in a child).
func ownText(s *goquery.Selection) string {
	if len(s.Nodes) == 0 {
		return ""
	}
	var b strings.Builder
	for c := s.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// squash collapses runs of whitespace to single spaces and trims the ends.
func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
