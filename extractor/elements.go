package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/proplens/proplens/models"
)

// ByClass collects every element carrying the given class from the page
// snapshot. Used by the generic extraction CLI mode, where the caller knows
// a class name but not the page's structure.
func ByClass(snapshot, class string) ([]models.Element, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snapshot))
	if err != nil {
		return nil, err
	}

	var out []models.Element
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		if !s.HasClass(class) {
			return
		}

		el := models.Element{
			Text:       strings.TrimSpace(s.Text()),
			Tag:        goquery.NodeName(s),
			Attributes: make(map[string]string, len(s.Nodes[0].Attr)),
		}
		if h, err := goquery.OuterHtml(s); err == nil {
			el.HTML = h
		}
		for _, a := range s.Nodes[0].Attr {
			el.Attributes[a.Key] = a.Val
		}
		out = append(out, el)
	})

	return out, nil
}
