package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

// markupSelectors names the elements a booking page renders per slot.
type markupSelectors struct {
	Row   string
	Time  string
	Price string
}

var (
	embeddedTimesPattern = regexp.MustCompile(`(?:"times"\s*:|\bvar\s+times\s*=)\s*\[`)
	labelClockPattern    = regexp.MustCompile(`(?i)\b(\d{1,2}:\d{2}\s*[AP]\.?M\.?)`)
	labelPricePattern    = regexp.MustCompile(`\$\s?\d+(?:\.\d{2})?`)
)

// Keys tried, in order, on each object of an embedded times array.
var (
	embeddedTimeKeys  = []string{"time", "teetime", "start_time", "startTime"}
	embeddedPriceKeys = []string{"green_fee", "greenFee", "price", "rate"}
)

// scrapeSlots runs the markup fallback chain over one page. The first strategy
// that yields at least one slot wins; a page where nothing matches has no slots.
func scrapeSlots(adapter string, body []byte, date string, sel markupSelectors, loc *time.Location) ([]teetime.RawSlot, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, newParseError(adapter, body, fmt.Errorf("parsing HTML: %w", err))
	}

	strategies := []func(*goquery.Document, string, markupSelectors) []teetime.RawSlot{
		embeddedJSONSlots,
		selectorSlots,
		ariaLabelSlots,
	}
	for _, strategy := range strategies {
		slots := strategy(doc, date, sel)
		if len(slots) == 0 {
			continue
		}
		for i := range slots {
			slots[i].Location = loc
		}
		return slots, nil
	}
	return []teetime.RawSlot{}, nil
}

// embeddedJSONSlots looks for a times array inside inline scripts.
func embeddedJSONSlots(doc *goquery.Document, date string, _ markupSelectors) []teetime.RawSlot {
	slots := make([]teetime.RawSlot, 0)
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if len(slots) > 0 {
			return
		}
		if _, external := s.Attr("src"); external {
			return
		}
		text := s.Text()
		for _, loc := range embeddedTimesPattern.FindAllStringIndex(text, -1) {
			blob, ok := balancedArray(text, loc[1]-1)
			if !ok {
				continue
			}
			var items []map[string]any
			if err := json.Unmarshal([]byte(blob), &items); err != nil {
				continue
			}
			for _, item := range items {
				t := firstKey(item, embeddedTimeKeys)
				if t == nil {
					continue
				}
				slots = append(slots, teetime.RawSlot{
					Date:  date,
					Time:  t,
					Price: firstKey(item, embeddedPriceKeys),
				})
			}
			if len(slots) > 0 {
				return
			}
		}
	})
	return slots
}

// selectorSlots reads one slot per row element.
func selectorSlots(doc *goquery.Document, date string, sel markupSelectors) []teetime.RawSlot {
	slots := make([]teetime.RawSlot, 0)
	doc.Find(sel.Row).Each(func(_ int, row *goquery.Selection) {
		clock := strings.TrimSpace(row.Find(sel.Time).First().Text())
		if clock == "" {
			return
		}
		slot := teetime.RawSlot{Date: date, Time: clock}
		if price := strings.TrimSpace(row.Find(sel.Price).First().Text()); price != "" {
			slot.Price = price
		}
		slots = append(slots, slot)
	})
	return slots
}

// ariaLabelSlots matches time-of-day and currency patterns in accessibility labels.
func ariaLabelSlots(doc *goquery.Document, date string, _ markupSelectors) []teetime.RawSlot {
	slots := make([]teetime.RawSlot, 0)
	doc.Find("[aria-label]").Each(func(_ int, s *goquery.Selection) {
		label, _ := s.Attr("aria-label")
		m := labelClockPattern.FindStringSubmatch(label)
		if m == nil {
			return
		}
		clock := strings.ToUpper(strings.ReplaceAll(m[1], ".", ""))
		slot := teetime.RawSlot{Date: date, Time: clock}
		if price := labelPricePattern.FindString(label); price != "" {
			slot.Price = strings.ReplaceAll(price, " ", "")
		}
		slots = append(slots, slot)
	})
	return slots
}

// balancedArray returns the JSON array starting at text[start], which must be '['.
func balancedArray(text string, start int) (string, bool) {
	if start < 0 || start >= len(text) || text[start] != '[' {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

func firstKey(item map[string]any, keys []string) any {
	for _, k := range keys {
		if v, ok := item[k]; ok && v != nil {
			return v
		}
	}
	return nil
}
