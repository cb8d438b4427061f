package fbref

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/football-etl/internal/domain/table"
	"golang.org/x/net/html"
)

// ParseTables returns every table of an HTML page in document order. Tables
// the site ships inside HTML comments are parsed in place.
func ParseTables(r io.Reader) ([]*table.Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, crerr.Wrap(err, "parse html document")
	}

	var nodes []*html.Node
	for _, root := range doc.Nodes {
		if err := collectTables(root, &nodes); err != nil {
			return nil, err
		}
	}

	out := make([]*table.Table, 0, len(nodes))
	for i, node := range nodes {
		t, err := parseTable(goquery.NewDocumentFromNode(node).Selection)
		if err != nil {
			return nil, fmt.Errorf("table %d: %w", i, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func collectTables(n *html.Node, out *[]*html.Node) error {
	switch {
	case n.Type == html.ElementNode && n.Data == "table":
		*out = append(*out, n)
		return nil
	case n.Type == html.CommentNode && strings.Contains(n.Data, "<table"):
		sub, err := goquery.NewDocumentFromReader(strings.NewReader(n.Data))
		if err != nil {
			return crerr.Wrap(err, "parse commented table")
		}
		for _, root := range sub.Nodes {
			if err := collectTables(root, out); err != nil {
				return err
			}
		}
		return nil
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if err := collectTables(child, out); err != nil {
			return err
		}
	}
	return nil
}

func parseTable(sel *goquery.Selection) (*table.Table, error) {
	headerRows := sel.Find("thead tr")
	bodyRows := sel.Find("tbody tr")
	if headerRows.Length() == 0 {
		all := sel.Find("tr")
		if all.Length() == 0 {
			return table.Empty(), nil
		}
		headerRows = all.First()
		bodyRows = all.Slice(1, all.Length())
	}

	var levels [][]string
	headerRows.Each(func(_ int, row *goquery.Selection) {
		levels = append(levels, expandRow(row))
	})
	header := dedupeHeader(flattenHeader(levels))

	var records [][]string
	bodyRows.Each(func(_ int, row *goquery.Selection) {
		if skipRow(row) {
			return
		}
		cells := expandRow(row)
		if allBlank(cells) {
			return
		}
		records = append(records, cells)
	})

	t, err := table.FromRecords(header, records)
	if err != nil {
		return nil, crerr.Wrap(err, "build table")
	}
	return t, nil
}

// expandRow returns the trimmed text of each cell, repeated colspan times.
func expandRow(row *goquery.Selection) []string {
	var out []string
	row.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
		span := 1
		if raw, ok := cell.Attr("colspan"); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n > 1 {
				span = n
			}
		}
		text := strings.TrimSpace(cell.Text())
		for i := 0; i < span; i++ {
			out = append(out, text)
		}
	})
	return out
}

// flattenHeader joins header levels with "_". An empty label becomes
// "Unnamed: <col>_level_<level>", or "Unnamed: <col>" for one-level headers.
func flattenHeader(levels [][]string) []string {
	if len(levels) == 0 {
		return nil
	}
	width := 0
	for _, level := range levels {
		width = max(width, len(level))
	}

	out := make([]string, width)
	for col := 0; col < width; col++ {
		parts := make([]string, 0, len(levels))
		for l, level := range levels {
			label := ""
			if col < len(level) {
				label = level[col]
			}
			if label == "" {
				if len(levels) == 1 {
					label = fmt.Sprintf("Unnamed: %d", col)
				} else {
					label = fmt.Sprintf("Unnamed: %d_level_%d", col, l)
				}
			}
			parts = append(parts, label)
		}
		out[col] = strings.Join(parts, "_")
	}
	return out
}

// dedupeHeader suffixes repeated names with ".1", ".2" and so on.
func dedupeHeader(names []string) []string {
	seen := make(map[string]int, len(names))
	taken := make(map[string]bool, len(names))
	for _, name := range names {
		taken[name] = true
	}

	out := make([]string, len(names))
	for i, name := range names {
		n := seen[name]
		seen[name] = n + 1
		if n == 0 {
			out[i] = name
			continue
		}
		candidate := name + "." + strconv.Itoa(n)
		for taken[candidate] {
			n++
			candidate = name + "." + strconv.Itoa(n)
		}
		seen[name] = n + 1
		taken[candidate] = true
		out[i] = candidate
	}
	return out
}

func skipRow(row *goquery.Selection) bool {
	class, _ := row.Attr("class")
	for _, c := range strings.Fields(class) {
		switch c {
		case "thead", "over_header", "spacer":
			return true
		}
	}
	return false
}

func allBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
