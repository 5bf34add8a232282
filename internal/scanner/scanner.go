// Package scanner finds ZIP-code-shaped text in HTML pages, marks the
// enclosing elements as clickable and answers clicks with a plan tooltip.
//
// Any five-digit number matches, so results are a best-effort annotation.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"medi-plans/internal/render"
	"medi-plans/internal/types"
)

// Attribute set on every element whose text contains a ZIP code
const AttrZip = "data-medicare-zip"

var (
	zipPattern      = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)
	exactZipPattern = regexp.MustCompile(`^\d{5}(?:-\d{4})?$`)
)

// ErrNotZip is returned when a clicked value is not ZIP-shaped
var ErrNotZip = errors.New("not a zip code")

// Match records one annotated element
type Match struct {
	ZipCode string
	Tag     string
	Text    string
}

// FindZips returns every ZIP-shaped substring of text
func FindZips(text string) []string {
	return zipPattern.FindAllString(text, -1)
}

// Scan walks every text node under root. For each node containing a ZIP code,
// the first match is recorded on the enclosing element, which is marked clickable.
func Scan(root *html.Node) []Match {
	var matches []Match

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipElement(n) {
			return
		}

		if n.Type == html.TextNode && n.Parent != nil && n.Parent.Type == html.ElementNode {
			if zip := zipPattern.FindString(n.Data); zip != "" {
				markElement(n.Parent, zip)
				matches = append(matches, Match{
					ZipCode: zip,
					Tag:     n.Parent.Data,
					Text:    strings.TrimSpace(n.Data),
				})
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return matches
}

// Annotate parses an HTML document from r, scans it and writes the annotated document to w
func Annotate(r io.Reader, w io.Writer) ([]Match, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	matches := Scan(doc)

	if err := html.Render(w, doc); err != nil {
		return nil, fmt.Errorf("failed to render html: %w", err)
	}

	return matches, nil
}

func skipElement(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Noscript, atom.Template:
		return true
	}
	return false
}

func markElement(n *html.Node, zip string) {
	setAttr(n, AttrZip, zip)
	setAttr(n, "title", "Click to find Medicare plans for "+zip)

	style := getAttr(n, "style")
	if !strings.Contains(style, "cursor") {
		style = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(style), ";"))
		if style != "" {
			style += "; "
		}
		setAttr(n, "style", style+"cursor: pointer")
	}
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// ZipLookup is the plan lookup call made when a marked element is clicked
type ZipLookup interface {
	GetPlansForZip(ctx context.Context, state, zipCode string, includeDetails bool) (*types.ZipResponse, error)
}

// Scanner answers clicks on annotated ZIP codes
type Scanner struct {
	api          ZipLookup
	defaultState string
	logger       *slog.Logger
}

// NewScanner creates a scanner that looks clicked ZIPs up in defaultState.
// A page gives no reliable hint about the state, so one state is used for every click.
func NewScanner(api ZipLookup, defaultState string, logger *slog.Logger) *Scanner {
	return &Scanner{
		api:          api,
		defaultState: defaultState,
		logger:       logger.With("component", "page-scanner"),
	}
}

// Click looks up the summary plans for zip and returns the tooltip HTML.
// A ZIP+4 value is looked up by its five-digit prefix.
func (s *Scanner) Click(ctx context.Context, zip string) (string, error) {
	zip = strings.TrimSpace(zip)
	if !exactZipPattern.MatchString(zip) {
		return "", fmt.Errorf("%w: %q", ErrNotZip, zip)
	}
	zip5 := zip[:5]

	s.logger.Debug("zip clicked", "zip_code", zip, "state", s.defaultState)

	resp, err := s.api.GetPlansForZip(ctx, s.defaultState, zip5, false)
	if err != nil {
		return "", fmt.Errorf("failed to get plans for %s: %w", zip5, err)
	}

	return render.Tooltip(zip, resp)
}
