package workshop

import (
	"io"
	"net/url"
	"regexp"
	"strings"

	"a3mm/internal/domain"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var idParamRe = regexp.MustCompile(`[?&]id=(\d+)`)

// ParseRequiredItems extracts dependencies from a Workshop item page. Each
// required item is an anchor linking to the dependency's page that wraps a
// div with class "requiredItem" holding its name.
func ParseRequiredItems(r io.Reader) ([]domain.Dependency, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	container := findByID(doc, "RequiredItems")
	if container == nil {
		return []domain.Dependency{}, nil
	}

	deps := []domain.Dependency{}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			if dep, ok := requiredItem(n); ok {
				deps = append(deps, dep)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(container)

	return deps, nil
}

func requiredItem(a *html.Node) (domain.Dependency, bool) {
	id := itemID(attr(a, "href"))
	if id == "" {
		return domain.Dependency{}, false
	}

	for child := a.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.DataAtom == atom.Div && hasClass(child, "requiredItem") {
			return domain.Dependency{ID: id, Name: strings.TrimSpace(textContent(child))}, true
		}
	}
	return domain.Dependency{}, false
}

// itemID pulls the numeric id query parameter out of a Workshop link
func itemID(href string) string {
	if u, err := url.Parse(href); err == nil {
		if id := u.Query().Get("id"); id != "" && isDigits(id) {
			return id
		}
	}
	if m := idParamRe.FindStringSubmatch(href); m != nil {
		return m[1]
	}
	return ""
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && attr(n, "id") == id {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findByID(child, id); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
