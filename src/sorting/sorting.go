// Package sorting builds the comparison keys used to order titles, issues
// and copies. Key functions never fail: malformed input falls back to a
// sentinel value so a listing can always be sorted.
package sorting

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/jsench/Project-Wheatley/src/models"
	"golang.org/x/text/cases"
)

type partKind int

const (
	kindInt partKind = iota
	kindInf
	kindStr
)

// Part is one typed component of a Key.
type Part struct {
	kind partKind
	n    int
	s    string
}

// Int returns an integer component.
func Int(n int) Part { return Part{kind: kindInt, n: n} }

// Inf returns a component that sorts after every integer.
func Inf() Part { return Part{kind: kindInf, n: math.MaxInt} }

// Str returns a string component.
func Str(s string) Part { return Part{kind: kindStr, s: s} }

func (p Part) compare(q Part) int {
	pNum, qNum := p.kind != kindStr, q.kind != kindStr
	switch {
	case pNum && qNum:
		if p.kind == kindInf || q.kind == kindInf {
			return cmp.Compare(p.kind, q.kind)
		}
		return cmp.Compare(p.n, q.n)
	case !pNum && !qNum:
		return strings.Compare(p.s, q.s)
	case pNum:
		return -1
	default:
		return 1
	}
}

// Key is compared position by position, like a tuple.
type Key []Part

// Compare returns -1, 0 or +1. A key that is a prefix of another sorts first.
func (k Key) Compare(o Key) int {
	for i := 0; i < len(k) && i < len(o); i++ {
		if c := k[i].compare(o[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(k), len(o))
}

var articles = []string{"a ", "an ", "the "}

// StripArticle removes one leading English article ("a", "an", "the",
// any case) followed by a space.
func StripArticle(s string) string {
	lower := strings.ToLower(s)
	for _, a := range articles {
		if strings.HasPrefix(lower, a) {
			return s[len(a):]
		}
	}
	return s
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// TitleKey moves a leading numeral token to the end of the title, strips an
// article and case-folds the result: "1 Henry IV" sorts as "henry iv 1".
func TitleKey(title string) string {
	title = strings.TrimSpace(title)
	if title != "" && unicode.IsDigit([]rune(title)[0]) {
		fields := strings.Fields(title)
		title = strings.Join(append(fields[1:], fields[0]), " ")
	}
	return fold(StripArticle(title))
}

// LocationKey is the article-stripped, case-folded location name.
func LocationKey(name string) string {
	return fold(StripArticle(strings.TrimSpace(name)))
}

// CatalogKey splits a "major.minor" catalog number. A bare "N" gives (N, 0)
// and anything unparseable gives (0, 0).
func CatalogKey(number string) (int, int) {
	number = strings.TrimSpace(number)
	major, minor, dotted := strings.Cut(number, ".")
	a, err := strconv.Atoi(major)
	if err != nil {
		return 0, 0
	}
	if !dotted {
		return a, 0
	}
	b, err := strconv.Atoi(minor)
	if err != nil {
		return 0, 0
	}
	return a, b
}

// IssueKey orders issues by numeric edition number, non-numeric editions
// last, then by start and end year.
func IssueKey(editionNumber string, start, end int) Key {
	edition := Inf()
	if n, ok := digits(editionNumber); ok {
		edition = Int(n)
	}
	return Key{edition, Int(start), Int(end)}
}

func digits(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// Order selects the copy sort key.
type Order string

const (
	OrderDate     Order = "date"
	OrderTitle    Order = "title"
	OrderLocation Order = "location"
	OrderCatalog  Order = "catalog"
	OrderSTC      Order = "stc"
)

var orderAliases = map[string]Order{
	"date":       OrderDate,
	"year":       OrderDate,
	"title":      OrderTitle,
	"location":   OrderLocation,
	"catalog":    OrderCatalog,
	"census_id":  OrderCatalog,
	"catalog_id": OrderCatalog,
	"wc":         OrderCatalog,
	"cen":        OrderCatalog,
	"stc":        OrderSTC,
	"identifier": OrderSTC,
}

// ParseOrder maps a user supplied order token to an Order. Unknown or empty
// tokens give OrderDate.
func ParseOrder(s string) Order {
	if o, ok := orderAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return o
	}
	return OrderDate
}

func copyTitle(c *models.CopyModel) string {
	if c.Issue != nil && c.Issue.Edition != nil && c.Issue.Edition.Title != nil {
		return c.Issue.Edition.Title.Title
	}
	return ""
}

func copyStart(c *models.CopyModel) int {
	if c.Issue != nil {
		return c.Issue.StartDate
	}
	return 0
}

func copyLocation(c *models.CopyModel) string {
	if c.Location != nil {
		return c.Location.Name
	}
	return ""
}

func copySTC(c *models.CopyModel) string {
	if c.Issue != nil && c.Issue.STCWing != nil {
		return *c.Issue.STCWing
	}
	return ""
}

// CopyKey builds the key of c for the given order. c should have its Issue
// (with Edition and Title) and Location loaded; missing parts sort first.
func CopyKey(order Order, c *models.CopyModel) Key {
	title := Str(TitleKey(copyTitle(c)))
	start := Int(copyStart(c))
	location := Str(LocationKey(copyLocation(c)))

	switch order {
	case OrderTitle:
		return Key{title, start, location}
	case OrderLocation:
		return Key{location, start, title}
	case OrderCatalog:
		a, b := CatalogKey(c.CatalogNumber)
		return Key{Int(a), Int(b)}
	case OrderSTC:
		return Key{Str(copySTC(c)), location}
	default:
		return Key{start, title, location}
	}
}

func sortBy[T any](items []T, key func(*T) Key) {
	keys := make(map[*T]Key, len(items))
	ptrs := make([]*T, len(items))
	for i := range items {
		ptrs[i] = &items[i]
		keys[ptrs[i]] = key(ptrs[i])
	}
	slices.SortStableFunc(ptrs, func(a, b *T) int {
		return keys[a].Compare(keys[b])
	})
	sorted := make([]T, len(items))
	for i, p := range ptrs {
		sorted[i] = *p
	}
	copy(items, sorted)
}

// SortCopies sorts copies in place by the given order.
func SortCopies(copies []models.CopyModel, order Order) {
	sortBy(copies, func(c *models.CopyModel) Key { return CopyKey(order, c) })
}

// SortIssues sorts issues in place by IssueKey. Issues should have their
// Edition loaded.
func SortIssues(issues []models.IssueModel) {
	sortBy(issues, func(i *models.IssueModel) Key {
		edition := ""
		if i.Edition != nil && i.Edition.EditionNumber != nil {
			edition = *i.Edition.EditionNumber
		}
		return IssueKey(edition, i.StartDate, i.EndDate)
	})
}

// SortTitles sorts titles in place by TitleKey.
func SortTitles(titles []models.TitleModel) {
	sortBy(titles, func(t *models.TitleModel) Key {
		return Key{Str(TitleKey(t.Title))}
	})
}
