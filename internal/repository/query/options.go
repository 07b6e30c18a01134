// Package query decorates repositories and row stores with filtered, sorted
// pagination. Decorators forward every base operation unchanged.
package query

import (
	"cmp"
	"slices"
	"strings"

	"clientrepo/internal/model"
	"clientrepo/internal/repository"
)

// Predicate keeps the clients for which it returns true.
type Predicate func(model.Client) bool

// Compare orders two clients like cmp.Compare.
type Compare func(a, b model.Client) int

// Option configures a Page call.
type Option func(*options)

type options struct {
	filter  Predicate
	order   Compare
	reverse bool
}

// Where keeps only clients matching p.
func Where(p Predicate) Option {
	return func(o *options) { o.filter = p }
}

// OrderBy stable-sorts the filtered clients with c.
func OrderBy(c Compare) Option {
	return func(o *options) { o.order = c }
}

// Reverse flips the OrderBy comparator. It has no effect without OrderBy.
func Reverse() Option {
	return func(o *options) { o.reverse = true }
}

// Comparators for the sortable client fields.
var (
	ByID             Compare = func(a, b model.Client) int { return cmp.Compare(a.ID, b.ID) }
	ByLastName       Compare = func(a, b model.Client) int { return strings.Compare(a.LastName, b.LastName) }
	ByHaircutCounter Compare = func(a, b model.Client) int { return cmp.Compare(a.HaircutCounter, b.HaircutCounter) }
	ByDiscount       Compare = func(a, b model.Client) int { return cmp.Compare(a.Discount, b.Discount) }
)

// CompareBy returns the comparator for a repository sort field.
func CompareBy(field repository.SortField) Compare {
	return Compare(repository.CompareField(field))
}

// All combines predicates; a nil predicate is ignored.
func All(ps ...Predicate) Predicate {
	return func(c model.Client) bool {
		for _, p := range ps {
			if p != nil && !p(c) {
				return false
			}
		}
		return true
	}
}

// apply filters, sorts and pages a copy of items.
func apply(items []model.Client, k, n int, opts []Option) []model.Client {
	items = slices.Clone(items)
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.filter != nil {
		items = slices.DeleteFunc(items, func(c model.Client) bool { return !o.filter(c) })
	}
	if o.order != nil {
		order := o.order
		if o.reverse {
			order = func(a, b model.Client) int { return o.order(b, a) }
		}
		slices.SortStableFunc(items, order)
	}

	// Compare page indexes rather than offsets so (k-1)*n cannot overflow.
	if len(items) == 0 || k-1 > (len(items)-1)/n {
		return []model.Client{}
	}
	start := (k - 1) * n
	end := min(start+n, len(items))
	return items[start:end:end]
}

func countMatching(items []model.Client, p Predicate) int {
	n := 0
	for _, c := range items {
		if p(c) {
			n++
		}
	}
	return n
}
