package repository

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"clientrepo/internal/model"
)

func cloneClients(in []model.Client) []model.Client {
	out := make([]model.Client, len(in))
	copy(out, in)
	return out
}

func indexByID(items []model.Client, id int64) int {
	return slices.IndexFunc(items, func(c model.Client) bool { return c.ID == id })
}

// hasKey reports whether any client other than the one at skip shares c's key.
// Pass skip = -1 to check every client.
func hasKey(items []model.Client, c model.Client, skip int) bool {
	key := c.Key()
	for i := range items {
		if i != skip && items[i].Key() == key {
			return true
		}
	}
	return false
}

func nextID(items []model.Client) int64 {
	var highest int64
	for _, c := range items {
		if c.ID > highest {
			highest = c.ID
		}
	}
	return highest + 1
}

// pageOf applies the strict page rules of the base repository: the page is empty
// unless 0 < n <= len(items) and 0 < k <= ceil(len(items)/n).
func pageOf(items []model.Client, k, n int) []model.Client {
	count := len(items)
	if n <= 0 || k <= 0 || count < n {
		return []model.Client{}
	}
	last := (count + n - 1) / n
	if k > last {
		return []model.Client{}
	}
	start := (k - 1) * n
	end := min(start+n, count)
	return cloneClients(items[start:end])
}

// CompareField returns an ascending comparator for field.
func CompareField(field SortField) func(a, b model.Client) int {
	switch field {
	case SortByID:
		return func(a, b model.Client) int { return cmp.Compare(a.ID, b.ID) }
	case SortByHaircut:
		return func(a, b model.Client) int { return cmp.Compare(a.HaircutCounter, b.HaircutCounter) }
	case SortByDiscount:
		return func(a, b model.Client) int { return cmp.Compare(a.Discount, b.Discount) }
	default:
		return func(a, b model.Client) int { return strings.Compare(a.LastName, b.LastName) }
	}
}

func sortItems(items []model.Client, field SortField) {
	slices.SortStableFunc(items, CompareField(field))
}

func validateAll(items []model.Client) error {
	for i, c := range items {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

// validateWithID checks c as it would be stored under id. The store decides
// the final ID, so c itself is left untouched.
func validateWithID(c model.Client, id int64) error {
	c.ID = id
	return c.Validate()
}
