package notification

import (
	"cmp"
	"slices"
)

// Filter narrows the list shown to the user. Zero values match everything.
type Filter struct {
	Category   Category
	Type       Type
	UnreadOnly bool
}

func (f Filter) matches(n Notification) bool {
	if f.Category != "" && n.Category != f.Category {
		return false
	}

	if f.Type != "" && n.Type != f.Type {
		return false
	}

	return !f.UnreadOnly || !n.IsRead
}

// View filters the list and orders it for display: priority high to low,
// then newest first.
func View(list []Notification, filter Filter) []Notification {
	out := make([]Notification, 0, len(list))

	for _, n := range list {
		if filter.matches(n) {
			out = append(out, n)
		}
	}

	slices.SortStableFunc(out, func(a, b Notification) int {
		if c := cmp.Compare(b.Priority.rank(), a.Priority.rank()); c != 0 {
			return c
		}

		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return out
}

// MarkAsRead returns a copy of list with the notification id marked read.
func MarkAsRead(list []Notification, id string) ([]Notification, error) {
	out := slices.Clone(list)

	for i := range out {
		if out[i].ID == id {
			out[i].IsRead = true
			return out, nil
		}
	}

	return nil, ErrNotFound
}

func MarkAllAsRead(list []Notification) []Notification {
	out := slices.Clone(list)
	for i := range out {
		out[i].IsRead = true
	}

	return out
}

func UnreadCount(list []Notification) int {
	count := 0

	for _, n := range list {
		if !n.IsRead {
			count++
		}
	}

	return count
}
