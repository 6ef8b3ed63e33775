package feed

import "fmt"

// Link relations emitted by BuildLinks, in emission order.
const (
	RelLast     = "last"
	RelNext     = "next"
	RelPrevious = "previous"
	RelSelf     = "self"
)

// BuildLinks constructs the navigation links for a page. Order is fixed:
// last, next, previous, self. Here "next" walks toward the head of the
// feed and "previous" toward older pages; existing consumers depend on
// this orientation even though it is the reverse of how generic paging
// literature reads those names.
func BuildLinks(page int64, pageSize int, complete bool) []Link {
	href := func(p int64) string { return fmt.Sprintf("/%d/%d", p, pageSize) }

	links := []Link{{Rel: RelLast, Href: href(0)}}
	if page >= 1 {
		links = append(links, Link{Rel: RelNext, Href: href(page - 1)})
	}
	if complete {
		links = append(links, Link{Rel: RelPrevious, Href: href(page + 1)})
	}
	return append(links, Link{Rel: RelSelf, Href: href(page)})
}
