package view

import "strconv"

type PageLink struct {
	Number int
	Label  string
	Active bool
}

type PaginationView struct {
	Links []PageLink
}

// MaxPageLinks bounds the pages a listing can claim.
const MaxPageLinks = 200

// Pagination produces one link per page from 1 to total, total capped at
// MaxPageLinks.
func Pagination(total, current int) PaginationView {
	if total <= 0 {
		return PaginationView{}
	}
	total = min(total, MaxPageLinks)
	links := make([]PageLink, 0, total)
	for i := 1; i <= total; i++ {
		links = append(links, PageLink{Number: i, Label: strconv.Itoa(i), Active: i == current})
	}
	return PaginationView{Links: links}
}
