package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// parsePages parses a page list such as "1,3-4" into page numbers.
// An empty list selects every page.
func parsePages(spec string) ([]int, error) {
	var pages []int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		first, last, isRange := strings.Cut(part, "-")
		from, err := strconv.Atoi(strings.TrimSpace(first))
		if err != nil {
			return nil, fmt.Errorf("invalid page %q", part)
		}
		to := from
		if isRange {
			if to, err = strconv.Atoi(strings.TrimSpace(last)); err != nil {
				return nil, fmt.Errorf("invalid page range %q", part)
			}
		}
		if from < 1 || to < from {
			return nil, fmt.Errorf("invalid page range %q", part)
		}
		for n := from; n <= to; n++ {
			pages = append(pages, n)
		}
	}
	return pages, nil
}

// pageList is a pflag.Value holding a parsed page selection
type pageList []int

var _ pflag.Value = (*pageList)(nil)

func (p *pageList) String() string {
	parts := make([]string, len(*p))
	for i, n := range *p {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func (p *pageList) Set(spec string) error {
	pages, err := parsePages(spec)
	if err != nil {
		return err
	}
	*p = pages
	return nil
}

func (p *pageList) Type() string {
	return "pages"
}
