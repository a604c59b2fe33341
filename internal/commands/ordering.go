package commands

import (
	"path/filepath"
	"sort"

	"github.com/temirov/dirtree/internal/filter"
	"github.com/temirov/dirtree/internal/types"
)

// orderEntries rearranges retained entries in place according to order.
// types.OrderListing and unknown values leave the listing order untouched.
func orderEntries(entries []filter.Entry, order string) {
	switch order {
	case types.OrderName:
		sort.SliceStable(entries, func(left, right int) bool {
			return filepath.Base(entries[left].Path) < filepath.Base(entries[right].Path)
		})
	case types.OrderDirectoriesFirst:
		sort.SliceStable(entries, func(left, right int) bool {
			if entries[left].IsDirectory != entries[right].IsDirectory {
				return entries[left].IsDirectory
			}
			return filepath.Base(entries[left].Path) < filepath.Base(entries[right].Path)
		})
	}
}
