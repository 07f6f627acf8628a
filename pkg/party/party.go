// Package party identifies the signers whose keys a caller tracks.
package party

import "sort"

// ID identifies a signer. IDs are opaque strings chosen by the caller.
type ID string

func (id ID) String() string {
	return string(id)
}

// IDSlice is a sorted slice of unique IDs.
type IDSlice []ID

// NewIDSlice returns a sorted copy of the given IDs with duplicates removed.
func NewIDSlice(ids []ID) IDSlice {
	out := make(IDSlice, 0, len(ids))
	seen := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Contains reports whether every given id is present.
func (ids IDSlice) Contains(wanted ...ID) bool {
	for _, w := range wanted {
		i := sort.Search(len(ids), func(i int) bool { return ids[i] >= w })
		if i == len(ids) || ids[i] != w {
			return false
		}
	}
	return true
}
