// Package services – order message parser.
//
// Submissions arrive as free-form multi-line text with labeled lines:
//
//	Nama: Budi Santoso
//	Kode Barang: KB-001
//	Alamat: Jl. Merdeka 10, Bandung
//	Resi: JNE123456
//
// Parsing is deliberately forgiving about label casing, ordering, and
// surrounding whitespace, and strict about completeness: all four
// fields must be present and non-empty or the parse fails.
package services

import "strings"

// ParsedOrder holds the four required fields extracted from a
// submission message.
type ParsedOrder struct {
	Name     string
	ItemCode string
	Address  string
	Resi     string
}

// ParseOrder extracts order fields from raw multi-line text.
//
// Each line is split on its first colon into (key, value); the key is
// lowercased and trimmed, then matched by substring against the four
// field markers independently, so a later line with the same marker
// overwrites an earlier one. Lines without a colon are ignored.
//
// Returns ErrIncompleteOrder unless all four fields end up populated.
func ParseOrder(text string) (*ParsedOrder, error) {
	var p ParsedOrder
	for _, line := range strings.Split(text, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		// Substring checks are independent on purpose: an exotic label
		// matching two markers assigns both, mirroring how merchants'
		// hand-typed variations have always been accepted.
		if strings.Contains(key, "nama") {
			p.Name = value
		}
		if strings.Contains(key, "kode barang") {
			p.ItemCode = value
		}
		if strings.Contains(key, "alamat") {
			p.Address = value
		}
		if strings.Contains(key, "resi") {
			p.Resi = value
		}
	}

	if p.Name == "" || p.ItemCode == "" || p.Address == "" || p.Resi == "" {
		return nil, ErrIncompleteOrder
	}
	return &p, nil
}
