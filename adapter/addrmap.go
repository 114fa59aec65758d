package adapter

import "github.com/Helios113/ramulator2/dram"

// addrMapper decodes a flat byte address into the hierarchical coordinate
// vector the core engine operates on. Address decoding is explicitly the
// caller's responsibility (the core only ever consumes an already-decoded
// dram.Addr), so this lives in the adapter rather than in the dram package.
//
// Bit fields are carved out column-first (lowest bits, burst granularity)
// through row-last (highest bits), in the order: column, bank, bankgroup,
// rank, channel, row.
type addrMapper struct {
	colBits, bankBits, bgBits, rankBits, chanBits int
}

func newAddrMapper(org dram.Organization) addrMapper {
	return addrMapper{
		colBits:  bitWidth(org.Count[levelColumn]),
		bankBits: bitWidth(org.Count[levelBank]),
		bgBits:   bitWidth(org.Count[levelBankGroup]),
		rankBits: bitWidth(org.Count[levelRank]),
		chanBits: bitWidth(org.Count[levelChannel]),
	}
}

// Decode splits addr into a dram.Addr. Bits beyond the channel field become
// the row coordinate.
func (m addrMapper) Decode(addr uint64) dram.Addr {
	var a dram.Addr

	a.Column = int(extract(&addr, m.colBits))
	a.Bank = int(extract(&addr, m.bankBits))
	a.BankGroup = int(extract(&addr, m.bgBits))
	a.Rank = int(extract(&addr, m.rankBits))
	a.Channel = int(extract(&addr, m.chanBits))
	a.Row = int(addr)

	return a
}

func extract(addr *uint64, bits int) uint64 {
	if bits == 0 {
		return 0
	}

	mask := uint64(1)<<bits - 1
	v := *addr & mask
	*addr >>= bits

	return v
}

// bitWidth returns the number of bits needed to index n distinct values.
func bitWidth(n int) int {
	bits := 0
	for (1 << bits) < n {
		bits++
	}

	return bits
}

// The hierarchy-level indices used by newAddrMapper, mirroring
// dram/internal/dict.Level without importing the internal package.
const (
	levelChannel = iota
	levelRank
	levelBankGroup
	levelBank
	levelRow
	levelColumn
)
