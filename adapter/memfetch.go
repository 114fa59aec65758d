package adapter

import "github.com/rs/xid"

// MemFetch is the adapter-visible request record (§4.7): an external
// memory access in flight through the controller, from acceptance to
// reply.
type MemFetch struct {
	ID          xid.ID
	Address     uint64
	WriteFlag   bool
	RequestFlag bool
	Size        int
	OriginData  []byte
}

// NewMemFetch builds a MemFetch with a fresh identifier and RequestFlag
// set, as it must be while the access is still outstanding.
func NewMemFetch(address uint64, writeFlag bool, size int, data []byte) *MemFetch {
	return &MemFetch{
		ID:          xid.New(),
		Address:     address,
		WriteFlag:   writeFlag,
		RequestFlag: true,
		Size:        size,
		OriginData:  data,
	}
}

// SetReply clears RequestFlag, marking the fetch as completed.
func (f *MemFetch) SetReply() {
	f.RequestFlag = false
}
