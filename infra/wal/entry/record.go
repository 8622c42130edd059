// Package entry implements the order journal: every accepted order
// intent is framed, CRC-checked and appended before the book mutates,
// so a restart can rebuild all books deterministically.
package entry

import "time"

type RecordType uint8

const (
	// RecordSubmit is an accepted order intent. Payload is a protobuf
	// OrderRecord (see api/pb).
	RecordSubmit RecordType = iota
)

type Record struct {
	Type RecordType
	Seq  uint64
	Time int64
	Data []byte
}

func NewRecord(t RecordType, seq uint64, data []byte) *Record {
	return &Record{
		Type: t,
		Seq:  seq,
		Time: time.Now().UnixNano(),
		Data: data,
	}
}
