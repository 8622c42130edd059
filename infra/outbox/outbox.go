// Package outbox persists executed fills until they are acknowledged
// by the downstream broker. It is a pebble-backed state machine:
// NEW -> SENT -> ACKED, scanned by the broadcaster job.
package outbox

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
)

type State uint8

const (
	StateNew State = iota
	StateSent
	StateAcked
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateSent:
		return "SENT"
	case StateAcked:
		return "ACKED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Record is one outbox row.
type Record struct {
	Seq         uint64
	State       State
	Retries     uint32
	LastAttempt int64
	Payload     []byte // protobuf FillEvent
}

// value encoding: [state:1][retries:4][lastAttempt:8][payload...]
func encodeValue(r *Record) []byte {
	buf := make([]byte, 1+4+8+len(r.Payload))
	buf[0] = byte(r.State)
	binary.BigEndian.PutUint32(buf[1:5], r.Retries)
	binary.BigEndian.PutUint64(buf[5:13], uint64(r.LastAttempt))
	copy(buf[13:], r.Payload)
	return buf
}

func decodeValue(seq uint64, b []byte) (*Record, error) {
	if len(b) < 13 {
		return nil, errors.New("outbox: record too short")
	}
	return &Record{
		Seq:         seq,
		State:       State(b[0]),
		Retries:     binary.BigEndian.Uint32(b[1:5]),
		LastAttempt: int64(binary.BigEndian.Uint64(b[5:13])),
		Payload:     append([]byte(nil), b[13:]...),
	}, nil
}

type Outbox struct {
	db *pebble.DB
}

func Open(dir string) (*Outbox, error) {
	db, err := pebble.Open(dir, &pebble.Options{
		DisableWAL: false, // fills must survive a crash
	})
	if err != nil {
		return nil, err
	}
	return &Outbox{db: db}, nil
}

func (o *Outbox) Close() error {
	return o.db.Close()
}

// Put inserts a NEW row for a fill. It runs on the matching path, so
// the write skips the per-write fsync; the periodic broadcaster pass
// tolerates re-sending after a crash.
func (o *Outbox) Put(seq uint64, payload []byte) error {
	rec := &Record{State: StateNew, Payload: payload}
	return o.db.Set(keyFor(seq), encodeValue(rec), pebble.NoSync)
}

func (o *Outbox) MarkSent(seq uint64) error {
	return o.transition(seq, StateSent)
}

func (o *Outbox) MarkAcked(seq uint64) error {
	return o.transition(seq, StateAcked)
}

func (o *Outbox) MarkFailed(seq uint64) error {
	return o.transition(seq, StateFailed)
}

func (o *Outbox) transition(seq uint64, to State) error {
	rec, err := o.Get(seq)
	if err != nil {
		return err
	}
	rec.State = to
	if to == StateSent {
		rec.Retries++
	}
	rec.LastAttempt = time.Now().UnixNano()
	return o.db.Set(keyFor(seq), encodeValue(rec), pebble.Sync)
}

func (o *Outbox) Get(seq uint64) (*Record, error) {
	val, closer, err := o.db.Get(keyFor(seq))
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return decodeValue(seq, val)
}

// ScanPending visits every row that is not yet ACKED, in sequence
// order. The broadcaster uses this to (re)publish fills.
func (o *Outbox) ScanPending(fn func(*Record) error) error {
	iter, err := o.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(keyPrefix),
		UpperBound: []byte(keyPrefix + "~"),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		seq, err := parseKey(iter.Key())
		if err != nil {
			return err
		}
		rec, err := decodeValue(seq, iter.Value())
		if err != nil {
			return err
		}
		if rec.State == StateAcked {
			continue
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return iter.Error()
}

// MaxSeq returns the highest fill sequence present, ACKED or not, or 0
// when the outbox is empty. Recovery uses it as a floor so new fill
// sequences never collide with rows already staged.
func (o *Outbox) MaxSeq() (uint64, error) {
	iter, err := o.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(keyPrefix),
		UpperBound: []byte(keyPrefix + "~"),
	})
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	if !iter.Last() {
		return 0, iter.Error()
	}
	return parseKey(iter.Key())
}

// TruncateAckedUpTo deletes ACKED rows with sequence <= seq.
func (o *Outbox) TruncateAckedUpTo(seq uint64) error {
	iter, err := o.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(keyPrefix),
		UpperBound: keyFor(seq + 1),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		if len(iter.Value()) >= 1 && State(iter.Value()[0]) == StateAcked {
			key := append([]byte(nil), iter.Key()...)
			if err := o.db.Delete(key, pebble.NoSync); err != nil {
				return err
			}
		}
	}
	return iter.Error()
}

const keyPrefix = "fill/"

func keyFor(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", keyPrefix, seq))
}

func parseKey(b []byte) (uint64, error) {
	var seq uint64
	_, err := fmt.Sscanf(string(bytes.TrimPrefix(b, []byte(keyPrefix))), "%d", &seq)
	return seq, err
}
