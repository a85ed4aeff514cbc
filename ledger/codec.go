package ledger

import (
	"encoding/binary"
	"errors"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
)

// codec.go implements the canonical compact encoding of ledger entries.
//
// The encoding is byte-aligned: fixed-width fields are big-endian, variable
// integers use unsigned varints, and lists are length-prefixed. Every entry
// has exactly one canonical encoding; the decoder rejects truncated input
// and trailing bytes. The encoding feeds the per-commit state digest and the
// codec tests. It is not a wire protocol.

var (
	// ErrMalformedEncoding is returned when an encoded entry is truncated
	// or structurally invalid.
	ErrMalformedEncoding = errors.New("ledger: malformed entry encoding")

	// ErrNonCanonicalEncoding is returned when an encoded entry decodes
	// but is not the canonical encoding of its value (e.g. trailing bytes).
	ErrNonCanonicalEncoding = errors.New("ledger: non-canonical entry encoding")

	// ErrUnknownEntryType is returned when the encoded type tag is not a
	// known entry type.
	ErrUnknownEntryType = errors.New("ledger: unknown entry type")
)

// EncodeEntry returns the canonical encoding of an entry.
func EncodeEntry(e Entry) []byte {
	w := entryWriter{buf: make([]byte, 0, 64)}
	w.u16(uint16(e.Type()))
	switch v := e.(type) {
	case *AccountRoot:
		w.address(v.Account)
		w.u64(v.Balance)
		w.u64(v.BalanceVBC)
		w.u32(v.Sequence)
		w.address(v.Referee)
		w.listLen(len(v.References))
		for _, ref := range v.References {
			w.address(ref)
		}
	case *Amendments:
		w.listLen(len(v.Amendments))
		for _, id := range v.Amendments {
			w.hash(id)
		}
	case *FeeSettings:
		w.u64(v.BaseFee)
		w.u32(v.ReferenceFeeUnits)
		w.u32(v.ReserveBase)
		w.u32(v.ReserveIncrement)
	case *DividendRecord:
		w.u64(uint64(v.DividendLedger))
		w.u64(v.DividendCoins)
		w.u64(v.DividendCoinsVBC)
	default:
		// Entry implementations live in this package; an unknown one is a
		// programming error, not input.
		panic("ledger: cannot encode unknown entry type")
	}
	return w.buf
}

// DecodeEntry decodes a canonical entry encoding.
func DecodeEntry(b []byte) (Entry, error) {
	r := entryReader{buf: b}
	tag := r.u16()
	var e Entry
	switch EntryType(tag) {
	case EntryAccountRoot:
		acct := &AccountRoot{}
		acct.Account = r.address()
		acct.Balance = r.u64()
		acct.BalanceVBC = r.u64()
		acct.Sequence = r.u32()
		acct.Referee = r.address()
		n := r.listLen()
		for i := 0; i < n && r.err == nil; i++ {
			acct.References = append(acct.References, r.address())
		}
		e = acct
	case EntryAmendments:
		am := &Amendments{}
		n := r.listLen()
		for i := 0; i < n && r.err == nil; i++ {
			am.Amendments = append(am.Amendments, r.hash())
		}
		e = am
	case EntryFeeSettings:
		e = &FeeSettings{
			BaseFee:           r.u64(),
			ReferenceFeeUnits: r.u32(),
			ReserveBase:       r.u32(),
			ReserveIncrement:  r.u32(),
		}
	case EntryDividend:
		e = &DividendRecord{
			DividendLedger:   idx.Block(r.u64()),
			DividendCoins:    r.u64(),
			DividendCoinsVBC: r.u64(),
		}
	default:
		if r.err != nil {
			return nil, r.err
		}
		return nil, ErrUnknownEntryType
	}
	if r.err != nil {
		return nil, r.err
	}
	if r.pos != len(r.buf) {
		return nil, ErrNonCanonicalEncoding
	}
	return e, nil
}

type entryWriter struct {
	buf []byte
}

func (w *entryWriter) u16(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

func (w *entryWriter) u32(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

func (w *entryWriter) u64(v uint64) {
	w.buf = binary.AppendUvarint(w.buf, v)
}

func (w *entryWriter) listLen(n int) {
	w.buf = binary.AppendUvarint(w.buf, uint64(n))
}

func (w *entryWriter) address(a common.Address) {
	w.buf = append(w.buf, a.Bytes()...)
}

func (w *entryWriter) hash(h common.Hash) {
	w.buf = append(w.buf, h.Bytes()...)
}

type entryReader struct {
	buf []byte
	pos int
	err error
}

func (r *entryReader) fail() {
	if r.err == nil {
		r.err = ErrMalformedEncoding
	}
}

func (r *entryReader) take(n int) []byte {
	if r.err != nil || r.pos+n > len(r.buf) {
		r.fail()
		return nil
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *entryReader) u16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (r *entryReader) u32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (r *entryReader) u64() uint64 {
	if r.err != nil {
		return 0
	}
	v, n := binary.Uvarint(r.buf[r.pos:])
	if n <= 0 {
		r.fail()
		return 0
	}
	r.pos += n
	return v
}

func (r *entryReader) listLen() int {
	n := r.u64()
	if r.err != nil {
		return 0
	}
	// A list can never be longer than the bytes that remain to encode it.
	if n > uint64(len(r.buf)-r.pos) {
		r.fail()
		return 0
	}
	return int(n)
}

func (r *entryReader) address() (a common.Address) {
	b := r.take(common.AddressLength)
	if b != nil {
		copy(a[:], b)
	}
	return a
}

func (r *entryReader) hash() (h common.Hash) {
	b := r.take(common.HashLength)
	if b != nil {
		copy(h[:], b)
	}
	return h
}
