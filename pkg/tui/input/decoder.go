// ABOUTME: Decoder reads one logical key per call from a timeout byte stream.
// ABOUTME: A read that returns no data is the "no key" sentinel; a failing read wraps ErrRead.

package input

import (
	"errors"
	"fmt"
	"io"

	"github.com/mauromedda/bim-go/pkg/tui/key"
)

// ErrRead reports that the input source failed, as opposed to timing out.
var ErrRead = errors.New("input read failed")

// KeyReader yields one logical key per call. key.None means the read timed
// out with no data.
type KeyReader interface {
	ReadKey() (key.Key, error)
}

// Decoder turns raw terminal bytes into keys. The underlying reader must
// return (0, nil) or (0, io.EOF) when its read timeout expires; raw mode
// with VMIN=0 behaves that way.
type Decoder struct {
	r   io.Reader
	buf [1]byte
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// ReadKey reads and decodes the next key.
func (d *Decoder) ReadKey() (key.Key, error) {
	b, ok, err := d.readByte()
	if err != nil || !ok {
		return key.None, err
	}

	switch {
	case b == 0x1b:
		return d.readEscape()
	case b >= 0x80:
		return d.readUTF8(b)
	}
	return key.ParseKey(string(rune(b))), nil
}

// maxCSI bounds the bytes read after ESC [ before giving up on a sequence.
const maxCSI = 16

// readEscape collects the bytes following ESC. Any follow-up byte that
// does not arrive in time turns the sequence into a lone Escape.
func (d *Decoder) readEscape() (key.Key, error) {
	b, ok, err := d.readByte()
	if err != nil || !ok {
		return escapeOrNone(err)
	}

	seq := []byte{0x1b, b}
	switch b {
	case '[':
		return d.readCSI(seq)
	case 'O':
		b, ok, err := d.readByte()
		if err != nil || !ok {
			return escapeOrNone(err)
		}
		seq = append(seq, b)
	}
	return key.ParseKey(string(seq)), nil
}

// readCSI reads parameter and intermediate bytes up to the final byte, so a
// sequence such as ESC [ 1 ; 5 C is consumed whole. Sequences without a
// binding read as Escape.
func (d *Decoder) readCSI(seq []byte) (key.Key, error) {
	for len(seq) < maxCSI {
		b, ok, err := d.readByte()
		if err != nil || !ok {
			return escapeOrNone(err)
		}
		seq = append(seq, b)
		switch {
		case b >= 0x40 && b <= 0x7e:
			return key.ParseKey(string(seq)), nil
		case b < 0x20 || b > 0x3f:
			return key.Key{Type: key.KeyEscape}, nil
		}
	}
	return key.Key{Type: key.KeyEscape}, nil
}

// escapeOrNone maps a failed follow-up read to its error and a timed-out
// one to Escape.
func escapeOrNone(err error) (key.Key, error) {
	if err != nil {
		return key.None, err
	}
	return key.Key{Type: key.KeyEscape}, nil
}

// readUTF8 completes a multi-byte rune whose lead byte is lead.
func (d *Decoder) readUTF8(lead byte) (key.Key, error) {
	n := utf8SeqLen(lead)
	if n == 0 {
		return key.None, nil
	}

	seq := make([]byte, 1, n)
	seq[0] = lead
	for len(seq) < n {
		b, ok, err := d.readByte()
		if err != nil {
			return key.None, err
		}
		if !ok {
			return key.None, nil
		}
		seq = append(seq, b)
	}
	return key.ParseKey(string(seq)), nil
}

// readByte reads a single byte. ok is false when the read timed out.
func (d *Decoder) readByte() (byte, bool, error) {
	n, err := d.r.Read(d.buf[:])
	if n == 1 {
		return d.buf[0], true, nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return 0, false, nil
	}
	return 0, false, fmt.Errorf("%w: %w", ErrRead, err)
}

// utf8SeqLen returns the UTF-8 sequence length implied by a lead byte, 0 if invalid.
func utf8SeqLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	}
	return 0
}
