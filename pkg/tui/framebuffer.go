// ABOUTME: Single-use byte buffer holding one frame; flushed to the terminal in exactly one write
// ABOUTME: Growth is capped so a runaway frame fails with ErrAlloc instead of exhausting memory

package tui

import (
	"errors"
	"fmt"
	"io"
)

// MaxFrameSize caps the bytes one frame may hold.
const MaxFrameSize = 4 << 20

const minFrameCap = 256

// Errors reported by FrameBuffer.
var (
	ErrAlloc        = errors.New("frame buffer allocation failed")
	ErrPartialWrite = errors.New("frame written partially")
	ErrFlushed      = errors.New("frame buffer already flushed")
)

// FrameBuffer accumulates the bytes of one frame. It is discarded by Flush
// and cannot be reused for the next frame.
type FrameBuffer struct {
	buf     []byte
	limit   int
	flushed bool
}

// NewFrameBuffer returns an empty buffer with room for sizeHint bytes.
func NewFrameBuffer(sizeHint int) *FrameBuffer {
	return newFrameBuffer(sizeHint, MaxFrameSize)
}

func newFrameBuffer(sizeHint, limit int) *FrameBuffer {
	sizeHint = min(max(sizeHint, minFrameCap), limit)
	return &FrameBuffer{buf: make([]byte, 0, sizeHint), limit: limit}
}

// Append adds p to the end of the frame. If the frame would outgrow its
// limit, Append fails with ErrAlloc and the buffer keeps its prior content.
func (b *FrameBuffer) Append(p []byte) error {
	if b.flushed {
		return ErrFlushed
	}
	need := len(b.buf) + len(p)
	if need > b.limit {
		return fmt.Errorf("%w: frame of %d bytes exceeds %d", ErrAlloc, need, b.limit)
	}
	if need > cap(b.buf) {
		b.grow(need)
	}
	b.buf = append(b.buf, p...)
	return nil
}

// AppendString is Append for strings.
func (b *FrameBuffer) AppendString(s string) error {
	if b.flushed {
		return ErrFlushed
	}
	need := len(b.buf) + len(s)
	if need > b.limit {
		return fmt.Errorf("%w: frame of %d bytes exceeds %d", ErrAlloc, need, b.limit)
	}
	if need > cap(b.buf) {
		b.grow(need)
	}
	b.buf = append(b.buf, s...)
	return nil
}

// grow doubles capacity until need fits, without passing the limit.
func (b *FrameBuffer) grow(need int) {
	c := max(cap(b.buf), minFrameCap)
	for c < need {
		c *= 2
	}
	c = min(c, b.limit)
	next := make([]byte, len(b.buf), c)
	copy(next, b.buf)
	b.buf = next
}

// Len returns the number of bytes in the frame.
func (b *FrameBuffer) Len() int {
	return len(b.buf)
}

// Bytes returns the frame contents. The slice is only valid until Flush.
func (b *FrameBuffer) Bytes() []byte {
	return b.buf
}

// Flush writes the whole frame to w in one call and discards the buffer.
// Anything short of a complete write is reported as ErrPartialWrite.
func (b *FrameBuffer) Flush(w io.Writer) error {
	if b.flushed {
		return ErrFlushed
	}
	frame := b.buf
	b.buf = nil
	b.flushed = true

	n, err := w.Write(frame)
	switch {
	case err != nil:
		return fmt.Errorf("%w: wrote %d of %d bytes: %w", ErrPartialWrite, n, len(frame), err)
	case n != len(frame):
		return fmt.Errorf("%w: wrote %d of %d bytes", ErrPartialWrite, n, len(frame))
	}
	return nil
}
