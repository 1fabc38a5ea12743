package plugin

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// DefaultMaxFrame bounds a single payload.
const DefaultMaxFrame = 16 << 20

// ErrFrameTooLarge is returned when a frame header announces more than the limit.
var ErrFrameTooLarge = errors.New("plugin: frame too large")

// WriteFrame encodes v and writes it as one frame.
func WriteFrame(w io.Writer, v any) error {
	payload, err := msgpack.Marshal(v)
	if err != nil {
		return fmt.Errorf("plugin: encode: %w", err)
	}
	if len(payload) > DefaultMaxFrame {
		return ErrFrameTooLarge
	}
	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(len(payload))) // #nosec G115 -- bounded above
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

// FrameReader reads frames from a stream.
type FrameReader struct {
	r   *bufio.Reader
	max uint32
}

// NewFrameReader wraps r; max <= 0 selects DefaultMaxFrame.
func NewFrameReader(r io.Reader, maxFrame int) *FrameReader {
	if maxFrame <= 0 || maxFrame > DefaultMaxFrame {
		maxFrame = DefaultMaxFrame
	}
	return &FrameReader{r: bufio.NewReader(r), max: uint32(maxFrame)} // #nosec G115
}

// Read decodes the next frame into v. A clean end of stream before a header
// is io.EOF; a stream cut inside a frame is io.ErrUnexpectedEOF.
func (fr *FrameReader) Read(v any) error {
	var hdr [4]byte
	if _, err := io.ReadFull(fr.r, hdr[:]); err != nil {
		return err
	}
	n := binary.BigEndian.Uint32(hdr[:])
	if n > fr.max {
		return fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, n, fr.max)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(fr.r, payload); err != nil {
		if errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	if err := msgpack.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("plugin: decode: %w", err)
	}
	return nil
}
