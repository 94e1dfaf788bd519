package rcon

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// RCON packet types
const (
	TypeResponseValue = 0
	TypeExecCommand   = 2
	TypeAuthResponse  = 2
	TypeAuth          = 3
)

// Packet represents an outgoing RCON protocol packet
type Packet struct {
	Size int32
	ID   int32
	Type int32
	Body string
}

// Response is a packet parsed from a single read.
type Response struct {
	Size int32
	ID   int32
	Type int32
	Body string

	// Raw holds the body bytes as received, without terminators.
	Raw []byte
	// Binary is set when the body is not valid UTF-8; Body is then empty.
	Binary bool
	// Truncated is set when the declared size exceeds the bytes read.
	Truncated bool
}

// Encode builds the wire form of a packet:
// size | id | type | body | 0x00 0x00, integers little-endian.
func Encode(id, ptype int32, body string) ([]byte, error) {
	if !utf8.ValidString(body) {
		return nil, opError("encode", ErrInvalidBody, nil)
	}

	// Size = ID (4) + Type (4) + Body (n) + null terminator (1) + padding (1)
	size := int32(packetOverhead + len(body))

	buf := make([]byte, 4+size)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(size))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(id))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(ptype))
	copy(buf[headerSize:], body)
	// Null terminators already zero in buffer

	return buf, nil
}

// Encode returns the wire form of p and records the computed size on it.
func (p *Packet) Encode() ([]byte, error) {
	buf, err := Encode(p.ID, p.Type, p.Body)
	if err != nil {
		return nil, err
	}
	p.Size = int32(len(buf) - 4)
	return buf, nil
}

// Decode parses one packet from raw. It never reads past len(raw): a
// declared size larger than the data available yields a Truncated response.
func Decode(raw []byte) (*Response, error) {
	if len(raw) < headerSize {
		return nil, opError("decode", ErrMalformedPacket,
			fmt.Errorf("got %d bytes, need at least %d for the header", len(raw), headerSize))
	}

	resp := &Response{
		Size: int32(binary.LittleEndian.Uint32(raw[0:4])),
		ID:   int32(binary.LittleEndian.Uint32(raw[4:8])),
		Type: int32(binary.LittleEndian.Uint32(raw[8:12])),
	}

	if resp.Size < packetOverhead-2 {
		return nil, opError("decode", ErrMalformedPacket,
			fmt.Errorf("declared size %d is smaller than id and type fields", resp.Size))
	}

	end := int64(resp.Size) + 4
	if end > int64(len(raw)) {
		end = int64(len(raw))
		resp.Truncated = true
	}

	body := make([]byte, end-headerSize)
	copy(body, raw[headerSize:end])
	body = trimPadding(body)
	resp.Raw = body

	text := body
	if resp.Truncated {
		text = trimPartialRune(text)
	}
	if !utf8.Valid(text) {
		resp.Binary = true
		return resp, nil
	}
	resp.Body = strings.TrimRightFunc(string(text), isPadding)
	return resp, nil
}

// Text returns the body for display, falling back to a quoted form of the
// raw bytes when the body is binary.
func (r *Response) Text() string {
	if r.Binary {
		return fmt.Sprintf("%q", r.Raw)
	}
	return r.Body
}

func isPadding(r rune) bool {
	return r == 0 || unicode.IsSpace(r)
}

// trimPartialRune drops a multi-byte character cut off at the end of b.
func trimPartialRune(b []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		start := len(b) - i
		if !utf8.RuneStart(b[start]) {
			continue
		}
		if !utf8.FullRune(b[start:]) {
			return b[:start]
		}
		return b
	}
	return b
}

func trimPadding(b []byte) []byte {
	for len(b) > 0 && b[len(b)-1] == 0 {
		b = b[:len(b)-1]
	}
	return b
}
