package unit

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/vesselworks/wasm-bundle/errors"
)

// SectionName is the custom section that carries a unit's Descriptor.
// The payload is the Descriptor encoded as JSON.
const SectionName = "unit-descriptor"

// wasm binary header
const (
	magic   uint32 = 0x6d736100 // "\0asm"
	version uint32 = 1
)

const sectionCustom byte = 0

// Parsing errors returned by ExtractDescriptor and Stamp.
var (
	ErrInvalidMagic   = stderrors.New("invalid wasm magic number")
	ErrInvalidVersion = stderrors.New("invalid wasm version")
)

// ExtractDescriptor scans a core module binary for the unit-descriptor
// custom section and decodes it. Found is false when the module carries
// no such section; that is not an error, the unit simply declares nothing.
// Only the section framing is validated here; full module verification is
// the runtime's job at compile time.
func ExtractDescriptor(wasm []byte) (d Descriptor, found bool, err error) {
	r := bytes.NewReader(wasm)

	if err := readHeader(r); err != nil {
		return Descriptor{}, false, err
	}

	for {
		id, err := r.ReadByte()
		if err != nil {
			if stderrors.Is(err, io.EOF) {
				return Descriptor{}, false, nil
			}
			return Descriptor{}, false, err
		}

		size, err := readUleb128(r)
		if err != nil {
			return Descriptor{}, false, fmt.Errorf("section size: %w", err)
		}

		payload := make([]byte, size)
		if _, err := io.ReadFull(r, payload); err != nil {
			return Descriptor{}, false, fmt.Errorf("section data: %w", err)
		}

		if id != sectionCustom {
			continue
		}

		name, rest, err := splitName(payload)
		if err != nil {
			return Descriptor{}, false, fmt.Errorf("custom section name: %w", err)
		}
		if name != SectionName {
			continue
		}

		if err := json.Unmarshal(rest, &d); err != nil {
			return Descriptor{}, false, fmt.Errorf("decode descriptor: %w", err)
		}
		return d, true, nil
	}
}

// Stamp appends a unit-descriptor custom section to a core module binary.
// It is the authoring-side counterpart of ExtractDescriptor, used when
// packaging units into a bundle. The input header is validated; the rest
// of the module is passed through untouched.
func Stamp(wasm []byte, d Descriptor) ([]byte, error) {
	if err := readHeader(bytes.NewReader(wasm)); err != nil {
		return nil, errors.New(errors.PhaseStamp, errors.KindInvalidUnit).Cause(err).Build()
	}

	payload, err := json.Marshal(d)
	if err != nil {
		return nil, errors.New(errors.PhaseStamp, errors.KindDescriptor).Cause(err).Build()
	}

	var body []byte
	body = appendUleb128(body, uint32(len(SectionName)))
	body = append(body, SectionName...)
	body = append(body, payload...)

	out := make([]byte, 0, len(wasm)+len(body)+6)
	out = append(out, wasm...)
	out = append(out, sectionCustom)
	out = appendUleb128(out, uint32(len(body)))
	out = append(out, body...)
	return out, nil
}

// MinimalModule returns the smallest valid core module: just the header.
// Useful for fixtures and bundle-authoring tests.
func MinimalModule() []byte {
	out := make([]byte, 8)
	binary.LittleEndian.PutUint32(out[0:], magic)
	binary.LittleEndian.PutUint32(out[4:], version)
	return out
}

func readHeader(r *bytes.Reader) error {
	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return fmt.Errorf("header: %w", err)
	}
	if binary.LittleEndian.Uint32(hdr[0:]) != magic {
		return ErrInvalidMagic
	}
	if binary.LittleEndian.Uint32(hdr[4:]) != version {
		return ErrInvalidVersion
	}
	return nil
}

// splitName separates a custom section payload into its name and data.
func splitName(payload []byte) (string, []byte, error) {
	r := bytes.NewReader(payload)
	n, err := readUleb128(r)
	if err != nil {
		return "", nil, err
	}
	name := make([]byte, n)
	if _, err := io.ReadFull(r, name); err != nil {
		return "", nil, err
	}
	rest := payload[len(payload)-r.Len():]
	return string(name), rest, nil
}
