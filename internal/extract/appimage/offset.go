package appimage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const squashfsMagic = "hsqs"

// PayloadOffset locates the squashfs image appended to the AppImage runtime.
// The image starts where the runtime's section header table ends.
func PayloadOffset(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return payloadOffset(f)
}

func payloadOffset(r io.ReaderAt) (int64, error) {
	ident := make([]byte, 64)
	if _, err := r.ReadAt(ident, 0); err != nil && err != io.EOF {
		return 0, fmt.Errorf("failed to read ELF header: %w", err)
	}
	if string(ident[:4]) != "\x7fELF" {
		return 0, fmt.Errorf("not an ELF file")
	}

	var order binary.ByteOrder
	switch ident[5] {
	case 1:
		order = binary.LittleEndian
	case 2:
		order = binary.BigEndian
	default:
		return 0, fmt.Errorf("unknown ELF data encoding %d", ident[5])
	}

	var shoff, shentsize, shnum int64
	switch ident[4] {
	case 1:
		shoff = int64(order.Uint32(ident[0x20:]))
		shentsize = int64(order.Uint16(ident[0x2E:]))
		shnum = int64(order.Uint16(ident[0x30:]))
	case 2:
		shoff = int64(order.Uint64(ident[0x28:]))
		shentsize = int64(order.Uint16(ident[0x3A:]))
		shnum = int64(order.Uint16(ident[0x3C:]))
	default:
		return 0, fmt.Errorf("unknown ELF class %d", ident[4])
	}

	offset := shoff + shentsize*shnum
	magic := make([]byte, len(squashfsMagic))
	if _, err := r.ReadAt(magic, offset); err != nil {
		return 0, fmt.Errorf("failed to read payload at offset %d: %w", offset, err)
	}
	if string(magic) != squashfsMagic {
		return 0, fmt.Errorf("no squashfs payload at offset %d", offset)
	}

	return offset, nil
}
