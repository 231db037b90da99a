package extractor

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ExtractTXT decodes raw bytes as text. Valid UTF-8 passes through
// unchanged. A UTF-16 byte order mark (either endianness) switches to a
// UTF-16 decode. Anything else fails with ErrDecode.
func ExtractTXT(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	if len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE {
		return decodeUTF16(data, unicode.LittleEndian)
	}

	if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
		return decodeUTF16(data, unicode.BigEndian)
	}

	return "", ErrDecode
}

func decodeUTF16(data []byte, endianness unicode.Endianness) (string, error) {
	decoder := unicode.UTF16(endianness, unicode.UseBOM).NewDecoder()
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return string(decoded), nil
}
