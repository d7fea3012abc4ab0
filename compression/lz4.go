package compression

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

func CompressLz4(src []byte, output *bytes.Buffer) error {
	zw := lz4.NewWriter(output)

	if _, err := zw.Write(src); err != nil {
		return err
	}

	flushErr := zw.Flush()

	if flushErr != nil {
		return flushErr
	}

	return zw.Close()
}

// DecompressLz4 reads one lz4 frame from input, expectedSize bytes are
// required.
func DecompressLz4(input io.Reader, expectedSize int) ([]byte, error) {
	zr := lz4.NewReader(input)

	// grows with the decoded data, not with the announced size
	var out bytes.Buffer

	readBytes, err := io.CopyN(&out, zr, int64(expectedSize))
	if err != nil {
		return nil, fmt.Errorf("unable to decompress, got %d of %d bytes: %w", readBytes, expectedSize, err)
	}

	return out.Bytes(), nil
}
