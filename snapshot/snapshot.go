package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/dot5enko/miniql/bits"
	"github.com/dot5enko/miniql/compression"
	"github.com/dot5enko/miniql/schema"
	"github.com/dot5enko/miniql/store"
	"github.com/dot5enko/miniql/table"
	"github.com/google/uuid"
)

// snapshot layout, little endian
//
// *--------------------------------*
// | magic "MQLS" | version u16     |
// *--------------------------------*
// | uid (16)                       |
// | table name (u8 len + bytes)    |
// | columns u16                    |
// |   name, type u8, repeat u32    |
// | row size u32 | rows u32        |
// | uncompressed size u64          |
// | compressed size u64            |
// *--------------------------------*
// | lz4 frame with the row arena   |
// *--------------------------------*

const CurrentVersion = 1

var Magic = [4]byte{'M', 'Q', 'L', 'S'}

var (
	ErrNotSnapshot      = errors.New("not a table snapshot")
	ErrVersion          = errors.New("unsupported snapshot version")
	ErrLayoutMismatch   = errors.New("snapshot layout does not match its columns")
	ErrSnapshotTooLarge = errors.New("table is too large for a snapshot")
	ErrCorruptSizes     = errors.New("snapshot sizes do not match its payload")
)

// lz4 never expands a block by more than this factor
const maxLz4Ratio = 255

var byteOrder = binary.LittleEndian

type Header struct {
	Version uint16
	Uid     uuid.UUID

	Rows             uint32
	RowSize          uint32
	UncompressedSize uint64
	CompressedSize   uint64
}

// IsSnapshot checks the first bytes of a file.
func IsSnapshot(prefix []byte) bool {
	return len(prefix) >= len(Magic) && bytes.Equal(prefix[:len(Magic)], Magic[:])
}

// Write stores the schema and the compressed row arena of t.
func Write(w io.Writer, t *table.Table) (Header, error) {

	header := Header{
		Version: CurrentVersion,
		Uid:     uuid.New(),
	}

	if uint64(t.RowCount()) > math.MaxUint32 || uint64(t.Schema.RowSize) > math.MaxUint32 || len(t.Schema.Columns) > math.MaxUint16 {
		return header, ErrSnapshotTooLarge
	}

	header.Rows = uint32(t.RowCount())
	header.RowSize = uint32(t.Schema.RowSize)
	header.UncompressedSize = uint64(t.Rows.Len())

	var compressed bytes.Buffer
	if err := compression.CompressLz4(t.Rows.Bytes(), &compressed); err != nil {
		return header, fmt.Errorf("unable to compress rows : %w", err)
	}
	header.CompressedSize = uint64(compressed.Len())

	bw := bits.NewEncodeBuffer(make([]byte, 0, 256), byteOrder)
	bw.EnableGrowing()

	bw.Write(Magic[:])
	bw.PutUint16(header.Version)
	bw.PutUUID(header.Uid)

	if err := bw.PutShortString(t.Schema.Name); err != nil {
		return header, fmt.Errorf("unable to encode table name : %w", err)
	}

	bw.PutUint16(uint16(len(t.Schema.Columns)))
	for _, col := range t.Schema.Columns {
		if err := bw.PutShortString(col.Name); err != nil {
			return header, fmt.Errorf("unable to encode column name : %w", err)
		}
		bw.PutUint8(uint8(col.Type))
		bw.PutUint32(uint32(col.RepeatCount))
	}

	bw.PutUint32(header.RowSize)
	bw.PutUint32(header.Rows)
	bw.PutUint64(header.UncompressedSize)
	bw.PutUint64(header.CompressedSize)

	if _, err := w.Write(bw.Bytes()); err != nil {
		return header, fmt.Errorf("unable to write snapshot header : %w", err)
	}

	if _, err := compressed.WriteTo(w); err != nil {
		return header, fmt.Errorf("unable to write snapshot rows : %w", err)
	}

	return header, nil
}

// Read restores a table written by Write. The column layout is rebuilt from
// the stored definitions and must reproduce the stored row size.
func Read(r io.Reader, opts table.LoadOptions) (*table.Table, Header, error) {

	var header Header

	reader := bits.NewReader(r, byteOrder)

	var magic [4]byte
	if err := reader.ReadBytes(len(magic), magic[:]); err != nil {
		return nil, header, fmt.Errorf("%w: %s", ErrNotSnapshot, err.Error())
	}
	if !IsSnapshot(magic[:]) {
		return nil, header, ErrNotSnapshot
	}

	var readErr error

	if header.Version, readErr = reader.ReadU16(); readErr != nil {
		return nil, header, fmt.Errorf("unable to decode snapshot version: %w", readErr)
	}
	if header.Version != CurrentVersion {
		return nil, header, fmt.Errorf("%w: %d, supported: %d", ErrVersion, header.Version, CurrentVersion)
	}

	if header.Uid, readErr = reader.ReadUUID(); readErr != nil {
		return nil, header, fmt.Errorf("unable to decode snapshot uid: %w", readErr)
	}

	name, nameErr := reader.ReadShortString()
	if nameErr != nil {
		return nil, header, fmt.Errorf("unable to decode table name: %w", nameErr)
	}

	if len(name) > opts.Limits.MaxNameLength && opts.Limits.MaxNameLength > 0 {
		return nil, header, fmt.Errorf("%w: table name `%s`", schema.ErrNameTooLong, name)
	}

	tableSchema := schema.New(name, opts.Limits)

	columns, colErr := reader.ReadU16()
	if colErr != nil {
		return nil, header, fmt.Errorf("unable to decode column count: %w", colErr)
	}

	for i := 0; i < int(columns); i++ {
		colName, err := reader.ReadShortString()
		if err != nil {
			return nil, header, fmt.Errorf("unable to decode column %d name: %w", i, err)
		}

		rawType, err := reader.ReadU8()
		if err != nil {
			return nil, header, fmt.Errorf("unable to decode column %d type: %w", i, err)
		}

		repeat, err := reader.ReadU32()
		if err != nil {
			return nil, header, fmt.Errorf("unable to decode column %d count: %w", i, err)
		}

		typ := schema.FieldType(rawType)
		if typ > schema.InvalidFieldType {
			typ = schema.InvalidFieldType
		}

		if _, err := tableSchema.AddColumn(colName, typ, int(repeat)); err != nil {
			return nil, header, err
		}
	}

	fields := []*uint32{&header.RowSize, &header.Rows}
	for _, f := range fields {
		if *f, readErr = reader.ReadU32(); readErr != nil {
			return nil, header, fmt.Errorf("unable to decode row layout: %w", readErr)
		}
	}

	sizes := []*uint64{&header.UncompressedSize, &header.CompressedSize}
	for _, s := range sizes {
		if *s, readErr = reader.ReadU64(); readErr != nil {
			return nil, header, fmt.Errorf("unable to decode row sizes: %w", readErr)
		}
	}

	if int(header.RowSize) != tableSchema.RowSize || header.UncompressedSize != uint64(header.Rows)*uint64(header.RowSize) {
		return nil, header, fmt.Errorf("%w: row size %d, computed %d, %d bytes for %d rows", ErrLayoutMismatch, header.RowSize, tableSchema.RowSize, header.UncompressedSize, header.Rows)
	}

	if opts.MaxBytes > 0 && header.UncompressedSize > uint64(opts.MaxBytes) {
		return nil, header, fmt.Errorf("%w: %d bytes exceed the limit of %d", store.ErrAllocation, header.UncompressedSize, opts.MaxBytes)
	}

	if header.CompressedSize > math.MaxInt64 || header.UncompressedSize > math.MaxInt || header.UncompressedSize/maxLz4Ratio > header.CompressedSize {
		return nil, header, fmt.Errorf("%w: %d bytes announced from %d compressed", ErrCorruptSizes, header.UncompressedSize, header.CompressedSize)
	}

	payload := io.LimitReader(reader.Reader(), int64(header.CompressedSize))

	arena, decompressErr := compression.DecompressLz4(payload, int(header.UncompressedSize))
	if decompressErr != nil {
		return nil, header, decompressErr
	}

	rows, storeErr := store.FromBytes(tableSchema, arena, int(header.Rows), opts.MaxBytes)
	if storeErr != nil {
		return nil, header, storeErr
	}

	return &table.Table{Schema: tableSchema, Rows: rows}, header, nil
}
