package io

import (
	"bufio"
	"log/slog"

	"github.com/dot5enko/miniql/snapshot"
	"github.com/dot5enko/miniql/table"
)

// DumpTable writes the table in the textual format, the file is truncated.
func DumpTable(path string, t *table.Table) (int64, error) {

	fw := NewFileReader(path)
	if err := fw.Open(false); err != nil {
		return 0, err
	}
	defer fw.Close()

	writtenBytes, err := t.WriteTo(fw.Raw())
	if err != nil {
		return writtenBytes, err
	}

	slog.Info("table written", "table", t.Name(), "rows", t.RowCount(), "bytes", writtenBytes, "path", path)

	return writtenBytes, fw.Close()
}

// DumpSnapshot writes a compressed binary snapshot of the table.
func DumpSnapshot(path string, t *table.Table) (snapshot.Header, error) {

	fw := NewFileReader(path)
	if err := fw.Open(false); err != nil {
		return snapshot.Header{}, err
	}
	defer fw.Close()

	bw := bufio.NewWriter(fw.Raw())

	header, err := snapshot.Write(bw, t)
	if err != nil {
		return header, err
	}

	if err := bw.Flush(); err != nil {
		return header, err
	}

	slog.Info("snapshot written", "table", t.Name(), "uid", header.Uid.String(), "rows", header.Rows, "compressed", header.CompressedSize, "path", path)

	return header, fw.Close()
}
