package io

import (
	"bufio"
	"log/slog"

	"github.com/dot5enko/miniql/snapshot"
	"github.com/dot5enko/miniql/table"
)

// LoadTable opens a database file, either the textual format or a binary
// snapshot recognized by its magic bytes.
func LoadTable(path string, opts table.LoadOptions) (*table.Table, error) {

	reader := NewFileReader(path)
	if err := reader.Open(true); err != nil {
		return nil, err
	}
	defer reader.Close()

	prefix, peekErr := reader.Peek(len(snapshot.Magic))
	if peekErr != nil {
		return nil, peekErr
	}

	buffered := bufio.NewReader(reader.Raw())

	if snapshot.IsSnapshot(prefix) {
		t, header, err := snapshot.Read(buffered, opts)
		if err != nil {
			return nil, err
		}

		slog.Info("snapshot loaded", "table", t.Name(), "uid", header.Uid.String(), "rows", header.Rows, "path", path)
		return t, nil
	}

	return table.Load(buffered, opts)
}
