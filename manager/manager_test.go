package manager

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	fileio "github.com/dot5enko/miniql/io"
	"github.com/dot5enko/miniql/table"
)

const booksSource = "books\n" +
	"id INT|name CHAR(25)|author CHAR(25)\n" +
	"1|Dune|Frank Herbert\n" +
	"2|Neuromancer|William Gibson\n" +
	"3|Solaris|Stanislaw Lem\n"

type session struct {
	dir    string
	db     string
	stdout *bytes.Buffer
	logs   *bytes.Buffer
	m      *Manager
}

func newSession(t *testing.T, source string, snapshot bool) *session {

	dir := t.TempDir()
	db := filepath.Join(dir, "books.db")

	if err := os.WriteFile(db, []byte(source), 0644); err != nil {
		t.Fatalf("unable to write database: %s", err.Error())
	}

	s := &session{
		dir:    dir,
		db:     db,
		stdout: &bytes.Buffer{},
		logs:   &bytes.Buffer{},
	}

	config := ManagerConfig{
		OutputPath: filepath.Join(dir, DefaultOutputPath),
		Stdout:     s.stdout,
		LogWriter:  s.logs,
	}
	if snapshot {
		config.SnapshotPath = filepath.Join(dir, "books.snap")
	}

	s.m = New(config)

	return s
}

func (s *session) output(t *testing.T) *table.Table {
	tbl, err := fileio.LoadTable(s.m.Config().OutputPath, table.LoadOptions{})
	if err != nil {
		t.Fatalf("unable to load output: %s", err.Error())
	}
	return tbl
}

func TestRunAppendRow(t *testing.T) {

	s := newSession(t, booksSource, false)

	status := s.m.Run(s.db, `APPEND ROW (4, "New Book", "Someone")`, true)
	if status != ExitOK {
		t.Fatalf("Expected exit %d but got %d, logs: %s", ExitOK, status, s.logs.String())
	}

	lines := strings.Split(strings.TrimSuffix(s.stdout.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Errorf("Expected header and 4 rows printed, got %q", s.stdout.String())
	}

	out := s.output(t)
	if out.RowCount() != 4 {
		t.Fatalf("Expected 4 rows in the output but got %d", out.RowCount())
	}

	author, _ := out.Rows.Get(3, 2)
	if author.String() != "Someone" {
		t.Errorf("Expected Someone but got `%s`", author.String())
	}
}

func TestRunSyntaxErrorStillWritesOutput(t *testing.T) {

	s := newSession(t, booksSource, false)

	status := s.m.Run(s.db, `APPEND ROW (1, "X"`, true)
	if status != ExitCommandSyntax {
		t.Fatalf("Expected exit %d but got %d", ExitCommandSyntax, status)
	}

	if !strings.Contains(s.logs.String(), "command syntax error") {
		t.Errorf("Expected the syntax error to be reported, got %q", s.logs.String())
	}

	out := s.output(t)
	if out.RowCount() != 3 {
		t.Errorf("Expected 3 rows in the output but got %d", out.RowCount())
	}
}

func TestRunWithoutCommandDescribes(t *testing.T) {

	s := newSession(t, booksSource, false)

	if status := s.m.Run(s.db, "", false); status != ExitOK {
		t.Fatalf("Expected exit %d but got %d", ExitOK, status)
	}

	if !strings.HasPrefix(s.stdout.String(), "table books\ncolumn id type INT count 1 offset 0\n") {
		t.Errorf("Expected the schema summary first, got %q", s.stdout.String())
	}

	written, _ := os.ReadFile(s.m.Config().OutputPath)
	again := &bytes.Buffer{}
	s.m.Table().WriteTo(again)

	if !bytes.Equal(written, again.Bytes()) {
		t.Errorf("Expected the output file to hold the table dump")
	}
}

func TestRunFatalErrors(t *testing.T) {

	s := newSession(t, "books\nid INT|name CHAR(0)\n", false)

	if status := s.m.Run(s.db, "PRINT", true); status != ExitFatal {
		t.Errorf("Expected exit %d for a bad schema but got %d", ExitFatal, status)
	}

	if _, err := os.Stat(s.m.Config().OutputPath); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected no output after a fatal load error, got %v", err)
	}

	missing := newSession(t, booksSource, false)
	if status := missing.m.Run(filepath.Join(missing.dir, "missing.db"), "PRINT", true); status != ExitFatal {
		t.Errorf("Expected exit %d for a missing file but got %d", ExitFatal, status)
	}
}

func TestRunWritesSnapshot(t *testing.T) {

	s := newSession(t, booksSource, true)

	if status := s.m.Run(s.db, "PRINT", true); status != ExitOK {
		t.Fatalf("Expected exit %d but got %d", ExitOK, status)
	}

	restored, err := fileio.LoadTable(s.m.Config().SnapshotPath, table.LoadOptions{})
	if err != nil {
		t.Fatalf("unable to load snapshot: %s", err.Error())
	}

	if !bytes.Equal(restored.Rows.Bytes(), s.m.Table().Rows.Bytes()) {
		t.Errorf("Expected the snapshot to hold the same rows")
	}

	// a snapshot is a valid database file on its own
	next := newSession(t, booksSource, false)
	if status := next.m.Run(s.m.Config().SnapshotPath, `APPEND ROW (4, "Ubik", "Philip K Dick")`, true); status != ExitOK {
		t.Fatalf("Expected exit %d but got %d", ExitOK, status)
	}

	if out := next.output(t); out.RowCount() != 4 {
		t.Errorf("Expected 4 rows but got %d", out.RowCount())
	}
}

func TestManagerWithoutTable(t *testing.T) {

	m := New(ManagerConfig{LogWriter: &bytes.Buffer{}, Stdout: &bytes.Buffer{}})

	if err := m.Execute("PRINT"); !errors.Is(err, ErrNoTable) {
		t.Errorf("Expected no table error, got %v", err)
	}
	if err := m.Persist(); !errors.Is(err, ErrNoTable) {
		t.Errorf("Expected no table error, got %v", err)
	}

	if m.Config().OutputPath != DefaultOutputPath || m.Config().PrintWidth != table.DefaultPrintWidth {
		t.Errorf("Expected defaults to be filled, got %+v", m.Config())
	}
}
