package table

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dot5enko/miniql/schema"
	"github.com/dot5enko/miniql/store"
)

const booksSource = "books\n" +
	"id INT|name CHAR(25)|author CHAR(25)\n" +
	"1|Dune|Frank Herbert\n" +
	"2|Neuromancer|William Gibson\n" +
	"3|Solaris|Stanislaw Lem\n"

func loadBooks(t *testing.T) *Table {
	tbl, err := Load(strings.NewReader(booksSource), LoadOptions{Limits: schema.DefaultLimits()})
	if err != nil {
		t.Fatalf("unable to load books: %s", err.Error())
	}
	return tbl
}

func TestLoadBooks(t *testing.T) {

	tbl := loadBooks(t)

	if tbl.Name() != "books" {
		t.Errorf("Expected books but got %s", tbl.Name())
	}

	if tbl.RowCount() != 3 {
		t.Fatalf("Expected 3 rows but got %d", tbl.RowCount())
	}

	if tbl.Rows.Len() != 3*54 {
		t.Errorf("Expected 162 bytes but got %d", tbl.Rows.Len())
	}

	id, _ := tbl.Rows.GetInt(1, 0)
	if id != 2 {
		t.Errorf("Expected id 2 but got %d", id)
	}

	author, _ := tbl.Rows.Get(2, 2)
	if author.String() != "Stanislaw Lem" {
		t.Errorf("Expected Stanislaw Lem but got `%s`", author.String())
	}
}

func TestLoadHandlesLineEndings(t *testing.T) {

	source := "books\r\nid INT|name CHAR(4)\r\n\r\n1|abc\r\n2|xyz"

	tbl, err := Load(strings.NewReader(source), LoadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}

	if tbl.RowCount() != 2 {
		t.Fatalf("Expected 2 rows but got %d", tbl.RowCount())
	}

	last, _ := tbl.Rows.Get(1, 1)
	if last.String() != "xyz" {
		t.Errorf("Expected xyz but got `%s`", last.String())
	}
}

func TestLoadErrors(t *testing.T) {

	cases := []struct {
		source   string
		expected error
	}{
		{"", schema.ErrSchemaSyntax},
		{"books\n", schema.ErrSchemaSyntax},
		{"books\nid INT|name CHAR(0)\n", schema.ErrSchemaSyntax},
		{"books\nid INT|name CHAR(4)\n1|abc|extra\n", ErrRowSyntax},
		{"books\nid INT|name CHAR(4)\n1\n", ErrRowSyntax},
	}

	for _, c := range cases {
		_, err := Load(strings.NewReader(c.source), LoadOptions{})
		if !errors.Is(err, c.expected) {
			t.Errorf("%q: expected %v, got %v", c.source, c.expected, err)
		}
	}
}

func TestLoadRespectsMaxBytes(t *testing.T) {

	_, err := Load(strings.NewReader(booksSource), LoadOptions{MaxBytes: 100})
	if !errors.Is(err, store.ErrAllocation) {
		t.Errorf("Expected allocation error, got %v", err)
	}
}

func TestAppendTokensArity(t *testing.T) {

	tbl := loadBooks(t)

	_, err := tbl.AppendTokens([][]byte{[]byte("4"), []byte("X")})
	if !errors.Is(err, ErrArity) {
		t.Errorf("Expected arity error, got %v", err)
	}

	if tbl.RowCount() != 3 {
		t.Errorf("Expected row count to stay 3, got %d", tbl.RowCount())
	}

	row, err := tbl.AppendTokens([][]byte{[]byte("4"), []byte("New Book"), []byte("Someone")})
	if err != nil {
		t.Fatalf("append failed: %s", err.Error())
	}
	if row != 3 {
		t.Errorf("Expected row index 3 but got %d", row)
	}
}

func TestWriteToRoundTrip(t *testing.T) {

	tbl := loadBooks(t)

	var first bytes.Buffer
	n, err := tbl.WriteTo(&first)
	if err != nil {
		t.Fatalf("write failed: %s", err.Error())
	}
	if n != int64(first.Len()) {
		t.Errorf("Expected %d written bytes but got %d", first.Len(), n)
	}

	if !strings.HasPrefix(first.String(), "books||\nid INT|name CHAR(25)|author CHAR(25)\n") {
		t.Errorf("unexpected header: %q", first.String())
	}

	// each row holds two full width text fields
	lines := strings.Split(strings.TrimSuffix(first.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("Expected 5 lines but got %d", len(lines))
	}
	if len(lines[2]) != len("1")+1+25+1+25 {
		t.Errorf("Expected full width row, got %q", lines[2])
	}

	reloaded, err := Load(bytes.NewReader(first.Bytes()), LoadOptions{})
	if err != nil {
		t.Fatalf("reload failed: %s", err.Error())
	}

	if !bytes.Equal(reloaded.Rows.Bytes(), tbl.Rows.Bytes()) {
		t.Errorf("Expected identical row buffers after reload")
	}

	var second bytes.Buffer
	reloaded.WriteTo(&second)

	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Errorf("Expected identical output after a round trip")
	}
}

func TestWriteToInvalidColumn(t *testing.T) {

	source := "prices\nid INT|price FLOAT\n1|2.5\n"

	tbl, err := Load(strings.NewReader(source), LoadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}

	var out bytes.Buffer
	tbl.WriteTo(&out)

	expected := "prices|\nid INT|price INVALID\n1|\n"
	if out.String() != expected {
		t.Errorf("Expected %q but got %q", expected, out.String())
	}
}

func TestPrint(t *testing.T) {

	tbl := loadBooks(t)

	var out bytes.Buffer
	if err := tbl.Print(&out, 8); err != nil {
		t.Fatalf("print failed: %s", err.Error())
	}

	lines := strings.Split(out.String(), "\n")
	if len(lines) != 5 || lines[4] != "" {
		t.Fatalf("Expected header, 3 rows and a trailing newline, got %q", out.String())
	}

	if lines[0] != "      id     name   author " {
		t.Errorf("unexpected header %q", lines[0])
	}

	if lines[1] != "       1     Dune Frank Herbert " {
		t.Errorf("unexpected row %q", lines[1])
	}
}

func TestPrintSummary(t *testing.T) {

	tbl := loadBooks(t)

	var out bytes.Buffer
	tbl.PrintSummary(&out)

	expected := "table books\n" +
		"column id type INT count 1 offset 0\n" +
		"column name type CHAR count 25 offset 4\n" +
		"column author type CHAR count 25 offset 29\n\n"

	if out.String() != expected {
		t.Errorf("Expected %q but got %q", expected, out.String())
	}
}

func TestZeroSizeRowsRoundTrip(t *testing.T) {

	cases := map[string]int{
		"t\nx FLOAT\n1\n2\n":           2,
		"t\nx FLOAT|y WHAT\n1|a\n2|b\n": 2,
	}

	for source, rows := range cases {
		tbl, err := Load(strings.NewReader(source), LoadOptions{})
		if err != nil {
			t.Fatalf("%q: unexpected error: %s", source, err.Error())
		}

		var out bytes.Buffer
		tbl.WriteTo(&out)

		reloaded, err := Load(bytes.NewReader(out.Bytes()), LoadOptions{})
		if err != nil {
			t.Fatalf("%q: reload failed: %s", source, err.Error())
		}

		if tbl.RowCount() != rows || reloaded.RowCount() != rows {
			t.Errorf("%q: expected %d rows, loaded %d and reloaded %d from %q", source, rows, tbl.RowCount(), reloaded.RowCount(), out.String())
		}
	}
}
