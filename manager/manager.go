package manager

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/dot5enko/miniql/command"
	fileio "github.com/dot5enko/miniql/io"
	"github.com/dot5enko/miniql/schema"
	"github.com/dot5enko/miniql/table"
)

const DefaultOutputPath = "db.csv"

var ErrNoTable = errors.New("no table loaded")

type ManagerConfig struct {
	// textual dump written after every session
	OutputPath string

	// optional binary snapshot, skipped when empty
	SnapshotPath string

	// row buffer limit in bytes, 0 means unlimited
	MaxTableBytes int

	Limits     schema.Limits
	PrintWidth int

	Verbose bool

	// defaults to os.Stderr
	LogWriter io.Writer

	// table output, defaults to os.Stdout
	Stdout io.Writer
}

type Manager struct {
	config ManagerConfig
	logger *slog.Logger

	table *table.Table
}

func New(config ManagerConfig) *Manager {

	if config.OutputPath == "" {
		config.OutputPath = DefaultOutputPath
	}
	if config.PrintWidth <= 0 {
		config.PrintWidth = table.DefaultPrintWidth
	}
	if config.LogWriter == nil {
		config.LogWriter = os.Stderr
	}
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	config.Limits = config.Limits.WithDefaults()

	level := slog.LevelInfo
	if config.Verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(config.LogWriter, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	return &Manager{
		config: config,
		logger: logger,
	}
}

func (m *Manager) Config() ManagerConfig {
	return m.config
}

func (m *Manager) Table() *table.Table {
	return m.table
}

// Open loads the database file, the textual format or a snapshot.
func (m *Manager) Open(path string) error {

	t, err := fileio.LoadTable(path, table.LoadOptions{
		Limits:   m.config.Limits,
		MaxBytes: m.config.MaxTableBytes,
	})
	if err != nil {
		return err
	}

	m.table = t

	m.logger.Info("table loaded", "table", t.Name(), "columns", t.Schema.ColumnCount(), "rows", t.RowCount(), "row_size", t.Schema.RowSize)

	if m.config.Verbose {
		m.logger.Debug("row buffer", "dump", spew.Sdump(t.Rows.Bytes()))
	}

	return nil
}

// Execute runs one command against the loaded table.
func (m *Manager) Execute(input string) error {

	if m.table == nil {
		return ErrNoTable
	}

	rowsBefore := m.table.RowCount()

	it := command.NewInterpreter(m.table, m.config.Stdout, m.config.PrintWidth)
	if err := it.Run(input); err != nil {
		return err
	}

	m.logger.Debug("command executed", "command", input, "rows_before", rowsBefore, "rows_after", m.table.RowCount())

	return nil
}

// Describe prints the schema summary followed by the whole table.
func (m *Manager) Describe() error {

	if m.table == nil {
		return ErrNoTable
	}

	if err := m.table.PrintSummary(m.config.Stdout); err != nil {
		return err
	}

	return m.table.Print(m.config.Stdout, m.config.PrintWidth)
}

// Persist writes the textual dump and, when configured, the snapshot.
func (m *Manager) Persist() error {

	if m.table == nil {
		return ErrNoTable
	}

	if _, err := fileio.DumpTable(m.config.OutputPath, m.table); err != nil {
		return fmt.Errorf("unable to write %s: %w", m.config.OutputPath, err)
	}

	if m.config.SnapshotPath != "" {
		if _, err := fileio.DumpSnapshot(m.config.SnapshotPath, m.table); err != nil {
			return fmt.Errorf("unable to write snapshot %s: %w", m.config.SnapshotPath, err)
		}
	}

	if m.config.Verbose {
		m.logger.Debug("row buffer after session", "dump", spew.Sdump(m.table.Rows.Bytes()))
	}

	return nil
}
