package bench

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ReadOptions control how a result file is parsed.
type ReadOptions struct {
	Prefix      string
	Separator   rune
	MaxFileSize int64 // zero means unlimited
}

var requiredColumns = []string{"name", "elapsed", "operations"}

// ReadTable parses delimited benchmark output. Only rows whose name starts with
// the prefix are kept, and the latency of each kept row is computed.
func ReadTable(r io.Reader, backend string, opts ReadOptions) (*Table, error) {
	cr := csv.NewReader(r)
	if opts.Separator != 0 {
		cr.Comma = opts.Separator
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", ErrParse)
	} else if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrParse, err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrParse, name)
		}
	}
	bytesCol, hasBytes := col["bytes"]

	t := &Table{Backend: backend}
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, &RowError{Line: line, Err: fmt.Errorf("%w: %v", ErrParse, err)}
		}
		name, ok := field(record, col["name"])
		if !ok || !strings.HasPrefix(name, opts.Prefix) {
			continue
		}
		row := Row{Name: name}
		if row.Elapsed, err = numField(record, col["elapsed"]); err != nil {
			return nil, &RowError{Line: line, Err: fmt.Errorf("%w: elapsed: %v", ErrParse, err)}
		}
		if row.Operations, err = numField(record, col["operations"]); err != nil {
			return nil, &RowError{Line: line, Err: fmt.Errorf("%w: operations: %v", ErrParse, err)}
		}
		if hasBytes {
			if b, err := numField(record, bytesCol); err == nil {
				row.Bytes = b
			}
		}
		if row.Operations <= 0 {
			return nil, &RowError{Line: line, Err: fmt.Errorf("%w: %s has %v operations", ErrInvalidData, name, row.Operations)}
		}
		row.Latency = latency(row.Elapsed, row.Operations)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func field(record []string, i int) (string, bool) {
	if i >= len(record) {
		return "", false
	}
	return strings.TrimSpace(record[i]), true
}

func numField(record []string, i int) (float64, error) {
	s, ok := field(record, i)
	if !ok {
		return 0, errors.New("missing value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}

// LoadTable reads the result file of one backend.
func LoadTable(path, backend string, opts ReadOptions) (*Table, error) {
	start := mononow()
	fd, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrFileNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer fd.Close()

	if opts.MaxFileSize > 0 {
		st, err := fd.Stat()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if st.Size() > opts.MaxFileSize {
			return nil, fmt.Errorf("%s: %w: size %d exceeds limit %d", path, ErrInvalidData, st.Size(), opts.MaxFileSize)
		}
	}
	t, err := ReadTable(fd, backend, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	t.Path = path
	slog.Info("Loaded results",
		"backend", backend,
		"path", path,
		"rows", len(t.Rows),
		"duration", mononow()-start,
	)
	return t, nil
}

// LoadTables loads the results of all configured backends. When a snapshot is
// configured the tables are read from it instead.
func LoadTables(ctx context.Context, cfg Config) (Tables, error) {
	if err := cfg.Validate(); err != nil {
		return Tables{}, err
	}
	if cfg.Snapshot != "" {
		return loadSnapshot(cfg.Snapshot)
	}

	var (
		ids      = cfg.BackendIDs()
		opts     = cfg.ReadOptions()
		results  = make([]*Table, len(ids))
		eg, gctx = errgroup.WithContext(ctx)
	)
	for i, id := range ids {
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, err := LoadTable(cfg.Backends[id], id, opts)
			if err != nil {
				return fmt.Errorf("backend %s: %w", id, err)
			}
			results[i] = t
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Tables{}, err
	}
	return NewTables(results...), nil
}

func loadSnapshot(dir string) (Tables, error) {
	st, err := OpenStore(dir)
	if err != nil {
		return Tables{}, err
	}
	defer st.Close()
	return st.Tables()
}

// MustLoadTables loads all configured backends, exiting on error.
func MustLoadTables(cfg Config) Tables {
	ts, err := LoadTables(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	return ts
}
