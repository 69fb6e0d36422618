package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/parquet-go/parquet-go"

	"github.com/md-dataset/md-dataset/internal/frame"
)

// columnOrderKey names the file metadata entry holding the frame's column
// order. Parquet groups order their leaves by name.
const columnOrderKey = "md_dataset.columns"

const readBatchSize = 256

// EncodeParquet encodes a frame as a gzip-compressed parquet file with one
// required leaf column per frame column
func EncodeParquet(f *frame.Frame) ([]byte, error) {
	if f == nil {
		return nil, errors.New("nil frame")
	}

	group := make(parquet.Group, f.NumCols())
	for _, c := range f.Columns() {
		node, err := parquetNode(c.Kind())
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name(), err)
		}
		if c.NullCount() > 0 {
			node = parquet.Optional(node)
		}
		group[c.Name()] = node
	}
	schema := parquet.NewSchema("frame", group)

	leaves := make(map[string]int, f.NumCols())
	for i, field := range schema.Fields() {
		leaves[field.Name()] = i
	}

	order, err := json.Marshal(f.ColumnNames())
	if err != nil {
		return nil, fmt.Errorf("failed to encode column order: %w", err)
	}

	var buf bytes.Buffer
	w := parquet.NewWriter(&buf,
		schema,
		parquet.Compression(&parquet.Gzip),
		parquet.KeyValueMetadata(columnOrderKey, string(order)),
	)

	columns := f.Columns()
	rows := make([]parquet.Row, f.NumRows())
	for r := range rows {
		row := make(parquet.Row, len(columns))
		for _, c := range columns {
			leaf := leaves[c.Name()]
			row[leaf] = leafValue(c, r, leaf)
		}
		rows[r] = row
	}

	if _, err := w.WriteRows(rows); err != nil {
		return nil, fmt.Errorf("failed to write rows: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close parquet writer: %w", err)
	}

	return buf.Bytes(), nil
}

// leafValue encodes row r of c. Columns with nulls are optional leaves, where
// definition level 1 marks a present value.
func leafValue(c frame.Column, r, leaf int) parquet.Value {
	if c.NullCount() == 0 {
		return parquet.ValueOf(c.Value(r)).Level(0, 0, leaf)
	}
	if c.IsNull(r) {
		return parquet.ValueOf(nil).Level(0, 0, leaf)
	}
	return parquet.ValueOf(c.Value(r)).Level(0, 1, leaf)
}

func parquetNode(kind frame.Kind) (parquet.Node, error) {
	switch kind {
	case frame.KindInt64:
		return parquet.Int(64), nil
	case frame.KindFloat64:
		return parquet.Leaf(parquet.DoubleType), nil
	case frame.KindString:
		return parquet.String(), nil
	case frame.KindBool:
		return parquet.Leaf(parquet.BooleanType), nil
	}
	return nil, fmt.Errorf("unsupported column kind %s", kind)
}

// DecodeParquet decodes a flat parquet file into a frame. Column order comes
// from the file metadata written by EncodeParquet, or the schema order when
// it is absent. INT32 and FLOAT columns are widened. Nulls in optional
// columns become null rows of the frame column.
func DecodeParquet(data []byte) (*frame.Frame, error) {
	file, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	fields := file.Schema().Fields()
	builders := make([]*columnBuilder, len(fields))
	for i, field := range fields {
		if !field.Leaf() {
			return nil, fmt.Errorf("column %q: nested columns are not supported", field.Name())
		}
		if field.Repeated() {
			return nil, fmt.Errorf("column %q: repeated columns are not supported", field.Name())
		}
		b, err := newColumnBuilder(field.Name(), field.Type().Kind())
		if err != nil {
			return nil, err
		}
		builders[i] = b
	}

	for _, rg := range file.RowGroups() {
		if err := readRowGroup(rg, builders); err != nil {
			return nil, err
		}
	}

	names, err := columnOrder(file, fields)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*columnBuilder, len(builders))
	for _, b := range builders {
		byName[b.name] = b
	}

	columns := make([]frame.Column, 0, len(names))
	for _, name := range names {
		columns = append(columns, byName[name].column())
	}

	return frame.New(columns...)
}

func readRowGroup(rg parquet.RowGroup, builders []*columnBuilder) error {
	rows := rg.Rows()
	defer rows.Close()

	buf := make([]parquet.Row, readBatchSize)
	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			for _, v := range row {
				col := v.Column()
				if col < 0 || col >= len(builders) {
					return fmt.Errorf("value for unknown column %d", col)
				}
				builders[col].append(v)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read rows: %w", err)
		}
	}
}

func columnOrder(file *parquet.File, fields []parquet.Field) ([]string, error) {
	schemaOrder := make([]string, len(fields))
	for i, field := range fields {
		schemaOrder[i] = field.Name()
	}

	raw, ok := file.Lookup(columnOrderKey)
	if !ok {
		return schemaOrder, nil
	}

	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return nil, fmt.Errorf("invalid column order metadata: %w", err)
	}

	sorted := slices.Clone(names)
	slices.Sort(sorted)
	expected := slices.Clone(schemaOrder)
	slices.Sort(expected)
	if !slices.Equal(sorted, expected) {
		return nil, errors.New("column order metadata does not match the schema")
	}

	return names, nil
}

type columnBuilder struct {
	name     string
	source   parquet.Kind
	ints     []int64
	floats   []float64
	strs     []string
	bools    []bool
	rows     int
	nullRows []int
}

func newColumnBuilder(name string, source parquet.Kind) (*columnBuilder, error) {
	switch source {
	case parquet.Boolean, parquet.Int32, parquet.Int64, parquet.Float, parquet.Double, parquet.ByteArray:
		return &columnBuilder{name: name, source: source}, nil
	}
	return nil, fmt.Errorf("column %q: unsupported parquet type %s", name, source)
}

func (b *columnBuilder) append(v parquet.Value) {
	row := b.rows
	b.rows++

	if v.IsNull() {
		b.nullRows = append(b.nullRows, row)
		switch b.source {
		case parquet.Boolean:
			b.bools = append(b.bools, false)
		case parquet.Int32, parquet.Int64:
			b.ints = append(b.ints, 0)
		case parquet.Float, parquet.Double:
			b.floats = append(b.floats, 0)
		case parquet.ByteArray:
			b.strs = append(b.strs, "")
		}
		return
	}

	switch b.source {
	case parquet.Boolean:
		b.bools = append(b.bools, v.Boolean())
	case parquet.Int32:
		b.ints = append(b.ints, int64(v.Int32()))
	case parquet.Int64:
		b.ints = append(b.ints, v.Int64())
	case parquet.Float:
		b.floats = append(b.floats, float64(v.Float()))
	case parquet.Double:
		b.floats = append(b.floats, v.Double())
	case parquet.ByteArray:
		b.strs = append(b.strs, string(v.ByteArray()))
	}
}

func (b *columnBuilder) column() frame.Column {
	var c frame.Column
	switch b.source {
	case parquet.Boolean:
		c = frame.Bools(b.name, b.bools...)
	case parquet.Int32, parquet.Int64:
		c = frame.Int64s(b.name, b.ints...)
	case parquet.Float, parquet.Double:
		c = frame.Float64s(b.name, b.floats...)
	default:
		c = frame.Strings(b.name, b.strs...)
	}
	return c.WithNulls(b.nullRows...)
}
