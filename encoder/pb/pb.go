// Package pb encodes maze records in protobuf wire format.
//
// The message layout is:
//
//	message MazeRecord {
//	  string id         = 1;
//	  int64  rows       = 2;
//	  int64  columns    = 3;
//	  sint64 seed       = 4;
//	  repeated bool vertical   = 5 [packed = true]; // row-major
//	  repeated bool horizontal = 6 [packed = true]; // row-major
//	  sint64 created_at = 7; // unix milliseconds
//	}
package pb

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	idField         protowire.Number = 1
	rowsField       protowire.Number = 2
	columnsField    protowire.Number = 3
	seedField       protowire.Number = 4
	verticalField   protowire.Number = 5
	horizontalField protowire.Number = 6
	createdAtField  protowire.Number = 7
)

var (
	ErrMalformedRecord = errors.New("malformed maze record")
)

var _ i.RecordEncoder = &Protobuf{}

type Protobuf struct{}

// MarshalRecord implements i.RecordEncoder.
func (p *Protobuf) MarshalRecord(r *domain.MazeRecord) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil record", ErrMalformedRecord)
	}

	var b []byte
	b = protowire.AppendTag(b, idField, protowire.BytesType)
	b = protowire.AppendString(b, r.ID.String())
	b = protowire.AppendTag(b, rowsField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.Rows))
	b = protowire.AppendTag(b, columnsField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.Columns))
	b = protowire.AppendTag(b, seedField, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(r.Seed))
	b = appendPackedBools(b, verticalField, r.Vertical)
	b = appendPackedBools(b, horizontalField, r.Horizontal)
	b = protowire.AppendTag(b, createdAtField, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(r.CreatedAt.UnixMilli()))

	return b, nil
}

// UnmarshalRecord implements i.RecordEncoder.
func (p *Protobuf) UnmarshalRecord(b []byte) (*domain.MazeRecord, error) {
	r := &domain.MazeRecord{}
	var (
		rows, columns        uint64
		vertical, horizontal []bool
	)

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == idField && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: id: %v", ErrMalformedRecord, protowire.ParseError(n))
			}
			id, err := uuid.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("%w: id: %v", ErrMalformedRecord, err)
			}
			r.ID = id
			b = b[n:]
		case (num == rowsField || num == columnsField || num == seedField || num == createdAtField) && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: field %d: %v", ErrMalformedRecord, num, protowire.ParseError(n))
			}
			switch num {
			case rowsField:
				rows = v
			case columnsField:
				columns = v
			case seedField:
				r.Seed = protowire.DecodeZigZag(v)
			case createdAtField:
				r.CreatedAt = time.UnixMilli(protowire.DecodeZigZag(v)).UTC()
			}
			b = b[n:]
		case num == verticalField && typ == protowire.BytesType:
			values, n, err := consumePackedBools(b)
			if err != nil {
				return nil, err
			}
			vertical = append(vertical, values...)
			b = b[n:]
		case num == horizontalField && typ == protowire.BytesType:
			values, n, err := consumePackedBools(b)
			if err != nil {
				return nil, err
			}
			horizontal = append(horizontal, values...)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("%w: field %d: %v", ErrMalformedRecord, num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	if rows < 1 || columns < 1 {
		return nil, fmt.Errorf("%w: %dx%d grid", ErrMalformedRecord, rows, columns)
	}
	// Every extra row adds at least one horizontal passage and every extra
	// column at least one vertical one.
	if rows-1 > uint64(len(horizontal)) || columns-1 > uint64(len(vertical)) {
		return nil, fmt.Errorf("%w: %dx%d grid with %d vertical and %d horizontal passages",
			ErrMalformedRecord, rows, columns, len(vertical), len(horizontal))
	}
	r.Rows, r.Columns = int(rows), int(columns)

	var err error
	if r.Vertical, err = reshape(vertical, r.Rows, r.Columns-1); err != nil {
		return nil, fmt.Errorf("%w: vertical: %v", ErrMalformedRecord, err)
	}
	if r.Horizontal, err = reshape(horizontal, r.Rows-1, r.Columns); err != nil {
		return nil, fmt.Errorf("%w: horizontal: %v", ErrMalformedRecord, err)
	}

	return r, nil
}

// appendPackedBools writes m row by row as one packed field. Empty
// matrices are omitted.
func appendPackedBools(b []byte, num protowire.Number, m [][]bool) []byte {
	var packed []byte
	for _, row := range m {
		for _, v := range row {
			packed = protowire.AppendVarint(packed, protowire.EncodeBool(v))
		}
	}
	if len(packed) == 0 {
		return b
	}

	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, packed)
}

func consumePackedBools(b []byte) ([]bool, int, error) {
	packed, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, fmt.Errorf("%w: %v", ErrMalformedRecord, protowire.ParseError(n))
	}

	values := make([]bool, 0, len(packed))
	for len(packed) > 0 {
		v, m := protowire.ConsumeVarint(packed)
		if m < 0 {
			return nil, 0, fmt.Errorf("%w: %v", ErrMalformedRecord, protowire.ParseError(m))
		}
		values = append(values, protowire.DecodeBool(v))
		packed = packed[m:]
	}

	return values, n, nil
}

// reshape splits a row-major slice into rows of the given width.
func reshape(flat []bool, rows, columns int) ([][]bool, error) {
	if len(flat) != rows*columns {
		return nil, fmt.Errorf("%d values, want %d", len(flat), rows*columns)
	}

	m := make([][]bool, rows)
	for row := range m {
		m[row] = make([]bool, columns)
		copy(m[row], flat[row*columns:])
	}
	return m, nil
}
