package column

import (
	"database/sql"
	"database/sql/driver"

	"github.com/MrEthical07/bitmask"
)

var (
	_ sql.Scanner   = (*Field)(nil)
	_ driver.Valuer = Field{}
)

// Field is a nullable mask column value for use with database/sql. A nil Codec means
// [Binary].
type Field struct {
	Codec Codec
	Mask  bitmask.Mask
	Valid bool
}

// Scan implements sql.Scanner.
func (f *Field) Scan(src any) error {
	if src == nil {
		f.Mask, f.Valid = bitmask.Mask{}, false
		return nil
	}

	m, err := f.codec().Decode(src)
	if err != nil {
		return err
	}
	f.Mask, f.Valid = m, true
	return nil
}

// Value implements driver.Valuer.
func (f Field) Value() (driver.Value, error) {
	if !f.Valid {
		return nil, nil
	}
	return f.codec().Encode(f.Mask)
}

func (f Field) codec() Codec {
	if f.Codec == nil {
		return Binary{}
	}
	return f.Codec
}
