package column

import (
	"database/sql"
	"database/sql/driver"

	"github.com/MrEthical07/bitmask/flags"
)

// Enum stores sets of flags from one domain in a binary column. The column width is
// derived from the domain and cannot be chosen by the caller.
type Enum[F flags.Flag] struct {
	name      string
	projector *flags.Projector[F]
	inner     Binary
}

// NewEnum binds a column type to domain. An empty name defaults to the domain name.
func NewEnum[F flags.Flag](name string, domain *flags.Domain[F]) *Enum[F] {
	if name == "" {
		name = domain.Name()
	}
	return &Enum[F]{
		name:      name,
		projector: flags.NewProjector(domain),
	}
}

// Name returns the type name.
func (e *Enum[F]) Name() string {
	return e.name
}

// Domain returns the bound domain.
func (e *Enum[F]) Domain() *flags.Domain[F] {
	return e.projector.Domain()
}

// ByteLen returns the column width in bytes.
func (e *Enum[F]) ByteLen() int {
	return e.projector.Length() / 8
}

// Declaration returns the binary column type sized for the domain.
func (e *Enum[F]) Declaration(dialect Dialect) (string, error) {
	return e.inner.Declaration(dialect, e.ByteLen())
}

// Encode converts list to a binary payload. A nil list is stored as NULL; an empty
// non-nil list as an all-zero mask.
func (e *Enum[F]) Encode(list []F) (driver.Value, error) {
	if list == nil {
		return nil, nil
	}

	m, err := e.projector.Encode(list...)
	if err != nil {
		return nil, err
	}
	return e.inner.Encode(m)
}

// Decode converts a binary payload back to flags in ascending code order. NULL decodes
// to a nil list.
func (e *Enum[F]) Decode(src any) ([]F, error) {
	if src == nil {
		return nil, nil
	}

	m, err := e.inner.Decode(src)
	if err != nil {
		return nil, err
	}
	return e.projector.Decode(m)
}

// Field returns a scanner/valuer for list, for use as a query argument or Scan target.
func (e *Enum[F]) Field(list *[]F) *EnumField[F] {
	return &EnumField[F]{enum: e, list: list}
}

var (
	_ sql.Scanner   = (*EnumField[flags.Named])(nil)
	_ driver.Valuer = (*EnumField[flags.Named])(nil)
)

// EnumField adapts a *[]F to database/sql through an Enum.
type EnumField[F flags.Flag] struct {
	enum *Enum[F]
	list *[]F
}

// Scan implements sql.Scanner.
func (f *EnumField[F]) Scan(src any) error {
	list, err := f.enum.Decode(src)
	if err != nil {
		return err
	}
	*f.list = list
	return nil
}

// Value implements driver.Valuer.
func (f *EnumField[F]) Value() (driver.Value, error) {
	return f.enum.Encode(*f.list)
}
