package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Flag column values used by the catalog schema
const (
	FlagYes = "S"
	FlagNo  = "N"
)

// YesNo maps a CHAR(1) 'S'/'N' column to a Go bool. Anything other than
// 'S' (case-insensitive) or 'Y' reads as false, so NULL and garbage never
// turn a row on.
type YesNo bool

// Bool returns the flag as a plain bool
func (f YesNo) Bool() bool {
	return bool(f)
}

// Scan implements sql.Scanner
func (f *YesNo) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*f = false
	case string:
		*f = parseFlag(v)
	case []byte:
		*f = parseFlag(string(v))
	case bool:
		*f = YesNo(v)
	case int64:
		*f = v != 0
	default:
		return fmt.Errorf("cannot scan %T into YesNo", value)
	}
	return nil
}

// Value implements driver.Valuer
func (f YesNo) Value() (driver.Value, error) {
	if f {
		return FlagYes, nil
	}
	return FlagNo, nil
}

// GormDataType pins the column type across dialects
func (YesNo) GormDataType() string {
	return "char(1)"
}

func parseFlag(s string) YesNo {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case FlagYes, "Y":
		return true
	default:
		return false
	}
}

// TimestampModel carries the audit columns shared by catalog tables
type TimestampModel struct {
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}
