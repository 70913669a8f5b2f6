package datatypes

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// PayoutDetails records how a paid withdrawal leaves the cooperative:
// cash at the office, a bank transfer, or a SINPE Móvil payment. The
// reference holds the transfer number or phone number when there is one.
type PayoutDetails struct {
	Method    string `json:"method"`
	Reference string `json:"reference"`
}

func (m PayoutDetails) IsZero() bool {
	return len(m.Method) == 0 && len(m.Reference) == 0
}

// Value implements driver.Valuer, serializing to a JSON column value.
func (m PayoutDetails) Value() (driver.Value, error) {
	data, err := json.Marshal(m)
	return string(data), err
}

// Scan implements sql.Scanner for JSON and JSONB columns.
func (m *PayoutDetails) Scan(val interface{}) error {
	if val == nil {
		*m = PayoutDetails{}
		return nil
	}
	var ba []byte
	switch v := val.(type) {
	case []byte:
		ba = v
	case string:
		ba = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", val))
	}
	t := PayoutDetails{}
	err := json.Unmarshal(ba, &t)
	*m = t
	return err
}

// GormDataType gorm common data type
func (m PayoutDetails) GormDataType() string {
	return "jsonmap"
}

// GormDBDataType gorm db data type
func (PayoutDetails) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "sqlite":
		return "JSON"
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	}
	return ""
}
