package helpers

import "database/sql"

// NullInt64FromPtr converts an int64 pointer to sql.NullInt64.
// A nil pointer becomes NULL.
func NullInt64FromPtr(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

// Int64PtrFromNull converts sql.NullInt64 back to a pointer, nil for NULL
func Int64PtrFromNull(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
