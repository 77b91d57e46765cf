package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList is a jsonb-backed string slice (role permission keys).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for StringList")
	}
}

type Role struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string     `gorm:"size:50;not null;unique" json:"name"`
	Permissions StringList `gorm:"type:jsonb;not null" json:"permissions"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// BeforeSave drops duplicate permission keys, preserving first occurrence.
func (r *Role) BeforeSave(tx *gorm.DB) error {
	seen := make(map[string]bool, len(r.Permissions))
	deduped := r.Permissions[:0]
	for _, p := range r.Permissions {
		if !seen[p] {
			seen[p] = true
			deduped = append(deduped, p)
		}
	}
	r.Permissions = deduped
	return nil
}

func (r *Role) HasPermission(permission string) bool {
	for _, p := range r.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
