// Package model holds the types shared by every resource: roles, the
// authenticated actor, pagination and flexible dates. Each resource has its
// own subpackage with its entity and request/response payloads.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Role is the authorization tag carried by every account.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// Actor is the authenticated caller, built from the verified token.
type Actor struct {
	UserID int64
	Email  string
	Role   Role
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanAccess reports whether the actor may read or modify a record owned by
// ownerID.
func (a Actor) CanAccess(ownerID int64) bool {
	return a.IsAdmin() || a.UserID == ownerID
}

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Pagination is embedded in list queries.
type Pagination struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=1000"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// Normalized applies the default limit.
func (p Pagination) Normalized() Pagination {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// PaginationMeta is returned next to every paginated list.
type PaginationMeta struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

// NewPaginationMeta pairs the effective pagination with a total count.
func NewPaginationMeta(p Pagination, total int64) PaginationMeta {
	return PaginationMeta{Limit: p.Limit, Offset: p.Offset, Total: total}
}

// IDParam binds the ":id" path segment.
type IDParam struct {
	ID int64 `param:"id" json:"-" validate:"required,min=1"`
}

// NoPayload is used by endpoints that take no input.
type NoPayload struct{}

func (NoPayload) Validate() error { return nil }

// CountBucket is one row of a GROUP BY count.
type CountBucket struct {
	Key   string `db:"key"`
	Count int64  `db:"count"`
}

// BucketsToMap flattens GROUP BY rows into a JSON-friendly map.
func BucketsToMap(buckets []CountBucket) map[string]int64 {
	out := make(map[string]int64, len(buckets))
	for _, b := range buckets {
		out[b.Key] = b.Count
	}
	return out
}

// MessageResponse acknowledges a mutation.
type MessageResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}

// Date accepts either RFC 3339 timestamps or plain YYYY-MM-DD dates, from
// JSON bodies and from query parameters.
type Date struct {
	time.Time
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02T15:04", "2006-01-02"}

// ParseDate parses s with the accepted layouts.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q", s)
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.Format(time.RFC3339))
}

// UnmarshalParam lets echo bind Date from query and path parameters.
func (d *Date) UnmarshalParam(param string) error {
	parsed, err := ParseDate(param)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
