package rbac

import (
	"sort"
	"strings"
)

// Permission is an atomic capability identified by its key.
type Permission struct {
	ID        string `json:"_id"`
	Key       string `json:"key"`
	Name      string `json:"name"`
	IsDeleted bool   `json:"isDeleted"`
}

// Role bundles permissions.
type Role struct {
	ID          string       `json:"_id"`
	Name        string       `json:"name"`
	Key         string       `json:"key"`
	IsDeleted   bool         `json:"isDeleted"`
	Permissions []Permission `json:"permissions"`
}

// UserWithRoles is a user whose roles and their permissions are expanded.
type UserWithRoles struct {
	ID    string `json:"_id"`
	Roles []Role `json:"roles"`
}

// Set is a set of permission keys.
type Set map[string]struct{}

// NewSet builds a set from keys.
func NewSet(keys ...string) Set {
	s := make(Set, len(keys))
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Add inserts key, ignoring blanks.
func (s Set) Add(key string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	s[key] = struct{}{}
}

// Has reports whether key is present.
func (s Set) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// HasAny reports whether at least one key is present. No keys means true.
func (s Set) HasAny(keys ...string) bool {
	if len(keys) == 0 {
		return true
	}
	for _, k := range keys {
		if s.Has(k) {
			return true
		}
	}
	return false
}

// HasAll reports whether every key is present.
func (s Set) HasAll(keys ...string) bool {
	for _, k := range keys {
		if !s.Has(k) {
			return false
		}
	}
	return true
}

// Sorted returns the keys in ascending order.
func (s Set) Sorted() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
