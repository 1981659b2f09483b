package inventory

import (
	"context"
	"strings"

	"github.com/erazemk/zaloga/internal/model"
)

// Item types and departments are matched against items by name only.
// Renaming or deleting one leaves items that use the old name untouched,
// and duplicate names are allowed.

// AddItemType creates an item type.
func (s *Store) AddItemType(ctx context.Context, name string) (model.ItemType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.ItemType{}, invalidInput("type name is required")
	}
	t := model.ItemType{ID: s.newID(), Name: name}
	s.itemTypes = append(s.itemTypes, t)
	s.save(ctx, KeyItemTypes)
	return t, nil
}

// EditItemType renames an item type. It reports whether the id was found.
func (s *Store) EditItemType(ctx context.Context, id, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, invalidInput("type name is required")
	}
	for i := range s.itemTypes {
		if s.itemTypes[i].ID == id {
			s.itemTypes[i].Name = name
			s.save(ctx, KeyItemTypes)
			return true, nil
		}
	}
	return false, nil
}

// DeleteItemType removes an item type. It reports whether the id was found.
func (s *Store) DeleteItemType(ctx context.Context, id string) bool {
	for i := range s.itemTypes {
		if s.itemTypes[i].ID == id {
			s.itemTypes = append(s.itemTypes[:i:i], s.itemTypes[i+1:]...)
			s.save(ctx, KeyItemTypes)
			return true
		}
	}
	return false
}

// AddDepartment creates a department.
func (s *Store) AddDepartment(ctx context.Context, name string) (model.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Department{}, invalidInput("department name is required")
	}
	d := model.Department{ID: s.newID(), Name: name}
	s.departments = append(s.departments, d)
	s.save(ctx, KeyDepartments)
	return d, nil
}

// EditDepartment renames a department. It reports whether the id was found.
func (s *Store) EditDepartment(ctx context.Context, id, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, invalidInput("department name is required")
	}
	for i := range s.departments {
		if s.departments[i].ID == id {
			s.departments[i].Name = name
			s.save(ctx, KeyDepartments)
			return true, nil
		}
	}
	return false, nil
}

// DeleteDepartment removes a department. It reports whether the id was found.
func (s *Store) DeleteDepartment(ctx context.Context, id string) bool {
	for i := range s.departments {
		if s.departments[i].ID == id {
			s.departments = append(s.departments[:i:i], s.departments[i+1:]...)
			s.save(ctx, KeyDepartments)
			return true
		}
	}
	return false
}
