package model

// ItemType is a named item category. Items reference it by name.
type ItemType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Department is a named organisational unit. Items reference it by name.
type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DefaultItemTypes are seeded when no item types have been stored yet.
var DefaultItemTypes = []string{"Stationery", "Cleaning Supplies", "Food & Beverages"}

// DefaultDepartments are seeded when no departments have been stored yet.
var DefaultDepartments = []string{"Admin", "IT", "HR"}
