package asset

import "slices"

// Type is the top-level asset classification
type Type string

const (
	TypeITEquipment Type = "IT Equipment"
	TypeFurniture   Type = "Furniture"
	TypeVehicle     Type = "Vehicle"
	TypeMachinery   Type = "Machinery"
	TypeBuilding    Type = "Building"
	TypeIntangible  Type = "Intangible"
)

var subtypes = map[Type][]string{
	TypeITEquipment: {"Laptop", "Desktop", "Server", "Printer", "Networking", "Mobile Device"},
	TypeFurniture:   {"Desk", "Chair", "Cabinet", "Table"},
	TypeVehicle:     {"Car", "Truck", "Two Wheeler", "Van"},
	TypeMachinery:   {"Production", "Generator", "HVAC", "Tooling"},
	TypeBuilding:    {"Office", "Warehouse", "Factory"},
	TypeIntangible:  {"Software License", "Patent", "Trademark"},
}

// IsValid checks if the type is a known asset type
func (t Type) IsValid() bool {
	_, ok := subtypes[t]
	return ok
}

// Subtypes returns the fixed subtype set of t
func (t Type) Subtypes() []string {
	return slices.Clone(subtypes[t])
}

// HasSubtype reports whether subtype belongs to t
func (t Type) HasSubtype(subtype string) bool {
	return slices.Contains(subtypes[t], subtype)
}
