package entities

// RepairType is a named category of repair work (e.g. "Front Screen", "Battery"),
// independent of any device. ComplexityWeight is informational and not used for
// similarity because the catalog does not populate it consistently.
type RepairType struct {
	ID               uint     `json:"id"`
	Name             string   `json:"name"`
	ComplexityWeight *float64 `json:"complexity_weight,omitempty"`
}
