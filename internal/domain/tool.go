package domain

// UnitStatus is the availability state of a serialized tool unit.
// Assign/return only ever toggle between Available and Not Available;
// Under Maintenance is set by the inventory registry alone.
type UnitStatus string

const (
	UnitStatusAvailable        UnitStatus = "Available"
	UnitStatusNotAvailable     UnitStatus = "Not Available"
	UnitStatusUnderMaintenance UnitStatus = "Under Maintenance"
)

func (s UnitStatus) Valid() bool {
	switch s {
	case UnitStatusAvailable, UnitStatusNotAvailable, UnitStatusUnderMaintenance:
		return true
	}
	return false
}

// ToolType is a named category of tool ("Power Drill") owning a set of
// serialized units. Quantity mirrors the number of owned units.
type ToolType struct {
	ID              int32      `json:"id"`
	Name            string     `json:"name"`
	Quantity        int32      `json:"quantity"`
	Status          UnitStatus `json:"status"`
	ConditionNotes  string     `json:"condition_notes"`
	LastMaintenance string     `json:"last_maintenance"`
	Units           []ToolUnit `json:"units,omitempty"`
	CreatedOn       string     `json:"created_on"`
	DeletedOn       *string    `json:"deleted_on,omitempty"`
}

// ToolUnit is one physical, individually identifiable instance of a ToolType.
// The serial number is what a printed QR code encodes.
type ToolUnit struct {
	ID           int32      `json:"id"`
	ToolTypeID   int32      `json:"tool_type_id"`
	SerialNumber string     `json:"serial_number"`
	Status       UnitStatus `json:"status"`
}
