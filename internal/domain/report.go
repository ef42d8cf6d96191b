package domain

// UtilizationReport backs the tool utilization dashboard.
type UtilizationReport struct {
	TotalUnits         int32             `json:"total_units"`
	AvailableUnits     int32             `json:"available_units"`
	AssignedUnits      int32             `json:"assigned_units"`
	MaintenanceUnits   int32             `json:"maintenance_units"`
	OpenAssignments    int32             `json:"open_assignments"`
	OverdueAssignments int32             `json:"overdue_assignments"`
	PerType            []TypeUtilization `json:"per_type"`
}

type TypeUtilization struct {
	ToolTypeID    int32  `json:"tool_type_id"`
	Name          string `json:"name"`
	TotalUnits    int32  `json:"total_units"`
	AssignedUnits int32  `json:"assigned_units"`
}

// MaintenanceDueItem is a tool type whose last maintenance is older than the
// configured interval, or that has units parked under maintenance.
type MaintenanceDueItem struct {
	ToolTypeID       int32  `json:"tool_type_id"`
	Name             string `json:"name"`
	LastMaintenance  string `json:"last_maintenance"`
	MaintenanceUnits int32  `json:"maintenance_units"`
}
