package domain

type RecordKind string

const (
	RecordKindMaterial RecordKind = "Material"
	RecordKindLabor    RecordKind = "Labor"
)

// ResourceRecord is one material or labor line item booked against a project.
// Labor records carry a duration in days; for materials DurationDays is nil.
type ResourceRecord struct {
	ID            int32      `json:"id"`
	ProjectID     int32      `json:"project_id"`
	Kind          RecordKind `json:"kind"`
	Name          string     `json:"name"`
	Unit          string     `json:"unit"`
	Quantity      int32      `json:"quantity"`
	UnitCostCents int32      `json:"unit_cost_cents"`
	DurationDays  *int32     `json:"duration_days,omitempty"`
	CreatedOn     string     `json:"created_on"`
}

// TotalCents is quantity x unit cost, times duration for labor.
func (r ResourceRecord) TotalCents() int64 {
	total := int64(r.Quantity) * int64(r.UnitCostCents)
	if r.Kind == RecordKindLabor && r.DurationDays != nil {
		total *= int64(*r.DurationDays)
	}
	return total
}

// CostSummary aggregates record totals for one project.
type CostSummary struct {
	ProjectID          int32 `json:"project_id"`
	MaterialTotalCents int64 `json:"material_total_cents"`
	LaborTotalCents    int64 `json:"labor_total_cents"`
}
