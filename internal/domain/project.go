package domain

type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "Planning"
	ProjectStatusInProgress ProjectStatus = "In Progress"
	ProjectStatusCompleted  ProjectStatus = "Completed"
	ProjectStatusOnHold     ProjectStatus = "On Hold"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusOnHold:
		return true
	}
	return false
}

type Project struct {
	ID            int32         `json:"id"`
	Name          string        `json:"name"`
	Type          string        `json:"type"`
	Client        string        `json:"client"`
	DateRequested string        `json:"date_requested"`
	TargetDate    string        `json:"target_date"`
	Status        ProjectStatus `json:"status"`
	CreatedOn     string        `json:"created_on"`
	DeletedOn     *string       `json:"deleted_on,omitempty"`
}
