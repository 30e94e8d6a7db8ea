// pkg/registry/schema.go
package registry

// ActivityRegistry describes every job type the worker manager can serve.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

type Activity struct {
	ID                   string   `json:"id"`
	DisplayName          string   `json:"displayName"`
	Description          string   `json:"description"`
	Category             string   `json:"category"` // search | chatbot
	Version              string   `json:"version"`
	TaskType             string   `json:"taskType"`
	ImplementationStatus string   `json:"implementationStatus"`
	InputVariables       []string `json:"inputVariables"`
	OutputVariables      []string `json:"outputVariables"`
	ErrorCodes           []string `json:"errorCodes"`
	Timeout              string   `json:"timeout"`
	Retries              int      `json:"retries"`
	Workflows            []string `json:"workflows"`
}

// Fields that Update accepts.
const (
	FieldStatus      = "status"
	FieldVersion     = "version"
	FieldDisplayName = "displayName"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldTaskType    = "taskType"
	FieldTimeout     = "timeout"
	FieldRetries     = "retries"
)
