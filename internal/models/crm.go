// internal/models/crm.go
package models

// TaskStatus defines the HubSpot task status values this service ever writes.
type TaskStatus string

const (
	StatusNotStarted TaskStatus = "NOT_STARTED"
	StatusCompleted  TaskStatus = "COMPLETED"
)

// PriorityNone is the only priority ever assigned to a created task.
const PriorityNone = "NONE"

// Deal is a HubSpot deal record. Read-only from this service's perspective.
type Deal struct {
	ID         string         `json:"id"`
	Properties DealProperties `json:"properties"`
}

type DealProperties struct {
	DealName  string `json:"dealname"`
	DealStage string `json:"dealstage"`
	Amount    string `json:"amount"`
}

// Owner is a HubSpot owner record. Read-only.
type Owner struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Task is a HubSpot task record as returned by the objects API.
type Task struct {
	ID         string         `json:"id"`
	Properties TaskProperties `json:"properties"`
}

type TaskProperties struct {
	Subject   string `json:"hs_task_subject"`
	Status    string `json:"hs_task_status"`
	Timestamp string `json:"hs_timestamp"`
	OwnerID   string `json:"hubspot_owner_id"`
}

// TaskInput carries a validated modal submission into the CRM client.
// DealID is required: a task is never created without an associated deal.
// DueISO is local wall time ("2006-01-02T15:04:05"); empty means no due date.
type TaskInput struct {
	Title       string
	Description string
	DueISO      string
	OwnerID     string
	DealID      string
}

// PropertyFilter is a single HubSpot search filter.
type PropertyFilter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

// CompletionPayload rides on the "Mark Complete" button value and comes
// back unmodified when the button is pressed.
type CompletionPayload struct {
	HsTaskID string `json:"hsTaskId"`
}
