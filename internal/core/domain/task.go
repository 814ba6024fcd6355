package domain

import "time"

// TaskStatus represents the lifecycle state of a posted task.
type TaskStatus string

const (
	TaskOpen       TaskStatus = "OPEN"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
	TaskCancelled  TaskStatus = "CANCELLED"
	TaskClosed     TaskStatus = "CLOSED"
)

// validTransitions defines the allowed task state machine transitions.
var validTransitions = map[TaskStatus][]TaskStatus{
	TaskOpen:       {TaskInProgress, TaskCancelled, TaskClosed},
	TaskInProgress: {TaskCompleted, TaskCancelled},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TaskPriority ranks how urgent a task is for the client.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
	PriorityUrgent TaskPriority = "URGENT"
)

// Task is a unit of work posted by a client.
type Task struct {
	ID                       int64        `json:"id" bson:"_id"`
	Title                    string       `json:"title" bson:"title"`
	Description              string       `json:"description" bson:"description"`
	Status                   TaskStatus   `json:"status" bson:"status"`
	Priority                 TaskPriority `json:"priority" bson:"priority"`
	BudgetMin                *float64     `json:"budgetMin,omitempty" bson:"budget_min,omitempty"`
	BudgetMax                *float64     `json:"budgetMax,omitempty" bson:"budget_max,omitempty"`
	Deadline                 *time.Time   `json:"deadline,omitempty" bson:"deadline,omitempty"`
	RequiredSkills           string       `json:"requiredSkills,omitempty" bson:"required_skills,omitempty"`
	Location                 string       `json:"location,omitempty" bson:"location,omitempty"`
	Remote                   bool         `json:"remote" bson:"remote"`
	EstimatedDuration        string       `json:"estimatedDuration,omitempty" bson:"estimated_duration,omitempty"`
	ClientID                 int64        `json:"clientId" bson:"client_id"`
	ClientName               string       `json:"clientName,omitempty" bson:"client_name,omitempty"`
	CategoryID               *int64       `json:"categoryId,omitempty" bson:"category_id,omitempty"`
	CategoryName             string       `json:"categoryName,omitempty" bson:"category_name,omitempty"`
	AssignedProfessionalID   *int64       `json:"assignedProfessionalId,omitempty" bson:"assigned_professional_id,omitempty"`
	AssignedProfessionalName string       `json:"assignedProfessionalName,omitempty" bson:"assigned_professional_name,omitempty"`
	CreatedAt                time.Time    `json:"createdAt" bson:"created_at"`
	UpdatedAt                time.Time    `json:"updatedAt" bson:"updated_at"`
}

// Category groups tasks and professionals by trade.
type Category struct {
	ID          int64  `json:"id" bson:"_id"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	IconURL     string `json:"iconUrl,omitempty" bson:"icon_url,omitempty"`
}

// DefaultCategories seeds an empty catalog.
var DefaultCategories = []Category{
	{ID: 1, Name: "Plumbing", Description: "Leaks, fittings and installations"},
	{ID: 2, Name: "Electrical", Description: "Wiring, lighting and repairs"},
	{ID: 3, Name: "Cleaning", Description: "Homes, offices and move-outs"},
	{ID: 4, Name: "Carpentry", Description: "Furniture, doors and shelving"},
	{ID: 5, Name: "Design", Description: "Graphic, web and interior design"},
	{ID: 6, Name: "Tutoring", Description: "Lessons and homework help"},
}

// Review is feedback left on a task by one participant about the other.
type Review struct {
	TaskID     int64     `json:"taskId" bson:"task_id"`
	ReviewerID int64     `json:"reviewerId,omitempty" bson:"reviewer_id"`
	RevieweeID int64     `json:"revieweeId" bson:"reviewee_id"`
	Rating     int       `json:"rating" bson:"rating"`
	Comment    string    `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitzero" bson:"created_at"`
}

// ContactQuery is a message sent through the public contact form.
type ContactQuery struct {
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Subject   string    `json:"subject,omitempty" bson:"subject,omitempty"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"createdAt,omitzero" bson:"created_at"`
}

// TaskDraft is the payload a client submits to post a task.
type TaskDraft struct {
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	CategoryID        *int64       `json:"categoryId,omitempty"`
	BudgetMin         *float64     `json:"budgetMin,omitempty"`
	BudgetMax         *float64     `json:"budgetMax,omitempty"`
	Priority          TaskPriority `json:"priority,omitempty"`
	Deadline          *time.Time   `json:"deadline,omitempty"`
	RequiredSkills    string       `json:"requiredSkills,omitempty"`
	Location          string       `json:"location,omitempty"`
	Remote            bool         `json:"remote"`
	EstimatedDuration string       `json:"estimatedDuration,omitempty"`
}
