package domain

import "time"

// ProposalStatus tracks a professional's bid on a task.
type ProposalStatus string

const (
	ProposalPending   ProposalStatus = "PENDING"
	ProposalAccepted  ProposalStatus = "ACCEPTED"
	ProposalRejected  ProposalStatus = "REJECTED"
	ProposalWithdrawn ProposalStatus = "WITHDRAWN"
)

// Decided reports whether the proposal can no longer change.
func (s ProposalStatus) Decided() bool {
	return s != ProposalPending
}

// Proposal is a professional's offer to take on a task.
type Proposal struct {
	ID                int64          `json:"id" bson:"_id"`
	TaskID            int64          `json:"taskId" bson:"task_id"`
	TaskTitle         string         `json:"taskTitle,omitempty" bson:"task_title,omitempty"`
	ProfessionalID    int64          `json:"professionalId" bson:"professional_id"`
	ProfessionalName  string         `json:"professionalName,omitempty" bson:"professional_name,omitempty"`
	Message           string         `json:"message" bson:"message"`
	ProposedAmount    *float64       `json:"proposedAmount,omitempty" bson:"proposed_amount,omitempty"`
	EstimatedDuration string         `json:"estimatedDuration,omitempty" bson:"estimated_duration,omitempty"`
	Status            ProposalStatus `json:"status" bson:"status"`
	CreatedAt         time.Time      `json:"createdAt" bson:"created_at"`
	UpdatedAt         time.Time      `json:"updatedAt" bson:"updated_at"`
	AcceptedAt        *time.Time     `json:"acceptedAt,omitempty" bson:"accepted_at,omitempty"`
	RejectedAt        *time.Time     `json:"rejectedAt,omitempty" bson:"rejected_at,omitempty"`
}

// ProposalDraft is the payload a professional submits to apply for a task.
type ProposalDraft struct {
	TaskID            int64    `json:"taskId"`
	Message           string   `json:"message"`
	ProposedAmount    *float64 `json:"proposedAmount,omitempty"`
	EstimatedDuration string   `json:"estimatedDuration,omitempty"`
}
