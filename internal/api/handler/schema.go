package handler

import "time"

// --- Auth ---

type signupRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=CLIENT PROFESSIONAL"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Tasks ---

type createTaskRequest struct {
	Title             string     `json:"title"             validate:"required,max=200"`
	Description       string     `json:"description"       validate:"required"`
	CategoryID        *int64     `json:"categoryId"        validate:"omitempty,gt=0"`
	BudgetMin         *float64   `json:"budgetMin"         validate:"omitempty,gte=0"`
	BudgetMax         *float64   `json:"budgetMax"         validate:"omitempty,gte=0"`
	Priority          string     `json:"priority"          validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Deadline          *time.Time `json:"deadline"`
	RequiredSkills    string     `json:"requiredSkills"`
	Location          string     `json:"location"`
	Remote            bool       `json:"remote"`
	EstimatedDuration string     `json:"estimatedDuration"`
}

type statusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

// --- Proposals ---

type createProposalRequest struct {
	TaskID            int64    `json:"taskId"            validate:"required,gt=0"`
	Message           string   `json:"message"           validate:"required"`
	ProposedAmount    *float64 `json:"proposedAmount"    validate:"omitempty,gt=0"`
	EstimatedDuration string   `json:"estimatedDuration"`
}

// --- Feedback ---

type reviewRequest struct {
	TaskID     int64  `json:"taskId"     validate:"required,gt=0"`
	RevieweeID int64  `json:"revieweeId" validate:"required,gt=0"`
	Rating     int    `json:"rating"     validate:"required,gte=1,lte=5"`
	Comment    string `json:"comment"    validate:"max=2000"`
}

type contactQueryRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Email   string `json:"email"   validate:"required,email"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required"`
}
