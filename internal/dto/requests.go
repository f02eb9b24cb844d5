package dto

// CreateLearningPlanRequest is the body of plan create and update calls.
type CreateLearningPlanRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AddStepRequest is the body of step create and update calls.
type AddStepRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdateStepStatusRequest struct {
	Completed bool `json:"completed"`
}

type UpdateNotificationReadRequest struct {
	Read bool `json:"read"`
}

// CreateNotificationRequest is posted by the user who triggers the event.
type CreateNotificationRequest struct {
	UserID               string `json:"user_id"`
	Type                 string `json:"type"`
	Message              string `json:"message"`
	ResourceID           string `json:"resource_id"`
	SenderUsername       string `json:"sender_username"`
	SenderProfilePicture string `json:"sender_profile_picture"`
}
