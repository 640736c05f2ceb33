package dto

type AddCartItemDTO struct {
	PartID   string `json:"partId"   form:"partId"   binding:"required"`
	Quantity int    `json:"quantity" form:"quantity" binding:"omitempty,min=1"`
}

// SetCartQuantityDTO sets a line's quantity; zero or less removes it.
type SetCartQuantityDTO struct {
	Quantity *int `json:"quantity" form:"quantity" binding:"required"`
}

type SetLanguageDTO struct {
	Language string `json:"language" form:"language" binding:"required,oneof=en sw"`
}

type LoginDTO struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateSubmissionStatusDTO struct {
	Status string `json:"status" binding:"required,oneof=NEW IN_PROGRESS QUOTED REJECTED CLOSED"`
}

type CreateSubmissionNoteDTO struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

type ChangeMyPasswordDTO struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword"     binding:"required,min=8,nefield=CurrentPassword"`
}
