package dto

import (
	"time"

	"gobooklend/internal/library/domain/apperr"
	"gobooklend/internal/library/domain/entities"
	"gobooklend/internal/library/ports/api"
)

const (
	maxNameLength  = 100
	maxEmailLength = 100
	maxPhoneLength = 15
)

// CreateBorrowerRequest - тело POST /api/borrowers.
type CreateBorrowerRequest struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}

// Validate проверяет профиль читателя.
func (r *CreateBorrowerRequest) Validate() apperr.FieldErrors {
	f := apperr.FieldErrors{}
	checkRequired(f, "userId", r.UserID, "user ID is required")
	if checkRequired(f, "name", r.Name, "name is required") {
		checkMaxLength(f, "name", r.Name, maxNameLength, "name cannot exceed 100 characters")
	}
	if checkRequired(f, "email", r.Email, "email is required") {
		checkEmail(f, "email", r.Email)
	}
	if checkRequired(f, "phone", r.Phone, "phone number is required") {
		checkPhone(f, "phone", r.Phone)
	}
	return f
}

// ToCommand преобразует запрос в команду.
func (r *CreateBorrowerRequest) ToCommand() api.CreateBorrowerCommand {
	return api.CreateBorrowerCommand{UserID: r.UserID, Name: r.Name, Email: r.Email, Phone: r.Phone}
}

// UpdateBorrowerRequest - частичное изменение профиля.
type UpdateBorrowerRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// Validate проверяет только переданные поля.
func (r *UpdateBorrowerRequest) Validate() apperr.FieldErrors {
	f := apperr.FieldErrors{}
	if r.Name != nil && checkRequired(f, "name", *r.Name, "name cannot be empty") {
		checkMaxLength(f, "name", *r.Name, maxNameLength, "name cannot exceed 100 characters")
	}
	if r.Email != nil {
		checkEmail(f, "email", *r.Email)
	}
	if r.Phone != nil {
		checkPhone(f, "phone", *r.Phone)
	}
	return f
}

// ToUpdate преобразует запрос в доменное изменение.
func (r *UpdateBorrowerRequest) ToUpdate() entities.BorrowerUpdate {
	return entities.BorrowerUpdate{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

// BorrowerResponse - представление читателя.
type BorrowerResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewBorrowerResponse строит ответ из профиля.
func NewBorrowerResponse(b *entities.Borrower) BorrowerResponse {
	return BorrowerResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		Name:      b.Name,
		Email:     b.Email,
		Phone:     b.Phone,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// NewBorrowerResponses строит список ответов.
func NewBorrowerResponses(borrowers []*entities.Borrower) []BorrowerResponse {
	out := make([]BorrowerResponse, 0, len(borrowers))
	for _, b := range borrowers {
		out = append(out, NewBorrowerResponse(b))
	}
	return out
}
