package dto

import (
	"time"

	"gobooklend/internal/library/domain/apperr"
	"gobooklend/internal/library/domain/entities"
	"gobooklend/internal/library/ports/api"
)

// CreateLoanRequest - тело POST /api/loans. Без returnDate выдача бессрочная.
type CreateLoanRequest struct {
	BookID     string  `json:"bookId"`
	BorrowerID string  `json:"borrowerId"`
	LoanDate   string  `json:"loanDate"`
	ReturnDate *string `json:"returnDate,omitempty"`
}

// Validate проверяет запрос на выдачу.
func (r *CreateLoanRequest) Validate() apperr.FieldErrors {
	f := apperr.FieldErrors{}
	checkRequired(f, "bookId", r.BookID, "book ID is required")
	checkRequired(f, "borrowerId", r.BorrowerID, "borrower ID is required")

	var (
		loanDate time.Time
		loanOK   bool
	)
	if checkRequired(f, "loanDate", r.LoanDate, "loan date is required") {
		loanDate, loanOK = checkDate(f, "loanDate", r.LoanDate)
	}

	if r.ReturnDate != nil {
		returnDate, ok := checkDate(f, "returnDate", *r.ReturnDate)
		if ok && loanOK && !returnDate.After(loanDate) {
			f.Add("returnDate", "return date must be after loan date")
		}
	}
	return f
}

// ToCommand преобразует проверенный запрос в команду выдачи.
func (r *CreateLoanRequest) ToCommand() api.CreateLoanCommand {
	loanDate, _ := entities.ParseDate(r.LoanDate)
	return api.CreateLoanCommand{
		BookID:     r.BookID,
		BorrowerID: r.BorrowerID,
		LoanDate:   loanDate,
		ReturnDate: parseOptionalDate(r.ReturnDate),
	}
}

// ReturnLoanRequest - тело PUT /api/loans/:id. Без returnDate возврат датируется сегодняшним днем.
type ReturnLoanRequest struct {
	ReturnDate *string `json:"returnDate,omitempty"`
}

// Validate проверяет формат даты возврата.
func (r *ReturnLoanRequest) Validate() apperr.FieldErrors {
	f := apperr.FieldErrors{}
	if r.ReturnDate != nil {
		checkDate(f, "returnDate", *r.ReturnDate)
	}
	return f
}

// ActualReturnDate возвращает дату возврата или nil.
func (r *ReturnLoanRequest) ActualReturnDate() *time.Time {
	return parseOptionalDate(r.ReturnDate)
}

// LoanResponse - представление выдачи.
type LoanResponse struct {
	ID         string    `json:"id"`
	BookID     string    `json:"bookId"`
	BorrowerID string    `json:"borrowerId,omitempty"`
	LoanDate   string    `json:"loanDate"`
	ReturnDate *string   `json:"returnDate"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewLoanResponse строит ответ из выдачи.
func NewLoanResponse(l *entities.Loan) LoanResponse {
	return LoanResponse{
		ID:         l.ID,
		BookID:     l.BookID,
		BorrowerID: l.BorrowerID,
		LoanDate:   formatDate(l.LoanDate),
		ReturnDate: formatDatePtr(l.ReturnDate),
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

// NewLoanResponses строит список ответов.
func NewLoanResponses(loans []*entities.Loan) []LoanResponse {
	out := make([]LoanResponse, 0, len(loans))
	for _, l := range loans {
		out = append(out, NewLoanResponse(l))
	}
	return out
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	d, err := entities.ParseDate(*s)
	if err != nil {
		return nil
	}
	return &d
}
