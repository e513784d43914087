package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для доменных ошибок маркетплейса
(публикации и отклики). Репозитории возвращают sentinel-ошибки, сервисы
преобразуют их в AppError через эти фабрики.
*/

// ErrInvalidStatus - фабрика для невалидных статусов (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Postings ---

var ErrPostingNotFound = New(
	CodeNotFound,
	"posting",
	"Posting not found",
	http.StatusNotFound,
)

// ErrNotPostingOwner - мутация публикации доступна только ее автору (или админу).
var ErrNotPostingOwner = New(
	CodeForbidden,
	"posting",
	"Only the posting owner may modify it",
	http.StatusForbidden,
)

// ErrInternshipReviewOnly - статус стажировки меняет только администратор.
var ErrInternshipReviewOnly = New(
	CodeForbidden,
	"posting",
	"Internship status is changed by an administrator only",
	http.StatusForbidden,
)

// --- Applications ---

var ErrApplicationNotFound = New(
	CodeNotFound,
	"application",
	"Application not found",
	http.StatusNotFound,
)

// ErrDuplicateApplication - нарушение уникальности (posting, applicant_email).
var ErrDuplicateApplication = New(
	CodeConflict,
	"application",
	"You have already applied to this posting",
	http.StatusConflict,
)

// ErrApplicationAccessDenied - отклик видят кандидат, автор публикации и админ.
var ErrApplicationAccessDenied = New(
	CodeForbidden,
	"application",
	"Access to this application denied",
	http.StatusForbidden,
)

// --- Auth ---

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)
