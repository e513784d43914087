package models

type UserRole string
type PostingKind string
type PostingStatus string
type ApplicationStatus string

const (
	UserRoleApplicant UserRole = "applicant"
	UserRoleRecruiter UserRole = "recruiter"
	UserRoleAdmin     UserRole = "admin"

	PostingKindJob        PostingKind = "job"
	PostingKindInternship PostingKind = "internship"

	// Job postings
	PostingStatusActive PostingStatus = "active"
	PostingStatusClosed PostingStatus = "closed"
	PostingStatusDraft  PostingStatus = "draft"

	// Internship postings (admin review cycle)
	PostingStatusPending  PostingStatus = "pending"
	PostingStatusApproved PostingStatus = "approved"
	PostingStatusRejected PostingStatus = "rejected"

	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusReviewed    ApplicationStatus = "reviewed"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusHired       ApplicationStatus = "hired"
)

// Cities - фиксированный список городов платформы.
var Cities = []string{"Noida", "Delhi", "Pune", "Mumbai", "Bangalore", "Hyderabad"}

var JobTypes = []string{"Full-time", "Part-time", "Contract", "Internship"}

var ExperienceLevels = []string{"Entry Level", "Mid Level", "Senior Level", "Executive"}

var jobStatuses = map[PostingStatus]bool{
	PostingStatusActive: true,
	PostingStatusClosed: true,
	PostingStatusDraft:  true,
}

var internshipStatuses = map[PostingStatus]bool{
	PostingStatusPending:  true,
	PostingStatusApproved: true,
	PostingStatusRejected: true,
}

var applicationStatuses = map[ApplicationStatus]bool{
	ApplicationStatusPending:     true,
	ApplicationStatusReviewed:    true,
	ApplicationStatusShortlisted: true,
	ApplicationStatusRejected:    true,
	ApplicationStatusHired:       true,
}

// ValidStatus проверяет принадлежность статуса к enum-набору варианта.
func (k PostingKind) ValidStatus(s PostingStatus) bool {
	switch k {
	case PostingKindJob:
		return jobStatuses[s]
	case PostingKindInternship:
		return internshipStatuses[s]
	}
	return false
}

// DefaultStatus - начальный статус при создании.
func (k PostingKind) DefaultStatus() PostingStatus {
	if k == PostingKindInternship {
		return PostingStatusPending
	}
	return PostingStatusActive
}

func (k PostingKind) Valid() bool {
	return k == PostingKindJob || k == PostingKindInternship
}

func (s ApplicationStatus) Valid() bool {
	return applicationStatuses[s]
}

func ValidCity(city string) bool {
	for _, c := range Cities {
		if c == city {
			return true
		}
	}
	return false
}

func ValidJobType(jt string) bool {
	for _, t := range JobTypes {
		if t == jt {
			return true
		}
	}
	return false
}

func ValidExperienceLevel(lvl string) bool {
	for _, l := range ExperienceLevels {
		if l == lvl {
			return true
		}
	}
	return false
}

// --- Жесткий граф переходов (включается через rules.strict_transitions) ---
//
// По умолчанию движок разрешает любой переход внутри enum-набора, как это
// делала историческая версия платформы. Таблицы ниже применяются только в
// strict-режиме.

// AllowedPostingTransition: job - из closed выхода нет; internship -
// approved и rejected остаются взаимно пересматриваемыми, но возврат в
// pending запрещен.
func AllowedPostingTransition(kind PostingKind, from, to PostingStatus) bool {
	if !kind.ValidStatus(to) {
		return false
	}
	if from == to {
		return true
	}
	switch kind {
	case PostingKindJob:
		return from != PostingStatusClosed
	case PostingKindInternship:
		return to != PostingStatusPending
	}
	return false
}

// AllowedApplicationTransition: hired и rejected терминальны в strict-режиме.
func AllowedApplicationTransition(from, to ApplicationStatus) bool {
	if !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	return from != ApplicationStatusHired && from != ApplicationStatusRejected
}
