package validator

import (
	"log"

	"careerhub_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные функции валидации,
// основанные на enum-наборах из internal/models.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Ошибка времени запуска приложения - не стартуем.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-posting-kind", validatePostingKind)
	mustRegister("is-location", validateLocation)
	mustRegister("is-job-type", validateJobType)
	mustRegister("is-experience-level", validateExperienceLevel)
	mustRegister("is-application-status", validateApplicationStatus)
}

// --- Функции валидации ---

func validatePostingKind(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Пустые значения проверяет 'required'
	}
	return models.PostingKind(value).Valid()
}

func validateLocation(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ValidCity(value)
}

func validateJobType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ValidJobType(value)
}

func validateExperienceLevel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ValidExperienceLevel(value)
}

func validateApplicationStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ApplicationStatus(value).Valid()
}
