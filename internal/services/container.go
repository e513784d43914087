package services

// ServiceContainer агрегирует сервисы для DI в хэндлеры.
type ServiceContainer struct {
	PostingService     *PostingService
	ApplicationService *ApplicationService
}
