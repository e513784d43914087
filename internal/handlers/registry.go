package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	PostingHandler     *PostingHandler
	ApplicationHandler *ApplicationHandler
}
