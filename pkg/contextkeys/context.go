package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// PrincipalContextKey - ключ, по которому auth-middleware кладет
// аутентифицированного субъекта (auth.Principal) в контекст запроса.
const PrincipalContextKey = contextKey("principal")
