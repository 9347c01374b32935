package globals

type contextKey string

const (
	// UserIDKey carries the authenticated user's id through the request context.
	UserIDKey contextKey = "userId"
	// ParamIDKey carries router params for handlers wrapped as plain http.Handler.
	ParamIDKey contextKey = "params"
)
