package web

import "context"

type ctxKey string

const (
	userNameKey  ctxKey = "userName"
	sessionIDKey ctxKey = "sessionID"
)

// UserName returns the logged-in username, or "" for anonymous requests.
func UserName(ctx context.Context) string {
	v, _ := ctx.Value(userNameKey).(string)
	return v
}

func sessionID(ctx context.Context) string {
	v, _ := ctx.Value(sessionIDKey).(string)
	return v
}

func withSession(ctx context.Context, id, userName string) context.Context {
	ctx = context.WithValue(ctx, sessionIDKey, id)
	return context.WithValue(ctx, userNameKey, userName)
}
