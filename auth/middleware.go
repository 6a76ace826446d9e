package auth

import (
	"net/http"
)

// Messages attached to failed authentication outcomes.
const (
	// MsgTokenMissing is the outcome message when no Authorization header is present.
	MsgTokenMissing = "Auth token is not supplied"
	// MsgTokenInvalid is the outcome message when the token fails verification.
	MsgTokenInvalid = "Token is not valid"
)

// Annotate returns middleware that reads the Authorization header, verifies
// the bearer token and attaches the resulting Outcome to the request context.
// It always proceeds to the next handler: rejection is the guard's job, not
// the gate's.
func Annotate(tokens *TokenService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var outcome Outcome

			header := r.Header.Get("Authorization")
			if header == "" {
				outcome = Outcome{Success: false, Message: MsgTokenMissing}
			} else if claims, err := tokens.Verify(header); err != nil {
				outcome = Outcome{Success: false, Message: MsgTokenInvalid}
			} else {
				outcome = Outcome{Success: true, Username: claims.Username}
			}

			ctx := NewContextWithOutcome(r.Context(), outcome)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
