package auth

import (
	"net/http"
)

// msgMustBeConnected is the message of every 401 the guard writes; the
// outcome message carried by the gate becomes the reason.
const msgMustBeConnected = "You should be connected to do this operation"

// msgNoOutcome is the reason used when no outcome is present in the context,
// which means the Annotate middleware did not run for this route.
const msgNoOutcome = "no authentication context found"

// guardResponse is the body of a 401 written by the guard.
type guardResponse struct {
	Error guardReason `json:"error"`
}

type guardReason struct {
	Message string `json:"message"`
	Reason  string `json:"reason"`
}

// IsAuthenticated inspects the authentication outcome annotated by the gate.
// On failure it writes a 401 response and returns false; the caller must stop
// processing. On success it returns true and performs no side effect. Every
// protected handler invokes this as its first action.
func IsAuthenticated(w http.ResponseWriter, r *http.Request) bool {
	outcome, ok := OutcomeFromContext(r.Context())
	if !ok {
		outcome = Outcome{Success: false, Message: msgNoOutcome}
	}

	if !outcome.Success {
		writeJSON(w, http.StatusUnauthorized, guardResponse{
			Error: guardReason{
				Message: msgMustBeConnected,
				Reason:  outcome.Message,
			},
		})
		return false
	}

	return true
}
