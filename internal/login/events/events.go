package events

import "github.com/nfrund/portal/internal/pubsub"

// LoginSucceeded is published after the session handler accepted a login.
type LoginSucceeded struct {
	Email        string `json:"email"`
	KeepLoggedIn bool   `json:"keep_logged_in"`
	Channel      string `json:"channel"`
}

// LoginFailed is published when the backend or the transport rejected a login.
type LoginFailed struct {
	Email   string `json:"email"`
	Kind    string `json:"kind"`
	Status  int    `json:"status,omitempty"`
	Message string `json:"message"`
	Channel string `json:"channel"`
}

var (
	Succeeded = pubsub.NewEvent[LoginSucceeded]("auth.login.succeeded", "A user logged in and a session was established")
	Failed    = pubsub.NewEvent[LoginFailed]("auth.login.failed", "A login attempt was rejected or could not reach the auth backend")
)

// Topics lists every login event in publication order.
func Topics() []pubsub.Topic {
	return []pubsub.Topic{Succeeded, Failed}
}
