package engagement

import (
	"testing"

	"github.com/abubakar1702/techgeek/internal/models"
)

func TestEmitInputSuppressed(t *testing.T) {
	tests := []struct {
		name     string
		in       EmitInput
		expected bool
	}{
		{"actor likes own post", EmitInput{RecipientID: 7, ActorID: 7, Verb: models.NotifyVerbLike}, true},
		{"actor comments on own post", EmitInput{RecipientID: 3, ActorID: 3, Verb: models.NotifyVerbComment}, true},
		{"actor replies to own comment", EmitInput{RecipientID: 9, ActorID: 9, Verb: models.NotifyVerbReply}, true},
		{"like from another user", EmitInput{RecipientID: 7, ActorID: 8, Verb: models.NotifyVerbLike}, false},
		{"comment from another user", EmitInput{RecipientID: 1, ActorID: 2, Verb: models.NotifyVerbComment}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.in.Suppressed()
			if result != tt.expected {
				t.Errorf("Suppressed() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestValidNotifyVerb(t *testing.T) {
	tests := []struct {
		name     string
		verb     string
		expected bool
	}{
		{"like", models.NotifyVerbLike, true},
		{"comment", models.NotifyVerbComment, true},
		{"reply", models.NotifyVerbReply, true},
		{"empty", "", false},
		{"unknown", "subscribe", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := models.ValidNotifyVerb(tt.verb)
			if result != tt.expected {
				t.Errorf("ValidNotifyVerb(%q) = %v, want %v", tt.verb, result, tt.expected)
			}
		})
	}
}
