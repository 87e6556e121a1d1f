package api

import (
	"github.com/benrueckert/koda-flashcard-app/internal/services"
)

// Server holds the HTTP surface's dependencies.
type Server struct {
	DeckService  services.DeckService
	CardService  services.CardService
	StudyService services.StudyService

	// DueLimit caps the due-set snapshot when a start-study request does
	// not carry its own limit. Zero means unlimited.
	DueLimit int
}
