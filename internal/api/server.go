package api

import (
	"github.com/akozlova/studycards/internal/auth"
	"github.com/akozlova/studycards/internal/services"
)

type Server struct {
	Auth       services.AuthService
	Decks      services.DeckService
	Cards      services.CardService
	Generation services.GenerationService
	Sessions   services.SessionService
	Stats      services.StatsService

	Tokens       *auth.TokenIssuer
	AIConfigured bool
	MaxUploadMB  int
}
