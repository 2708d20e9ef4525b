package server

// Server groups the HTTP handlers of every resource the API exposes.
type Server struct {
	GamesServer
}

func NewServer(
	gamesServer GamesServer,
) Server {
	return Server{
		GamesServer: gamesServer,
	}
}
