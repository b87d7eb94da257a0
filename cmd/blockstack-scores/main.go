// Command blockstack-scores serves a shared leaderboard over HTTP.
package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/plus3/blockstack/ranking"
	"github.com/plus3/blockstack/ranking/rankhttp"
)

func newRouter(board rankhttp.Leaderboard) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))

	rankhttp.NewHandler(board).RegisterRoutes(r)
	return r
}

func main() {
	file := flag.String("file", ranking.DefaultPath(), "Leaderboard file.")
	flag.Parse()

	store, err := ranking.OpenStore(*file)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("loaded %d entries from %s", len(store.Entries()), store.Path())

	addr := ":" + strings.TrimSpace(os.Getenv("PORT"))
	if addr == ":" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           newRouter(store),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("listening on http://localhost%s", addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
