// One-shot helper for operator setup: runs the Discord authorization flow
// locally and prints the resulting identity, to verify client credentials
// before deploying.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

func main() {
	config := &oauth2.Config{
		ClientID:     os.Getenv("CLIENT_ID"),
		ClientSecret: os.Getenv("CLIENT_SECRET"),
		RedirectURL:  "http://localhost:8090/callback",
		Scopes:       []string{"identify"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://discord.com/api/oauth2/authorize",
			TokenURL: "https://discord.com/api/oauth2/token",
		},
	}

	state := uuid.NewString()

	http.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			return
		}

		token, err := config.Exchange(context.Background(), r.URL.Query().Get("code"))
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to exchange code: %v", err), http.StatusInternalServerError)
			return
		}

		resp, err := config.Client(context.Background(), token).Get("https://discord.com/api/users/@me")
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to fetch identity: %v", err), http.StatusInternalServerError)
			return
		}
		defer resp.Body.Close()

		var identity struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
			http.Error(w, fmt.Sprintf("Failed to decode identity: %v", err), http.StatusInternalServerError)
			return
		}

		fmt.Printf("\nAuthenticated as %s (id %s)\n\n", identity.Username, identity.ID)
		fmt.Fprintf(w, "Authentication successful! You can close this window.")
		os.Exit(0)
	})

	fmt.Printf("Open the following URL in your browser:\n\n%s\n\n", config.AuthCodeURL(state))
	log.Fatal(http.ListenAndServe(":8090", nil))
}
