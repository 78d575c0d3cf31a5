// admintoken prints a signed admin token for the reset API.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/monopolybot/backend/internal/api/middleware/auth"
	"github.com/monopolybot/backend/internal/config"
)

func main() {
	adminID := flag.String("admin", "admin", "admin identifier embedded in the token")
	hours := flag.Int("hours", 0, "token lifetime in hours (0 = config default)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	expiration := cfg.JWT.Expiration
	if *hours > 0 {
		expiration = *hours
	}

	token, err := auth.GenerateJWT(*adminID, cfg.JWT.Secret, expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
