// Command token mints a bearer token for an API client using the configured JWT secret.
package main

import (
	"customer-purchases/internal/lib/jwt"
	"flag"
	"fmt"
	"github.com/joho/godotenv"
	"os"
	"time"
)

func main() {
	envFile := flag.String("env-file", ".env.local", "dotenv file with JWT_SECRET")
	client := flag.String("client", "", "client id put into the token subject")
	ttl := flag.Duration("ttl", 720*time.Hour, "token lifetime, 0 for no expiry")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "load %s: %v\n", *envFile, err)
		os.Exit(1)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is required")
		os.Exit(1)
	}

	token, err := jwt.NewGenerator(secret, *ttl).Generate(*client)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Println(token)
}
