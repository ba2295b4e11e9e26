// Command issue_token prints a bearer token for local development.
//
//	go run ./scripts/issue_token --user=1 --role=admin
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/model"
)

func main() {
	userID := flag.Int64("user", 0, "user ID to issue the token for")
	role := flag.String("role", string(model.RoleCustomer), "admin or customer")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *userID <= 0 {
		fmt.Fprintln(os.Stderr, "--user is required")
		os.Exit(2)
	}
	if r := model.Role(*role); r != model.RoleAdmin && r != model.RoleCustomer {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %v\n", err)
		os.Exit(1)
	}

	token, err := auth.IssueToken([]byte(cfg.Auth.JWTSecret), auth.Principal{
		UserID: *userID,
		Role:   model.Role(*role),
	}, *ttl, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to issue token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
