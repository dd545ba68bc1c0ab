// Command set-admin-claim grants (or with -revoke clears) the admin claim of
// the account registered with the given email.
//
//	go run ./cmd/set-admin-claim admin@example.com
//
// The account must log out and in again to receive a token with the claim.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"olympia-api/internal/adapters/identity"
	"olympia-api/internal/config"
	"olympia-api/internal/core/domain"
)

func main() {
	revoke := flag.Bool("revoke", false, "clear the admin claim instead of granting it")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: set-admin-claim [-revoke] email@example.com")
		flag.PrintDefaults()
	}
	flag.Parse()

	email := strings.TrimSpace(flag.Arg(0))
	if email == "" || !strings.Contains(email, "@") {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}
	if cfg.StoreDriver != "mysql" {
		log.Fatalf("❌ STORE_DRIVER=%s keeps accounts in process memory, nothing to update", cfg.StoreDriver)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	idp := identity.NewLocalProvider(identity.NewGormPrincipals(db), identity.Options{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
	})

	ctx := context.Background()
	principal, err := idp.GetPrincipalByEmail(ctx, email)
	if errors.Is(err, domain.ErrPrincipalNotFound) {
		log.Fatalf("❌ No account registered with %s", email)
	}
	if err != nil {
		log.Fatalf("❌ Lookup failed: %v", err)
	}

	if err := idp.SetAdminClaim(ctx, principal.UID, !*revoke); err != nil {
		log.Fatalf("❌ Failed to set admin claim: %v", err)
	}

	after, err := idp.GetPrincipal(ctx, principal.UID)
	if err != nil {
		log.Fatalf("❌ Verify failed: %v", err)
	}
	log.Printf("🔐 %s (uid %s) admin=%t", email, after.UID, after.Admin)
	log.Println("   Log out and log in again to refresh the token.")
}
