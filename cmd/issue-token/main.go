package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/dimitrije/party-api/internal/config"
	"github.com/dimitrije/party-api/internal/database"
	"github.com/dimitrije/party-api/internal/logging"
	"github.com/dimitrije/party-api/internal/models"
	"github.com/dimitrije/party-api/internal/services"
)

// issue-token registers (or updates) a player row and prints an access token
// for it. Game servers use it to mint credentials for their players.
func main() {
	admin := flag.Bool("admin", false, "grant the admin role")
	flag.Usage = func() {
		fmt.Println("Usage: issue-token [-admin] <player-id> <name>")
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	playerID, err := strconv.ParseInt(flag.Arg(0), 10, 64)
	if err != nil || playerID < 0 {
		log.Fatalf("Invalid player id: %s", flag.Arg(0))
	}
	name := flag.Arg(1)

	role := models.RolePlayer
	if *admin {
		role = models.RoleAdmin
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// The roster is not touched here, so no shard is needed.
	playerService := services.NewPlayerService(db, nil, logging.Discard())
	player, err := playerService.Register(ctx, playerID, name, role)
	if err != nil {
		log.Fatalf("Failed to register player: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry)
	token, err := jwtService.GenerateAccessToken(player.ID, player.Role)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Printf("Player %d (%s, %s)\n", player.ID, player.Name, player.Role)
	fmt.Println(token.Token)
}
