package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/stayhub/hotel-booking-backend/internal/config"
	"github.com/stayhub/hotel-booking-backend/internal/database"
	"github.com/stayhub/hotel-booking-backend/internal/logger"
	"github.com/stayhub/hotel-booking-backend/internal/model"
	"github.com/stayhub/hotel-booking-backend/internal/repository"
	"github.com/stayhub/hotel-booking-backend/internal/service"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Initialize Services ───────────────────────────────────────────
	roleRepo := repository.NewRoleRepository(pool)
	authService := service.NewAuthService(cfg, repository.NewUserRepository(pool), nil)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New User ===")

	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)

	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Println("Error reading password")
		return
	}

	fmt.Printf("Enter Role (%s, %s, %s, %s) [default %s]: ",
		model.RoleAdmin, model.RoleSupervisor, model.RoleReceptionist, model.RoleGuest, model.RoleAdmin)
	roleName, _ := reader.ReadString('\n')
	roleName = strings.ToUpper(strings.TrimSpace(roleName))
	if roleName == "" {
		roleName = model.RoleAdmin
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	role, err := roleRepo.GetByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fmt.Printf("Error: role %q does not exist, run cmd/seed first\n", roleName)
			return
		}
		log.Fatal().Err(err).Msg("Failed to look up role")
	}

	user, err := authService.CreateUser(ctx, name, email, string(bytePassword), role.ID)
	if err != nil {
		var svcErr *service.Error
		if errors.As(err, &svcErr) {
			fmt.Printf("Error: %s\n", svcErr.Message)
			return
		}
		log.Fatal().Err(err).Msg("Failed to create user")
	}

	fmt.Printf("\nSuccess! User '%s' (%s) created as %s with ID: %d\n", user.Name, user.Email, role.Name, user.ID)
}
