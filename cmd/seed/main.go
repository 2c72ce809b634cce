package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stayhub/hotel-booking-backend/internal/config"
	"github.com/stayhub/hotel-booking-backend/internal/database"
	"github.com/stayhub/hotel-booking-backend/internal/logger"
	"github.com/stayhub/hotel-booking-backend/internal/model"
)

var roles = []string{model.RoleAdmin, model.RoleSupervisor, model.RoleReceptionist, model.RoleGuest}

var countries = [][2]string{
	{"Indonesia", "ID"},
	{"Singapore", "SG"},
	{"Malaysia", "MY"},
	{"Japan", "JP"},
	{"United States", "US"},
	{"United Kingdom", "GB"},
}

var currencies = [][3]string{
	{"Indonesian Rupiah", "IDR", "Rp"},
	{"Singapore Dollar", "SGD", "S$"},
	{"Malaysian Ringgit", "MYR", "RM"},
	{"Japanese Yen", "JPY", "¥"},
	{"US Dollar", "USD", "$"},
	{"Pound Sterling", "GBP", "£"},
	{"Euro", "EUR", "€"},
}

// Every statement is an upsert-or-skip so the seed can be re-run safely.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	fmt.Println("=== Seeding roles, permissions and reference data ===")

	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for _, name := range roles {
			if _, err := tx.Exec(ctx,
				`INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
				return fmt.Errorf("seed role %s: %w", name, err)
			}
		}

		names := make([]string, 0, len(model.DefaultPermissions))
		for name := range model.DefaultPermissions {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if _, err := tx.Exec(ctx,
				`INSERT INTO permissions (name, description) VALUES ($1, $2)
				 ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description, updated_at = NOW()`,
				name, model.DefaultPermissions[name]); err != nil {
				return fmt.Errorf("seed permission %s: %w", name, err)
			}
		}

		// ADMIN holds every permission.
		if _, err := tx.Exec(ctx,
			`INSERT INTO role_permissions (role_id, permission_id)
			 SELECT r.id, p.id FROM roles r CROSS JOIN permissions p WHERE r.name = $1
			 ON CONFLICT (role_id, permission_id) DO NOTHING`, model.RoleAdmin); err != nil {
			return fmt.Errorf("seed admin grants: %w", err)
		}

		for role, permissions := range model.DefaultGrants {
			tag, err := tx.Exec(ctx,
				`INSERT INTO role_permissions (role_id, permission_id)
				 SELECT r.id, p.id FROM roles r JOIN permissions p ON p.name = ANY($2)
				 WHERE r.name = $1
				 ON CONFLICT (role_id, permission_id) DO NOTHING`, role, permissions)
			if err != nil {
				return fmt.Errorf("seed grants for %s: %w", role, err)
			}
			fmt.Printf("  %-13s +%d grant(s)\n", role, tag.RowsAffected())
		}

		for _, c := range countries {
			if _, err := tx.Exec(ctx,
				`INSERT INTO countries (name, code) VALUES ($1, $2) ON CONFLICT (code) DO NOTHING`,
				c[0], c[1]); err != nil {
				return fmt.Errorf("seed country %s: %w", c[1], err)
			}
		}

		for _, c := range currencies {
			if _, err := tx.Exec(ctx,
				`INSERT INTO currencies (name, code, symbol) VALUES ($1, $2, $3) ON CONFLICT (code) DO NOTHING`,
				c[0], c[1], c[2]); err != nil {
				return fmt.Errorf("seed currency %s: %w", c[1], err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Seed failed")
	}

	fmt.Println("Seed complete")
}
