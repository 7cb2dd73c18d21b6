// seed crea o actualiza un usuario administrador del catálogo.
//
// Uso: go run ./cmd/seed --email admin@example.com --password '...'
// La contraseña también puede venir en SEED_ADMIN_PASSWORD. Usa la misma
// configuración de base de datos que la API (DATABASE_URL, DB_*).
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/validator"
)

type seedInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"max=200"`
	Role     string `json:"role" validate:"oneof=admin viewer"`
}

func main() {
	flags := pflag.NewFlagSet("seed", pflag.ExitOnError)
	flags.String("email", "", "email del usuario")
	flags.String("password", "", "contraseña (o SEED_ADMIN_PASSWORD)")
	flags.String("name", "Administrador", "nombre visible")
	flags.String("role", entity.RoleAdmin, "rol: admin | viewer")
	_ = flags.Parse(os.Args[1:])

	v := viper.New()
	_ = v.BindPFlags(flags)
	v.SetEnvPrefix("SEED_ADMIN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	in := seedInput{
		Email:    strings.ToLower(strings.TrimSpace(v.GetString("email"))),
		Password: v.GetString("password"),
		Name:     v.GetString("name"),
		Role:     v.GetString("role"),
	}
	if errs := validator.New().Struct(in); errs != nil {
		for field, msg := range errs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
		}
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.DB.Driver != config.DriverPostgres {
		fmt.Fprintln(os.Stderr, "seed requiere DB_DRIVER=postgres")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()
	if _, err := postgres.Migrate(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
		os.Exit(1)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hash: %v\n", err)
		os.Exit(1)
	}
	user := &entity.User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Role:         in.Role,
		Status:       entity.UserActive,
	}
	if err := postgres.NewUserRepository(pool).Save(ctx, user); err != nil {
		fmt.Fprintf(os.Stderr, "Guardar usuario: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Usuario %s (%s) listo, id=%d\n", user.Email, user.Role, user.ID)
}
