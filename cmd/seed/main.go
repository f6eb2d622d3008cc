package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"trimmers-api/internal/auth"
	"trimmers-api/internal/bootstrap"
	"trimmers-api/internal/config"
	"trimmers-api/internal/model"
	"trimmers-api/internal/repository"
	"trimmers-api/internal/service"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	name := pflag.String("admin-name", "admin", "name of the seeded admin")
	email := pflag.String("admin-email", "admin@example.com", "email of the seeded admin")
	password := pflag.String("admin-password", "", "password of the seeded admin (required)")
	timeout := pflag.Duration("timeout", 30*time.Second, "overall seeding timeout")
	pflag.Parse()

	if *password == "" {
		return errors.New("--admin-password flag: required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	store, closeStore, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize token manager: %w", err)
	}

	authService := service.NewAuthService(store.Users, tokens, logger)
	admin, err := ensureAdmin(ctx, authService, &model.RegisterRequest{Name: *name, Email: *email, Password: *password})
	if err != nil {
		return err
	}
	if !admin.IsAdmin() {
		logger.Warn().Str("email", *email).Msg("seeded account is not an admin, another user registered first")
	}

	created, err := seedProducts(ctx, store, admin, logger)
	if err != nil {
		return err
	}

	logger.Info().
		Str("admin", admin.UserID).
		Int("products", created).
		Msg("seeding completed")
	return nil
}

// ensureAdmin registers the account, or signs in when it already exists.
func ensureAdmin(ctx context.Context, svc service.AuthService, req *model.RegisterRequest) (model.Actor, error) {
	session, err := svc.Register(ctx, req)
	if err != nil {
		if !model.IsKind(err, model.KindBadRequest) {
			return model.Actor{}, fmt.Errorf("failed to register admin: %w", err)
		}
		session, err = svc.Login(ctx, &model.LoginRequest{Email: req.Email, Password: req.Password})
		if err != nil {
			return model.Actor{}, fmt.Errorf("failed to sign in admin: %w", err)
		}
	}
	return model.ActorFor(session.User), nil
}

// seedProducts creates the sample catalogue unless products already exist.
func seedProducts(ctx context.Context, store repository.Store, admin model.Actor, logger zerolog.Logger) (int, error) {
	count, err := store.Products.Count(ctx, model.ProductFilter{})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		logger.Info().Int64("count", count).Msg("products already present, skipping catalogue")
		return 0, nil
	}

	products := service.NewProductService(store.Products, store.Reviews, nil, logger)
	for i := range sampleProducts {
		if _, err := products.Create(ctx, admin, &sampleProducts[i]); err != nil {
			return i, fmt.Errorf("failed to create product %q: %w", sampleProducts[i].Name, err)
		}
	}
	return len(sampleProducts), nil
}

func price(v float64) *float64 { return &v }

func stock(v int) *int { return &v }

var sampleProducts = []model.ProductInput{
	{
		Name:         "accent chair",
		Price:        price(259.99),
		Description:  "Upholstered accent chair with solid oak legs.",
		Image:        "/uploads/example.jpeg",
		Category:     model.CategoryOffice,
		Company:      model.CompanyMarcos,
		Color:        "#ff0000",
		Featured:     true,
		FreeShipping: true,
		Inventory:    stock(24),
	},
	{
		Name:        "albany sectional",
		Price:       price(1099.99),
		Description: "Three piece sectional sofa in stain resistant fabric.",
		Category:    model.CategoryBedroom,
		Company:     model.CompanyLiddy,
		Color:       "#00ff00",
		Inventory:   stock(8),
	},
	{
		Name:         "dining table",
		Price:        price(429.99),
		Description:  "Extendable table seating six.",
		Category:     model.CategoryKitchen,
		Company:      model.CompanyIkea,
		Color:        "#222",
		Featured:     true,
		FreeShipping: false,
	},
	{
		Name:        "emperor bed",
		Price:       price(2399.99),
		Description: "King size bed with a padded headboard.",
		Category:    model.CategoryBedroom,
		Company:     model.CompanyIkea,
		Color:       "#0000ff",
		Inventory:   stock(3),
	},
	{
		Name:         "high-back bench",
		Price:        price(39.99),
		Description:  "Bench with a tall back and storage underneath.",
		Category:     model.CategoryOffice,
		Company:      model.CompanyMarcos,
		FreeShipping: true,
	},
	{
		Name:        "modern bookshelf",
		Price:       price(319.99),
		Description: "Open five shelf unit.",
		Category:    model.CategoryKitchen,
		Company:     model.CompanyLiddy,
		Color:       "#ffb900",
		Inventory:   stock(12),
	},
}
