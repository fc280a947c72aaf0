package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ignite/shop/internal/cache"
	internalcli "github.com/ignite/shop/internal/cli"
	"github.com/ignite/shop/internal/config"
	"github.com/ignite/shop/internal/database"
	"github.com/ignite/shop/internal/handlers"
	"github.com/ignite/shop/internal/models"
	"github.com/ignite/shop/internal/repository"
	"github.com/ignite/shop/internal/services"
	"github.com/ignite/shop/internal/theme"
	"github.com/ignite/shop/web"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
)

var version = "0.1.0"

// openPageStores creates the snapshot stores selected by PAGE_STORE. The
// returned func releases their connections.
func openPageStores(ctx context.Context, pagesConfig *config.PagesConfig) (services.ProductStores, func(), error) {
	var stores services.ProductStores

	switch pagesConfig.Store {
	case config.PageStoreRedis:
		redisConfig, err := config.LoadRedisConfig(os.Getenv)
		if err != nil {
			return stores, nil, fmt.Errorf("invalid Redis configuration: %w", err)
		}

		client := redis.NewClient(&redis.Options{
			Addr:     redisConfig.Addr,
			Password: redisConfig.Password,
			DB:       redisConfig.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return stores, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Printf("Connected to redis at %s", redisConfig.Addr)

		stores.Products = cache.NewRedisSnapshotStore[models.DisplayProduct](client, cache.DefaultRetention)
		stores.Listing = cache.NewRedisSnapshotStore[[]models.DisplayProduct](client, cache.DefaultRetention)
		return stores, func() { client.Close() }, nil

	case config.PageStorePostgres:
		if err := database.Connect(); err != nil {
			return stores, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Println("Connected to database successfully")

		if err := database.RunMigrations(); err != nil {
			database.Close()
			return stores, nil, fmt.Errorf("failed to run database migrations: %w", err)
		}

		repo := repository.NewSnapshotRepository()
		stores.Products = repository.NewSnapshotStore[models.DisplayProduct](repo)
		stores.Listing = repository.NewSnapshotStore[[]models.DisplayProduct](repo)
		return stores, func() { database.Close() }, nil

	default:
		return stores, func() {}, nil
	}
}

// newProductService wires the product service to Stripe and the configured page store
func newProductService(ctx context.Context, pagesConfig *config.PagesConfig) (*services.ProductService, *services.StripeClient, func(), error) {
	stripeConfig, err := config.LoadStripeConfig(os.Getenv)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("missing required Stripe configuration: %w", err)
	}

	stores, closeStores, err := openPageStores(ctx, pagesConfig)
	if err != nil {
		return nil, nil, nil, err
	}

	stripeClient := services.NewStripeClient(stripeConfig)
	return services.NewProductService(stripeClient, pagesConfig, stores), stripeClient, closeStores, nil
}

// buildServerDependencies creates all dependencies needed for the server
func buildServerDependencies(productService *services.ProductService, catalog services.Catalog, pagesConfig *config.PagesConfig) (internalcli.ServerDependencies, error) {
	var deps internalcli.ServerDependencies

	// Load server configuration
	deps.ServerConfig = config.LoadServerConfig()

	renderer, err := handlers.NewRenderer(web.Templates())
	if err != nil {
		return deps, fmt.Errorf("failed to create renderer: %w", err)
	}

	checkoutService := services.NewCheckoutService(catalog, deps.ServerConfig.BaseURL)

	deps.HomeHandler = handlers.NewHomeHandler(renderer, productService)
	deps.ProductHandler = handlers.NewProductHandler(renderer, productService)
	deps.ProductDataHandler = handlers.NewProductDataHandler(productService)
	deps.CheckoutHandler = handlers.NewCheckoutHandler(checkoutService)
	deps.CheckoutFormHandler = handlers.NewCheckoutFormHandler(renderer, checkoutService)
	deps.SuccessHandler = handlers.NewSuccessHandler(renderer, checkoutService)
	deps.CancelHandler = handlers.NewCancelHandler(renderer)
	if pagesConfig.RevalidateToken != "" {
		deps.RevalidateHandler = handlers.NewRevalidateHandler(productService, pagesConfig.RevalidateToken)
	} else {
		log.Println("REVALIDATE_TOKEN not set, on-demand revalidation disabled")
	}
	deps.Static = web.Static()

	return deps, nil
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the storefront web server",
		Action: func(c *cli.Context) error {
			theme.Init()

			pagesConfig, err := config.LoadPagesConfig(os.Getenv)
			if err != nil {
				return err
			}

			productService, stripeClient, closeStores, err := newProductService(c.Context, pagesConfig)
			if err != nil {
				return err
			}
			defer closeStores()
			defer productService.Wait()

			if err := productService.Prebuild(c.Context); err != nil {
				return err
			}

			// Build all server dependencies
			deps, err := buildServerDependencies(productService, stripeClient, pagesConfig)
			if err != nil {
				return err
			}

			return internalcli.RunServe(deps)
		},
	}
}

// BuildCommand returns the build command
func BuildCommand() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Resolve the listing and static product pages into the page store",
		Action: func(c *cli.Context) error {
			pagesConfig, err := config.LoadPagesConfig(os.Getenv)
			if err != nil {
				return err
			}

			productService, _, closeStores, err := newProductService(c.Context, pagesConfig)
			if err != nil {
				return err
			}
			defer closeStores()

			if pagesConfig.Store == config.PageStoreMemory {
				log.Println("Warning: PAGE_STORE is memory, built pages will not outlive this command")
			}

			if err := productService.Prebuild(c.Context); err != nil {
				return err
			}

			log.Printf("Built %d product pages", len(productService.StaticPaths().IDs))
			return nil
		},
	}
}

// MigrateCommand returns the migrate command
func MigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create the Postgres page store tables",
		Action: func(c *cli.Context) error {
			if err := database.Connect(); err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close()

			return database.RunMigrations()
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "shop",
		Usage:   "Ignite Shop storefront",
		Version: version,
		Commands: []*cli.Command{
			ServeCommand(),
			BuildCommand(),
			MigrateCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Fatal(err)
	}
}
