package main

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/TestimonyAdegoke/montessa-sub000/internal/api"
	"github.com/TestimonyAdegoke/montessa-sub000/internal/auth"
	"github.com/TestimonyAdegoke/montessa-sub000/internal/config"
	"github.com/TestimonyAdegoke/montessa-sub000/internal/database"
	"github.com/TestimonyAdegoke/montessa-sub000/internal/models"
)

func main() {
	if len(os.Args) > 1 {
		runCLI(os.Args[1:])
		return
	}
	startServer()
}

func startServer() {
	db := connectDB()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	configService := config.NewConfigService(db)
	if err := configService.SetupDefaults(); err != nil {
		log.Printf("Warning: failed to seed default config: %v", err)
	}
	cfg := configService.Load()

	router := api.SetupRouter(db, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Montessa server listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func connectDB() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_USER", "montessa"),
			requireEnv("DB_PASSWORD"),
			getEnv("DB_NAME", "montessa"),
			getEnv("DB_SSLMODE", "disable"),
		)
	}

	logLevel := logger.Warn
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("Required environment variable %s is not set", key)
	}
	return v
}

func runCLI(args []string) {
	switch args[0] {
	case "serve":
		startServer()
	case "migrate":
		db := connectDB()
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		fmt.Println("Migrations applied")
	case "seed":
		db := connectDB()
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		password := getEnv("SEED_ADMIN_PASSWORD", "changeme123")
		tenant, err := database.SeedTenant(db, "demo", "Demo School", "admin@demo.school", password)
		if err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		fmt.Printf("Demo tenant ready: %s\n", tenant.Code)
		fmt.Println("Admin login: admin@demo.school")
		fmt.Printf("Public site: /s/%s\n", tenant.Code)
	case "tenant":
		runTenantCommand(args[1:])
	case "user":
		runUserCommand(args[1:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Montessa - school site builder

Usage:
  server                 Start the HTTP server
  server serve           Start the HTTP server
  server migrate         Run database migrations
  server seed            Create the demo tenant with a starter site
  server tenant create --code CODE --name NAME --admin-email EMAIL --admin-password PASSWORD
  server tenant list
  server user create --tenant CODE --email EMAIL --password PASSWORD [--role ROLE]

Environment:
  DATABASE_URL or DB_HOST/DB_PORT/DB_USER/DB_PASSWORD/DB_NAME
  MONTESSA_JWT_SECRET    Token signing secret
  MONTESSA_*             Overrides for stored configuration keys`)
}

func runTenantCommand(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: server tenant [create|list]")
		os.Exit(1)
	}

	db := connectDB()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	switch args[0] {
	case "create":
		code := getFlag(args, "--code")
		name := getFlag(args, "--name")
		email := getFlag(args, "--admin-email")
		password := getFlag(args, "--admin-password")
		if code == "" || name == "" || email == "" || password == "" {
			fmt.Println("Usage: server tenant create --code CODE --name NAME --admin-email EMAIL --admin-password PASSWORD")
			os.Exit(1)
		}
		tenant, err := database.SeedTenant(db, code, name, email, password)
		if err != nil {
			log.Fatalf("Failed to create tenant: %v", err)
		}
		fmt.Printf("Tenant created: %s (%s)\n", tenant.Name, tenant.ID)
		fmt.Printf("Public site: /s/%s\n", tenant.Code)
	case "list":
		var tenants []models.Tenant
		if err := db.Order("created_at").Find(&tenants).Error; err != nil {
			log.Fatalf("Failed to list tenants: %v", err)
		}
		for _, t := range tenants {
			status := "active"
			if !t.IsActive {
				status = "inactive"
			}
			fmt.Printf("%-36s  %-20s  %-30s  %s\n", t.ID, t.Code, t.Name, status)
		}
	default:
		fmt.Printf("Unknown tenant command: %s\n", args[0])
		os.Exit(1)
	}
}

func runUserCommand(args []string) {
	if len(args) == 0 || args[0] != "create" {
		fmt.Println("Usage: server user create --tenant CODE --email EMAIL --password PASSWORD [--role ROLE]")
		os.Exit(1)
	}

	tenantCode := getFlag(args, "--tenant")
	email := getFlag(args, "--email")
	password := getFlag(args, "--password")
	roleCode := getFlag(args, "--role")
	if tenantCode == "" || email == "" || password == "" {
		fmt.Println("Usage: server user create --tenant CODE --email EMAIL --password PASSWORD [--role ROLE]")
		os.Exit(1)
	}
	if roleCode == "" {
		roleCode = "site_editor"
	}

	db := connectDB()

	var tenant models.Tenant
	if err := db.Where("code = ?", tenantCode).First(&tenant).Error; err != nil {
		log.Fatalf("Tenant %s not found", tenantCode)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		TenantID:     tenant.ID,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	var role models.Role
	if err := db.Where("tenant_id = ? AND code = ?", tenant.ID, roleCode).First(&role).Error; err == nil {
		if err := db.Model(&user).Association("Roles").Append(&role); err != nil {
			log.Printf("Warning: failed to assign role %s: %v", roleCode, err)
		}
	} else {
		log.Printf("Warning: role %s not found, user created without roles", roleCode)
	}

	fmt.Printf("User created: %s (%s)\n", user.Email, user.ID)
}

func getFlag(args []string, name string) string {
	for i, a := range args {
		if a == name && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
