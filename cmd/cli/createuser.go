package cli

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/lboucha/linkearn/cmd"
	"github.com/lboucha/linkearn/internal/config"
	apperrors "github.com/lboucha/linkearn/internal/errors"
	"github.com/lboucha/linkearn/internal/models"
	"github.com/lboucha/linkearn/internal/repository"
	"github.com/lboucha/linkearn/internal/services"
)

var (
	emailFlag    string
	passwordFlag string
)

// CreateUserCmd représente la commande 'create-user'
var CreateUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Crée un compte utilisateur depuis la ligne de commande.",
	Long: `Cette commande enregistre un utilisateur sans passer par l'API HTTP.
L'adresse configurée dans auth.admin_email reçoit automatiquement le rôle admin.

Exemple:
  linkearn create-user --email="alice@example.com" --password="secret"`,
	Run: func(cmd *cobra.Command, args []string) {
		if emailFlag == "" || passwordFlag == "" {
			fmt.Println("Error: --email and --password flags are required")
			os.Exit(1)
		}

		// Charger la configuration
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		db, err := gorm.Open(sqlite.Open(cfg.Database.Name), &gorm.Config{TranslateError: true})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("FATAL: Échec de l'obtention de la base de données SQL sous-jacente: %v", err)
		}
		defer sqlDB.Close()

		// The users table must exist before inserting
		if err := db.AutoMigrate(&models.User{}, &models.Link{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}

		userRepo := repository.NewUserRepository(db)
		authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenExpiryDays, cfg.Auth.AdminEmail)

		user, _, err := authService.Register(emailFlag, passwordFlag)
		if err != nil {
			if errors.Is(err, apperrors.ErrEmailTaken) {
				fmt.Printf("Error: a user with email '%s' already exists\n", emailFlag)
				os.Exit(1)
			}
			log.Fatalf("Failed to create user: %v", err)
		}

		fmt.Printf("Utilisateur créé avec succès:\n")
		fmt.Printf("Email: %s\n", user.Email)
		fmt.Printf("Admin: %t\n", user.IsAdmin)
	},
}

func init() {
	CreateUserCmd.Flags().StringVar(&emailFlag, "email", "", "Email address of the new user")
	CreateUserCmd.Flags().StringVar(&passwordFlag, "password", "", "Password of the new user")

	CreateUserCmd.MarkFlagRequired("email")
	CreateUserCmd.MarkFlagRequired("password")

	cmd.RootCmd.AddCommand(CreateUserCmd)
}
