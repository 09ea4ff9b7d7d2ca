package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/lboucha/linkearn/cmd"
	"github.com/lboucha/linkearn/internal/api"
	"github.com/lboucha/linkearn/internal/config"
	"github.com/lboucha/linkearn/internal/models"
	"github.com/lboucha/linkearn/internal/monitor"
	"github.com/lboucha/linkearn/internal/repository"
	"github.com/lboucha/linkearn/internal/services"
)

// RunServerCmd représente la commande 'run-server' de Cobra.
// C'est le point d'entrée pour lancer le serveur de l'application.
var RunServerCmd = &cobra.Command{
	Use:   "run-server",
	Short: "Lance le serveur API de raccourcissement d'URLs monétisées.",
	Long: `Cette commande initialise la base de données, configure les APIs
(inscription, connexion, création de liens, redirection comptabilisée),
démarre le moniteur d'URLs, puis lance le serveur HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Charger la configuration
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Échec du chargement de la configuration : %v", err)
		}

		// Initialiser la base de données. TranslateError makes unique-index
		// violations visible as gorm.ErrDuplicatedKey, which the services
		// rely on for alias and email collision handling.
		db, err := gorm.Open(sqlite.Open(cfg.Database.Name), &gorm.Config{TranslateError: true})
		if err != nil {
			log.Fatalf("Échec de la connexion à la base de données : %v", err)
		}

		// Migration automatique des modèles
		if err := db.AutoMigrate(&models.User{}, &models.Link{}); err != nil {
			log.Fatalf("Échec de la migration de la base de données : %v", err)
		}

		// Initialiser les repositories
		userRepo := repository.NewUserRepository(db)
		linkRepo := repository.NewLinkRepository(db)
		log.Println("Repositories initialisés.")

		// Initialiser les services métiers
		authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenExpiryDays, cfg.Auth.AdminEmail)
		linkService := services.NewLinkService(linkRepo)
		redirectService := services.NewRedirectService(linkRepo, userRepo)
		log.Println("Services métiers initialisés.")

		// Initialiser et lancer le moniteur d'URLs.
		monitorInterval := time.Duration(cfg.Monitor.IntervalMinutes) * time.Minute
		urlMonitor := monitor.NewUrlMonitor(linkRepo, monitorInterval)
		go urlMonitor.Start()
		log.Printf("Moniteur d'URLs démarré avec un intervalle de %v.", monitorInterval)

		// Configurer le routeur Gin et les handlers API.
		router := gin.Default()
		api.SetupRoutes(router, authService, linkService, redirectService, userRepo, cfg.Server.BaseURL)
		log.Println("Routes API configurées.")

		// Créer le serveur HTTP Gin
		serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
		srv := &http.Server{
			Addr:    serverAddr,
			Handler: router,
		}

		// Démarrer le serveur Gin dans une goroutine pour ne pas bloquer.
		go func() {
			log.Printf("Démarrage du serveur sur %s", serverAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Échec du démarrage du serveur : %v", err)
			}
		}()

		// Gérer l'arrêt propre du serveur (graceful shutdown).
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		<-quit
		log.Println("Signal d'arrêt reçu. Arrêt du serveur...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Arrêt forcé du serveur : %v", err)
		}

		log.Println("Serveur arrêté proprement.")
	},
}

func init() {
	cmd.RootCmd.AddCommand(RunServerCmd)
}
