package api

import (
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/lboucha/linkearn/internal/errors"
	"github.com/lboucha/linkearn/internal/models"
	"github.com/lboucha/linkearn/internal/repository"
	"github.com/lboucha/linkearn/internal/services"
)

// SetupRoutes configures all Gin API routes and injects necessary dependencies
// Parameters:
//   - router: Gin engine instance to configure routes on
//   - authService: registration, login and token verification
//   - linkService: link creation and listing
//   - redirectService: short code resolution and click accounting
//   - userRepo: user lookups for the admin gate and listing
//   - baseURL: base URL used when building full short URLs
func SetupRoutes(router *gin.Engine, authService *services.AuthService, linkService *services.LinkService,
	redirectService *services.RedirectService, userRepo repository.UserRepository, baseURL string) {

	// Health Check Route - used for monitoring service availability
	router.GET("/health", HealthCheckHandler)

	api := router.Group("/api")
	{
		api.POST("/register", RegisterHandler(authService))
		api.POST("/login", LoginHandler(authService))

		// Protected routes require a valid bearer token
		protected := api.Group("", AuthRequired(authService))
		{
			protected.POST("/shorten", ShortenHandler(linkService, baseURL))
			protected.GET("/urls", ListURLsHandler(linkService))

			admin := protected.Group("/admin", AdminRequired(userRepo))
			{
				admin.GET("/users", AdminListUsersHandler(userRepo))
			}
		}
	}

	// Redirection Route - handles short URL visits at root level
	router.GET("/:code", RedirectHandler(redirectService))
}

// HealthCheckHandler handles the /health route to verify service status
func HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CredentialsRequest is the JSON request body shared by register and login
type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// userView is the user representation returned by register and login,
// matching the public token response shape (no hash, no internal fields)
type userView struct {
	Email    string  `json:"email"`
	Earnings float64 `json:"earnings"`
	IsAdmin  bool    `json:"isAdmin"`
}

// RegisterHandler handles new account creation.
// A duplicate email fails with 400; success returns a signed bearer token so
// the client is logged in immediately after registering.
func RegisterHandler(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CredentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		user, token, err := authService.Register(req.Email, req.Password)
		if err != nil {
			if errors.Is(err, apperrors.ErrEmailTaken) {
				c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.ErrEmailTaken.Error()})
				return
			}
			log.Printf("Error registering user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"token":   token,
			"user":    userView{Email: user.Email, Earnings: user.Earnings, IsAdmin: user.IsAdmin},
		})
	}
}

// LoginHandler authenticates an existing account and returns a fresh token.
// Unknown email and wrong password produce the same 400 response.
func LoginHandler(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CredentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		user, token, err := authService.Login(req.Email, req.Password)
		if err != nil {
			if errors.Is(err, apperrors.ErrInvalidCredentials) {
				c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.ErrInvalidCredentials.Error()})
				return
			}
			log.Printf("Error logging in user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"token":   token,
			"user":    userView{Email: user.Email, Earnings: user.Earnings, IsAdmin: user.IsAdmin},
		})
	}
}

// ShortenRequest is the JSON request body for creating a short link
type ShortenRequest struct {
	LongURL     string `json:"longUrl" binding:"required,url"`
	CustomAlias string `json:"customAlias"`
}

// ShortenHandler creates a shortened link owned by the authenticated user
func ShortenHandler(linkService *services.LinkService, baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ShortenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		userID := c.GetUint(contextUserIDKey)

		link, err := linkService.CreateLink(req.LongURL, req.CustomAlias, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrAliasTaken) {
				c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.ErrAliasTaken.Error()})
				return
			}
			log.Printf("Error creating link: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"shortUrl":  baseURL + "/" + link.ShortCode,
			"shortCode": link.ShortCode,
			"earnings":  "$10 CPM for USA traffic",
		})
	}
}

// ListURLsHandler returns the authenticated user's links, newest first
func ListURLsHandler(linkService *services.LinkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(contextUserIDKey)

		links, err := linkService.GetLinksByUser(userID)
		if err != nil {
			log.Printf("Error listing links for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if links == nil {
			links = []models.Link{}
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "urls": links})
	}
}

// AdminListUsersHandler returns every user account minus the password hash.
// Only reachable behind AuthRequired + AdminRequired.
func AdminListUsersHandler(userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := userRepo.GetAllUsers()
		if err != nil {
			log.Printf("Error listing users: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if users == nil {
			users = []models.User{}
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
	}
}

// redirectPage is the interstitial served on short link visits. It shows a
// countdown and an ad slot, then forwards the visitor to the destination.
const redirectPage = `<!DOCTYPE html>
<html>
<head>
    <title>Redirecting...</title>
    <style>
        body { font-family: Arial; text-align: center; padding: 50px; }
        .countdown { font-size: 48px; color: #007bff; }
        .ad-container { margin: 30px auto; max-width: 728px; height: 90px; }
    </style>
</head>
<body>
    <h2>Please wait while we show an advertisement...</h2>
    <div class="countdown" id="countdown">5</div>

    <div class="ad-container">
        <div id="ad">Advertisement loading...</div>
    </div>

    <script>
        let seconds = 5;
        const timer = setInterval(() => {
            seconds--;
            document.getElementById('countdown').innerHTML = seconds;

            if (seconds <= 0) {
                clearInterval(timer);
                window.location.href = {{.}};
            }
        }, 1000);
    </script>
</body>
</html>
`

var redirectPageTmpl = template.Must(template.New("redirect").Parse(redirectPage))

// RedirectHandler handles short link visits. It resolves the code, lets the
// redirect service account the click at the visitor's country rate, and serves
// the interstitial page embedding the destination URL.
// The country signal comes from the CF-IPCountry header set by the edge proxy.
func RedirectHandler(redirectService *services.RedirectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")

		destination, err := redirectService.ResolveAndAccount(code, c.GetHeader("CF-IPCountry"))
		if err != nil {
			if errors.Is(err, apperrors.ErrShortCodeNotFound) {
				c.String(http.StatusNotFound, "URL not found")
				return
			}
			log.Printf("Error resolving short code %s: %v", code, err)
			c.String(http.StatusInternalServerError, "Server error")
			return
		}

		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusOK)
		if err := redirectPageTmpl.Execute(c.Writer, destination); err != nil {
			log.Printf("Error rendering redirect page for %s: %v", code, err)
		}
	}
}
