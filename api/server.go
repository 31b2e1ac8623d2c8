package api

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/afsumeem/recipe-share-backend/config"
	"github.com/afsumeem/recipe-share-backend/tokenmanager/token"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Server struct {
	router     *gin.Engine
	store      Store
	tokenMaker *token.JWTMaker
	configs    *config.Config
	payments   PaymentClient
}

func NewServer(store Store, tokenMaker *token.JWTMaker, configs *config.Config, payments PaymentClient) *Server {
	s := &Server{
		router:     gin.New(),
		store:      store,
		tokenMaker: tokenMaker,
		configs:    configs,
		payments:   payments,
	}

	s.setupRouter()

	return s
}

func (s *Server) setupRouter() {
	s.router.Use(gin.Recovery())
	s.router.Use(logMiddleware)

	// CORS middleware configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	s.router.Use(cors.New(corsConfig))

	auth := authMiddleware(s.tokenMaker)

	s.router.GET("/", s.Root)

	s.router.GET("/users", s.ListUsers)
	s.router.GET("/users/:email", auth, s.GetUserByEmail)
	s.router.GET("/current-user", auth, s.GetCurrentUser)
	s.router.POST("/users", s.RegisterUser)
	s.router.PUT("/users/:id", s.UpsertUser)
	s.router.POST("/generate-token", s.GenerateToken)

	s.router.GET("/recipes", s.ListRecipes)
	s.router.GET("/recipes/:id", s.GetRecipe)
	s.router.POST("/recipes", auth, s.CreateRecipe)
	s.router.POST("/unlock-recipe/:id", auth, s.UnlockRecipe)

	s.router.POST("/create-payment-intent", s.CreatePaymentIntent)
	s.router.POST("/update-coin-balance", auth, s.UpdateCoinBalance)
}

func (s *Server) Start(address string) error {
	return s.router.Run(address)
}

func (s *Server) RouterServeHTTP(recorder *httptest.ResponseRecorder, req *http.Request) {
	s.router.ServeHTTP(recorder, req)
}

var logMiddleware = func(c *gin.Context) {
	start := time.Now()

	// Process request
	c.Next()

	// Log request details
	log.Info().
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", c.Writer.Status()).
		Dur("duration", time.Since(start)).
		Msg("request handled")
}

func errorResponse(err error) gin.H {
	return gin.H{"message": err.Error()}
}
