package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// unlockCost is what a non-creator pays to unlock a recipe; the creator is
// credited unlockReward of it.
const (
	unlockCost   = 10
	unlockReward = 1
)

func (s *Server) ListRecipes(ctx *gin.Context) {
	recipes, err := s.store.ListRecipeSummaries(ctx)
	if err != nil {
		log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("listing recipes failed")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, recipes)
}

func (s *Server) GetRecipe(ctx *gin.Context) {
	// A malformed id cannot name a recipe, so it reads as not found.
	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, errorResponse(ErrRecipeNotFound))
		return
	}

	recipe, err := s.store.GetRecipeDocByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			ctx.JSON(http.StatusNotFound, errorResponse(ErrRecipeNotFound))
			return
		}
		log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("fetching recipe failed")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, recipe)
}

// CreateRecipe inserts the submitted document as-is and credits the creator
// one coin. A creator email with no matching user skips the credit without
// failing the request.
func (s *Server) CreateRecipe(ctx *gin.Context) {
	var doc bson.M
	if err := ctx.ShouldBindJSON(&doc); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(ErrInvalidRequest))
		return
	}

	creatorEmail, _ := doc["creatorEmail"].(string)

	id, err := s.store.InsertRecipe(ctx, doc)
	if err != nil {
		log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("inserting recipe failed")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrRecipeInsertFailed))
		return
	}

	if !id.IsZero() {
		creator, err := s.store.GetUserByEmail(ctx, creatorEmail)
		if err != nil {
			log.Warn().Err(err).Str("creatorEmail", creatorEmail).Msg("creation reward skipped, creator not found")
		} else if err := s.store.SetUserCoin(ctx, creatorEmail, creator.Coin+unlockReward); err != nil {
			log.Error().Err(err).Str("creatorEmail", creatorEmail).Msg("creation reward write failed")
		}
	}

	ctx.JSON(http.StatusOK, &InsertAck{Acknowledged: true, InsertedID: id.Hex()})
}

// UnlockRecipe grants the authenticated user access to a recipe, applying
// the coin transfer. The creator unlocks their own recipe for free and
// without side effects. The four balance/recipe updates run as independent
// writes by default; setting UNLOCK_TRANSACTIONAL wraps them in a session
// transaction instead.
func (s *Server) UnlockRecipe(ctx *gin.Context) {
	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, &UnlockRecipeResponse{Success: false, Message: ErrRecipeNotFound.Error()})
		return
	}

	recipe, err := s.store.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			ctx.JSON(http.StatusNotFound, &UnlockRecipeResponse{Success: false, Message: ErrRecipeNotFound.Error()})
			return
		}
		log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("fetching recipe failed")
		ctx.JSON(http.StatusInternalServerError, &UnlockRecipeResponse{Success: false, Message: ErrInternalServer.Error()})
		return
	}

	email := authEmail(ctx)

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			ctx.JSON(http.StatusNotFound, &UnlockRecipeResponse{Success: false, Message: ErrUserNotFound.Error()})
			return
		}
		log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("fetching user failed")
		ctx.JSON(http.StatusInternalServerError, &UnlockRecipeResponse{Success: false, Message: ErrInternalServer.Error()})
		return
	}

	// The creator of the recipe pays nothing and leaves no trace: no
	// purchase-set entry, no watch-count bump.
	if user.Email == recipe.CreatorEmail {
		ctx.JSON(http.StatusOK, &UnlockRecipeResponse{Success: true, Message: "No coin deduction needed"})
		return
	}

	if user.Coin < unlockCost {
		ctx.JSON(http.StatusForbidden, &UnlockRecipeResponse{Success: false, Message: ErrInsufficientCoins.Error()})
		return
	}

	apply := func(c context.Context) error {
		if err := s.store.AdjustUserCoin(c, email, -unlockCost); err != nil {
			return err
		}
		if err := s.store.AdjustUserCoin(c, recipe.CreatorEmail, unlockReward); err != nil {
			return err
		}
		if err := s.store.AddRecipePurchaser(c, id, email); err != nil {
			return err
		}
		return s.store.IncrementWatchCount(c, id)
	}

	if s.configs.UnlockTransactional {
		err = s.store.WithTransaction(ctx, apply)
	} else {
		err = apply(ctx)
	}
	if err != nil {
		log.Error().Err(err).Str("recipe", id.Hex()).Str("email", email).Msg("unlock sequence failed")
		ctx.JSON(http.StatusInternalServerError, &UnlockRecipeResponse{Success: false, Message: ErrInternalServer.Error()})
		return
	}

	ctx.JSON(http.StatusOK, &UnlockRecipeResponse{Success: true, Message: "Recipe unlocked successfully"})
}

// UpdateCoinBalance applies a signed delta to a user's balance. There is no
// floor at zero; administrative adjustments may drive a balance negative.
func (s *Server) UpdateCoinBalance(ctx *gin.Context) {
	var req UpdateCoinBalanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(ErrInvalidRequest))
		return
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			ctx.JSON(http.StatusNotFound, errorResponse(ErrUserNotFound))
			return
		}
		log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("fetching user failed")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	newCoinCount := user.Coin + req.CoinAmount
	if err := s.store.SetUserCoin(ctx, req.Email, newCoinCount); err != nil {
		log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("updating coin balance failed")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, &UpdateCoinBalanceResponse{Success: true, NewCoinCount: newCoinCount})
}
