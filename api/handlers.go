package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func (s *Server) Root(ctx *gin.Context) {
	ctx.String(http.StatusOK, "Hello World!")
}

func (s *Server) ListUsers(ctx *gin.Context) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("listing users failed")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, users)
}

func (s *Server) GetUserByEmail(ctx *gin.Context) {
	email := ctx.Param("email")

	user, err := s.store.GetUserDocByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			ctx.JSON(http.StatusNotFound, errorResponse(ErrUserNotFound))
			return
		}
		log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("fetching user failed")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

func (s *Server) GetCurrentUser(ctx *gin.Context) {
	email := authEmail(ctx)

	user, err := s.store.GetUserDocByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			ctx.JSON(http.StatusNotFound, errorResponse(ErrUserNotFound))
			return
		}
		log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("fetching current user failed")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// RegisterUser inserts the submitted document as-is after checking the email
// is not already registered. Profile fields beyond the typed model are kept.
func (s *Server) RegisterUser(ctx *gin.Context) {
	var doc bson.M
	if err := ctx.ShouldBindJSON(&doc); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(ErrInvalidRequest))
		return
	}

	email, _ := doc["email"].(string)

	_, err := s.store.GetUserDocByEmail(ctx, email)
	if err == nil {
		ctx.JSON(http.StatusConflict, errorResponse(ErrUserAlreadyExists))
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("checking existing user failed")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	id, err := s.store.InsertUser(ctx, doc)
	if err != nil {
		log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("inserting user failed")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, &InsertAck{Acknowledged: true, InsertedID: id.Hex()})
}

func (s *Server) UpsertUser(ctx *gin.Context) {
	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(ErrInvalidRequest))
		return
	}

	var doc bson.M
	if err := ctx.ShouldBindJSON(&doc); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(ErrInvalidRequest))
		return
	}

	result, err := s.store.UpsertUser(ctx, id, doc)
	if err != nil {
		log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("upserting user failed")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ack := &UpsertAck{
		Acknowledged:  true,
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
	}
	if upsertedID, ok := result.UpsertedID.(primitive.ObjectID); ok {
		ack.UpsertedID = upsertedID.Hex()
	}

	ctx.JSON(http.StatusOK, ack)
}

// GenerateToken issues a signed bearer token for any known email. There is
// deliberately no credential check beyond the email lookup: that matches the
// contract existing clients rely on.
func (s *Server) GenerateToken(ctx *gin.Context) {
	var req GenerateTokenRequest
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

	signed, _, err := s.tokenMaker.CreateToken(user.Email, s.configs.TokenDuration)
	if err != nil {
		log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("creating token failed")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, &GenerateTokenResponse{Token: signed})
}
