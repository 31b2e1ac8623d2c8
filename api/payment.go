package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// CreatePaymentIntent converts the dollar amount to integer cents and
// delegates to the payment gateway.
func (s *Server) CreatePaymentIntent(ctx *gin.Context) {
	var req CreatePaymentIntentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(ErrInvalidRequest))
		return
	}

	amount := int64(req.DollarAmount * 100)

	clientSecret, err := s.payments.CreatePaymentIntent(ctx, amount)
	if err != nil {
		log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("creating payment intent failed")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, &CreatePaymentIntentResponse{ClientSecret: clientSecret})
}
