package api

type GenerateTokenRequest struct {
	Email string `json:"email"`
}

type GenerateTokenResponse struct {
	Token string `json:"token"`
}

type UpdateCoinBalanceRequest struct {
	Email      string `json:"email"`
	CoinAmount int64  `json:"coinAmount"`
}

type UpdateCoinBalanceResponse struct {
	Success      bool  `json:"success"`
	NewCoinCount int64 `json:"newCoinCount"`
}

type CreatePaymentIntentRequest struct {
	DollarAmount float64 `json:"dollarAmount"`
}

type CreatePaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type UnlockRecipeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// InsertAck is the acknowledgement shape returned to clients after a
// document insert.
type InsertAck struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type UpsertAck struct {
	Acknowledged  bool   `json:"acknowledged"`
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}
