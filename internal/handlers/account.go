package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/catalog-backend/internal/services"
)

type AccountHandler struct {
	accountService      services.AccountService
	subscriptionService services.SubscriptionService
}

func NewAccountHandler(accountService services.AccountService, subscriptionService services.SubscriptionService) *AccountHandler {
	return &AccountHandler{
		accountService:      accountService,
		subscriptionService: subscriptionService,
	}
}

func (ah *AccountHandler) GetAll(c *gin.Context) {
	accounts, err := ah.accountService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (ah *AccountHandler) GetByID(c *gin.Context) {
	accountID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	account, err := ah.accountService.GetByID(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (ah *AccountHandler) Create(c *gin.Context) {
	var input services.CreateAccountInput
	if !bindJSON(c, &input) {
		return
	}
	account, err := ah.accountService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (ah *AccountHandler) Update(c *gin.Context) {
	accountID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input services.UpdateAccountInput
	if !bindJSON(c, &input) {
		return
	}
	input.ID = accountID
	account, err := ah.accountService.Update(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (ah *AccountHandler) Delete(c *gin.Context) {
	accountID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	account, err := ah.accountService.Delete(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (ah *AccountHandler) Subscribe(c *gin.Context) {
	accountID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	account, err := ah.subscriptionService.Subscribe(c.Request.Context(), accountID, productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (ah *AccountHandler) Unsubscribe(c *gin.Context) {
	accountID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	account, err := ah.subscriptionService.Unsubscribe(c.Request.Context(), accountID, productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}
