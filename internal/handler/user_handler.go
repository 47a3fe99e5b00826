package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/auxfresh/receipt-generator/internal/cqrs"
	"github.com/auxfresh/receipt-generator/internal/middleware"
	"github.com/auxfresh/receipt-generator/internal/models"
)

// UserQuerier exposes profile reads.
type UserQuerier interface {
	GetUser(cqrs.GetUserQuery) (*models.UserView, error)
}

type UserHandler struct {
	queries UserQuerier
}

func NewUserHandler(queries UserQuerier) *UserHandler {
	return &UserHandler{queries: queries}
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.Param("userId")
	requesterID, _ := middleware.GetUserID(c)

	view, err := h.queries.GetUser(cqrs.GetUserQuery{UserID: userID, RequestingUserID: requesterID})
	if err != nil {
		switch err.Error() {
		case "user not found":
			middleware.RespondWithError(c, http.StatusNotFound, "User not found")
		case "forbidden":
			middleware.RespondWithError(c, http.StatusForbidden, "You can only access your own profile")
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to load user")
		}
		return
	}
	c.JSON(http.StatusOK, view)
}
