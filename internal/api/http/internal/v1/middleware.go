package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/taskhive/backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	authorizationHeader = "Authorization"
	userCtx             = "user"
)

// userIdentityMiddleware resolves the bearer token to a live user record and
// stores it in the request context. Deleted users fail here even with a
// valid token.
func (h *Handler) userIdentityMiddleware(c *gin.Context) {
	userID, err := h.parseAuthHeader(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	user, err := h.services.Users.GetOneByID(c.Request.Context(), userID)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, "invalid access token")
		return
	}

	c.Set(userCtx, user)
}

func (h *Handler) parseAuthHeader(c *gin.Context) (uuid.UUID, error) {
	header := c.GetHeader(authorizationHeader)
	if header == "" {
		return uuid.Nil, errors.New("empty authorization header")
	}

	headerParts := strings.Split(header, " ")
	if len(headerParts) != 2 || headerParts[0] != "Bearer" {
		return uuid.Nil, errors.New("invalid authorization header")
	}
	if headerParts[1] == "" {
		return uuid.Nil, errors.New("token is empty")
	}

	subject, err := h.tokenManager.Parse(headerParts[1])
	if err != nil {
		return uuid.Nil, errors.New("invalid access token")
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, errors.New("invalid access token subject")
	}

	return userID, nil
}

func (h *Handler) currentUser(c *gin.Context) (*domain.User, error) {
	value, ok := c.Get(userCtx)
	if !ok {
		return nil, errors.New("user not found in request context")
	}

	user, ok := value.(*domain.User)
	if !ok {
		return nil, errors.New("user in request context has wrong type")
	}

	return user, nil
}

type permission func(user *domain.User) error

func isAdmin(user *domain.User) error {
	if !user.IsAdmin() {
		return errors.New("admin account required")
	}
	return nil
}

func isTasksmith(user *domain.User) error {
	if !user.IsTasksmith() {
		return errors.New("tasksmith account required")
	}
	return nil
}

func isVerified(user *domain.User) error {
	if !user.IsVerified {
		return errors.New("verified account required")
	}
	return nil
}

// requirePermissions checks every predicate against the authenticated user,
// answering 403 on the first one that fails.
func (h *Handler) requirePermissions(permissions ...permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := h.currentUser(c)
		if err != nil {
			errorResponse(c, http.StatusUnauthorized, err.Error())
			return
		}

		for _, perm := range permissions {
			if err := perm(user); err != nil {
				errorResponse(c, http.StatusForbidden, err.Error())
				return
			}
		}

		c.Next()
	}
}
