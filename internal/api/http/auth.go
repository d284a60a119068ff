package http

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmarkhas/planning-poker/internal/domain"
	"github.com/dmarkhas/planning-poker/internal/service"
)

const (
	sessionUserKey = "user_id"
	contextUserKey = "user"
)

// RequireUser resolves the acting user from the cookie session and aborts
// with 401 when there is none. Handlers behind it read the user via
// currentUser.
func RequireUser(users service.UserInteractor) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		session := sessions.Default(ctx)

		raw, ok := session.Get(sessionUserKey).(string)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}

		user, err := users.GetUser(ctx.Request.Context(), userID)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}

		ctx.Set(contextUserKey, user)
		ctx.Next()
	}
}

func currentUser(ctx *gin.Context) *domain.User {
	user, _ := ctx.MustGet(contextUserKey).(*domain.User)
	return user
}
