package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/yatube/yatube-be/db"
	"github.com/yatube/yatube-be/model"
	"github.com/yatube/yatube-be/util"
)

const (
	TOKEN_KEY = "authToken"
	USER_KEY  = "user"
)

// TokenVerifier is the part of the firebase auth client the middleware uses.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	VerifySessionCookie(ctx context.Context, sessionCookie string) (*auth.Token, error)
}

type AuthConfig struct {
	// SessionOptional lets requests without a verifiable session through
	SessionOptional bool
	// AccountOptional lets sessions without a user profile through
	AccountOptional bool
	// RedirectToLogin sends unauthenticated browsers to the login page
	// instead of failing with a status code
	RedirectToLogin bool
}

func Auth(userDB db.UserDatabase, authClient TokenVerifier, config *AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := verifyRequest(c, authClient)
		if token == nil {
			if config.SessionOptional {
				return
			}
			if config.RedirectToLogin {
				redirectToLogin(c)
				return
			}
			util.HandleHTTPErrorRes(c, &util.HTTPError{
				Status:  http.StatusUnauthorized,
				Message: "authentication required",
			})
			c.Abort()
			return
		}
		c.Set(TOKEN_KEY, token)

		user, err := userDB.GetUser(c.Request.Context(), token.UID)
		if err != nil {
			util.HandleHTTPErrorRes(c, util.BuildDbHTTPErr(err))
			c.Abort()
			return
		}
		if user == nil {
			if config.AccountOptional {
				return
			}
			if config.RedirectToLogin {
				redirectToLogin(c)
				return
			}
			util.HandleHTTPErrorRes(c, &util.HTTPError{
				Status:  http.StatusForbidden,
				Message: "must have a user profile",
			})
			c.Abort()
			return
		}
		c.Set(USER_KEY, user)
	}
}

func verifyRequest(c *gin.Context, authClient TokenVerifier) *auth.Token {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		token, err := authClient.VerifyIDToken(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return nil
		}
		return token
	}
	cookie, err := c.Cookie("session")
	if err != nil {
		return nil
	}
	token, err := authClient.VerifySessionCookie(c.Request.Context(), cookie)
	if err != nil {
		return nil
	}
	return token
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/auth/login?next="+url.QueryEscape(c.Request.RequestURI))
	c.Abort()
}

func MustGetToken(c *gin.Context) *auth.Token {
	return c.MustGet(TOKEN_KEY).(*auth.Token)
}

// GetUserMaybe returns nil when the request carries no user profile.
func GetUserMaybe(c *gin.Context) *model.User {
	user, ok := c.Get(USER_KEY)
	if !ok {
		return nil
	}
	return user.(*model.User)
}

func MustGetUser(c *gin.Context) *model.User {
	return c.MustGet(USER_KEY).(*model.User)
}
