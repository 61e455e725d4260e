package login

import (
	"errors"
	"net/http"

	"github.com/stringfold/ally/pkg/logger"
	"github.com/stringfold/ally/pkg/oauth2"
	"github.com/stringfold/ally/pkg/reddit"

	"github.com/gin-gonic/gin"
)

// RedirectScopes are requested by the example login link.
var RedirectScopes = []string{"identify", "guilds"}

const indexPage = `<!DOCTYPE html>
<html>
<head><title>Login</title></head>
<body><a href="/reddit/redirect">Login with Reddit</a></body>
</html>`

// Handler serves the Reddit login routes.
type Handler struct {
	provider *reddit.Provider
	metrics  *oauth2.Metrics
	logger   logger.Logger
}

func NewHandler(provider *reddit.Provider, metrics *oauth2.Metrics, log logger.Logger) *Handler {
	return &Handler{
		provider: provider,
		metrics:  metrics,
		logger:   log,
	}
}

// IndexHandler serves a page linking to the redirect route.
func (h *Handler) IndexHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexPage))
	}
}

// RedirectHandler sends the user to the Reddit consent screen.
func (h *Handler) RedirectHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		err := h.provider.Driver(c.Writer, c.Request).Redirect(func(req *oauth2.RedirectRequest) {
			req.Scopes(RedirectScopes...)
		})
		if err != nil {
			h.logger.Error(c.Request.Context(), "reddit redirect failed",
				logger.Field{Key: "error", Value: err.Error()})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to start login"})
		}
	}
}

// CallbackHandler finishes the login and replies with the normalized user.
func (h *Handler) CallbackHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		d := h.provider.Driver(c.Writer, c.Request)

		outcome := d.Outcome()
		switch outcome {
		case oauth2.OutcomeAccessDenied:
			h.metrics.RecordCallback(reddit.ProviderName, outcome)
			c.String(http.StatusForbidden, "Access was denied")
			return
		case oauth2.OutcomeStateMisMatch:
			h.metrics.RecordCallback(reddit.ProviderName, outcome)
			c.String(http.StatusBadRequest, "Request expired. Retry again")
			return
		case oauth2.OutcomeError:
			h.metrics.RecordCallback(reddit.ProviderName, outcome)
			c.String(http.StatusBadRequest, "%s", d.GetError())
			return
		}

		user, err := d.User(ctx, nil)
		if err != nil {
			h.metrics.RecordCallback(reddit.ProviderName, oauth2.OutcomeError)
			h.logger.Error(ctx, "reddit login failed", logger.Field{Key: "error", Value: err.Error()})
			c.JSON(http.StatusBadGateway, gin.H{"error": "unable to fetch reddit user"})
			return
		}

		h.metrics.RecordCallback(reddit.ProviderName, oauth2.OutcomeOK)
		c.JSON(http.StatusOK, user)
	}
}

// LogoutHandler revokes the access token posted in the "token" form field.
func (h *Handler) LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.PostForm("token")
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
			return
		}

		ctx := c.Request.Context()
		if err := h.provider.RevokeToken(ctx, token, "access_token"); err != nil {
			status := http.StatusBadGateway
			// 401 means Reddit rejected our client credentials.
			var respErr *oauth2.ResponseError
			if errors.As(err, &respErr) && respErr.StatusCode == http.StatusUnauthorized {
				status = http.StatusInternalServerError
			}
			h.logger.Error(ctx, "reddit token revocation failed", logger.Field{Key: "error", Value: err.Error()})
			c.JSON(status, gin.H{"error": "unable to revoke token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}
