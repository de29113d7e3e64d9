// Package middlewarectx содержит HTTP middleware аутентификации клиентов API
// и ограничения частоты запросов.
//
// ClientAuth проверяет заголовки Client-Id и Client-Secret и при успехе кладёт
// идентификатор клиента в контекст запроса. При ошибке возвращает 401 с
// именованной ошибкой Unauthorized.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pis-contract/internal/http/response"
	"github.com/magabrotheeeer/pis-contract/internal/lib/sl"
	"github.com/magabrotheeeer/pis-contract/internal/services/client"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// ClientID ключ идентификатора аутентифицированного клиента в контексте.
const ClientID Key = "client_id"

// Заголовки учётных данных клиента.
const (
	HeaderClientID     = "Client-Id"
	HeaderClientSecret = "Client-Secret"
)

// Authenticator проверяет учётные данные клиента.
type Authenticator interface {
	Authenticate(ctx context.Context, clientID, secret string) error
}

// ClientAuth возвращает middleware проверки учётных данных клиента.
func ClientAuth(auth Authenticator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.ClientAuth"
			clientID := r.Header.Get(HeaderClientID)
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				sl.Client(clientID),
			)

			err := auth.Authenticate(r.Context(), clientID, r.Header.Get(HeaderClientSecret))
			if errors.Is(err, client.ErrUnauthorized) {
				log.Info("client rejected")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(response.ErrNameUnauthorized, "invalid client credentials"))
				return
			}
			if err != nil {
				log.Error("failed to authenticate client", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error(response.ErrNameInternal, "internal error"))
				return
			}

			ctx := context.WithValue(r.Context(), ClientID, clientID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientIDFrom возвращает идентификатор клиента из контекста.
func ClientIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ClientID).(string)
	return id, ok && id != ""
}
