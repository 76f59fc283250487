package server

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	commonhttp "github.com/sngm3741/granite-company/api/internal/interfaces/http/common"
)

type authClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// authMiddleware は Authorization ヘッダーから JWT を検証し、認証済みユーザーをコンテキストへ詰める。
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Authorization ヘッダーがありません"})
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Bearer トークンを指定してください"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "アクセストークンが空です"})
			return
		}

		claims, err := s.parseAuthToken(tokenString)
		if err != nil {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}

		user := commonhttp.AuthenticatedUser{
			ID:    claims.Subject,
			Name:  claims.Name,
			Email: claims.Email,
		}

		ctx := commonhttp.ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// parseAuthToken は HS256 署名と Issuer/Audience/Subject を検証する。
func (s *Server) parseAuthToken(tokenString string) (*authClaims, error) {
	if len(s.jwt.Secret) == 0 {
		return nil, fmt.Errorf("認証設定が構成されていません")
	}

	opts := []jwt.ParserOption{
		jwt.WithLeeway(30 * time.Second),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if s.jwt.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.jwt.Issuer))
	}
	if s.jwtAudience != "" {
		opts = append(opts, jwt.WithAudience(s.jwtAudience))
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.jwt.Secret, nil
	}, opts...)
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("アクセストークンが無効です")
	}
	return claims, nil
}

// requireAdmin は ADMIN_USER_IDS に含まれるユーザー以外を 403 で拒否する。
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := commonhttp.UserFromContext(r.Context())
		if !ok {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "認証が必要です"})
			return
		}
		if _, allowed := s.adminUserIDs[user.ID]; !allowed {
			s.writeJSON(w, http.StatusForbidden, map[string]string{"error": "管理者権限がありません"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// originAllowed は指定された Origin が許可リストに含まれるか判定する。
func originAllowed(origin string, allowed []string) bool {
	return len(allowed) == 0 || slices.Contains(allowed, origin)
}
