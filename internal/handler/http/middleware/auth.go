package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// Principal is the caller identified by the bearer token.
type Principal struct {
	UserID     string
	EmployeeID string
	Role       jwt.Role
}

// CanAccess reports whether the caller may read or act on employeeID's records.
func (p Principal) CanAccess(employeeID string) bool {
	if p.Role.CanManage() {
		return true
	}
	return p.EmployeeID != "" && p.EmployeeID == employeeID
}

type principalKey struct{}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// AuthRequired rejects requests without a valid access token and stores the
// caller's Principal in the request context. It runs after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		if token == nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		if tokenType, ok := claims["type"].(string); !ok || tokenType != "access" {
			response.Unauthorized(w, "Invalid token")
			return
		}

		role, _ := claims["role"].(string)
		userID, _ := claims["user_id"].(string)
		employeeID, _ := claims["employee_id"].(string)

		ctx := WithPrincipal(r.Context(), Principal{
			UserID:     userID,
			EmployeeID: employeeID,
			Role:       jwt.Role(role),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
