package mockapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"

	"nexus/internal/domain"
)

const ctxEmail = "email"

// bcrypt only reads the first 72 bytes.
const maxPasswordBytes = 72

var errBadToken = errors.New("invalid token")

func truncatePassword(p string) []byte {
	b := []byte(p)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// issueToken signs an HS256 token for email carrying the current revocation
// generation.
func (s *Server) issueToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"sub": email,
		"exp": s.now().Add(s.cfg.TokenTTL).Unix(),
		"gen": s.generation.Load(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
}

// verifyToken returns the subject of a valid, unexpired, unrevoked token.
func (s *Server) verifyToken(raw string) (string, error) {
	parser := jwt.Parser{SkipClaimsValidation: true}
	tok, err := parser.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return "", errBadToken
	}
	if !claims.VerifyExpiresAt(s.now().Unix(), true) {
		return "", errBadToken
	}
	if gen, _ := claims["gen"].(float64); int64(gen) != s.generation.Load() {
		return "", errBadToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errBadToken
	}
	return sub, nil
}

// authRequired rejects requests without a valid bearer token. A missing
// header answers 403, an unusable token 401.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			detail(c, http.StatusForbidden, "Not authenticated")
			return
		}
		email, err := s.verifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			s.log.Debug("token rejected", "error", err)
			c.Header("WWW-Authenticate", "Bearer")
			detail(c, http.StatusUnauthorized, "Invalid authentication credentials")
			return
		}
		if _, ok := s.store.user(email); !ok {
			detail(c, http.StatusNotFound, "User not found")
			return
		}
		c.Set(ctxEmail, email)
		c.Next()
	}
}

func currentEmail(c *gin.Context) string { return c.GetString(ctxEmail) }

// decodeBody decodes a JSON body, answering 422 when it is malformed.
func decodeBody(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": []fieldError{{
			Loc: []string{"body"}, Msg: err.Error(), Type: "value_error.jsondecode",
		}}})
		return false
	}
	return true
}

// requireFields reports blank body fields as a 422 list. fields alternates
// names and values.
func requireFields(c *gin.Context, fields ...string) bool {
	var errs []fieldError
	for i := 0; i+1 < len(fields); i += 2 {
		if strings.TrimSpace(fields[i+1]) == "" {
			errs = append(errs, fieldError{Loc: []string{"body", fields[i]}, Msg: "field required", Type: "value_error.missing"})
		}
	}
	if len(errs) > 0 {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": errs})
		return false
	}
	return true
}

func (s *Server) register(c *gin.Context) {
	var req domain.RegisterRequest
	if !decodeBody(c, &req) {
		return
	}
	if !requireFields(c, "email", req.Email, "password", req.Password, "full_name", req.FullName) {
		return
	}
	if !strings.Contains(req.Email, "@") {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": []fieldError{{
			Loc: []string{"body", "email"}, Msg: "value is not a valid email address", Type: "value_error.email",
		}}})
		return
	}

	hash, err := bcrypt.GenerateFromPassword(truncatePassword(req.Password), s.cfg.BcryptCost)
	if err != nil {
		s.log.Error("hash password", "error", err)
		detail(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	user, err := s.store.createUser(req, hash, s.now().UTC())
	if errors.Is(err, errEmailTaken) {
		detail(c, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != nil {
		detail(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	token, err := s.issueToken(user.Email)
	if err != nil {
		s.log.Error("sign token", "error", err)
		detail(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	s.log.Info("user registered", "user_id", user.ID)
	c.JSON(http.StatusOK, domain.AuthResponse{
		Message:     "User created successfully",
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      user.ID,
	})
}

func (s *Server) login(c *gin.Context) {
	var req domain.LoginRequest
	if !decodeBody(c, &req) {
		return
	}
	if !requireFields(c, "email", req.Email, "password", req.Password) {
		return
	}

	u, ok := s.store.user(req.Email)
	if !ok || bcrypt.CompareHashAndPassword(u.hash, truncatePassword(req.Password)) != nil {
		c.Header("WWW-Authenticate", "Bearer")
		detail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	token, err := s.issueToken(u.profile.Email)
	if err != nil {
		s.log.Error("sign token", "error", err)
		detail(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, domain.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      u.profile.ID,
		FullName:    u.profile.FullName,
	})
}
