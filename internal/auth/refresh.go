// internal/auth/refresh.go
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	RefreshTTL    = 30 * 24 * time.Hour
	RefreshCookie = "rt"
)

// RefreshToken guarda só o hash do valor entregue no cookie.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index"`
	FamilyID  string    `gorm:"index"`
	Hash      string    `gorm:"uniqueIndex"`
	IsAdmin   bool
	ExpiresAt time.Time `gorm:"index"`
	RevokedAt *time.Time
	CreatedAt time.Time
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&RefreshToken{})
}

// ErrSessaoEncerrada indica que o dono do refresh foi removido ou desativado.
var ErrSessaoEncerrada = errors.New("usuário inativo ou inexistente")

// Contas informa a situação atual de um usuário. existe=false quando o
// cadastro foi removido.
type Contas interface {
	Situacao(userID uint) (existe, ativo, isAdmin bool, err error)
}

// Sessoes emite o par access/refresh e faz a rotação do refresh.
type Sessoes struct {
	DB           *gorm.DB
	Tokens       *Tokens
	Contas       Contas
	CookieSecure bool
}

func NewSessoes(db *gorm.DB, tokens *Tokens, contas Contas, cookieSecure bool) *Sessoes {
	return &Sessoes{DB: db, Tokens: tokens, Contas: contas, CookieSecure: cookieSecure}
}

// papelAtual devolve o perfil vigente do usuário; o gravado no refresh
// pode estar desatualizado.
func (s *Sessoes) papelAtual(userID uint) (bool, error) {
	existe, ativo, isAdmin, err := s.Contas.Situacao(userID)
	if err != nil {
		return false, err
	}
	if !existe || !ativo {
		return false, ErrSessaoEncerrada
	}
	return isAdmin, nil
}

// RevogarUsuario encerra todas as sessões abertas do usuário.
func (s *Sessoes) RevogarUsuario(userID uint) error {
	now := time.Now()
	return s.DB.Model(&RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", &now).Error
}

// RespostaToken é o corpo devolvido no login e no refresh.
type RespostaToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func novaResposta(access string) RespostaToken {
	return RespostaToken{AccessToken: access, TokenType: "Bearer", ExpiresIn: int(AccessTTL.Seconds())}
}

func genRaw() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashRaw(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(h[:])
}

// Em localhost (http) o cookie precisa de Secure=false.
func (s *Sessoes) setCookie(w http.ResponseWriter, raw string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    raw,
		Path:     "/auth",
		HttpOnly: true,
		Secure:   s.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

func (s *Sessoes) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    "",
		Path:     "/auth",
		HttpOnly: true,
		Secure:   s.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func (s *Sessoes) novoRefresh(w http.ResponseWriter, userID uint, isAdmin bool, familia string) error {
	raw, err := genRaw()
	if err != nil {
		return err
	}
	rt := RefreshToken{
		UserID:    userID,
		FamilyID:  familia,
		Hash:      hashRaw(raw),
		IsAdmin:   isAdmin,
		ExpiresAt: time.Now().Add(RefreshTTL),
	}
	if err := s.DB.Create(&rt).Error; err != nil {
		return err
	}
	s.setCookie(w, raw, rt.ExpiresAt)
	return nil
}

// Emitir gera o access token e grava o refresh no cookie. Usado no login.
func (s *Sessoes) Emitir(w http.ResponseWriter, userID uint, isAdmin bool) (RespostaToken, error) {
	access, err := s.Tokens.GerarAcesso(userID, isAdmin)
	if err != nil {
		return RespostaToken{}, err
	}
	if err := s.novoRefresh(w, userID, isAdmin, uuid.NewString()); err != nil {
		return RespostaToken{}, err
	}
	return novaResposta(access), nil
}

// POST /auth/refresh
func (s *Sessoes) Refresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(RefreshCookie)
	if err != nil || c.Value == "" {
		http.Error(w, "Refresh ausente", http.StatusUnauthorized)
		return
	}

	var cur RefreshToken
	if err := s.DB.Where("hash = ?", hashRaw(c.Value)).First(&cur).Error; err != nil {
		s.clearCookie(w)
		http.Error(w, "Refresh inválido", http.StatusUnauthorized)
		return
	}
	if cur.RevokedAt != nil {
		// reuso de refresh já rotacionado: derruba a família inteira
		now := time.Now()
		_ = s.DB.Model(&RefreshToken{}).
			Where("family_id = ? AND revoked_at IS NULL", cur.FamilyID).
			Update("revoked_at", &now).Error
		zap.L().Warn("reuso de refresh token", zap.Uint("usuario", cur.UserID), zap.String("familia", cur.FamilyID))
		s.clearCookie(w)
		http.Error(w, "Refresh inválido", http.StatusUnauthorized)
		return
	}
	if time.Now().After(cur.ExpiresAt) {
		s.clearCookie(w)
		http.Error(w, "Refresh expirado", http.StatusUnauthorized)
		return
	}

	isAdmin, err := s.papelAtual(cur.UserID)
	if errors.Is(err, ErrSessaoEncerrada) {
		if err := s.RevogarUsuario(cur.UserID); err != nil {
			zap.L().Error("revogar sessões", zap.Error(err), zap.Uint("usuario", cur.UserID))
		}
		s.clearCookie(w)
		http.Error(w, "Refresh inválido", http.StatusUnauthorized)
		return
	}
	if err != nil {
		zap.L().Error("consultar usuário da sessão", zap.Error(err), zap.Uint("usuario", cur.UserID))
		http.Error(w, "Erro ao renovar sessão", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	if err := s.DB.Model(&cur).Update("revoked_at", &now).Error; err != nil {
		http.Error(w, "Erro ao renovar sessão", http.StatusInternalServerError)
		return
	}

	access, err := s.Tokens.GerarAcesso(cur.UserID, isAdmin)
	if err == nil {
		err = s.novoRefresh(w, cur.UserID, isAdmin, cur.FamilyID)
	}
	if err != nil {
		zap.L().Error("renovar sessão", zap.Error(err), zap.Uint("usuario", cur.UserID))
		s.clearCookie(w)
		http.Error(w, "Erro ao renovar sessão", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(novaResposta(access))
}

// POST /auth/logout
func (s *Sessoes) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(RefreshCookie); err == nil && c.Value != "" {
		now := time.Now()
		_ = s.DB.Model(&RefreshToken{}).Where("hash = ?", hashRaw(c.Value)).Update("revoked_at", &now).Error
	}
	s.clearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
