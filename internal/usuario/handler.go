// internal/usuario/handler.go
package usuario

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/BolzoniProducoes/api-gestao/internal/auth"
	"github.com/BolzoniProducoes/api-gestao/internal/utils"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Emissor entrega os tokens de uma sessão recém-autenticada e encerra as
// sessões de quem perde o acesso.
type Emissor interface {
	Emitir(w http.ResponseWriter, userID uint, isAdmin bool) (auth.RespostaToken, error)
	RevogarUsuario(userID uint) error
}

// Repositorio é o acesso a usuários usado pelos handlers.
type Repositorio interface {
	BuscarPorEmail(email string) (*Usuario, error)
	Create(u *Usuario) error
	FindByID(id uint) (*Usuario, error)
	ListAll() ([]Usuario, error)
	Update(u *Usuario) error
	Delete(id uint) error
}

type Handler struct {
	Repo    Repositorio
	Sessoes Emissor
}

func NewHandler(repo Repositorio, sessoes Emissor) *Handler {
	return &Handler{Repo: repo, Sessoes: sessoes}
}

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type loginResponse struct {
	auth.RespostaToken
	Usuario *Usuario `json:"usuario"`
}

// POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	u, err := h.Repo.BuscarPorEmail(req.Email)
	if err != nil || !u.Ativo || !utils.VerificarSenha(u.Senha, req.Senha) {
		http.Error(w, "Credenciais inválidas", http.StatusUnauthorized)
		return
	}

	tok, err := h.Sessoes.Emitir(w, u.ID, u.IsAdmin)
	if err != nil {
		zap.L().Error("emitir tokens", zap.Error(err), zap.Uint("usuario", u.ID))
		http.Error(w, "Erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(loginResponse{RespostaToken: tok, Usuario: u})
}

type usuarioDTO struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Telefone string `json:"telefone"`
	Senha    string `json:"senha"`
	IsAdmin  bool   `json:"isAdmin"`
	Ativo    *bool  `json:"ativo"`
}

func (dto usuarioDTO) validar() string {
	if strings.TrimSpace(dto.Nome) == "" {
		return "O campo 'nome' é obrigatório"
	}
	if _, err := mail.ParseAddress(dto.Email); err != nil {
		return "E-mail inválido"
	}
	if dto.Senha != "" && len(dto.Senha) < 8 {
		return "A senha deve ter ao menos 8 caracteres"
	}
	return ""
}

// POST /usuarios (admin). Sem senha, gera uma temporária e devolve uma única vez.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto usuarioDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if msg := dto.validar(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	senha, temporaria := dto.Senha, false
	if senha == "" {
		var err error
		if senha, err = utils.GerarSenhaTemporaria(); err != nil {
			http.Error(w, "Erro ao gerar senha", http.StatusInternalServerError)
			return
		}
		temporaria = true
	}
	hash, err := utils.HashSenha(senha)
	if err != nil {
		http.Error(w, "Erro ao processar senha", http.StatusInternalServerError)
		return
	}

	u := Usuario{
		Nome:                  strings.TrimSpace(dto.Nome),
		Email:                 strings.ToLower(strings.TrimSpace(dto.Email)),
		Telefone:              dto.Telefone,
		Senha:                 hash,
		IsAdmin:               dto.IsAdmin,
		Ativo:                 dto.Ativo == nil || *dto.Ativo,
		PrecisaRedefinirSenha: temporaria,
	}
	if err := h.Repo.Create(&u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			http.Error(w, "E-mail já cadastrado", http.StatusConflict)
			return
		}
		http.Error(w, "Erro ao criar usuário", http.StatusInternalServerError)
		return
	}

	resp := map[string]interface{}{"usuario": u}
	if temporaria {
		resp["senhaTemporaria"] = senha
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(resp)
}

// GET /usuarios (admin)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	us, err := h.Repo.ListAll()
	if err != nil {
		http.Error(w, "Erro ao buscar usuários", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(us)
}

// GET /usuarios/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.UsuarioID(r.Context())
	if !ok {
		http.Error(w, "Não autenticado", http.StatusUnauthorized)
		return
	}
	u, err := h.Repo.FindByID(id)
	if err != nil {
		http.Error(w, "Usuário não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(u)
}

type senhaDTO struct {
	SenhaAtual string `json:"senhaAtual"`
	NovaSenha  string `json:"novaSenha"`
}

// PUT /usuarios/me/senha
func (h *Handler) AlterarSenha(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.UsuarioID(r.Context())
	if !ok {
		http.Error(w, "Não autenticado", http.StatusUnauthorized)
		return
	}
	var dto senhaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if len(dto.NovaSenha) < 8 {
		http.Error(w, "A senha deve ter ao menos 8 caracteres", http.StatusBadRequest)
		return
	}

	u, err := h.Repo.FindByID(id)
	if err != nil {
		http.Error(w, "Usuário não encontrado", http.StatusNotFound)
		return
	}
	if !utils.VerificarSenha(u.Senha, dto.SenhaAtual) {
		http.Error(w, "Senha atual incorreta", http.StatusUnauthorized)
		return
	}
	if u.Senha, err = utils.HashSenha(dto.NovaSenha); err != nil {
		http.Error(w, "Erro ao processar senha", http.StatusInternalServerError)
		return
	}
	u.PrecisaRedefinirSenha = false
	if err := h.Repo.Update(u); err != nil {
		http.Error(w, "Erro ao alterar senha", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /usuarios/{id} (admin)
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if atual, _ := auth.UsuarioID(r.Context()); atual == uint(id) {
		http.Error(w, "Não é possível excluir o próprio usuário", http.StatusBadRequest)
		return
	}
	if err := h.Sessoes.RevogarUsuario(uint(id)); err != nil {
		zap.L().Error("revogar sessões", zap.Error(err), zap.Int("usuario", id))
		http.Error(w, "Erro ao excluir usuário", http.StatusInternalServerError)
		return
	}
	if err := h.Repo.Delete(uint(id)); err != nil {
		http.Error(w, "Erro ao excluir usuário", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GarantirAdmin cria o primeiro administrador quando a tabela está vazia.
func GarantirAdmin(repo *Repository, email, senha string) error {
	if email == "" || senha == "" {
		return nil
	}
	n, err := repo.Count()
	if err != nil || n > 0 {
		return err
	}
	hash, err := utils.HashSenha(senha)
	if err != nil {
		return err
	}
	zap.L().Info("criando administrador inicial", zap.String("email", email))
	return repo.Create(&Usuario{
		Nome:    "Administrador",
		Email:   strings.ToLower(strings.TrimSpace(email)),
		Senha:   hash,
		IsAdmin: true,
		Ativo:   true,
	})
}
