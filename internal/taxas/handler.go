package taxas

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/BolzoniProducoes/api-gestao/internal/metrics"
	"github.com/BolzoniProducoes/api-gestao/internal/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Handler expõe a tabela de taxas e as configurações financeiras
type Handler struct {
	Repo Repositorio
}

// NewHandler cria um novo Handler
func NewHandler(repo Repositorio) *Handler {
	return &Handler{Repo: repo}
}

// GET /taxas?metodo=cartao_credito&bandeira=visa_master&parcelas=3
func (h *Handler) Consultar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	consulta := Consulta{
		Metodo:   MetodoPagamento(q.Get("metodo")),
		Bandeira: Bandeira(q.Get("bandeira")),
		Parcelas: ParseParcelas(q.Get("parcelas")),
	}

	cfg, err := h.Repo.Carregar(r.Context())
	if err != nil {
		zap.L().Error("carregar configurações", zap.Error(err))
		http.Error(w, "Erro ao carregar configurações", http.StatusInternalServerError)
		return
	}

	taxa, err := Resolver(cfg, consulta)
	if errors.Is(err, ErrNaoConfigurado) {
		metrics.ConsultasTaxa.WithLabelValues(string(cfg.Modo), "nao_configurado").Inc()
		http.Error(w, "Taxas personalizadas não configuradas", http.StatusNotFound)
		return
	}
	metrics.ConsultasTaxa.WithLabelValues(string(cfg.Modo), "ok").Inc()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(taxa)
}

// GET /configuracoes/taxas
func (h *Handler) ObterConfiguracao(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Repo.Carregar(r.Context())
	if err != nil {
		zap.L().Error("carregar configurações", zap.Error(err))
		http.Error(w, "Erro ao carregar configurações", http.StatusInternalServerError)
		return
	}
	if cfg.Modo == ModoSumup && len(cfg.Faixas) == 0 {
		cfg.Faixas = FaixasPadrao
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(cfg)
}

// PUT /configuracoes/taxas
func (h *Handler) AtualizarConfiguracao(w http.ResponseWriter, r *http.Request) {
	var cfg Configuracao
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	if cfg.Modo != ModoPersonalizado && cfg.Modo != ModoSumup {
		http.Error(w, "Modo inválido. Use 'personalizado' ou 'sumup'.", http.StatusBadRequest)
		return
	}
	if cfg.Recebimento == "" {
		cfg.Recebimento = NaHora
	}
	if cfg.Recebimento != NaHora && cfg.Recebimento != Em30Dias {
		http.Error(w, "Recebimento inválido. Use 'na_hora' ou 'em_30_dias'.", http.StatusBadRequest)
		return
	}
	if msg := validarValores(cfg); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	if err := h.Repo.Salvar(r.Context(), cfg); err != nil {
		zap.L().Error("salvar configurações", zap.Error(err))
		http.Error(w, "Erro ao salvar configurações", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(cfg)
}

var cemPorCento = decimal.NewFromInt(100)

func percentualInvalido(d decimal.Decimal) bool {
	return utils.ForaDaFaixa(d) || d.IsNegative() || d.GreaterThan(cemPorCento)
}

// validarValores devolve a mensagem de erro do primeiro valor inválido, ou "".
func validarValores(cfg Configuracao) string {
	if utils.ForaDaFaixa(cfg.ValorKm) || cfg.ValorKm.IsNegative() || percentualInvalido(cfg.JurosMensalManual) {
		return "Juros ou valor por km inválidos"
	}
	if p := cfg.Personalizadas; p != nil {
		if percentualInvalido(p.Debito) || percentualInvalido(p.CreditoAVista) || percentualInvalido(p.CreditoParcelado) {
			return "Percentuais devem estar entre 0 e 100"
		}
	}
	for _, f := range cfg.Faixas {
		for _, v := range f.Debito {
			if percentualInvalido(v) {
				return "Percentuais devem estar entre 0 e 100"
			}
		}
		for _, v := range f.CreditoAVista {
			if percentualInvalido(v) {
				return "Percentuais devem estar entre 0 e 100"
			}
		}
		for _, v := range f.CreditoParcelado {
			if percentualInvalido(v) {
				return "Percentuais devem estar entre 0 e 100"
			}
		}
	}
	faixas := len(cfg.Faixas)
	if faixas == 0 {
		faixas = len(FaixasPadrao)
	}
	if cfg.FaixaSelecionada < 0 || cfg.FaixaSelecionada >= faixas {
		return "Faixa selecionada inexistente"
	}
	return ""
}
