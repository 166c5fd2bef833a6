package parcelamento

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/BolzoniProducoes/api-gestao/internal/metrics"
	"github.com/BolzoniProducoes/api-gestao/internal/taxas"
	"github.com/BolzoniProducoes/api-gestao/internal/utils"
	"go.uber.org/zap"
)

// FonteConfiguracao fornece o retrato atual das configurações financeiras.
type FonteConfiguracao interface {
	Carregar(ctx context.Context) (taxas.Configuracao, error)
}

type Handler struct {
	Config FonteConfiguracao
}

func NewHandler(cfg FonteConfiguracao) *Handler {
	return &Handler{Config: cfg}
}

type simularDTO struct {
	ValorContrato   utils.Valor           `json:"valorContrato"`
	ValorEntrada    utils.Valor           `json:"valorEntrada"`
	MetodoPagamento taxas.MetodoPagamento `json:"metodoPagamento"`
	Bandeira        taxas.Bandeira        `json:"bandeira"`
	Parcelas        taxas.QtdParcelas     `json:"parcelas"`
}

// POST /parcelamento/simular
func (h *Handler) Simular(w http.ResponseWriter, r *http.Request) {
	var dto simularDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if dto.MetodoPagamento != "" && !dto.MetodoPagamento.Valido() {
		http.Error(w, "Método de pagamento inválido", http.StatusBadRequest)
		return
	}
	metodo := string(dto.MetodoPagamento)
	if metodo == "" {
		metodo = "nenhum"
	}

	cfg, err := h.Config.Carregar(r.Context())
	if err != nil {
		zap.L().Error("carregar configurações", zap.Error(err))
		metrics.Simulacoes.WithLabelValues(metodo, "erro").Inc()
		http.Error(w, "Erro ao carregar configurações", http.StatusInternalServerError)
		return
	}

	cot := Simular(cfg, Simulacao{
		ValorContrato: dto.ValorContrato.Decimal,
		ValorEntrada:  dto.ValorEntrada.Decimal,
		Metodo:        dto.MetodoPagamento,
		Bandeira:      dto.Bandeira,
		Parcelas:      int(dto.Parcelas),
	})
	if cot.TaxaNaoConfigurada {
		zap.L().Warn("taxas personalizadas não configuradas, usando taxa zero",
			zap.String("metodo", string(dto.MetodoPagamento)))
	}
	metrics.Simulacoes.WithLabelValues(metodo, "ok").Inc()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(cot)
}
