package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Simulacoes conta as simulações de parcelamento por método de pagamento
	Simulacoes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parcelamento_simulacoes_total",
			Help: "Simulações de parcelamento calculadas",
		},
		[]string{"metodo", "status"},
	)

	// ConsultasTaxa conta as resoluções da tabela de taxas
	ConsultasTaxa = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxas_consultas_total",
			Help: "Consultas à tabela de taxas",
		},
		[]string{"modo", "status"},
	)

	// CacheConfiguracao conta acertos e falhas do cache de configurações
	CacheConfiguracao = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "configuracao_cache_total",
			Help: "Acessos ao cache de configurações do sistema",
		},
		[]string{"resultado"},
	)

	// Eventos conta as gravações de eventos e os lançamentos gerados
	Eventos = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventos_gravacoes_total",
			Help: "Eventos criados, atualizados e excluídos",
		},
		[]string{"operacao", "status"},
	)

	// Lancamentos conta as transações geradas automaticamente por tipo
	Lancamentos = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "financeiro_lancamentos_gerados_total",
			Help: "Contas a pagar e a receber geradas a partir de eventos",
		},
		[]string{"tipo"},
	)
)
