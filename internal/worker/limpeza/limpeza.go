// Package limpeza provê a varredura periódica de comentários órfãos.
//
// A deleção de postagem remove os comentários em seguida, sem
// transação; uma falha entre os dois passos deixa comentários
// apontando para uma postagem inexistente. Esta varredura é a
// compensação: localiza e remove esses órfãos em lote.
package limpeza

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rafaelgpo/microblog/internal/metrics"
	"github.com/rafaelgpo/microblog/internal/repository"
)

// Varredura é o job de remoção de comentários órfãos.
type Varredura struct {
	comentarios repository.ComentarioRepository
	logger      *slog.Logger
	metrics     metrics.MetricsCollector
}

// NewVarredura cria uma Varredura. O coletor de métricas pode ser nil
// quando a execução não exporta métricas.
func NewVarredura(comentarios repository.ComentarioRepository, logger *slog.Logger, collector metrics.MetricsCollector) *Varredura {
	return &Varredura{
		comentarios: comentarios,
		logger:      logger,
		metrics:     collector,
	}
}

// Iniciar executa a varredura no intervalo indicado até o contexto
// ser cancelado. Roda uma vez logo na partida.
func (v *Varredura) Iniciar(ctx context.Context, intervalo time.Duration) {
	ticker := time.NewTicker(intervalo)
	defer ticker.Stop()

	v.logger.Info("varredura de comentários órfãos iniciada",
		slog.Duration("intervalo", intervalo),
	)

	if err := v.ExecutarUmaVez(ctx); err != nil {
		v.logger.Error("falha na varredura de comentários órfãos",
			slog.String("error", err.Error()),
		)
	}

	for {
		select {
		case <-ctx.Done():
			v.logger.Info("varredura de comentários órfãos encerrada")
			return
		case <-ticker.C:
			if err := v.ExecutarUmaVez(ctx); err != nil {
				v.logger.Error("falha na varredura de comentários órfãos",
					slog.String("error", err.Error()),
				)
			}
		}
	}
}

// ExecutarUmaVez localiza os comentários órfãos e os remove em lote.
// Idempotente: sem órfãos, nada é removido e não há erro.
func (v *Varredura) ExecutarUmaVez(ctx context.Context) error {
	start := time.Now()

	orfaos, err := v.comentarios.ListarOrfaos(ctx)
	if err != nil {
		return fmt.Errorf("falha ao listar comentários órfãos: %w", err)
	}

	if len(orfaos) == 0 {
		v.logger.Info("varredura concluída sem órfãos",
			slog.Float64("duration_ms", float64(time.Since(start).Milliseconds())),
		)
		return nil
	}

	removidos, err := v.comentarios.DeletarPorIDs(ctx, orfaos)
	if err != nil {
		return fmt.Errorf("falha ao remover comentários órfãos: %w", err)
	}

	if v.metrics != nil {
		v.metrics.RecordComentariosOrfaosRemovidos(int(removidos))
	}

	v.logger.Info("varredura de comentários órfãos concluída",
		slog.Int64("removidos", removidos),
		slog.Float64("duration_ms", float64(time.Since(start).Milliseconds())),
	)
	return nil
}
