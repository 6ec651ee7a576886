package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/jhoicas/toolstock-api/internal/application/dto"
	"github.com/jhoicas/toolstock-api/internal/application/stock"
	"github.com/jhoicas/toolstock-api/pkg/metrics"
)

var _ stock.AlertDispatcher = (*Notifier)(nil)

// Notifier despacha alertas de stock bajo mínimo por Telegram. Compone el
// texto del mensaje a partir de los hechos estructurados que entrega el
// núcleo; el núcleo nunca arma texto ni conoce el canal.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// New construye el notificador. Token o chatID vacíos -> notificador nil
// (quien llama debe tolerarlo y solo loggear).
func New(token string, chatID int64) (*Notifier, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &Notifier{bot: bot, chatID: chatID}, nil
}

// DispatchLowStock envía un mensaje por herramienta bajo mínimo. Un fallo en
// un envío no detiene los demás; se devuelve el último error para que quien
// llama lo loggee (nunca para abortar la operación que disparó la alerta).
func (n *Notifier) DispatchLowStock(ctx context.Context, balances []dto.ToolBalanceDTO) error {
	var lastErr error
	for _, b := range balances {
		msg := tgbotapi.NewMessage(n.chatID, composeLowStock(b))
		if _, err := n.bot.Send(msg); err != nil {
			metrics.AlertFailures.Inc()
			lastErr = fmt.Errorf("telegram send: %w", err)
			continue
		}
		metrics.AlertsDispatched.Inc()
	}
	return lastErr
}

// composeLowStock arma el texto de alerta con el mismo contenido que el
// sistema original: código/nombre, on-hand contra mínimo y on-PO.
func composeLowStock(b dto.ToolBalanceDTO) string {
	var sb strings.Builder
	sb.WriteString("⚠️ Below MIN\n")
	fmt.Fprintf(&sb, "Tool: %s | %s\n", b.ToolCode, b.ToolName)
	fmt.Fprintf(&sb, "On-hand: %s < Min %s\n", b.OnHand.String(), b.MinStock.String())
	fmt.Fprintf(&sb, "On-PO: %s", b.OnPO.String())
	return sb.String()
}
