// Package notify emits the user-facing notifications that accompany
// mutations. Messages are localized in Portuguese, matching the audience of
// the marketplace.
package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"tourism-booking/pkg/utils"
)

// Message catalog. Services reference these instead of inlining strings so
// the wording stays consistent across surfaces.
const (
	MsgBookingCreated      = "Reserva criada com sucesso"
	MsgBookingCreateFailed = "Erro ao criar reserva"
	MsgBookingConfirmed    = "Reserva confirmada com sucesso"
	MsgBookingConfirmFail  = "Erro ao confirmar reserva"
	MsgBookingCancelled    = "Reserva cancelada com sucesso"
	MsgBookingCancelFail   = "Erro ao cancelar reserva"

	MsgListingSaved      = "Anúncio salvo com sucesso"
	MsgListingSaveFailed = "Erro ao salvar anúncio"
	MsgListingDeleted    = "Anúncio removido com sucesso"
	MsgListingDeleteFail = "Erro ao remover anúncio"

	MsgReservationCreated    = "Mesa reservada com sucesso"
	MsgReservationCreateFail = "Erro ao reservar mesa"

	MsgPreferencesSaved    = "Preferências salvas com sucesso"
	MsgPreferencesSaveFail = "Erro ao salvar preferências"
)

// Notifier delivers a notification to the principal on the request context.
type Notifier interface {
	Success(ctx context.Context, message string)
	Error(ctx context.Context, message string)
}

// LogNotifier is the default sink: notifications are structured log events
// picked up by the delivery pipeline.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log.With(zap.String("component", "notifier"))}
}

func (n *LogNotifier) Success(ctx context.Context, message string) {
	n.log.Info("Notification",
		zap.String("level", "success"),
		zap.String("message", message),
		zap.String("user_id", userIDField(ctx)),
	)
}

func (n *LogNotifier) Error(ctx context.Context, message string) {
	n.log.Warn("Notification",
		zap.String("level", "error"),
		zap.String("message", message),
		zap.String("user_id", userIDField(ctx)),
	)
}

func userIDField(ctx context.Context) string {
	if userID, ok := utils.GetUserIDFromContext(ctx); ok {
		return userID.String()
	}
	return ""
}

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

func (r *Recorder) Success(_ context.Context, message string) {
	r.mu.Lock()
	r.Successes = append(r.Successes, message)
	r.mu.Unlock()
}

func (r *Recorder) Error(_ context.Context, message string) {
	r.mu.Lock()
	r.Errors = append(r.Errors, message)
	r.mu.Unlock()
}
