package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/SecureVault-api/internal/domain/entity"
	"github.com/jhoicas/SecureVault-api/pkg/logger"
)

// Sink es el puerto de persistencia del log de auditoría. Lo implementa
// el adaptador de PostgreSQL; en tests, un fake en memoria.
type Sink interface {
	Create(log *entity.AuditLog) error
}

// RequestMeta contexto del request que acompaña cada entrada.
// UserID nil significa acción iniciada por el sistema.
type RequestMeta struct {
	UserID *string
	IP     string
	Device string
}

// Recorder emite entradas de auditoría en modo best-effort: un fallo del
// sink se registra en el logger y se traga, nunca afecta a la mutación
// que lo disparó.
type Recorder struct {
	sink Sink
	log  *logger.Logger
}

// NewRecorder construye el recorder.
func NewRecorder(sink Sink, log *logger.Logger) *Recorder {
	return &Recorder{sink: sink, log: log}
}

// Record persiste una entrada. No devuelve error por contrato.
func (r *Recorder) Record(action, details string, meta RequestMeta) {
	if r == nil || r.sink == nil {
		return
	}
	entry := &entity.AuditLog{
		ID:        uuid.New().String(),
		Action:    action,
		Details:   details,
		UserID:    meta.UserID,
		IP:        meta.IP,
		Device:    meta.Device,
		CreatedAt: time.Now(),
	}
	if err := r.sink.Create(entry); err != nil && r.log != nil {
		r.log.Error().Err(err).Str("action", action).Msg("auditoría: fallo al escribir, se descarta la entrada")
	}
}
