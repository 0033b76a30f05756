package audit_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/SecureVault-api/internal/application/audit"
	"github.com/jhoicas/SecureVault-api/internal/domain/entity"
	"github.com/jhoicas/SecureVault-api/pkg/logger"
)

type memSink struct {
	entries []*entity.AuditLog
	err     error
}

func (m *memSink) Create(log *entity.AuditLog) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, log)
	return nil
}

func TestRecord_CompletaIDTimestampYMeta(t *testing.T) {
	sink := &memSink{}
	r := audit.NewRecorder(sink, logger.Nop())

	uid := "u1"
	r.Record(entity.AuditDocumentUpload, "Documento subido: Contrato", audit.RequestMeta{
		UserID: &uid,
		IP:     "10.0.0.1",
		Device: "curl/8.0",
	})

	require.Len(t, sink.entries, 1)
	e := sink.entries[0]
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.CreatedAt.IsZero())
	assert.Equal(t, entity.AuditDocumentUpload, e.Action)
	assert.Equal(t, "u1", *e.UserID)
	assert.Equal(t, "10.0.0.1", e.IP)
	assert.Equal(t, "curl/8.0", e.Device)
}

// UserID nil identifica acciones del sistema: la entrada se escribe igual.
func TestRecord_SinUsuario(t *testing.T) {
	sink := &memSink{}
	r := audit.NewRecorder(sink, logger.Nop())

	r.Record(entity.AuditUserBanned, "purga programada", audit.RequestMeta{})

	require.Len(t, sink.entries, 1)
	assert.Nil(t, sink.entries[0].UserID)
}

// Best-effort: un sink roto no hace fallar la operación que audita.
func TestRecord_TragaErroresDelSink(t *testing.T) {
	sink := &memSink{err: errors.New("db caída")}
	r := audit.NewRecorder(sink, logger.Nop())

	assert.NotPanics(t, func() {
		r.Record(entity.AuditDocumentDeleted, "x", audit.RequestMeta{})
	})
}
