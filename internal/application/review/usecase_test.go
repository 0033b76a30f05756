package review_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/SecureVault-api/internal/application/audit"
	"github.com/jhoicas/SecureVault-api/internal/application/authz"
	"github.com/jhoicas/SecureVault-api/internal/application/dto"
	"github.com/jhoicas/SecureVault-api/internal/application/review"
	"github.com/jhoicas/SecureVault-api/internal/domain"
	"github.com/jhoicas/SecureVault-api/internal/domain/entity"
	"github.com/jhoicas/SecureVault-api/internal/domain/repository"
	"github.com/jhoicas/SecureVault-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memDocRepo struct {
	docs map[string]*entity.Document
}

func newMemDocRepo() *memDocRepo { return &memDocRepo{docs: map[string]*entity.Document{}} }

func (m *memDocRepo) Create(doc *entity.Document) error {
	cp := *doc
	m.docs[doc.ID] = &cp
	return nil
}
func (m *memDocRepo) GetByID(id string) (*entity.Document, error) {
	d, ok := m.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}
func (m *memDocRepo) GetByIDForUpdate(id string) (*entity.Document, error) { return m.GetByID(id) }
func (m *memDocRepo) UpdateStatus(id, status string) error {
	if d, ok := m.docs[id]; ok {
		d.Status = status
	}
	return nil
}
func (m *memDocRepo) ListByClient(clientID string) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, d := range m.docs {
		if d.ClientID == clientID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (m *memDocRepo) ListByApproverEmail(email string) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, d := range m.docs {
		if d.ApproverEmail == email {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (m *memDocRepo) ListAll() ([]*entity.Document, error) {
	var out []*entity.Document
	for _, d := range m.docs {
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}
func (m *memDocRepo) Delete(id string) error {
	delete(m.docs, id)
	return nil
}
func (m *memDocRepo) Count() (int, error) { return len(m.docs), nil }
func (m *memDocRepo) CountByStatus(status string) (int, error) {
	n := 0
	for _, d := range m.docs {
		if d.Status == status {
			n++
		}
	}
	return n, nil
}

type memVersionRepo struct {
	versions map[string][]*entity.Version // por documentID
}

func newMemVersionRepo() *memVersionRepo { return &memVersionRepo{versions: map[string][]*entity.Version{}} }

func (m *memVersionRepo) Create(v *entity.Version) error {
	cp := *v
	m.versions[v.DocumentID] = append(m.versions[v.DocumentID], &cp)
	return nil
}
func (m *memVersionRepo) MaxVersionNum(documentID string) (int, error) {
	max := 0
	for _, v := range m.versions[documentID] {
		if v.VersionNum > max {
			max = v.VersionNum
		}
	}
	return max, nil
}
func (m *memVersionRepo) ListByDocument(documentID string) ([]*entity.Version, error) {
	out := make([]*entity.Version, len(m.versions[documentID]))
	copy(out, m.versions[documentID])
	sort.Slice(out, func(i, j int) bool { return out[i].VersionNum > out[j].VersionNum })
	return out, nil
}
func (m *memVersionRepo) DeleteByDocument(documentID string) error {
	delete(m.versions, documentID)
	return nil
}

type memCommentRepo struct {
	comments map[string][]*entity.Comment
}

func newMemCommentRepo() *memCommentRepo { return &memCommentRepo{comments: map[string][]*entity.Comment{}} }

func (m *memCommentRepo) Create(c *entity.Comment) error {
	cp := *c
	m.comments[c.DocumentID] = append(m.comments[c.DocumentID], &cp)
	return nil
}
func (m *memCommentRepo) ListByDocument(documentID string) ([]*entity.Comment, error) {
	return m.comments[documentID], nil
}
func (m *memCommentRepo) DeleteByDocument(documentID string) error {
	delete(m.comments, documentID)
	return nil
}

type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{users: map[string]*entity.User{}} }

func (m *memUserRepo) Create(u *entity.User) error {
	cp := *u
	m.users[u.ID] = &cp
	return nil
}
func (m *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}
func (m *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
func (m *memUserRepo) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}
func (m *memUserRepo) Delete(id string) error {
	delete(m.users, id)
	return nil
}
func (m *memUserRepo) DeleteByEmail(email string) error {
	for id, u := range m.users {
		if u.Email == email {
			delete(m.users, id)
		}
	}
	return nil
}
func (m *memUserRepo) Count() (int, error) { return len(m.users), nil }

// fakeTx ejecuta el callback contra los mismos fakes, sin transacción real.
type fakeTx struct {
	docs     *memDocRepo
	versions *memVersionRepo
	comments *memCommentRepo
}

func (f *fakeTx) Run(_ context.Context, fn func(
	docRepo repository.DocumentRepository,
	versionRepo repository.VersionRepository,
	commentRepo repository.CommentRepository,
) error) error {
	return fn(f.docs, f.versions, f.comments)
}

// memSink acumula las entradas de auditoría emitidas.
type memSink struct {
	entries []*entity.AuditLog
}

func (m *memSink) Create(log *entity.AuditLog) error {
	m.entries = append(m.entries, log)
	return nil
}

func (m *memSink) actions() []string {
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Action)
	}
	return out
}

// memNotifier acumula las notificaciones enviadas al aprobador.
type memNotifier struct {
	routed []string // emails notificados, en orden
}

func (m *memNotifier) NotifyDocumentRouted(toEmail, title string, versionNum int) {
	m.routed = append(m.routed, toEmail)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc       *review.UseCase
	docs     *memDocRepo
	versions *memVersionRepo
	comments *memCommentRepo
	users    *memUserRepo
	sink     *memSink
	notifier *memNotifier
}

func newFixture() *fixture {
	docs := newMemDocRepo()
	versions := newMemVersionRepo()
	comments := newMemCommentRepo()
	users := newMemUserRepo()
	sink := &memSink{}
	notifier := &memNotifier{}
	tx := &fakeTx{docs: docs, versions: versions, comments: comments}
	recorder := audit.NewRecorder(sink, logger.Nop())
	uc := review.NewUseCase(tx, docs, versions, comments, users, recorder, notifier)
	return &fixture{uc: uc, docs: docs, versions: versions, comments: comments, users: users, sink: sink, notifier: notifier}
}

func clientIdentity(id string) *authz.Identity {
	return &authz.Identity{ID: id, Email: id + "@test.io", Role: entity.RoleClient}
}

func approverIdentity(email string) *authz.Identity {
	return &authz.Identity{ID: "appr-1", Email: email, Role: entity.RoleApprover}
}

func adminIdentity() *authz.Identity {
	return &authz.Identity{ID: "admin-1", Email: "admin@test.io", Role: entity.RoleAdmin}
}

func meta() audit.RequestMeta {
	return audit.RequestMeta{IP: "127.0.0.1", Device: "test-agent"}
}

func mustCreate(t *testing.T, f *fixture, clientID string) *dto.DocumentResponse {
	t.Helper()
	doc, err := f.uc.Create(context.Background(), clientIdentity(clientID), dto.UploadDocumentRequest{
		Title:         "Contrato marco",
		ApproverEmail: "revisor@test.io",
	}, dto.FileRef{URL: "/uploads/a.pdf", Name: "contrato.pdf"}, meta())
	require.NoError(t, err)
	return doc
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

// El alta siempre entra en PENDING con versión 1; el estado inicial no es
// elegible por el cliente.
func TestCreate_DocumentoNaceEnPendingConVersion1(t *testing.T) {
	f := newFixture()
	doc := mustCreate(t, f, "c1")

	assert.Equal(t, entity.StatusPending, doc.Status)
	assert.Equal(t, entity.PriorityNormal, doc.Priority, "prioridad ausente debe defaultear a NORMAL")
	assert.Equal(t, "GENERAL", doc.Category, "categoría ausente debe defaultear a GENERAL")
	require.Len(t, doc.Versions, 1)
	assert.Equal(t, 1, doc.Versions[0].VersionNum)

	assert.Equal(t, []string{entity.AuditDocumentUpload}, f.sink.actions())
	assert.Equal(t, []string{"revisor@test.io"}, f.notifier.routed, "debe notificar al aprobador")
}

func TestCreate_PrioridadInvalida_Rechazada(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), clientIdentity("c1"), dto.UploadDocumentRequest{
		Title:         "Doc",
		ApproverEmail: "revisor@test.io",
		Priority:      "EXTREME",
	}, dto.FileRef{URL: "/uploads/a.pdf", Name: "a.pdf"}, meta())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.sink.entries, "una subida rechazada no se audita")
}

func TestCreate_ApproverNoPuedeSubir(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), approverIdentity("revisor@test.io"), dto.UploadDocumentRequest{
		Title:         "Doc",
		ApproverEmail: "otro@test.io",
	}, dto.FileRef{URL: "/uploads/a.pdf", Name: "a.pdf"}, meta())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// AddVersion
// ──────────────────────────────────────────────────────────────────────────────

// Toda nueva versión resetea el estado a PENDING, incluso desde APPROVED:
// el contenido nuevo invalida la aprobación anterior.
func TestAddVersion_ResetIncondicionalAPending(t *testing.T) {
	f := newFixture()
	doc := mustCreate(t, f, "c1")

	// Aprobado por el revisor asignado
	_, err := f.uc.Review(context.Background(), approverIdentity("revisor@test.io"), doc.ID,
		dto.ReviewRequest{Status: entity.StatusApproved}, meta())
	require.NoError(t, err)

	updated, err := f.uc.AddVersion(context.Background(), clientIdentity("c1"), doc.ID,
		dto.FileRef{URL: "/uploads/b.pdf", Name: "contrato-v2.pdf"}, meta())
	require.NoError(t, err)

	assert.Equal(t, entity.StatusPending, updated.Status)
	require.Len(t, updated.Versions, 2)
	assert.Equal(t, 2, updated.Versions[0].VersionNum, "la versión más nueva primero")
	assert.Equal(t, []string{"revisor@test.io", "revisor@test.io"}, f.notifier.routed)
}

func TestAddVersion_NumeracionMonotona(t *testing.T) {
	f := newFixture()
	doc := mustCreate(t, f, "c1")

	for i := 0; i < 3; i++ {
		_, err := f.uc.AddVersion(context.Background(), clientIdentity("c1"), doc.ID,
			dto.FileRef{URL: "/uploads/x.pdf", Name: "x.pdf"}, meta())
		require.NoError(t, err)
	}
	versions, err := f.versions.ListByDocument(doc.ID)
	require.NoError(t, err)
	require.Len(t, versions, 4)
	assert.Equal(t, 4, versions[0].VersionNum)
}

func TestAddVersion_SoloElDueno(t *testing.T) {
	f := newFixture()
	doc := mustCreate(t, f, "c1")

	_, err := f.uc.AddVersion(context.Background(), clientIdentity("intruso"), doc.ID,
		dto.FileRef{URL: "/uploads/b.pdf", Name: "b.pdf"}, meta())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAddVersion_DocumentoInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.AddVersion(context.Background(), clientIdentity("c1"), "no-existe",
		dto.FileRef{URL: "/uploads/b.pdf", Name: "b.pdf"}, meta())
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Review
// ──────────────────────────────────────────────────────────────────────────────

func TestReview_AprobarConComentarioAtomico(t *testing.T) {
	f := newFixture()
	doc := mustCreate(t, f, "c1")

	out, err := f.uc.Review(context.Background(), approverIdentity("revisor@test.io"), doc.ID,
		dto.ReviewRequest{Status: entity.StatusApproved, Comment: "todo en orden"}, meta())
	require.NoError(t, err)

	assert.Equal(t, entity.StatusApproved, out.Status)
	require.Len(t, out.Comments, 1)
	assert.Equal(t, "todo en orden", out.Comments[0].Text)
	assert.Contains(t, f.sink.actions(), entity.AuditDocumentApproved)
}

func TestReview_RechazarSinComentario(t *testing.T) {
	f := newFixture()
	doc := mustCreate(t, f, "c1")

	out, err := f.uc.Review(context.Background(), approverIdentity("revisor@test.io"), doc.ID,
		dto.ReviewRequest{Status: entity.StatusRejected}, meta())
	require.NoError(t, err)

	assert.Equal(t, entity.StatusRejected, out.Status)
	assert.Empty(t, out.Comments)
	assert.Contains(t, f.sink.actions(), entity.AuditDocumentRejected)
}

// PENDING no es veredicto: el revisor solo puede aprobar o rechazar.
func TestReview_VeredictoInvalido(t *testing.T) {
	f := newFixture()
	doc := mustCreate(t, f, "c1")

	for _, status := range []string{entity.StatusPending, "MAYBE", ""} {
		_, err := f.uc.Review(context.Background(), approverIdentity("revisor@test.io"), doc.ID,
			dto.ReviewRequest{Status: status}, meta())
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "status %q debe rechazarse", status)
	}
}

func TestReview_ApproverNoAsignadoBloqueado(t *testing.T) {
	f := newFixture()
	doc := mustCreate(t, f, "c1")

	_, err := f.uc.Review(context.Background(), approverIdentity("otro@test.io"), doc.ID,
		dto.ReviewRequest{Status: entity.StatusApproved}, meta())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestReview_AdminPuedeRevisarCualquiera(t *testing.T) {
	f := newFixture()
	doc := mustCreate(t, f, "c1")

	out, err := f.uc.Review(context.Background(), adminIdentity(), doc.ID,
		dto.ReviewRequest{Status: entity.StatusRejected}, meta())
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRejected, out.Status)
}

// Sin guarda de estado terminal: un documento aprobado puede re-revisarse y
// cambiar de veredicto.
func TestReview_ReRevisionPermitida(t *testing.T) {
	f := newFixture()
	doc := mustCreate(t, f, "c1")

	_, err := f.uc.Review(context.Background(), approverIdentity("revisor@test.io"), doc.ID,
		dto.ReviewRequest{Status: entity.StatusApproved}, meta())
	require.NoError(t, err)

	out, err := f.uc.Review(context.Background(), approverIdentity("revisor@test.io"), doc.ID,
		dto.ReviewRequest{Status: entity.StatusRejected}, meta())
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRejected, out.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_CascadaCompleta(t *testing.T) {
	f := newFixture()
	doc := mustCreate(t, f, "c1")
	_, err := f.uc.Review(context.Background(), approverIdentity("revisor@test.io"), doc.ID,
		dto.ReviewRequest{Status: entity.StatusRejected, Comment: "ilegible"}, meta())
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(context.Background(), clientIdentity("c1"), doc.ID, meta()))

	got, _ := f.docs.GetByID(doc.ID)
	assert.Nil(t, got, "el documento debe desaparecer")
	versions, _ := f.versions.ListByDocument(doc.ID)
	assert.Empty(t, versions, "sin versiones huérfanas")
	comments, _ := f.comments.ListByDocument(doc.ID)
	assert.Empty(t, comments, "sin comentarios huérfanos")
	assert.Contains(t, f.sink.actions(), entity.AuditDocumentDeleted)
}

func TestDelete_ClienteNoPuedeBorrarAprobado(t *testing.T) {
	f := newFixture()
	doc := mustCreate(t, f, "c1")
	_, err := f.uc.Review(context.Background(), approverIdentity("revisor@test.io"), doc.ID,
		dto.ReviewRequest{Status: entity.StatusApproved}, meta())
	require.NoError(t, err)

	err = f.uc.Delete(context.Background(), clientIdentity("c1"), doc.ID, meta())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// El admin sí puede.
	require.NoError(t, f.uc.Delete(context.Background(), adminIdentity(), doc.ID, meta()))
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados y detalle
// ──────────────────────────────────────────────────────────────────────────────

func TestListForApprover_IncluyeDatosDelCliente(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.users.Create(&entity.User{ID: "c1", Email: "c1@test.io", Name: "Cliente Uno", Role: entity.RoleClient}))
	mustCreate(t, f, "c1")

	docs, err := f.uc.ListForApprover(approverIdentity("revisor@test.io"))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.NotNil(t, docs[0].Client)
	assert.Equal(t, "Cliente Uno", docs[0].Client.Name)
	require.Len(t, docs[0].Versions, 1)
}

func TestListForClient_SoloLosPropios(t *testing.T) {
	f := newFixture()
	mustCreate(t, f, "c1")
	mustCreate(t, f, "c2")

	docs, err := f.uc.ListForClient(clientIdentity("c1"))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "c1", docs[0].ClientID)
}

func TestGetDetails_ConVersionesComentariosYAutor(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.users.Create(&entity.User{ID: "appr-1", Email: "revisor@test.io", Name: "Revisor", Role: entity.RoleApprover}))
	doc := mustCreate(t, f, "c1")
	_, err := f.uc.Review(context.Background(), approverIdentity("revisor@test.io"), doc.ID,
		dto.ReviewRequest{Status: entity.StatusApproved, Comment: "ok"}, meta())
	require.NoError(t, err)

	out, err := f.uc.GetDetails(clientIdentity("c1"), doc.ID)
	require.NoError(t, err)
	require.Len(t, out.Versions, 1)
	require.Len(t, out.Comments, 1)
	assert.Equal(t, "Revisor", out.Comments[0].AuthorName)
	assert.Equal(t, entity.RoleApprover, out.Comments[0].AuthorRole)
}

func TestGetDetails_Inexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.GetDetails(clientIdentity("c1"), "no-existe")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}
