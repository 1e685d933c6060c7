package service

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/deppfellow/campus-portal/internal/lib/email"
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/model/user"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

var (
	testLogger = zerolog.Nop()
	fixedNow   = time.Date(2026, 3, 7, 9, 30, 0, 0, time.UTC)

	student = model.Actor{UserID: 2, Email: "awa@example.com", Role: model.RoleStudent}
	other   = model.Actor{UserID: 3, Email: "paul@example.com", Role: model.RoleStudent}
	admin   = model.Actor{UserID: 1, Email: "admin@example.com", Role: model.RoleAdmin}
)

func notFound(table string, id any) error {
	return fmt.Errorf("failed to get row id=%v from table:%s: %w", id, table, pgx.ErrNoRows)
}

type sentMail struct {
	Kind string
	To   string
	Data any
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMailer) record(kind, to string, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{Kind: kind, To: to, Data: data})
}

func (m *fakeMailer) kinds() []string {
	out := make([]string, 0, len(m.sent))
	for _, s := range m.sent {
		out = append(out, s.Kind)
	}
	return out
}

func (m *fakeMailer) Welcome(_ context.Context, to string, d email.WelcomeData) {
	m.record("welcome", to, d)
}
func (m *fakeMailer) ContactConfirmation(_ context.Context, to string, d email.ContactConfirmationData) {
	m.record("contact_confirmation", to, d)
}
func (m *fakeMailer) ApplicationConfirmation(_ context.Context, to string, d email.ApplicationConfirmationData) {
	m.record("application_confirmation", to, d)
}
func (m *fakeMailer) ApplicationStatus(_ context.Context, to string, d email.ApplicationStatusData) {
	m.record("application_status", to, d)
}
func (m *fakeMailer) DocumentReady(_ context.Context, to string, d email.DocumentReadyData) {
	m.record("document_ready", to, d)
}
func (m *fakeMailer) PaymentReceipt(_ context.Context, to string, d email.PaymentReceiptData) {
	m.record("payment_receipt", to, d)
}
func (m *fakeMailer) AdminNotification(_ context.Context, d email.AdminNotificationData) {
	m.record("admin:"+string(d.Kind), "", d)
}

// fakeUsers is an in-memory users table.
type fakeUsers struct {
	rows   map[int64]*user.User
	nextID int64
}

func newFakeUsers(seed ...user.User) *fakeUsers {
	f := &fakeUsers{rows: map[int64]*user.User{}, nextID: 100}
	for i := range seed {
		u := seed[i]
		f.rows[u.ID] = &u
	}
	return f
}

func seededUsers() *fakeUsers {
	return newFakeUsers(
		user.User{ID: 1, Email: "admin@example.com", FirstName: "Ada", LastName: "Admin", Role: model.RoleAdmin},
		user.User{ID: 2, Email: "awa@example.com", FirstName: "Awa", LastName: "Diallo", Role: model.RoleStudent},
		user.User{ID: 3, Email: "paul@example.com", FirstName: "Paul", LastName: "Martin", Role: model.RoleStudent},
	)
}

func (f *fakeUsers) Create(_ context.Context, u *user.User) (*user.User, error) {
	f.nextID++
	created := *u
	created.ID = f.nextID
	created.CreatedAt = fixedNow
	f.rows[created.ID] = &created
	return &created, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := f.rows[id]
	if !ok {
		return nil, notFound("users", id)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.rows {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, notFound("users", email)
}

func (f *fakeUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUsers) List(_ context.Context, q *user.ListUsersQuery) ([]user.User, int64, error) {
	out := []user.User{}
	for _, u := range f.rows {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUsers) Update(_ context.Context, id int64, p *user.UpdateProfilePayload, role *model.Role) (*user.User, error) {
	u, ok := f.rows[id]
	if !ok {
		return nil, notFound("users", id)
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Phone != nil {
		u.Phone = p.Phone
	}
	if p.School != nil {
		u.School = p.School
	}
	if p.Program != nil {
		u.Program = p.Program
	}
	if role != nil {
		u.Role = *role
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return notFound("users", id)
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeUsers) Stats(context.Context) (*user.Stats, error) {
	return &user.Stats{Total: int64(len(f.rows))}, nil
}

type fakeFiles struct {
	removed []string
	missing map[string]bool
}

func (f *fakeFiles) Remove(path string) error {
	f.removed = append(f.removed, path)
	return nil
}

func (f *fakeFiles) Locate(path string) (string, error) {
	if f.missing[path] {
		return "", fmt.Errorf("failed to stat upload %q: %w", path, os.ErrNotExist)
	}
	return "/srv/uploads/" + path, nil
}

func ptr[T any](v T) *T { return &v }
