package service

import (
	"context"
	"sync"

	"github.com/sangkips/academy-console/internal/domain/entity"
	"github.com/sangkips/academy-console/internal/infrastructure/backend"
)

type studentUpdate struct {
	ID     string
	Fields map[string]any
}

// fakeBackend stands in for the academy REST backend.
type fakeBackend struct {
	mu sync.Mutex

	loginResult *backend.LoginResult
	loginErr    error
	verifyErr   error
	verifyCalls int
	logoutCalls int

	numbers    *entity.ReceiptNumbers
	numbersErr error

	students       map[string]entity.Student
	studentErr     error
	onGetStudent   func(id string)
	listCalls      int
	createUserTok  string
	createUserErr  error
	createdUsers   []backend.StudentInput
	updates        []studentUpdate
	updateErr      error
	receipts       []entity.ReceiptRecord
	created        []*backend.ReceiptSubmission
	createErr      error
	createID       string
	altCounters    []string
	purgedStudents int
	purgedReceipts int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		loginResult: &backend.LoginResult{AuthToken: "tok", Username: "desk", Role: "admin"},
		numbers:     &entity.ReceiptNumbers{Standard: "120", Alternate: "7"},
		students:    map[string]entity.Student{},
		createID:    "rcpt-1",
	}
}

func (f *fakeBackend) addStudent(s entity.Student) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.students[s.ID] = s
}

func (f *fakeBackend) Login(_ context.Context, _ backend.LoginRequest) (*backend.LoginResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	r := *f.loginResult
	return &r, nil
}

func (f *fakeBackend) VerifyToken(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifyCalls++
	return f.verifyErr
}

func (f *fakeBackend) Logout(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	return nil
}

func (f *fakeBackend) NextReceiptNumbers(_ context.Context, _ string) (*entity.ReceiptNumbers, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.numbersErr != nil {
		return nil, f.numbersErr
	}
	n := *f.numbers
	return &n, nil
}

func (f *fakeBackend) GetStudent(_ context.Context, _, id string) (*entity.Student, error) {
	f.mu.Lock()
	hook := f.onGetStudent
	f.onGetStudent = nil
	f.mu.Unlock()
	if hook != nil {
		hook(id)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.studentErr != nil {
		return nil, f.studentErr
	}
	s, ok := f.students[id]
	if !ok {
		return nil, &backend.Error{Status: 404, Message: "User not found"}
	}
	return &s, nil
}

func (f *fakeBackend) ListStudents(_ context.Context, _ string) ([]entity.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.studentErr != nil {
		return nil, f.studentErr
	}
	out := make([]entity.Student, 0, len(f.students))
	for _, id := range sortedKeys(f.students) {
		out = append(out, f.students[id])
	}
	return out, nil
}

func (f *fakeBackend) CreateUser(_ context.Context, _ string, in backend.StudentInput) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdUsers = append(f.createdUsers, in)
	return f.createUserTok, f.createUserErr
}

func (f *fakeBackend) UpdateStudent(_ context.Context, _, id string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, studentUpdate{ID: id, Fields: fields})
	return f.updateErr
}

func (f *fakeBackend) CreateReceipt(_ context.Context, _ string, in *backend.ReceiptSubmission) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.createID, nil
}

func (f *fakeBackend) CreateAltReceipt(_ context.Context, _, counter string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.altCounters = append(f.altCounters, counter)
	return nil
}

func (f *fakeBackend) ListReceipts(_ context.Context, _ string) ([]entity.ReceiptRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.ReceiptRecord(nil), f.receipts...), nil
}

func (f *fakeBackend) GetReceipt(_ context.Context, _, id string) (*entity.ReceiptRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.receipts {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, backend.ErrReceiptNotFound
}

func (f *fakeBackend) PurgeStudents(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purgedStudents++
	return nil
}

func (f *fakeBackend) PurgeReceipts(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purgedReceipts++
	return nil
}

func sortedKeys(m map[string]entity.Student) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

type fakeRenderer struct {
	calls int
	err   error
}

func (r *fakeRenderer) Render(_ *entity.Receipt) ([]byte, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-fake"), nil
}

func testSession() *entity.ConsoleSession {
	return &entity.ConsoleSession{IDHash: HashSessionID("sid"), Token: "tok", Username: "desk", Role: "admin"}
}
