package doctor

import (
	"context"
	"strings"
	"testing"
)


type mockRepo struct {
	data   map[int]*Doctor
	nextID int
}

func newMockRepo() *mockRepo {
	return &mockRepo{data: make(map[int]*Doctor), nextID: 1}
}

func (m *mockRepo) Create(_ context.Context, d *Doctor) error {
	d.ID = m.nextID
	m.nextID++
	m.data[d.ID] = d
	return nil
}
func (m *mockRepo) GetByID(_ context.Context, id int) (*Doctor, error) {
	if d, ok := m.data[id]; ok {
		return d, nil
	}
	return nil, ErrNotFound
}
func (m *mockRepo) GetByEmail(_ context.Context, email string) (*Doctor, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, d := range m.data {
		if d.Email == email {
			return d, nil
		}
	}
	return nil, ErrNotFound
}
func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Doctor, int, error) {
	var out []*Doctor
	for _, d := range m.data {
		out = append(out, d)
	}
	return out, len(out), nil
}
func (m *mockRepo) ListByDept(_ context.Context, dept string) ([]*Doctor, error) {
	var out []*Doctor
	for _, d := range m.data {
		if d.Dept == dept {
			out = append(out, d)
		}
	}
	return out, nil
}


func TestService_Create(t *testing.T) {
	svc := NewService(newMockRepo())
	d := &Doctor{Name: "Dr. Malhotra", Dept: "Cardiology", Email: "  Malhotra@MediFlow.com ", PasswordHash: "hash"}
	if err := svc.Create(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Email != "malhotra@mediflow.com" {
		t.Errorf("expected email normalized to lower case, got %q", d.Email)
	}
	if d.Color == "" {
		t.Error("expected default color to be applied")
	}
}

func TestService_Create_MissingFields(t *testing.T) {
	svc := NewService(newMockRepo())
	cases := []*Doctor{
		{Dept: "Cardiology", Email: "a@b.com", PasswordHash: "h"},
		{Name: "Dr. A", Email: "a@b.com", PasswordHash: "h"},
		{Name: "Dr. A", Dept: "Cardiology", PasswordHash: "h"},
		{Name: "Dr. A", Dept: "Cardiology", Email: "a@b.com"},
	}
	for i, d := range cases {
		if err := svc.Create(context.Background(), d); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestService_GetByEmail_CaseInsensitive(t *testing.T) {
	svc := NewService(newMockRepo())
	d := &Doctor{Name: "Dr. Rao", Dept: "Neurology", Email: "rao@mediflow.com", PasswordHash: "hash"}
	if err := svc.Create(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.GetByEmail(context.Background(), "RAO@MediFlow.COM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != d.ID {
		t.Errorf("expected doctor %d, got %d", d.ID, got.ID)
	}
}

func TestService_ListByDept(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	for _, d := range []*Doctor{
		{Name: "Dr. A", Dept: "Cardiology", Email: "a@x.com", PasswordHash: "h"},
		{Name: "Dr. B", Dept: "Cardiology", Email: "b@x.com", PasswordHash: "h"},
		{Name: "Dr. C", Dept: "Neurology", Email: "c@x.com", PasswordHash: "h"},
	} {
		if err := svc.Create(context.Background(), d); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	cards, err := svc.ListByDept(context.Background(), "Cardiology")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 2 {
		t.Errorf("expected 2 cardiologists, got %d", len(cards))
	}
}

func TestDoctor_Initials(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Dr. Anil Malhotra", "DA"},
		{"Priya Rao", "PR"},
		{"singleword", ""},
	}
	for _, tc := range cases {
		d := &Doctor{Name: tc.name}
		if got := d.Initials(); got != tc.want {
			t.Errorf("Initials(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
