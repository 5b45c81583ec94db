package role

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medevel/hospital-api/internal/model"
	"github.com/medevel/hospital-api/internal/repository"
	apperrors "github.com/medevel/hospital-api/pkg/errors"
)

type fakeRoles struct {
	repository.RoleRepository
	records map[uuid.UUID]*model.Role
}

func newFakeRoles() *fakeRoles {
	return &fakeRoles{records: make(map[uuid.UUID]*model.Role)}
}

func (f *fakeRoles) Create(_ context.Context, role *model.Role) error {
	role.ID = uuid.New()
	copied := *role
	f.records[role.ID] = &copied
	return nil
}

func (f *fakeRoles) Get(_ context.Context, hospitalID, id uuid.UUID) (*model.Role, error) {
	r, ok := f.records[id]
	if !ok || r.HospitalID != hospitalID {
		return nil, apperrors.NotFound("role", nil)
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRoles) GetByName(_ context.Context, hospitalID uuid.UUID, name string) (*model.Role, error) {
	for _, r := range f.records {
		if r.HospitalID == hospitalID && r.Name == name {
			copied := *r
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("role", nil)
}

func (f *fakeRoles) Update(_ context.Context, role *model.Role) error {
	if _, ok := f.records[role.ID]; !ok {
		return apperrors.NotFound("role", nil)
	}
	copied := *role
	f.records[role.ID] = &copied
	return nil
}

func (f *fakeRoles) Delete(_ context.Context, hospitalID, id uuid.UUID) error {
	r, ok := f.records[id]
	if !ok || r.HospitalID != hospitalID {
		return apperrors.NotFound("role", nil)
	}
	delete(f.records, id)
	return nil
}

func TestCreateRoleNormalizesName(t *testing.T) {
	service := NewService(newFakeRoles())

	role, err := service.Create(context.Background(), uuid.New(), &model.CreateRoleRequest{Name: "  Nurse "})
	require.NoError(t, err)
	assert.Equal(t, "nurse", role.Name)
}

func TestCreateRoleReservedName(t *testing.T) {
	service := NewService(newFakeRoles())

	_, err := service.Create(context.Background(), uuid.New(), &model.CreateRoleRequest{Name: "Admin"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
}

func TestCreateRoleDuplicate(t *testing.T) {
	service := NewService(newFakeRoles())
	hospitalID := uuid.New()

	_, err := service.Create(context.Background(), hospitalID, &model.CreateRoleRequest{Name: "nurse"})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), hospitalID, &model.CreateRoleRequest{Name: "NURSE"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
}

func TestAdminRoleImmutable(t *testing.T) {
	repo := newFakeRoles()
	service := NewService(repo)
	hospitalID := uuid.New()

	admin := &model.Role{Base: model.Base{ID: uuid.New()}, HospitalID: hospitalID, Name: model.AdminRoleName}
	repo.records[admin.ID] = admin

	_, err := service.Update(context.Background(), hospitalID, admin.ID, &model.UpdateRoleRequest{Name: "superuser"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrForbidden))

	err = service.Delete(context.Background(), hospitalID, admin.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrForbidden))
}

func TestUpdateRoleToReservedName(t *testing.T) {
	service := NewService(newFakeRoles())
	hospitalID := uuid.New()

	role, err := service.Create(context.Background(), hospitalID, &model.CreateRoleRequest{Name: "nurse"})
	require.NoError(t, err)

	_, err = service.Update(context.Background(), hospitalID, role.ID, &model.UpdateRoleRequest{Name: "admin"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
}
