package user_test

import (
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/frahmantamala/user-management/internal"
	"github.com/frahmantamala/user-management/internal/user"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Suite")
}

type fakeRepo struct {
	users       map[int64]*user.User
	permissions map[int64][]string
	listedLimit int
	listedOff   int
	listErr     error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:       map[int64]*user.User{},
		permissions: map[int64][]string{},
	}
}

func (f *fakeRepo) GetByID(id int64) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeRepo) List(limit, offset int) ([]*user.User, error) {
	f.listedLimit = limit
	f.listedOff = offset
	if f.listErr != nil {
		return nil, f.listErr
	}
	return nil, nil
}

func (f *fakeRepo) GetRolePermissions(roleID int64) ([]string, error) {
	return f.permissions[roleID], nil
}

var _ = Describe("User Service", func() {
	var (
		repo *fakeRepo
		svc  *user.Service
	)

	BeforeEach(func() {
		repo = newFakeRepo()
		svc = user.NewService(repo)
	})

	Describe("GetByID", func() {
		BeforeEach(func() {
			repo.users[1] = &user.User{ID: 1, Username: "alice", RoleID: 99, RoleName: "Admin"}
			repo.permissions[99] = []string{"manage_roles", "manage_users"}
		})

		It("should attach the role's permissions", func() {
			u, err := svc.GetByID(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Username).To(Equal("alice"))
			Expect(u.Permissions).To(Equal([]string{"manage_roles", "manage_users"}))
		})

		It("should propagate the not-found error", func() {
			_, err := svc.GetByID(404)
			Expect(errors.Is(err, apperrors.ErrUserNotFound)).To(BeTrue())

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(404))
		})
	})

	Describe("List", func() {
		It("should clamp a non-positive limit to the default", func() {
			_, err := svc.List(0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.listedLimit).To(Equal(20))
		})

		It("should clamp an oversized limit to the default", func() {
			_, err := svc.List(1000, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.listedLimit).To(Equal(20))
		})

		It("should clamp a negative offset to zero", func() {
			_, err := svc.List(10, -5)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.listedLimit).To(Equal(10))
			Expect(repo.listedOff).To(Equal(0))
		})
	})
})

var _ = Describe("User Permissions", func() {
	It("should match any of the required permissions", func() {
		u := &user.User{Permissions: []string{"manage_users"}}
		Expect(u.HasPermission("manage_users")).To(BeTrue())
		Expect(u.HasPermission("manage_roles")).To(BeFalse())
		Expect(u.HasAnyPermission([]string{"manage_roles", "manage_users"})).To(BeTrue())
		Expect(u.HasAnyPermission([]string{"manage_roles"})).To(BeFalse())
	})

	It("should recognize the admin role by name", func() {
		Expect((&user.User{RoleName: "Admin"}).IsAdmin()).To(BeTrue())
		Expect((&user.User{RoleName: "Guest"}).IsAdmin()).To(BeFalse())
	})
})
