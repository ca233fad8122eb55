package role_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	userDatamodel "github.com/frahmantamala/user-management/internal/core/datamodel/user"
	"github.com/frahmantamala/user-management/internal/role"
	rolePostgres "github.com/frahmantamala/user-management/internal/role/postgres"
)

func TestRole(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Role Suite")
}

var _ = Describe("Role Handler Integration", func() {
	var router *chi.Mux

	BeforeEach(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&userDatamodel.Role{}, &userDatamodel.Permission{})
		Expect(err).NotTo(HaveOccurred())

		seedRoles := []userDatamodel.Role{
			{ID: userDatamodel.RoleIDUser, Name: "User", Description: "Registered user with standard access"},
			{ID: userDatamodel.RoleIDGuest, Name: "Guest", Description: "Default role for newly registered accounts"},
			{ID: userDatamodel.RoleIDAdmin, Name: "Admin", Description: "Full administrative access"},
		}
		Expect(db.Create(&seedRoles).Error).NotTo(HaveOccurred())

		seedPerms := []userDatamodel.Permission{
			{RoleID: userDatamodel.RoleIDAdmin, Name: "manage_users", Description: "Can list and administer user accounts"},
			{RoleID: userDatamodel.RoleIDAdmin, Name: "manage_roles", Description: "Can administer roles and permissions"},
		}
		Expect(db.Create(&seedPerms).Error).NotTo(HaveOccurred())

		repo := rolePostgres.NewRoleRepository(db)
		service := role.NewService(repo)
		handler := role.NewHandler(service)

		router = chi.NewRouter()
		router.Get("/roles", handler.GetRoles)
		router.Get("/roles/{id}", handler.GetRole)
		router.Get("/roles/{id}/permissions", handler.GetRolePermissions)
	})

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	Describe("GET /roles", func() {
		It("should list the seeded roles ordered by id", func() {
			w := get("/roles")
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp role.RolesResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Roles).To(HaveLen(3))
			Expect(resp.Roles[0].Name).To(Equal("User"))
			Expect(resp.Roles[1].Name).To(Equal("Guest"))
			Expect(resp.Roles[2].Name).To(Equal("Admin"))
		})
	})

	Describe("GET /roles/{id}", func() {
		It("should return one role", func() {
			w := get("/roles/99")
			Expect(w.Code).To(Equal(http.StatusOK))

			var r role.Role
			Expect(json.NewDecoder(w.Body).Decode(&r)).To(Succeed())
			Expect(r.ID).To(Equal(int64(99)))
			Expect(r.Name).To(Equal("Admin"))
		})

		It("should answer 404 for an unknown role", func() {
			w := get("/roles/7")
			Expect(w.Code).To(Equal(http.StatusNotFound))

			var body map[string]string
			Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
			Expect(body["error"]).NotTo(BeEmpty())
		})

		It("should answer 400 for a non-numeric id", func() {
			w := get("/roles/abc")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /roles/{id}/permissions", func() {
		It("should list the admin permissions sorted by name", func() {
			w := get("/roles/99/permissions")
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp role.PermissionsResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Permissions).To(HaveLen(2))
			Expect(resp.Permissions[0].Name).To(Equal("manage_roles"))
			Expect(resp.Permissions[1].Name).To(Equal("manage_users"))
		})

		It("should return an empty list for a role without permissions", func() {
			w := get("/roles/2/permissions")
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp role.PermissionsResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Permissions).To(BeEmpty())
		})

		It("should answer 404 for an unknown role", func() {
			w := get("/roles/7/permissions")
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
