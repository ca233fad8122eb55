package user_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/frahmantamala/user-management/internal"
	"github.com/frahmantamala/user-management/internal/tokengate"
	"github.com/frahmantamala/user-management/internal/user"
)

type fakeService struct {
	users map[int64]*user.User
	list  []*user.User
}

func (f *fakeService) GetByID(userID int64) (*user.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeService) List(limit, offset int) ([]*user.User, error) {
	return f.list, nil
}

var _ = Describe("User Handler", func() {
	var (
		svc     *fakeService
		handler *user.Handler
	)

	BeforeEach(func() {
		svc = &fakeService{
			users: map[int64]*user.User{
				1: {ID: 1, Username: "alice", Email: "alice@example.com", RoleID: 2, RoleName: "Guest", IsActive: true},
			},
		}
		handler = user.NewHandler(svc)
	})

	withIdentity := func(req *http.Request, userID string) *http.Request {
		ctx := tokengate.ContextWithIdentity(req.Context(), tokengate.Identity{
			UserID:   userID,
			Username: "alice",
		})
		return req.WithContext(ctx)
	}

	Describe("GET /users/me", func() {
		It("should return the user behind the token identity", func() {
			req := withIdentity(httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil), "1")
			w := httptest.NewRecorder()

			handler.GetCurrentUser(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var u user.User
			Expect(json.NewDecoder(w.Body).Decode(&u)).To(Succeed())
			Expect(u.Username).To(Equal("alice"))
			Expect(u.RoleName).To(Equal("Guest"))
		})

		It("should answer 401 without an identity in the context", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
			w := httptest.NewRecorder()

			handler.GetCurrentUser(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should answer 401 for a non-numeric user id claim", func() {
			req := withIdentity(httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil), "not-a-number")
			w := httptest.NewRecorder()

			handler.GetCurrentUser(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should answer 404 when the account no longer exists", func() {
			req := withIdentity(httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil), "42")
			w := httptest.NewRecorder()

			handler.GetCurrentUser(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))

			var body map[string]string
			Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
			Expect(body["error"]).NotTo(BeEmpty())
		})
	})

	Describe("GET /admin/users", func() {
		It("should return the user page", func() {
			svc.list = []*user.User{
				{ID: 1, Username: "alice"},
				{ID: 2, Username: "bob"},
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users?limit=10&offset=0", nil)
			w := httptest.NewRecorder()

			handler.ListUsers(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp user.ListResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Users).To(HaveLen(2))
		})
	})
})
