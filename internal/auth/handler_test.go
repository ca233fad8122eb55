package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/frahmantamala/user-management/internal/auth"
	authPostgres "github.com/frahmantamala/user-management/internal/auth/postgres"
	userDatamodel "github.com/frahmantamala/user-management/internal/core/datamodel/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Auth Handler Integration", func() {
	var (
		db      *gorm.DB
		handler *auth.Handler
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&userDatamodel.User{})
		Expect(err).NotTo(HaveOccurred())

		repo := authPostgres.NewRepository(db)
		issuer := auth.NewJWTIssuer("test-secret", "user-management", "user-management-clients", time.Hour)
		service := auth.NewService(repo, issuer, 4)
		handler = auth.NewHandler(service)
	})

	register := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
		w := httptest.NewRecorder()
		handler.Register(w, req)
		return w
	}

	login := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
		w := httptest.NewRecorder()
		handler.Login(w, req)
		return w
	}

	Describe("POST /auth/register", func() {
		It("should register a new user", func() {
			w := register(`{"username":"alice","full_name":"Alice Example","email":"alice@example.com","password":"s3cret-pass"}`)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

			var created auth.RegisteredUser
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.Username).To(Equal("alice"))
			Expect(created.Email).To(Equal("alice@example.com"))
		})

		It("should answer 400 with an error body for a duplicate user", func() {
			Expect(register(`{"username":"alice","email":"alice@example.com","password":"s3cret-pass"}`).Code).To(Equal(http.StatusOK))

			w := register(`{"username":"alice","email":"alice@example.com","password":"s3cret-pass"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var body map[string]string
			Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
			Expect(body["error"]).NotTo(BeEmpty())
		})

		It("should answer 400 for invalid input", func() {
			w := register(`{"username":"al","email":"nope","password":"123"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should answer 400 for a malformed body", func() {
			w := register(`{not json`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /auth/login", func() {
		BeforeEach(func() {
			Expect(register(`{"username":"alice","email":"alice@example.com","password":"s3cret-pass"}`).Code).To(Equal(http.StatusOK))
		})

		It("should return a signed token for valid credentials", func() {
			w := login(`{"username_or_email":"alice","password":"s3cret-pass"}`)
			Expect(w.Code).To(Equal(http.StatusOK))

			var result auth.LoginResult
			Expect(json.NewDecoder(w.Body).Decode(&result)).To(Succeed())
			Expect(result.Username).To(Equal("alice"))
			Expect(strings.Count(result.Token, ".")).To(Equal(2))
		})

		It("should accept the email as identifier", func() {
			w := login(`{"username_or_email":"alice@example.com","password":"s3cret-pass"}`)
			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("should answer 401 for a wrong password", func() {
			w := login(`{"username_or_email":"alice","password":"wrong"}`)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))

			var body map[string]string
			Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
			Expect(body["error"]).NotTo(BeEmpty())
		})

		It("should answer 401 for an unknown user", func() {
			w := login(`{"username_or_email":"nobody","password":"s3cret-pass"}`)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should answer 401 for an inactive account", func() {
			Expect(db.Model(&userDatamodel.User{}).
				Where("username = ?", "alice").
				Update("is_active", false).Error).NotTo(HaveOccurred())

			w := login(`{"username_or_email":"alice","password":"s3cret-pass"}`)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
