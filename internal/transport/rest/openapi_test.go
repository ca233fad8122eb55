package rest_test

import (
	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OpenAPI document", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())

		Expect(doc.Validate(loader.Context)).To(Succeed())
	})

	It("should document every served endpoint", func() {
		for _, path := range []string{
			"/auth/register",
			"/auth/login",
			"/users/me",
			"/roles",
			"/roles/{id}",
			"/roles/{id}/permissions",
			"/admin/users",
			"/health",
			"/ping",
		} {
			Expect(doc.Paths.Find(path)).NotTo(BeNil(), path)
		}
	})

	It("should declare the bearer security scheme", func() {
		scheme := doc.Components.SecuritySchemes["bearerAuth"]
		Expect(scheme).NotTo(BeNil())
		Expect(scheme.Value.Type).To(Equal("http"))
		Expect(scheme.Value.Scheme).To(Equal("bearer"))
	})

	It("should share one error shape across failure responses", func() {
		errSchema := doc.Components.Schemas["Error"]
		Expect(errSchema).NotTo(BeNil())
		Expect(errSchema.Value.Properties).To(HaveKey("error"))
	})
})
