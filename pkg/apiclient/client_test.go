package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/weelink/dashctl/pkg/apiclient"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

var _ = Describe("Client", func() {
	var (
		server   *httptest.Server
		handler  http.HandlerFunc
		requests chan *http.Request
		bodies   chan loginRequest
	)

	BeforeEach(func() {
		requests = make(chan *http.Request, 4)
		bodies = make(chan loginRequest, 4)
		handler = nil

		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body loginRequest
			_ = json.NewDecoder(r.Body).Decode(&body)
			requests <- r.Clone(context.Background())
			bodies <- body
			handler(w, r)
		}))
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("Login", func() {
		It("posts credentials and returns the token", func() {
			handler = func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"token":"jwt-abc","username":"admin"}`))
			}

			c := apiclient.New(server.URL + "/api/")
			result, err := c.Login(context.Background(), "admin", "hunter2")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Token).To(Equal("jwt-abc"))
			Expect(result.Username).To(Equal("admin"))

			var req *http.Request
			Eventually(requests).Should(Receive(&req))
			Expect(req.Method).To(Equal(http.MethodPost))
			Expect(req.URL.Path).To(Equal("/api/auth/login"))
			Expect(req.Header.Get("Content-Type")).To(Equal("application/json"))
			Expect(req.Header.Get("Authorization")).To(BeEmpty())
			Eventually(bodies).Should(Receive(Equal(loginRequest{Username: "admin", Password: "hunter2"})))
		})

		It("turns an exception body sent with status 200 into an APIError", func() {
			handler = func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"status_code":401,"detail":"bad credentials","headers":null}`))
			}

			c := apiclient.New(server.URL)
			_, err := c.Login(context.Background(), "admin", "wrong")

			var apiErr *apiclient.APIError
			Expect(errors.As(err, &apiErr)).To(BeTrue())
			Expect(apiErr.StatusCode).To(Equal(http.StatusUnauthorized))
			Expect(apiErr.Detail).To(Equal("bad credentials"))
			Expect(err.Error()).To(Equal("unauthorized, please log in again: bad credentials"))
		})

		It("maps a non-2xx status to an APIError", func() {
			handler = func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTeapot)
			}

			c := apiclient.New(server.URL)
			_, err := c.Login(context.Background(), "admin", "pw")

			var apiErr *apiclient.APIError
			Expect(errors.As(err, &apiErr)).To(BeTrue())
			Expect(apiErr.StatusCode).To(Equal(http.StatusTeapot))
			Expect(err.Error()).To(Equal("request failed (418)"))
		})

		It("rejects a response without a token", func() {
			handler = func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"username":"admin"}`))
			}

			c := apiclient.New(server.URL)
			_, err := c.Login(context.Background(), "admin", "pw")
			Expect(err).To(MatchError(apiclient.ErrMissingToken))
		})
	})

	Describe("ResetPassword", func() {
		It("sends the bearer token and accepts a null body", func() {
			handler = func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`null`))
			}

			c := apiclient.New(server.URL, apiclient.WithToken("tok"))
			Expect(c.ResetPassword(context.Background(), "old", "new")).To(Succeed())

			var req *http.Request
			Eventually(requests).Should(Receive(&req))
			Expect(req.URL.Path).To(Equal("/auth/reset-pwd"))
			Expect(req.Header.Get("Authorization")).To(Equal("Bearer tok"))
		})

		It("reports a server side validation failure", func() {
			handler = func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"status_code":500,"detail":"empty password"}`))
			}

			c := apiclient.New(server.URL, apiclient.WithToken("tok"))
			err := c.ResetPassword(context.Background(), "old", "")
			Expect(err).To(MatchError(ContainSubstring("internal server error")))
		})
	})

	It("reports a network error when the server is gone", func() {
		url := server.URL
		server.Close()

		c := apiclient.New(url)
		_, err := c.Login(context.Background(), "admin", "pw")

		var apiErr *apiclient.APIError
		Expect(errors.As(err, &apiErr)).To(BeTrue())
		Expect(apiErr.StatusCode).To(BeZero())
		Expect(err.Error()).To(HavePrefix("network error, server did not respond"))
	})
})

var _ = Describe("StatusMessage", func() {
	DescribeTable("maps status codes",
		func(status int, want string) {
			Expect(apiclient.StatusMessage(status)).To(Equal(want))
		},
		Entry("bad request", 400, "bad request parameters"),
		Entry("unauthorized", 401, "unauthorized, please log in again"),
		Entry("forbidden", 403, "access denied"),
		Entry("not found", 404, "requested resource not found"),
		Entry("server error", 500, "internal server error"),
		Entry("other", 502, "request failed (502)"),
		Entry("no response", 0, "network error, server did not respond"),
	)
})

var _ = Describe("URL", func() {
	It("joins paths without doubling slashes", func() {
		c := apiclient.New("http://127.0.0.1:7070/api/")
		Expect(c.URL("/stream")).To(Equal("http://127.0.0.1:7070/api/stream"))
		Expect(c.URL("stream")).To(Equal("http://127.0.0.1:7070/api/stream"))
	})
})
