package adaptercmder_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	adaptercmder "github.com/weelink/dashctl/cmd/dashctl/adapter"
	"github.com/weelink/dashctl/pkg/credentials"
)

var _ = Describe("Adapter command", func() {
	var (
		tmpDir string
		server *httptest.Server
		out    *bytes.Buffer
	)

	run := func(args ...string) error {
		cmd := adaptercmder.NewAdapterCmd()
		cmd.PersistentFlags().String("config-dir", "", "Override path to .dashctl/ config directory")
		out = &bytes.Buffer{}
		cmd.SetOut(out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(append(args, "--config-dir", tmpDir))
		return cmd.Execute()
	}

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "dashctl-adapter-test-*")
		Expect(err).NotTo(HaveOccurred())

		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/adapter/list":
				_, _ = w.Write([]byte(`{"adapters":[{"id":"wx855","name":"WeChat 855","desc":"pad protocol","platform":"ipad","version":"8.0.55"}]}`))
			case "/api/adapter/":
				if r.URL.Query().Get("adapter_id") != "wx855" {
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"detail":"unknown adapter"}`))
					return
				}
				_, _ = w.Write([]byte(`{"adapter":{"id":"wx855","name":"WeChat 855","desc":"pad protocol","platform":"ipad","version":"8.0.55","fields":[
					{"label":"Host","key":"host","type":"string","required":true,"default":null},
					{"label":"Port","key":"port","type":"number","default":8855}]}}`))
			case "/api/adapter/docs":
				_, _ = w.Write([]byte(`{"docs":"# Setup\n\nScan the login code with the phone."}`))
			}
		}))

		mgr, err := credentials.NewManager(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(mgr.SetSession(credentials.Session{Server: server.URL + "/api", Username: "admin", Token: "tok"})).To(Succeed())
	})

	AfterEach(func() {
		server.Close()
		os.RemoveAll(tmpDir)
	})

	It("lists adapters", func() {
		Expect(run("list")).To(Succeed())
		Expect(out.String()).To(MatchRegexp(`wx855\s+WeChat 855\s+ipad\s+8\.0\.55\s+pad protocol`))
	})

	It("shows an adapter's fields and marks required ones", func() {
		Expect(run("show", "wx855")).To(Succeed())
		Expect(out.String()).To(ContainSubstring("WeChat 855"))
		Expect(out.String()).To(MatchRegexp(`host\s+string\s+Host\s+required`))
		Expect(out.String()).To(MatchRegexp(`port\s+number\s+8855\s+Port`))
	})

	It("reports an unknown adapter", func() {
		Expect(run("show", "nope")).To(MatchError(ContainSubstring("unknown adapter")))
	})

	It("renders the setup guide", func() {
		Expect(run("docs", "wx855")).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Setup"))
		Expect(out.String()).To(ContainSubstring("Scan the login code with the phone."))
	})
})
