package plugincmder_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	plugincmder "github.com/weelink/dashctl/cmd/dashctl/plugin"
	"github.com/weelink/dashctl/pkg/credentials"
)

type call struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

var _ = Describe("Plugin command", func() {
	var (
		tmpDir string
		server *httptest.Server
		calls  chan call
		out    *bytes.Buffer
		conf   string
	)

	run := func(args ...string) error {
		cmd := plugincmder.NewPluginCmd()
		cmd.PersistentFlags().String("config-dir", "", "Override path to .dashctl/ config directory")
		out = &bytes.Buffer{}
		cmd.SetOut(out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(append(args, "--config-dir", tmpDir))
		return cmd.Execute()
	}

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "dashctl-plugin-test-*")
		Expect(err).NotTo(HaveOccurred())

		conf = `{"scheme":[{"key":"greeting","type":"string","description":"Reply text"},{"key":"loud","type":"boolean","default":false}],"conf":{"greeting":"hi","loud":false,"legacy":3}}`
		calls = make(chan call, 8)
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := call{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
			if data, _ := io.ReadAll(r.Body); len(data) > 0 {
				_ = json.Unmarshal(data, &c.Body)
			}
			calls <- c

			switch {
			case r.URL.Path == "/plugin/list":
				_, _ = w.Write([]byte(`{"plugins":[{"name":"echo","author":"wl","version":"1.2.0","desc":"repeats messages","enable":true},{"name":"dice","author":"wl","version":"0.1.0","desc":"","enable":false}]}`))
			case r.URL.Path == "/plugin/config" && r.Method == http.MethodGet:
				_, _ = w.Write([]byte(conf))
			case r.URL.Path == "/plugin/reload":
				_, _ = w.Write([]byte(`{"status_code":500,"detail":"plugin not loaded"}`))
			default:
				_, _ = w.Write([]byte("null"))
			}
		}))

		mgr, err := credentials.NewManager(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(mgr.SetSession(credentials.Session{Server: server.URL, Username: "admin", Token: "tok"})).To(Succeed())
	})

	AfterEach(func() {
		server.Close()
		os.RemoveAll(tmpDir)
	})

	It("lists plugins with their state", func() {
		Expect(run("list")).To(Succeed())
		Expect(out.String()).To(MatchRegexp(`echo\s+1\.2\.0\s+wl\s+repeats messages\s+enabled`))
		Expect(out.String()).To(MatchRegexp(`dice\s+0\.1\.0\s+wl\s+disabled`))
	})

	DescribeTable("single plugin actions",
		func(action, path, query string, body map[string]any) {
			Expect(run(action, "echo")).To(Succeed())

			var c call
			Eventually(calls).Should(Receive(&c))
			Expect(c.Method).To(Equal(http.MethodPost))
			Expect(c.Path).To(Equal(path))
			Expect(c.Query).To(Equal(query))
			Expect(c.Body).To(Equal(body))
		},
		Entry("enable", "enable", "/plugin/switch", "", map[string]any{"plugin_name": "echo", "enable": true}),
		Entry("disable", "disable", "/plugin/switch", "", map[string]any{"plugin_name": "echo", "enable": false}),
		Entry("uninstall", "uninstall", "/plugin/uninstall", "plugin_name=echo", map[string]any(nil)),
	)

	It("surfaces errors the server reports in the body", func() {
		Expect(run("reload", "echo")).To(MatchError(ContainSubstring("plugin not loaded")))
	})

	It("restarts the plugin manager", func() {
		Expect(run("restart")).To(Succeed())
		var c call
		Eventually(calls).Should(Receive(&c))
		Expect(c.Path).To(Equal("/plugin/restart"))
	})

	Describe("config", func() {
		It("shows scheme keys first, then unknown stored keys", func() {
			Expect(run("config", "echo")).To(Succeed())

			s := out.String()
			Expect(s).To(MatchRegexp(`greeting\s+hi\s+Reply text`))
			Expect(s).To(MatchRegexp(`loud\s+false`))
			Expect(s).To(MatchRegexp(`legacy\s+3`))
			Expect(bytes.Index(out.Bytes(), []byte("loud"))).To(BeNumerically("<", bytes.Index(out.Bytes(), []byte("legacy"))))
		})

		It("says so when a plugin has no configuration", func() {
			conf = `{"scheme":{},"conf":{}}`
			Expect(run("config", "bare")).To(Succeed())
			Expect(out.String()).To(ContainSubstring("Plugin has no configuration."))
		})

		It("sets values typed by the scheme", func() {
			Expect(run("config", "set", "echo", "loud=true", "greeting=hello there")).To(Succeed())

			var c call
			Eventually(calls).Should(Receive(&c))
			Expect(c.Method).To(Equal(http.MethodGet))

			Eventually(calls).Should(Receive(&c))
			Expect(c.Method).To(Equal(http.MethodPost))
			Expect(c.Path).To(Equal("/plugin/config"))
			Expect(c.Body).To(Equal(map[string]any{
				"plugin_name": "echo",
				"conf":        map[string]any{"loud": true, "greeting": "hello there"},
			}))
		})

		It("rejects malformed assignments before calling the server", func() {
			Expect(run("config", "set", "echo", "loud")).To(MatchError(ContainSubstring("expected key=value")))
			Consistently(calls).ShouldNot(Receive())
		})

		It("rejects a value of the wrong type", func() {
			Expect(run("config", "set", "echo", "loud=maybe")).To(MatchError(ContainSubstring("expected true or false")))
		})
	})
})
