package dashclient_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/weelink/dashctl/cmd/dashctl/dashclient"
	"github.com/weelink/dashctl/pkg/config"
	"github.com/weelink/dashctl/pkg/credentials"
)

var _ = Describe("New", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "dashctl-dashclient-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("fails without a session", func() {
		_, _, err := dashclient.New(tmpDir)
		Expect(err).To(MatchError(credentials.ErrNotLoggedIn))
	})

	It("uses the server the session was issued by", func() {
		mgr, err := credentials.NewManager(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(mgr.SetSession(credentials.Session{Server: "http://dash.local/api", Username: "admin", Token: "tok"})).To(Succeed())

		client, session, err := dashclient.New(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(session.Username).To(Equal("admin"))
		Expect(client.URL("/bot/list")).To(Equal("http://dash.local/api/bot/list"))
	})

	It("falls back to the configured server for sessions without one", func() {
		cfger, err := config.NewConfiger(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfger.SetConfigValue("server.url", "http://configured:7070/api")).To(Succeed())

		mgr, err := credentials.NewManager(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(mgr.SetSession(credentials.Session{Username: "admin", Token: "tok"})).To(Succeed())

		client, session, err := dashclient.New(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(session.Server).To(Equal("http://configured:7070/api"))
		Expect(client.URL("plugin/list")).To(Equal("http://configured:7070/api/plugin/list"))
	})
})

var _ = Describe("ParseAssignments", func() {
	It("splits on the first equals sign", func() {
		Expect(dashclient.ParseAssignments([]string{"a=1", "url=http://x?y=z", "empty="})).To(Equal(map[string]string{
			"a":     "1",
			"url":   "http://x?y=z",
			"empty": "",
		}))
	})

	It("rejects arguments without a key", func() {
		_, err := dashclient.ParseAssignments([]string{"=1"})
		Expect(err).To(HaveOccurred())
		_, err = dashclient.ParseAssignments([]string{"novalue"})
		Expect(err).To(HaveOccurred())
	})
})
