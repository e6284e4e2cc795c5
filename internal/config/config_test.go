package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/skaphos/testapp/internal/config"
)

var _ = Describe("Config", func() {
	BeforeEach(func() {
		prev, had := os.LookupEnv(config.EnvVar)
		Expect(os.Unsetenv(config.EnvVar)).To(Succeed())
		DeferCleanup(func() {
			if had {
				_ = os.Setenv(config.EnvVar, prev)
			}
		})
	})

	It("resolves config path from override directory", func() {
		path, err := config.ConfigPath(filepath.Join("C:", "tmp", "testapp"))
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(HaveSuffix(filepath.Join("testapp", "config.yaml")))
	})

	It("resolves config path from override file", func() {
		path, err := config.ConfigPath(filepath.Join("C:", "tmp", "custom.yml"))
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(HaveSuffix(filepath.Join("tmp", "custom.yml")))
	})

	It("resolves config path from env", func() {
		Expect(os.Setenv(config.EnvVar, filepath.Join("C:", "cfg", "config.yaml"))).To(Succeed())
		defer func() { _ = os.Unsetenv(config.EnvVar) }()
		path, err := config.ConfigPath("")
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(HaveSuffix(filepath.Join("cfg", "config.yaml")))
		Expect(config.Explicit("")).To(BeTrue())
	})

	It("resolves init path to local dotfile by default", func() {
		dir := GinkgoT().TempDir()
		path, err := config.InitConfigPath("", dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(Equal(filepath.Join(dir, ".testapp.yaml")))
	})

	It("resolves runtime config from nearest parent dotfile", func() {
		dir := GinkgoT().TempDir()
		parentPath := filepath.Join(dir, ".testapp.yaml")
		Expect(os.WriteFile(parentPath, []byte("greeting:\n  name: parent\n"), 0o644)).To(Succeed())

		nested := filepath.Join(dir, "a", "b", "c")
		Expect(os.MkdirAll(nested, 0o755)).To(Succeed())

		path, err := config.ResolveConfigPath("", nested)
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(Equal(parentPath))
	})

	It("prefers nearer dotfile over farther parent", func() {
		dir := GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, ".testapp.yaml"), []byte("{}\n"), 0o644)).To(Succeed())

		childDir := filepath.Join(dir, "a")
		Expect(os.MkdirAll(childDir, 0o755)).To(Succeed())
		childPath := filepath.Join(childDir, ".testapp.yaml")
		Expect(os.WriteFile(childPath, []byte("{}\n"), 0o644)).To(Succeed())

		path, err := config.ResolveConfigPath("", childDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(Equal(childPath))
	})

	It("round-trips a saved config", func() {
		path := filepath.Join(GinkgoT().TempDir(), "nested", "config.yaml")
		cfg := config.DefaultConfig()
		cfg.Greeting.Name = "demo"
		Expect(config.Save(&cfg, path)).To(Succeed())

		loaded, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Greeting.Name).To(Equal("demo"))
		Expect(loaded.ColorEnabled()).To(BeTrue())
		Expect(loaded.APIVersion).To(Equal(config.ConfigAPIVersion))
	})

	It("applies defaults to a sparse file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "config.yaml")
		Expect(os.WriteFile(path, []byte("color: false\n"), 0o644)).To(Succeed())

		loaded, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Greeting.Name).To(Equal("testapp"))
		Expect(loaded.ColorEnabled()).To(BeFalse())
		Expect(loaded.Kind).To(Equal(config.ConfigKind))
	})

	It("rejects an unsupported apiVersion", func() {
		path := filepath.Join(GinkgoT().TempDir(), "config.yaml")
		Expect(os.WriteFile(path, []byte("apiVersion: skaphos.io/testapp/v9\n"), 0o644)).To(Succeed())

		_, err := config.Load(path)
		Expect(err).To(MatchError(ContainSubstring("unsupported config apiVersion")))
	})

	It("rejects malformed yaml", func() {
		path := filepath.Join(GinkgoT().TempDir(), "config.yaml")
		Expect(os.WriteFile(path, []byte("greeting: [\n"), 0o644)).To(Succeed())

		_, err := config.Load(path)
		Expect(err).To(MatchError(ContainSubstring("parse config")))
	})

	It("rejects a greeting name with control characters", func() {
		path := filepath.Join(GinkgoT().TempDir(), "config.yaml")
		Expect(os.WriteFile(path, []byte("greeting:\n  name: \"a\\tb\"\n"), 0o644)).To(Succeed())

		_, err := config.Load(path)
		Expect(err).To(MatchError(ContainSubstring("control character")))
	})

	It("falls back to defaults only when the file is optional", func() {
		missing := filepath.Join(GinkgoT().TempDir(), "missing.yaml")

		cfg, err := config.LoadOrDefault(missing, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Greeting.Name).To(Equal("testapp"))

		_, err = config.LoadOrDefault(missing, true)
		Expect(err).To(HaveOccurred())
	})

	It("refuses to save a nil config", func() {
		Expect(config.Save(nil, filepath.Join(GinkgoT().TempDir(), "config.yaml"))).NotTo(Succeed())
	})
})
