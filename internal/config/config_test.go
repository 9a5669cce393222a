package config_test

import (
	"os"
	"path/filepath"

	"github.com/logandonley/fontlist/internal/config"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	var tempDir string

	writeConfig := func(name, body string) string {
		path := filepath.Join(tempDir, name)
		Expect(os.WriteFile(path, []byte(body), 0644)).To(Succeed())
		return path
	}

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "config-test-*")
		Expect(err).NotTo(HaveOccurred())

		for _, key := range []string{"FONTLIST_WATCH", "FONTLIST_LOG_LEVEL", "FONTLIST_GEOMETRY_FILE"} {
			GinkgoT().Setenv(key, "")
			os.Unsetenv(key)
		}
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	It("should use defaults when no config file exists", func() {
		cfg, err := config.Load(tempDir, "")
		Expect(err).NotTo(HaveOccurred())

		Expect(cfg.GeometryFile).To(Equal(filepath.Join(tempDir, config.GeometryFileName)))
		Expect(cfg.FontDirs).To(BeEmpty())
		Expect(cfg.IncludeSystemDirs).To(BeTrue())
		Expect(cfg.Watch).To(BeTrue())
		Expect(cfg.ScanConcurrency).To(BeZero())
		Expect(cfg.Log.Level).To(Equal("info"))
		Expect(cfg.Log.Format).To(Equal("console"))
	})

	It("should read config.yaml from the config directory", func() {
		writeConfig(config.FileName, `
geometry_file: /tmp/elsewhere.txt
font_dirs:
  - /opt/fonts
  - "  "
include_system_dirs: false
scan_concurrency: 4
log:
  level: DEBUG
  format: json
`)

		loader := config.NewLoader(tempDir, "")
		cfg, err := loader.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(loader.Used()).To(Equal(filepath.Join(tempDir, config.FileName)))

		Expect(cfg.GeometryFile).To(Equal("/tmp/elsewhere.txt"))
		Expect(cfg.FontDirs).To(Equal([]string{"/opt/fonts"}))
		Expect(cfg.IncludeSystemDirs).To(BeFalse())
		Expect(cfg.ScanConcurrency).To(Equal(4))
		Expect(cfg.Log.Level).To(Equal("debug"))
		Expect(cfg.Log.Format).To(Equal("json"))
		Expect(cfg.Logging().Format).To(Equal("json"))
	})

	It("should let the environment override the file", func() {
		writeConfig(config.FileName, "watch: true\nlog:\n  level: info\n")
		GinkgoT().Setenv("FONTLIST_WATCH", "false")
		GinkgoT().Setenv("FONTLIST_LOG_LEVEL", "warn")

		cfg, err := config.Load(tempDir, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Watch).To(BeFalse())
		Expect(cfg.Log.Level).To(Equal("warn"))
	})

	It("should read an explicit config path", func() {
		path := writeConfig("custom.yaml", "geometry_file: custom.txt\n")

		cfg, err := config.Load(filepath.Join(tempDir, "unused"), path)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.GeometryFile).To(Equal("custom.txt"))
	})

	It("should fail when an explicit config path is missing", func() {
		_, err := config.Load(tempDir, filepath.Join(tempDir, "nope.yaml"))
		Expect(err).To(MatchError(ContainSubstring("reading config file")))
	})

	It("should reject malformed YAML", func() {
		writeConfig(config.FileName, "log: [unterminated\n")

		_, err := config.Load(tempDir, "")
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("validation",
		func(body, message string) {
			writeConfig(config.FileName, body)

			_, err := config.Load(tempDir, "")
			Expect(err).To(MatchError(ContainSubstring(message)))
		},
		Entry("unknown level", "log:\n  level: chatty\n", "unknown log level"),
		Entry("unknown format", "log:\n  format: xml\n", "unknown log format"),
		Entry("negative concurrency", "scan_concurrency: -1\n", "must not be negative"),
		Entry("empty geometry file", "geometry_file: \"\"\n", "geometry_file must not be empty"),
	)
})
