package platform_test

import (
	"os"
	"path/filepath"

	"github.com/logandonley/fontlist/internal/platform"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Platform", func() {
	var (
		tempDir string
		manager platform.Manager
	)

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "platform-test-*")
		Expect(err).NotTo(HaveOccurred())

		// Set up environment for testing
		GinkgoT().Setenv("HOME", tempDir)
		GinkgoT().Setenv("XDG_DATA_HOME", "")
		GinkgoT().Setenv("XDG_CONFIG_HOME", "")
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	Context("Linux Manager", func() {
		BeforeEach(func() {
			manager = platform.NewFor("linux")
		})

		It("should return correct font paths", func() {
			paths, err := manager.GetFontPaths()
			Expect(err).NotTo(HaveOccurred())

			Expect(paths.SystemDirs).To(ConsistOf("/usr/share/fonts", "/usr/local/share/fonts"))
			Expect(paths.UserDirs).To(ContainElement(filepath.Join(tempDir, ".local/share/fonts")))
		})

		It("should honour XDG_DATA_HOME", func() {
			GinkgoT().Setenv("XDG_DATA_HOME", filepath.Join(tempDir, "data"))

			paths, err := manager.GetFontPaths()
			Expect(err).NotTo(HaveOccurred())
			Expect(paths.UserDirs).To(ContainElement(filepath.Join(tempDir, "data", "fonts")))
		})

		It("should not create any directories", func() {
			_, err := manager.GetFontPaths()
			Expect(err).NotTo(HaveOccurred())

			_, err = os.Stat(filepath.Join(tempDir, ".local"))
			Expect(os.IsNotExist(err)).To(BeTrue())
		})

		It("should place config under XDG_CONFIG_HOME when set", func() {
			GinkgoT().Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, "cfg"))

			dir, err := manager.ConfigDir()
			Expect(err).NotTo(HaveOccurred())
			Expect(dir).To(Equal(filepath.Join(tempDir, "cfg", platform.AppName)))
		})

		It("should fall back to ~/.config", func() {
			dir, err := manager.ConfigDir()
			Expect(err).NotTo(HaveOccurred())
			Expect(dir).To(Equal(filepath.Join(tempDir, ".config", platform.AppName)))
		})
	})

	Context("Darwin Manager", func() {
		BeforeEach(func() {
			manager = platform.NewFor("darwin")
		})

		It("should return correct font paths", func() {
			paths, err := manager.GetFontPaths()
			Expect(err).NotTo(HaveOccurred())

			Expect(paths.SystemDirs).To(ContainElement("/Library/Fonts"))
			Expect(paths.UserDirs).To(ConsistOf(filepath.Join(tempDir, "Library/Fonts")))
		})

		It("should list user directories before system ones", func() {
			paths, err := manager.GetFontPaths()
			Expect(err).NotTo(HaveOccurred())

			all := paths.All()
			Expect(all[0]).To(Equal(filepath.Join(tempDir, "Library/Fonts")))
			Expect(all).To(HaveLen(3))
		})

		It("should use Application Support for config", func() {
			dir, err := manager.ConfigDir()
			Expect(err).NotTo(HaveOccurred())
			Expect(dir).To(HaveSuffix(filepath.Join("Application Support", platform.AppName)))
		})
	})
})
