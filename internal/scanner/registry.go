package scanner

import (
	"path/filepath"
)

// Env carries everything the registry needs to build its categories.
type Env struct {
	Home string

	Apps       InstalledAppOracle
	Simulators SimulatorManager

	// LargeFileDir defaults to ~/Downloads.
	LargeFileDir string
	// LargeFileThreshold defaults to DefaultLargeFileThreshold.
	LargeFileThreshold int64

	// VendorPrefixes are bundle identifier prefixes never reported as
	// unused containers. Defaults to DefaultVendorPrefixes.
	VendorPrefixes []string
}

var DefaultVendorPrefixes = []string{"com.apple."}

// InvisibleFilePatterns are the Finder and Spotlight artifacts searched
// for under the home directory.
var InvisibleFilePatterns = []string{".DS_Store", ".AppleDouble", ".Spotlight-V100", ".TemporaryItems"}

// Registry returns the ordered category list: every Auto category first,
// then the Confirm ones. No filesystem access happens here.
func Registry(env Env) []Category {
	home := env.Home
	lib := filepath.Join(home, "Library")
	caches := filepath.Join(lib, "Caches")
	appSupport := filepath.Join(lib, "Application Support")
	containers := filepath.Join(lib, "Containers")
	xcode := filepath.Join(lib, "Developer", "Xcode")

	largeDir := env.LargeFileDir
	if largeDir == "" {
		largeDir = filepath.Join(home, "Downloads")
	}
	threshold := env.LargeFileThreshold
	if threshold <= 0 {
		threshold = DefaultLargeFileThreshold
	}
	prefixes := env.VendorPrefixes
	if prefixes == nil {
		prefixes = DefaultVendorPrefixes
	}

	return []Category{
		{
			Name:        "User Caches",
			Description: "Per-user application caches",
			Paths:       StaticPaths(caches),
			Safety:      Auto,
		},
		{
			Name:        "User Logs",
			Description: "Per-user application logs",
			Paths:       StaticPaths(filepath.Join(lib, "Logs")),
			Safety:      Auto,
		},
		{
			Name:        "Application Containers: Caches & Logs",
			Description: "Caches and logs inside sandboxed app containers",
			Paths:       DynamicResolver(ContainerCachesAndLogs(containers)),
			Safety:      Auto,
		},
		{
			Name:        "Application Support: Caches & Logs",
			Description: "Caches and logs under Application Support",
			Paths:       DynamicResolver(Subfolders(appSupport, "Caches", "Logs")),
			Safety:      Auto,
		},
		{
			Name:        "System Temporary Files",
			Description: "Temporary files left by the system and apps",
			Paths:       StaticPaths("/private/tmp", "/var/tmp", "/private/var/folders"),
			Safety:      Auto,
		},
		{
			Name:        "Invisible System Files",
			Description: "Finder and Spotlight metadata files",
			Pattern:     &PatternSource{Root: home, Patterns: InvisibleFilePatterns},
			Safety:      Auto,
		},
		{
			Name:        "Trash",
			Description: "Files already moved to the Trash",
			Paths:       StaticPaths(filepath.Join(home, ".Trash")),
			Safety:      Auto,
		},
		{
			Name:        "Browser Caches",
			Description: "Safari, Chrome and Firefox caches",
			Paths: StaticPaths(
				filepath.Join(caches, "com.apple.Safari"),
				filepath.Join(appSupport, "Google", "Chrome", "Default", "Cache"),
				filepath.Join(caches, "Firefox"),
			),
			Safety: Auto,
		},
		{
			Name:        "iTunes/Music Cache",
			Description: "iTunes and Music app caches",
			Paths: StaticPaths(
				filepath.Join(caches, "com.apple.iTunes"),
				filepath.Join(caches, "com.apple.Music"),
			),
			Safety: Auto,
		},
		{
			Name:        "Xcode/Final Cut/iMovie Cache",
			Description: "Xcode DerivedData and Final Cut backups",
			Paths: StaticPaths(
				filepath.Join(xcode, "DerivedData"),
				filepath.Join(home, "Movies", "Final Cut Backups"),
			),
			Safety: Auto,
		},
		{
			Name:        "VSCode Cache",
			Description: "Visual Studio Code caches",
			Paths: StaticPaths(
				filepath.Join(appSupport, "Code", "Cache"),
				filepath.Join(appSupport, "Code", "CachedData"),
			),
			Safety: Auto,
		},
		{
			Name:        "Gradle & Android Cache",
			Description: "Gradle home and Android build cache",
			Paths: StaticPaths(
				filepath.Join(home, ".gradle"),
				filepath.Join(home, ".android", "build-cache"),
			),
			Safety: Auto,
		},
		{
			Name:        "CocoaPods Cache",
			Description: "CocoaPods spec and pod cache",
			Paths:       StaticPaths(filepath.Join(caches, "CocoaPods")),
			Safety:      Auto,
		},
		{
			Name:        "Diagnostic Reports",
			Description: "Crash and hang reports",
			Paths:       StaticPaths(filepath.Join(lib, "Logs", "DiagnosticReports")),
			Safety:      Auto,
		},
		{
			Name:        "Xcode Archives (manual builds)",
			Description: "Archived builds kept by Xcode Organizer",
			Paths:       StaticPaths(filepath.Join(xcode, "Archives")),
			Safety:      Confirm,
		},
		{
			Name:        "Xcode Simulators",
			Description: "Simulator devices, removed with simctl",
			Paths:       DynamicResolver(SimulatorDevices(filepath.Join(lib, "Developer", "CoreSimulator", "Devices"))),
			Safety:      Confirm,
			Purge:       simulatorPurge(env.Simulators),
		},
		{
			Name:        "Unused Application Containers",
			Description: "Containers of apps that are no longer installed",
			Paths:       DynamicResolver(UnusedContainers(containers, env.Apps, prefixes)),
			Safety:      Confirm,
		},
		{
			Name:        "Large Files in Downloads",
			Description: "Downloads larger than the configured threshold",
			Paths:       DynamicResolver(LargeFiles(largeDir, threshold)),
			Safety:      Confirm,
		},
		{
			Name:        "Dropbox/Google Drive Cache",
			Description: "Dropbox and Google Drive local data",
			Paths: StaticPaths(
				filepath.Join(appSupport, "Dropbox"),
				filepath.Join(appSupport, "Google", "DriveFS"),
			),
			Safety: Confirm,
		},
	}
}

// Filter returns categories for which keep returns true, preserving order.
func Filter(categories []Category, keep func(Category) bool) []Category {
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// BySafety keeps only categories of the given safety.
func BySafety(s Safety) func(Category) bool {
	return func(c Category) bool { return c.Safety == s }
}
