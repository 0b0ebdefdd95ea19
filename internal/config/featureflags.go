package config

import "os"

// FeatureFlags is an immutable snapshot of the feature toggles, computed
// exactly once at startup. Nothing re-evaluates these at runtime; the
// service-selection factory consumes the snapshot it is handed.
type FeatureFlags struct {
	// Core features
	EnableBackend           bool
	EnableAnalytics         bool
	EnableCrashReporting    bool
	EnableHealthIntegration bool
	EnableNotifications     bool
	EnableDarkMode          bool
	EnableOfflineMode       bool

	// UI features
	EnableAdvancedFitness bool
	EnableSocial          bool
	EnableGamification    bool
	EnableCustomThemes    bool

	// Development features
	EnableDebugMenu             bool
	EnableMockData              bool
	EnablePerformanceMonitoring bool
}

// NewFeatureFlags computes the flag snapshot from the two startup signals:
// whether a backend configuration artifact is present, and whether this is
// a debug build. Pure function; trivially testable.
func NewFeatureFlags(hasBackendConfig, debug bool) FeatureFlags {
	f := FeatureFlags{
		EnableBackend:           hasBackendConfig,
		EnableAnalytics:         hasBackendConfig,
		EnableCrashReporting:    hasBackendConfig,
		EnableHealthIntegration: true,
		EnableNotifications:     true,
		EnableDarkMode:          true,
		EnableOfflineMode:       true,

		EnableAdvancedFitness: true,
		// Disabled for initial release.
		EnableSocial:       false,
		EnableGamification: false,
		EnableCustomThemes: false,
	}
	if debug {
		f.EnableDebugMenu = true
		f.EnableMockData = !hasBackendConfig
		f.EnablePerformanceMonitoring = true
	}
	return f
}

// DetectFeatureFlags derives the snapshot from a loaded Config, using the
// presence of the backend configuration file as the sole backend signal.
func DetectFeatureFlags(cfg *Config) FeatureFlags {
	_, err := os.Stat(cfg.BackendConfigFile)
	return NewFeatureFlags(err == nil, cfg.Debug)
}

// MockMode reports whether the service abstraction layer must use mock
// implementations: either mock data is forced, or no backend is configured.
func (f FeatureFlags) MockMode() bool {
	return f.EnableMockData || !f.EnableBackend
}

// DebugMode reports whether development-only surfaces are available.
func (f FeatureFlags) DebugMode() bool {
	return f.EnableDebugMenu
}
