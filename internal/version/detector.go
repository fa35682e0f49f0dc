package version

import (
	"runtime/debug"
	"strings"
)

const (
	unknownVersionFallbackConstant = "unknown"
	buildInfoDevelVersionValue     = "(devel)"
	vcsRevisionSettingKeyConstant  = "vcs.revision"
	vcsModifiedSettingKeyConstant  = "vcs.modified"
	vcsModifiedTrueValueConstant   = "true"
	revisionLengthConstant         = 12
	revisionVersionPrefixConstant  = "devel-"
	modifiedRevisionSuffixConstant = "-dirty"
)

// BuildInfoProvider exposes runtime build metadata.
type BuildInfoProvider interface {
	Read() (*debug.BuildInfo, bool)
}

// Detector resolves application version strings.
type Detector struct {
	buildInfoProvider BuildInfoProvider
}

// Dependencies describes the collaborators required for version detection.
type Dependencies struct {
	BuildInfoProvider BuildInfoProvider
}

// NewDetector constructs a Detector, defaulting to the running binary's build information.
func NewDetector(dependencies Dependencies) *Detector {
	provider := dependencies.BuildInfoProvider
	if provider == nil {
		provider = runtimeBuildInfoProvider{}
	}
	return &Detector{buildInfoProvider: provider}
}

// Detect resolves the application version using the supplied dependencies.
func Detect(dependencies Dependencies) string {
	return NewDetector(dependencies).Version()
}

// Version returns the module version when the binary was built from a tagged module, otherwise the
// VCS revision stamped into the build, otherwise "unknown".
func (detector *Detector) Version() string {
	if detector == nil || detector.buildInfoProvider == nil {
		return unknownVersionFallbackConstant
	}

	buildInfo, available := detector.buildInfoProvider.Read()
	if !available || buildInfo == nil {
		return unknownVersionFallbackConstant
	}

	moduleVersion := strings.TrimSpace(buildInfo.Main.Version)
	if len(moduleVersion) > 0 && !strings.EqualFold(moduleVersion, buildInfoDevelVersionValue) {
		return moduleVersion
	}

	if revisionVersion := versionFromRevision(buildInfo.Settings); len(revisionVersion) > 0 {
		return revisionVersion
	}

	return unknownVersionFallbackConstant
}

func versionFromRevision(settings []debug.BuildSetting) string {
	revision := ""
	modified := false
	for _, setting := range settings {
		switch setting.Key {
		case vcsRevisionSettingKeyConstant:
			revision = strings.TrimSpace(setting.Value)
		case vcsModifiedSettingKeyConstant:
			modified = setting.Value == vcsModifiedTrueValueConstant
		}
	}
	if len(revision) == 0 {
		return ""
	}
	if len(revision) > revisionLengthConstant {
		revision = revision[:revisionLengthConstant]
	}
	version := revisionVersionPrefixConstant + revision
	if modified {
		version += modifiedRevisionSuffixConstant
	}
	return version
}

type runtimeBuildInfoProvider struct{}

func (runtimeBuildInfoProvider) Read() (*debug.BuildInfo, bool) {
	return debug.ReadBuildInfo()
}
