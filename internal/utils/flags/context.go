package flags

const (
	// DryRunFlagName exposes the shared dry-run flag name.
	DryRunFlagName = "dry-run"
	// DryRunFlagUsage describes the shared dry-run flag purpose.
	DryRunFlagUsage = "Print external commands instead of executing them"
	// NoInputFlagName exposes the shared no-input flag name.
	NoInputFlagName = "no-input"
	// NoInputFlagUsage describes the shared no-input flag purpose.
	NoInputFlagUsage = "Fail on missing environment variables instead of prompting for them"
	// EnvFileFlagName exposes the shared environment file flag name.
	EnvFileFlagName = "env-file"
	// EnvFileFlagUsage describes the shared environment file flag purpose.
	EnvFileFlagUsage = "Path to the .env file holding KEY=VALUE assignments"
)
