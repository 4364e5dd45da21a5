package config

// Commands the CLI runs a build for.
const (
	CommandBuild = "build"
	CommandCheck = "check"
)

// KnownCommands lists the commands a unit test trigger can name.
var KnownCommands = []string{CommandBuild, CommandCheck}

// Default configuration values.
const (
	DefaultBuildOut       = "build"
	DefaultTriggerCommand = CommandCheck
	DefaultSuccessCode    = 0
)

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	applyBuildDefaults(cfg)
	applyTargetDefaults(cfg)
	applyUnitTestDefaults(cfg)
	applyUTestDefaults(cfg)
}

func applyBuildDefaults(cfg *Config) {
	if cfg.Build == nil {
		cfg.Build = &BuildConfig{}
	}
	if cfg.Build.Out == "" {
		cfg.Build.Out = DefaultBuildOut
	}
}

func applyTargetDefaults(cfg *Config) {
	for name, target := range cfg.Targets {
		if target.Dir == "" {
			target.Dir = name
		}
		if target.Output == "" {
			target.Output = name
		}
		cfg.Targets[name] = target
	}
}

func applyUnitTestDefaults(cfg *Config) {
	if cfg.UnitTest == nil {
		cfg.UnitTest = &UnitTestConfig{SuccessCode: DefaultSuccessCode}
	}
	if cfg.UnitTest.Trigger == "" {
		cfg.UnitTest.Trigger = DefaultTriggerCommand
	}
}

// applyUTestDefaults only allocates the section. work_dir has no default:
// it must be configured whenever a target uses the test feature.
func applyUTestDefaults(cfg *Config) {
	if cfg.UTest == nil {
		cfg.UTest = &UTestConfig{}
	}
}
