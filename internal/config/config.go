package config

// Config is the root configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Parser ParserConfig `yaml:"parser"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ParserConfig holds batch parsing settings.
type ParserConfig struct {
	Workers    int  `yaml:"workers"     env:"PARSER_WORKERS"     env-default:"4"`
	StrictGrid bool `yaml:"strict_grid" env:"PARSER_STRICT_GRID" env-default:"false"`
	FailFast   bool `yaml:"fail_fast"   env:"PARSER_FAIL_FAST"   env-default:"false"`
}
