package config

// Settings represents the structure of the oi.yaml settings file.
type Settings struct {
	DefaultLanguage string `yaml:"default-language"`
	ScriptTimeout   string `yaml:"script-timeout"`
	Workers         int    `yaml:"workers"`
	Token           string `yaml:"token"`
}
