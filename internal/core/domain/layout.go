package domain

import (
	"path/filepath"
	"strings"
)

const (
	// DefinitionsFileName is the name of a profile layer's definitions cache.
	DefinitionsFileName = "oi-definitions.json"

	// BuiltInDefinitionsFileName is the name of the built-in layer's definitions cache.
	BuiltInDefinitionsFileName = "oi-builtin-definitions.json"

	// LanguagesDirName is the directory holding language plugins in a layer.
	LanguagesDirName = "languages"

	// ScriptsDirName is the directory holding user scripts in a layer.
	ScriptsDirName = "scripts"

	// FilesDirSuffix is appended to a plugin or script name to form its companion directory.
	FilesDirSuffix = "-files"

	// StateDirName is scratch space inside a companion directory. It never affects staleness.
	StateDirName = "state"

	// ProfileDirName is the name of a local configuration point.
	ProfileDirName = ".oi"

	// ProfilesDirName holds named profiles below a configuration root.
	ProfilesDirName = "profiles"

	// ActiveProfileFileName names the active profile of a configuration root.
	ActiveProfileFileName = "active.profile"

	// DefaultProfileName is the profile that lives directly in the configuration root.
	DefaultProfileName = "default"

	// SettingsFileName is the name of the settings file.
	SettingsFileName = "oi.yaml"

	// AppRootEnv overrides the default global configuration root.
	AppRootEnv = "OI_APP_ROOT"

	// DefinitionsQuery is the argument asking a script to describe its commands.
	DefinitionsQuery = "get-command-definitions"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefinitionsPath returns the definitions cache file of a layer directory.
func DefinitionsPath(dir string) string {
	return filepath.Join(dir, DefinitionsFileName)
}

// BuiltInDefinitionsPath returns the built-in definitions cache file below appRoot.
func BuiltInDefinitionsPath(appRoot string) string {
	return filepath.Join(appRoot, BuiltInDefinitionsFileName)
}

// LanguagesPath returns the language plugin directory of a layer.
func LanguagesPath(dir string) string {
	return filepath.Join(dir, LanguagesDirName)
}

// ScriptsPath returns the script directory of a layer.
func ScriptsPath(dir string) string {
	return filepath.Join(dir, ScriptsDirName)
}

// BaseName returns the file name of path without its extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CompanionDir returns the directory holding private files of the plugin or
// script at path, e.g. scripts/deploy.sh -> scripts/deploy-files.
func CompanionDir(path string) string {
	return filepath.Join(filepath.Dir(path), BaseName(path)+FilesDirSuffix)
}

// LanguageScriptsPath returns the companion scripts directory of a language plugin.
func LanguageScriptsPath(languagePath string) string {
	return filepath.Join(CompanionDir(languagePath), ScriptsDirName)
}
