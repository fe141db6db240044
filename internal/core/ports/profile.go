package ports

// ProfileLocator defines the interface for resolving active profile layers.
//
//go:generate mockgen -source=profile.go -destination=mocks/mock_profile.go -package=mocks
type ProfileLocator interface {
	// OrderedPaths returns the existing layer directories, nearest first.
	OrderedPaths() []string
	// GlobalProfileName returns the active global profile name.
	GlobalProfileName() string
	// LocalProfileName returns the active local profile name.
	LocalProfileName() string
	// AppRoot returns the global configuration root.
	AppRoot() string
}
