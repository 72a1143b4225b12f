package scene

// Plugin bundles systems that belong together so a host can enable a feature with one call.
type Plugin interface {
	// Name identifies the plugin in logs and errors.
	Name() string

	// Build registers the plugin's systems into the scene.
	//
	// Parameters:
	//   - s: the scene being extended
	//
	// Returns:
	//   - error: any registration error; the scene may hold the systems added before it
	Build(s Scene) error
}
