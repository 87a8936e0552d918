package config

// NewApp builds an App bound to a config file path
func NewApp(path string) *App {
	return &App{path: path}
}

// NewRepository builds a Repository with the given backend selected
func NewRepository(backend string) *Repository {
	return &Repository{backend: backend}
}

// ParseLevel exposes parseLevel
var ParseLevel = parseLevel

// ParseFormat exposes parseFormat
var ParseFormat = parseFormat
