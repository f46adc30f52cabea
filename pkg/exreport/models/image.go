package models

// Image is a picture embedded into a sheet.
type Image struct {
	// Path is the source file, resolved relative to the configuration file.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// Extension is the picture type including the dot, e.g. ".png".
	// It defaults to the extension of Path.
	Extension string `json:"extension,omitempty" yaml:"extension,omitempty"`
	// AltText is the picture description.
	AltText string `json:"alt_text,omitempty" yaml:"alt_text,omitempty"`
	// Data is the picture content, loaded by the caller.
	Data []byte `json:"-" yaml:"-"`
}
