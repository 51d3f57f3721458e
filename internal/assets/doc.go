// Package assets provides CSS styles and HTML templates for cookbook output.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the generator. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the asset is
// not found, so a user can override only the page template or only a style.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css        # e.g. default.css (site), print.css (PDF)
//	└── templates/
//	    └── {name}.html       # site.html, print.html
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
