package assets

import (
	"fmt"
	"strings"
)

// Kind is an asset family. Each kind lives in its own directory with its
// own file extension.
type Kind int

const (
	Style    Kind = iota // styles/<name>.css
	Template             // templates/<name>.html
)

// Built-in asset names.
const (
	DefaultStyleName  = "default"
	PrintStyleName    = "print"
	SiteTemplateName  = "site"
	PrintTemplateName = "print"
)

func (k Kind) String() string {
	switch k {
	case Style:
		return "style"
	case Template:
		return "template"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) dir() string {
	if k == Template {
		return "templates"
	}
	return "styles"
}

func (k Kind) ext() string {
	if k == Template {
		return ".html"
	}
	return ".css"
}

func (k Kind) notFound() error {
	if k == Template {
		return ErrTemplateNotFound
	}
	return ErrStyleNotFound
}

// file returns the slash-separated path of name below a base directory.
func (k Kind) file(name string) string {
	return k.dir() + "/" + name + k.ext()
}

// Loader loads one asset. name carries no extension.
type Loader interface {
	Load(kind Kind, name string) (string, error)
}

// ValidateAssetName rejects names that are empty or could leave the asset
// directory: separators, dots and NUL bytes.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

func validate(kind Kind, name string) error {
	if kind != Style && kind != Template {
		return fmt.Errorf("%w: %d", ErrInvalidKind, int(kind))
	}
	return ValidateAssetName(name)
}
