package schemafile

import "github.com/hashicorp/hcl/v2"

// fileRoot is the top-level structure of a schema file.
type fileRoot struct {
	Configs []*configBlock `hcl:"config,block"`
	Remain  hcl.Body       `hcl:",remain"`
}

// configBlock is one `config "Name" { ... }` block.
type configBlock struct {
	Name    string        `hcl:"name,label"`
	Extends *string       `hcl:"extends,optional"`
	Fields  []*fieldBlock `hcl:"field,block"`
	Remain  hcl.Body      `hcl:",remain"`
}

// fieldBlock is one `field "name" { ... }` block. Its attributes are read
// from Body directly so that an absent default can be told apart from an
// explicit null.
type fieldBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

var fieldAttributes = map[string]bool{
	"type":        true,
	"default":     true,
	"kind":        true,
	"description": true,
}
